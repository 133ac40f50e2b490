// Package web embeds the static single-page dashboard client.
package web

import "embed"

//go:embed index.html app.js
var FS embed.FS
