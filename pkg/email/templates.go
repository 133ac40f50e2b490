package email

import (
	"bytes"
	"html/template"
	"log"
)

// TemplateManager holds the parsed email templates.
type TemplateManager struct {
	CompletedTmpl *template.Template
}

// NewTemplateManager parses all email templates at startup.
func NewTemplateManager() (*TemplateManager, error) {
	completedTmpl, err := template.New("deliveryCompleted").Parse(deliveryCompletedTemplate)
	if err != nil {
		return nil, err
	}

	log.Println("Email templates parsed successfully.")
	return &TemplateManager{
		CompletedTmpl: completedTmpl,
	}, nil
}

// CompletedData holds the dynamic data for the delivery-completed email.
type CompletedData struct {
	Name       string
	DeliveryID string
	From       string
	To         string
	Total      string
}

// GenerateCompletedEmailHTML executes the delivery-completed template.
func (tm *TemplateManager) GenerateCompletedEmailHTML(data CompletedData) (string, error) {
	var buf bytes.Buffer
	if err := tm.CompletedTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const deliveryCompletedTemplate = `
<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #333;">
    <h2>Your delivery is complete</h2>
    <p>Hi {{.Name}},</p>
    <p>
      Delivery <strong>{{.DeliveryID}}</strong> from {{.From}} to {{.To}}
      has been completed.
    </p>
    <p>Order total: <strong>{{.Total}}</strong></p>
    <p>Thank you for using our delivery service.</p>
  </body>
</html>
`
