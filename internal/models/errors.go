package models

import "errors"

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when a create collides with an existing resource,
	// e.g. signing up with an email address that is already registered.
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidCredentials is returned when a login attempt carries a wrong
	// email or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	// Errors carries field-keyed validation messages when the failure is a
	// validation error; absent otherwise.
	Errors map[string]string `json:"errors,omitempty"`
}
