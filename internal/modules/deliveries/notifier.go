package deliveries

import (
	"context"
	"fmt"

	"github.com/SandeepaChathumina/Grocery-System/internal/models"
	"github.com/SandeepaChathumina/Grocery-System/pkg/email"
)

// Notifier sends customer-facing notifications about a delivery. The service
// treats it as optional and best-effort: a nil notifier or a send failure never
// fails the triggering request.
type Notifier interface {
	DeliveryCompleted(ctx context.Context, d *models.Delivery) error
}

// EmailNotifier implements Notifier on top of the SES email sender.
type EmailNotifier struct {
	emailSvc  email.ServiceInterface
	templates *email.TemplateManager
}

func NewEmailNotifier(emailSvc email.ServiceInterface, templates *email.TemplateManager) *EmailNotifier {
	return &EmailNotifier{emailSvc: emailSvc, templates: templates}
}

// DeliveryCompleted emails the customer that their delivery has been completed.
// Callers should skip deliveries without a customer email.
func (n *EmailNotifier) DeliveryCompleted(ctx context.Context, d *models.Delivery) error {
	data := email.CompletedData{
		Name:       d.Customer.Name,
		DeliveryID: d.DeliveryID,
		From:       d.Route.From,
		To:         d.Route.To,
		Total:      fmt.Sprintf("$%.2f", d.TotalAmount),
	}

	html, err := n.templates.GenerateCompletedEmailHTML(data)
	if err != nil {
		return fmt.Errorf("notifier.DeliveryCompleted: %w", err)
	}

	subject := fmt.Sprintf("Delivery %s completed", d.DeliveryID)
	plain := fmt.Sprintf("Hi %s, your delivery %s from %s to %s has been completed. Order total: %s.",
		data.Name, data.DeliveryID, data.From, data.To, data.Total)

	return n.emailSvc.SendEmail(ctx, d.Customer.Email, subject, plain, html)
}
