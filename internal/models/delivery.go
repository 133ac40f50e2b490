package models

import (
	"strings"
	"time"
)

// Payment status values for a delivery.
const (
	PaymentPending  = "Pending"
	PaymentPaid     = "Paid"
	PaymentFailed   = "Failed"
	PaymentRefunded = "Refunded"
)

// Delivery status values describing the lifecycle of the shipment itself.
const (
	DeliveryPending   = "Pending"
	DeliveryConfirmed = "Confirmed"
	DeliveryCompleted = "Completed"
	DeliveryCancelled = "Cancelled"
)

// ValidDeliveryStatus reports whether s is one of the declared delivery statuses.
func ValidDeliveryStatus(s string) bool {
	switch s {
	case DeliveryPending, DeliveryConfirmed, DeliveryCompleted, DeliveryCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is one of the declared payment statuses.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Customer is the person receiving the delivery.
type Customer struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email,omitempty"`
}

// DeliveryItem is a single ordered product line within a delivery.
type DeliveryItem struct {
	Name        string  `json:"name" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,min=1"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description,omitempty"`
}

// Route describes where the delivery travels from and to.
type Route struct {
	From              string  `json:"from" validate:"required"`
	To                string  `json:"to" validate:"required"`
	Distance          float64 `json:"distance,omitempty"`
	EstimatedDuration string  `json:"estimatedDuration,omitempty"`
}

// Delivery represents one shipment order: customer, line items, route and status.
// TotalAmount is recomputed from the items and persisted on every write that
// touches them; it is never derived again on read.
type Delivery struct {
	ID              string         `json:"id" db:"id"`
	DeliveryID      string         `json:"deliveryId" db:"delivery_id"`
	Customer        Customer       `json:"customer"`
	Items           []DeliveryItem `json:"items"`
	Route           Route          `json:"route"`
	DeliveryDate    time.Time      `json:"deliveryDate" db:"delivery_date"`
	TotalAmount     float64        `json:"totalAmount" db:"total_amount"`
	PaymentStatus   string         `json:"paymentStatus" db:"payment_status"`
	DeliveryStatus  string         `json:"deliveryStatus" db:"delivery_status"`
	SpecialRequests string         `json:"specialRequests,omitempty" db:"special_requests"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`
}

// ItemsTotal sums quantity x unit price across all line items.
func ItemsTotal(items []DeliveryItem) float64 {
	var total float64
	for _, it := range items {
		total += float64(it.Quantity) * it.Price
	}
	return total
}

// CreateDeliveryRequest is the payload for POST /deliveries. A client-supplied
// totalAmount is ignored; the server recomputes it from the items. DeliveryID is
// normally absent and assigned from the sequence.
type CreateDeliveryRequest struct {
	DeliveryID      string         `json:"deliveryId,omitempty"`
	Customer        Customer       `json:"customer"`
	Items           []DeliveryItem `json:"items" validate:"required,min=1,dive"`
	Route           Route          `json:"route"`
	DeliveryDate    time.Time      `json:"deliveryDate" validate:"required"`
	TotalAmount     float64        `json:"totalAmount,omitempty"`
	PaymentStatus   string         `json:"paymentStatus,omitempty" validate:"omitempty,oneof=Pending Paid Failed Refunded"`
	DeliveryStatus  string         `json:"deliveryStatus,omitempty" validate:"omitempty,oneof=Pending Confirmed Completed Cancelled"`
	SpecialRequests string         `json:"specialRequests,omitempty"`
}

// Normalize trims all user-entered strings and applies the declared defaults for
// absent enumerated fields. Run before validation.
func (r *CreateDeliveryRequest) Normalize() {
	r.DeliveryID = strings.TrimSpace(r.DeliveryID)
	r.Customer.Name = strings.TrimSpace(r.Customer.Name)
	r.Customer.Phone = strings.TrimSpace(r.Customer.Phone)
	r.Customer.Email = strings.TrimSpace(r.Customer.Email)
	r.Route.From = strings.TrimSpace(r.Route.From)
	r.Route.To = strings.TrimSpace(r.Route.To)
	r.Route.EstimatedDuration = strings.TrimSpace(r.Route.EstimatedDuration)
	r.SpecialRequests = strings.TrimSpace(r.SpecialRequests)
	for i := range r.Items {
		r.Items[i].Name = strings.TrimSpace(r.Items[i].Name)
		r.Items[i].Description = strings.TrimSpace(r.Items[i].Description)
	}
	if r.PaymentStatus == "" {
		r.PaymentStatus = PaymentPending
	}
	if r.DeliveryStatus == "" {
		r.DeliveryStatus = DeliveryPending
	}
}

// UpdateDeliveryRequest is the payload for PUT /deliveries/:id. Nil fields are
// left untouched; supplied fields replace the stored group wholesale. TotalAmount
// is filled in by the service when the items change, never bound from the client.
type UpdateDeliveryRequest struct {
	Customer        *Customer        `json:"customer,omitempty"`
	Items           *[]DeliveryItem  `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	Route           *Route           `json:"route,omitempty"`
	DeliveryDate    *time.Time       `json:"deliveryDate,omitempty"`
	PaymentStatus   *string          `json:"paymentStatus,omitempty" validate:"omitempty,oneof=Pending Paid Failed Refunded"`
	DeliveryStatus  *string          `json:"deliveryStatus,omitempty" validate:"omitempty,oneof=Pending Confirmed Completed Cancelled"`
	SpecialRequests *string          `json:"specialRequests,omitempty"`
	TotalAmount     *float64         `json:"-"`
}

// Normalize trims the supplied groups in place.
func (r *UpdateDeliveryRequest) Normalize() {
	if r.Customer != nil {
		r.Customer.Name = strings.TrimSpace(r.Customer.Name)
		r.Customer.Phone = strings.TrimSpace(r.Customer.Phone)
		r.Customer.Email = strings.TrimSpace(r.Customer.Email)
	}
	if r.Route != nil {
		r.Route.From = strings.TrimSpace(r.Route.From)
		r.Route.To = strings.TrimSpace(r.Route.To)
		r.Route.EstimatedDuration = strings.TrimSpace(r.Route.EstimatedDuration)
	}
	if r.Items != nil {
		items := *r.Items
		for i := range items {
			items[i].Name = strings.TrimSpace(items[i].Name)
			items[i].Description = strings.TrimSpace(items[i].Description)
		}
	}
	if r.SpecialRequests != nil {
		trimmed := strings.TrimSpace(*r.SpecialRequests)
		r.SpecialRequests = &trimmed
	}
}

// IsEmpty reports whether the update carries no fields at all.
func (r *UpdateDeliveryRequest) IsEmpty() bool {
	return r.Customer == nil && r.Items == nil && r.Route == nil &&
		r.DeliveryDate == nil && r.PaymentStatus == nil &&
		r.DeliveryStatus == nil && r.SpecialRequests == nil
}

// StatusUpdateRequest is the payload for PATCH /deliveries/:id/status.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Confirmed Completed Cancelled"`
}
