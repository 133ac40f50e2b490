package dashboard

import (
	"time"

	"github.com/SandeepaChathumina/Grocery-System/internal/models"
	"github.com/SandeepaChathumina/Grocery-System/internal/validation"
)

// Draft is the mutable working copy behind the delivery form. Every mutation
// of the items recomputes Total immediately, so the displayed total can never
// drift from the line items. The items sequence never drops below one entry.
type Draft struct {
	DeliveryID      string
	Customer        models.Customer
	Items           []models.DeliveryItem
	Route           models.Route
	DeliveryDate    time.Time
	PaymentStatus   string
	DeliveryStatus  string
	SpecialRequests string
	Total           float64
}

// NewDraft returns an empty draft seeded with one blank line item and the
// default statuses.
func NewDraft() *Draft {
	return &Draft{
		Items:          []models.DeliveryItem{{Quantity: 1}},
		PaymentStatus:  models.PaymentPending,
		DeliveryStatus: models.DeliveryPending,
	}
}

// NewDraftFrom builds a draft pre-filled from an existing delivery, for edits.
func NewDraftFrom(d models.Delivery) *Draft {
	items := make([]models.DeliveryItem, len(d.Items))
	copy(items, d.Items)
	if len(items) == 0 {
		items = []models.DeliveryItem{{Quantity: 1}}
	}
	draft := &Draft{
		DeliveryID:      d.DeliveryID,
		Customer:        d.Customer,
		Items:           items,
		Route:           d.Route,
		DeliveryDate:    d.DeliveryDate,
		PaymentStatus:   d.PaymentStatus,
		DeliveryStatus:  d.DeliveryStatus,
		SpecialRequests: d.SpecialRequests,
	}
	draft.recompute()
	return draft
}

// AddItem appends a blank line item.
func (dr *Draft) AddItem() {
	dr.Items = append(dr.Items, models.DeliveryItem{Quantity: 1})
	dr.recompute()
}

// RemoveItem deletes the item at index i. Removing the last remaining item is
// a no-op; the form always shows at least one line.
func (dr *Draft) RemoveItem(i int) {
	if len(dr.Items) <= 1 || i < 0 || i >= len(dr.Items) {
		return
	}
	dr.Items = append(dr.Items[:i], dr.Items[i+1:]...)
	dr.recompute()
}

// SetItem replaces the item at index i.
func (dr *Draft) SetItem(i int, item models.DeliveryItem) {
	if i < 0 || i >= len(dr.Items) {
		return
	}
	dr.Items[i] = item
	dr.recompute()
}

func (dr *Draft) recompute() {
	dr.Total = models.ItemsTotal(dr.Items)
}

// Request converts the draft into the create payload, with the freshly
// recomputed total.
func (dr *Draft) Request() models.CreateDeliveryRequest {
	req := models.CreateDeliveryRequest{
		DeliveryID:      dr.DeliveryID,
		Customer:        dr.Customer,
		Items:           dr.Items,
		Route:           dr.Route,
		DeliveryDate:    dr.DeliveryDate,
		TotalAmount:     dr.Total,
		PaymentStatus:   dr.PaymentStatus,
		DeliveryStatus:  dr.DeliveryStatus,
		SpecialRequests: dr.SpecialRequests,
	}
	req.Normalize()
	return req
}

// Validate runs the same structural rules the server applies on submit and
// returns field-keyed messages. A draft with a non-empty result must not be
// dispatched.
func (dr *Draft) Validate() map[string]string {
	req := dr.Request()
	if err := validation.New().Struct(req); err != nil {
		return validation.Fields(err)
	}
	return nil
}
