// Package dashboard holds the derived-view computations behind the delivery
// dashboard: filtering, searching and aggregate statistics. Everything here is
// a pure function over a snapshot of deliveries, so the same logic backs both
// the web client and the list/stats endpoints.
package dashboard

import (
	"strings"

	"github.com/SandeepaChathumina/Grocery-System/internal/models"
)

// Stats aggregates the full, unfiltered delivery list.
type Stats struct {
	Total           int     `json:"total"`
	Pending         int     `json:"pending"`
	Confirmed       int     `json:"confirmed"`
	Completed       int     `json:"completed"`
	Cancelled       int     `json:"cancelled"`
	TotalRevenue    float64 `json:"totalRevenue"`
	PendingPayments float64 `json:"pendingPayments"`
}

// ComputeStats counts deliveries per status and sums totalAmount for paid and
// payment-pending records.
func ComputeStats(deliveries []models.Delivery) Stats {
	stats := Stats{Total: len(deliveries)}
	for _, d := range deliveries {
		switch d.DeliveryStatus {
		case models.DeliveryPending:
			stats.Pending++
		case models.DeliveryConfirmed:
			stats.Confirmed++
		case models.DeliveryCompleted:
			stats.Completed++
		case models.DeliveryCancelled:
			stats.Cancelled++
		}
		switch d.PaymentStatus {
		case models.PaymentPaid:
			stats.TotalRevenue += d.TotalAmount
		case models.PaymentPending:
			stats.PendingPayments += d.TotalAmount
		}
	}
	return stats
}

// Filter returns the deliveries matching an optional status filter and an
// optional free-text search term. A record matches the term when it appears
// case-insensitively in the delivery id, customer name, route origin or route
// destination, or as a raw substring of the customer phone.
func Filter(deliveries []models.Delivery, term, status string) []models.Delivery {
	out := []models.Delivery{}
	for _, d := range deliveries {
		if status != "" && d.DeliveryStatus != status {
			continue
		}
		if term != "" && !matchesTerm(d, term) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func matchesTerm(d models.Delivery, term string) bool {
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(d.DeliveryID), lower) ||
		strings.Contains(strings.ToLower(d.Customer.Name), lower) ||
		strings.Contains(d.Customer.Phone, term) ||
		strings.Contains(strings.ToLower(d.Route.From), lower) ||
		strings.Contains(strings.ToLower(d.Route.To), lower)
}
