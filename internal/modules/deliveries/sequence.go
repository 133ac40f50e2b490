package deliveries

import (
	"context"
	"fmt"
)

// FormatDeliveryID renders the nth ordinal as the human-readable identifier,
// e.g. 1 -> "DEL000001".
func FormatDeliveryID(n int64) string {
	return fmt.Sprintf("DEL%06d", n)
}

// NextDeliveryID atomically bumps the delivery sequence and returns the new
// ordinal. A single UPDATE ... RETURNING keeps concurrent creates from ever
// observing the same value, and ordinals are never reused after deletion
// because the sequence only grows.
func (r *Repository) NextDeliveryID(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`UPDATE delivery_sequence SET last_value = last_value + 1 RETURNING last_value`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("repository.NextDeliveryID: %w", err)
	}
	return n, nil
}
