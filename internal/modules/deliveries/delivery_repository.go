package deliveries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SandeepaChathumina/Grocery-System/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const deliveryColumns = `id, delivery_id, customer_name, customer_phone, customer_email,
	items, route_from, route_to, route_distance, route_duration,
	delivery_date, total_amount, payment_status, delivery_status,
	special_requests, created_at, updated_at`

// RepositoryInterface defines the contract for delivery storage.
type RepositoryInterface interface {
	NextDeliveryID(ctx context.Context) (int64, error)
	Create(ctx context.Context, d *models.Delivery) (*models.Delivery, error)
	FindByID(ctx context.Context, id string) (*models.Delivery, error)
	List(ctx context.Context) ([]models.Delivery, error)
	ListByStatus(ctx context.Context, status string) ([]models.Delivery, error)
	Update(ctx context.Context, id string, req models.UpdateDeliveryRequest) (*models.Delivery, error)
	UpdateStatus(ctx context.Context, id string, status string) (*models.Delivery, error)
	Delete(ctx context.Context, id string) error
}

// Repository implements RepositoryInterface on Postgres.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new delivery repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// scanDelivery scans a row holding deliveryColumns into a Delivery.
func scanDelivery(row pgx.Row) (*models.Delivery, error) {
	var d models.Delivery
	err := row.Scan(
		&d.ID,
		&d.DeliveryID,
		&d.Customer.Name,
		&d.Customer.Phone,
		&d.Customer.Email,
		&d.Items,
		&d.Route.From,
		&d.Route.To,
		&d.Route.Distance,
		&d.Route.EstimatedDuration,
		&d.DeliveryDate,
		&d.TotalAmount,
		&d.PaymentStatus,
		&d.DeliveryStatus,
		&d.SpecialRequests,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan delivery: %w", err)
	}
	return &d, nil
}

// Create inserts a new delivery. The opaque record id is assigned here; the
// human-readable delivery id must already be set by the caller.
func (r *Repository) Create(ctx context.Context, d *models.Delivery) (*models.Delivery, error) {
	d.ID = uuid.New().String()

	query := fmt.Sprintf(`
		INSERT INTO deliveries (id, delivery_id, customer_name, customer_phone, customer_email,
			items, route_from, route_to, route_distance, route_duration,
			delivery_date, total_amount, payment_status, delivery_status, special_requests)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING %s`, deliveryColumns)

	row := r.db.QueryRow(ctx, query,
		d.ID, d.DeliveryID, d.Customer.Name, d.Customer.Phone, d.Customer.Email,
		d.Items, d.Route.From, d.Route.To, d.Route.Distance, d.Route.EstimatedDuration,
		d.DeliveryDate, d.TotalAmount, d.PaymentStatus, d.DeliveryStatus, d.SpecialRequests,
	)

	created, err := scanDelivery(row)
	if err != nil {
		return nil, fmt.Errorf("repository.Create: %w", err)
	}
	return created, nil
}

// FindByID retrieves a single delivery by its opaque record id.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Delivery, error) {
	query := fmt.Sprintf(`SELECT %s FROM deliveries WHERE id = $1`, deliveryColumns)

	d, err := scanDelivery(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return d, nil
}

// List retrieves all deliveries, newest created first.
func (r *Repository) List(ctx context.Context) ([]models.Delivery, error) {
	query := fmt.Sprintf(`SELECT %s FROM deliveries ORDER BY created_at DESC`, deliveryColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.List.Query: %w", err)
	}
	defer rows.Close()

	return collectDeliveries(rows)
}

// ListByStatus retrieves all deliveries whose delivery status equals status.
func (r *Repository) ListByStatus(ctx context.Context, status string) ([]models.Delivery, error) {
	query := fmt.Sprintf(`SELECT %s FROM deliveries WHERE delivery_status = $1 ORDER BY created_at DESC`, deliveryColumns)

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("repository.ListByStatus.Query: %w", err)
	}
	defer rows.Close()

	return collectDeliveries(rows)
}

func collectDeliveries(rows pgx.Rows) ([]models.Delivery, error) {
	deliveries := []models.Delivery{}
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.collectDeliveries: %w", err)
		}
		deliveries = append(deliveries, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.collectDeliveries: %w", err)
	}
	return deliveries, nil
}

// Update applies the supplied field groups to an existing delivery. The
// delivery_id column is never part of the SET list; the identifier is assigned
// once at creation and immutable afterwards.
func (r *Repository) Update(ctx context.Context, id string, req models.UpdateDeliveryRequest) (*models.Delivery, error) {
	var setClauses []string
	var args []interface{}
	argIdx := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.Customer != nil {
		addSet("customer_name", req.Customer.Name)
		addSet("customer_phone", req.Customer.Phone)
		addSet("customer_email", req.Customer.Email)
	}
	if req.Items != nil {
		addSet("items", *req.Items)
	}
	if req.TotalAmount != nil {
		addSet("total_amount", *req.TotalAmount)
	}
	if req.Route != nil {
		addSet("route_from", req.Route.From)
		addSet("route_to", req.Route.To)
		addSet("route_distance", req.Route.Distance)
		addSet("route_duration", req.Route.EstimatedDuration)
	}
	if req.DeliveryDate != nil {
		addSet("delivery_date", *req.DeliveryDate)
	}
	if req.PaymentStatus != nil {
		addSet("payment_status", *req.PaymentStatus)
	}
	if req.DeliveryStatus != nil {
		addSet("delivery_status", *req.DeliveryStatus)
	}
	if req.SpecialRequests != nil {
		addSet("special_requests", *req.SpecialRequests)
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, id)
	}

	addSet("updated_at", time.Now())
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE deliveries SET %s
		WHERE id = $%d
		RETURNING %s`,
		strings.Join(setClauses, ", "), argIdx, deliveryColumns)

	d, err := scanDelivery(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.Update: %w", err)
	}
	return d, nil
}

// UpdateStatus replaces only the delivery status of a record.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status string) (*models.Delivery, error) {
	query := fmt.Sprintf(`
		UPDATE deliveries
		SET delivery_status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING %s`, deliveryColumns)

	d, err := scanDelivery(r.db.QueryRow(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateStatus: %w", err)
	}
	return d, nil
}

// Delete removes a delivery record.
func (r *Repository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM deliveries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository.Delete: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
