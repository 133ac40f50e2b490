package deliveries

import (
	"context"
	"fmt"
	"log"

	"github.com/SandeepaChathumina/Grocery-System/internal/dashboard"
	"github.com/SandeepaChathumina/Grocery-System/internal/models"
)

// ServiceInterface defines the contract for the delivery service.
type ServiceInterface interface {
	List(ctx context.Context) ([]models.Delivery, error)
	ListByStatus(ctx context.Context, status string) ([]models.Delivery, error)
	Get(ctx context.Context, id string) (*models.Delivery, error)
	Create(ctx context.Context, req models.CreateDeliveryRequest) (*models.Delivery, error)
	Update(ctx context.Context, id string, req models.UpdateDeliveryRequest) (*models.Delivery, error)
	UpdateStatus(ctx context.Context, id string, status string) (*models.Delivery, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (dashboard.Stats, error)
}

// Service implements the delivery business logic. Both cache and notifier are
// optional; a nil value simply disables that concern.
type Service struct {
	repo     RepositoryInterface
	cache    *Cache
	notifier Notifier
}

// NewService creates a new delivery service.
func NewService(repo RepositoryInterface, cache *Cache, notifier Notifier) *Service {
	return &Service{repo: repo, cache: cache, notifier: notifier}
}

// List returns every delivery, newest created first.
func (s *Service) List(ctx context.Context) ([]models.Delivery, error) {
	deliveries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.List: %w", err)
	}
	return deliveries, nil
}

// ListByStatus returns every delivery in the given delivery status.
func (s *Service) ListByStatus(ctx context.Context, status string) ([]models.Delivery, error) {
	deliveries, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("service.ListByStatus: %w", err)
	}
	return deliveries, nil
}

// Get fetches one delivery, consulting the cache first.
func (s *Service) Get(ctx context.Context, id string) (*models.Delivery, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err != nil {
			log.Printf("cache read failed for delivery %s: %v", id, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.recache(ctx, d)
	return d, nil
}

// Create validates nothing itself (the handler has already normalized and
// validated the payload); it assigns the sequential delivery id when absent,
// recomputes the total from the items and persists the record.
func (s *Service) Create(ctx context.Context, req models.CreateDeliveryRequest) (*models.Delivery, error) {
	if req.DeliveryID == "" {
		n, err := s.repo.NextDeliveryID(ctx)
		if err != nil {
			return nil, fmt.Errorf("service.Create: %w", err)
		}
		req.DeliveryID = FormatDeliveryID(n)
	}

	d := &models.Delivery{
		DeliveryID:      req.DeliveryID,
		Customer:        req.Customer,
		Items:           req.Items,
		Route:           req.Route,
		DeliveryDate:    req.DeliveryDate,
		TotalAmount:     models.ItemsTotal(req.Items),
		PaymentStatus:   req.PaymentStatus,
		DeliveryStatus:  req.DeliveryStatus,
		SpecialRequests: req.SpecialRequests,
	}

	created, err := s.repo.Create(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("service.Create: %w", err)
	}

	s.recache(ctx, created)
	return created, nil
}

// Update applies a partial or full field replacement. When the items change,
// the stored total is recomputed here so readers never have to.
func (s *Service) Update(ctx context.Context, id string, req models.UpdateDeliveryRequest) (*models.Delivery, error) {
	if req.IsEmpty() {
		return s.Get(ctx, id)
	}
	if req.Items != nil {
		total := models.ItemsTotal(*req.Items)
		req.TotalAmount = &total
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.recache(ctx, updated)
	return updated, nil
}

// UpdateStatus replaces only the delivery status. Completing a delivery sends
// the customer a best-effort notification email.
func (s *Service) UpdateStatus(ctx context.Context, id string, status string) (*models.Delivery, error) {
	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.recache(ctx, updated)

	if status == models.DeliveryCompleted && s.notifier != nil && updated.Customer.Email != "" {
		if err := s.notifier.DeliveryCompleted(ctx, updated); err != nil {
			log.Printf("ERROR: failed to send completion email for %s: %v", updated.DeliveryID, err)
		}
	}

	return updated, nil
}

// Delete removes a delivery and drops it from the cache.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			log.Printf("cache invalidate failed for delivery %s: %v", id, err)
		}
	}
	return nil
}

// Stats aggregates the full delivery list for the dashboard cards.
func (s *Service) Stats(ctx context.Context) (dashboard.Stats, error) {
	deliveries, err := s.repo.List(ctx)
	if err != nil {
		return dashboard.Stats{}, fmt.Errorf("service.Stats: %w", err)
	}
	return dashboard.ComputeStats(deliveries), nil
}

func (s *Service) recache(ctx context.Context, d *models.Delivery) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, d); err != nil {
		log.Printf("cache write failed for delivery %s: %v", d.ID, err)
	}
}
