package deliveries

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SandeepaChathumina/Grocery-System/internal/models"
)

// fakeRepo is an in-memory RepositoryInterface for service tests.
type fakeRepo struct {
	seq    int64
	nextID int
	store  map[string]*models.Delivery
	order  []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{store: map[string]*models.Delivery{}}
}

func (r *fakeRepo) NextDeliveryID(ctx context.Context) (int64, error) {
	r.seq++
	return r.seq, nil
}

func (r *fakeRepo) Create(ctx context.Context, d *models.Delivery) (*models.Delivery, error) {
	r.nextID++
	stored := *d
	stored.ID = fmt.Sprintf("11111111-1111-1111-1111-%012d", r.nextID)
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.store[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	out := stored
	return &out, nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id string) (*models.Delivery, error) {
	d, ok := r.store[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *d
	return &out, nil
}

func (r *fakeRepo) List(ctx context.Context) ([]models.Delivery, error) {
	out := []models.Delivery{}
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, *r.store[r.order[i]])
	}
	return out, nil
}

func (r *fakeRepo) ListByStatus(ctx context.Context, status string) ([]models.Delivery, error) {
	out := []models.Delivery{}
	for i := len(r.order) - 1; i >= 0; i-- {
		if d := r.store[r.order[i]]; d.DeliveryStatus == status {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(ctx context.Context, id string, req models.UpdateDeliveryRequest) (*models.Delivery, error) {
	d, ok := r.store[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if req.Customer != nil {
		d.Customer = *req.Customer
	}
	if req.Items != nil {
		d.Items = *req.Items
	}
	if req.TotalAmount != nil {
		d.TotalAmount = *req.TotalAmount
	}
	if req.Route != nil {
		d.Route = *req.Route
	}
	if req.DeliveryDate != nil {
		d.DeliveryDate = *req.DeliveryDate
	}
	if req.PaymentStatus != nil {
		d.PaymentStatus = *req.PaymentStatus
	}
	if req.DeliveryStatus != nil {
		d.DeliveryStatus = *req.DeliveryStatus
	}
	if req.SpecialRequests != nil {
		d.SpecialRequests = *req.SpecialRequests
	}
	d.UpdatedAt = time.Now()
	out := *d
	return &out, nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id string, status string) (*models.Delivery, error) {
	d, ok := r.store[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	d.DeliveryStatus = status
	d.UpdatedAt = time.Now()
	out := *d
	return &out, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.store[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.store, id)
	return nil
}

// fakeNotifier records completion notifications.
type fakeNotifier struct {
	completed []string
}

func (n *fakeNotifier) DeliveryCompleted(ctx context.Context, d *models.Delivery) error {
	n.completed = append(n.completed, d.DeliveryID)
	return nil
}

func createRequest() models.CreateDeliveryRequest {
	req := models.CreateDeliveryRequest{
		Customer: models.Customer{Name: "Nimal Perera", Phone: "0771234567", Email: "nimal@example.com"},
		Items: []models.DeliveryItem{
			{Name: "Rice 5kg", Quantity: 2, Price: 10.50},
			{Name: "Sugar 1kg", Quantity: 1, Price: 5.00},
		},
		Route:        models.Route{From: "Colombo", To: "Kandy"},
		DeliveryDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	}
	req.Normalize()
	return req
}

func TestCreateAssignsSequentialDeliveryID(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, createRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Create(ctx, createRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.DeliveryID != "DEL000001" {
		t.Fatalf("first deliveryId = %q, want DEL000001", first.DeliveryID)
	}
	if second.DeliveryID != "DEL000002" {
		t.Fatalf("second deliveryId = %q, want DEL000002", second.DeliveryID)
	}
}

func TestCreateKeepsSuppliedDeliveryID(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)

	req := createRequest()
	req.DeliveryID = "DEL999999"

	created, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.DeliveryID != "DEL999999" {
		t.Fatalf("deliveryId = %q, want DEL999999", created.DeliveryID)
	}
	if repo.seq != 0 {
		t.Fatalf("sequence bumped %d times, want 0", repo.seq)
	}
}

func TestCreateRecomputesTotal(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)

	req := createRequest()
	req.TotalAmount = 999.99 // client-supplied total is ignored

	created, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.TotalAmount != 26.00 {
		t.Fatalf("totalAmount = %.2f, want 26.00", created.TotalAmount)
	}
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fetched, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fetched.DeliveryID != created.DeliveryID ||
		fetched.Customer != created.Customer ||
		fetched.Route != created.Route ||
		fetched.TotalAmount != created.TotalAmount ||
		fetched.PaymentStatus != created.PaymentStatus ||
		fetched.DeliveryStatus != created.DeliveryStatus ||
		!fetched.DeliveryDate.Equal(created.DeliveryDate) {
		t.Fatalf("round trip mismatch:\ncreated: %+v\nfetched: %+v", created, fetched)
	}
	if len(fetched.Items) != len(created.Items) {
		t.Fatalf("items length = %d, want %d", len(fetched.Items), len(created.Items))
	}
}

func TestUpdateRecomputesTotalWhenItemsChange(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	newItems := []models.DeliveryItem{{Name: "Flour 1kg", Quantity: 3, Price: 2.00}}
	updated, err := svc.Update(ctx, created.ID, models.UpdateDeliveryRequest{Items: &newItems})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.TotalAmount != 6.00 {
		t.Fatalf("totalAmount = %.2f, want 6.00", updated.TotalAmount)
	}
}

func TestUpdateWithoutItemsKeepsStoredTotal(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status := models.PaymentPaid
	updated, err := svc.Update(ctx, created.ID, models.UpdateDeliveryRequest{PaymentStatus: &status})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.TotalAmount != 26.00 {
		t.Fatalf("totalAmount = %.2f, want unchanged 26.00", updated.TotalAmount)
	}
	if updated.PaymentStatus != models.PaymentPaid {
		t.Fatalf("paymentStatus = %q, want Paid", updated.PaymentStatus)
	}
}

func TestUpdateStatusChangesOnlyStatus(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, created.ID, models.DeliveryConfirmed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.DeliveryStatus != models.DeliveryConfirmed {
		t.Fatalf("deliveryStatus = %q, want Confirmed", updated.DeliveryStatus)
	}
	if updated.DeliveryID != created.DeliveryID ||
		updated.Customer != created.Customer ||
		updated.Route != created.Route ||
		updated.TotalAmount != created.TotalAmount ||
		updated.PaymentStatus != created.PaymentStatus {
		t.Fatalf("status patch touched other fields:\nbefore: %+v\nafter: %+v", created, updated)
	}
}

func TestUpdateStatusCompletedNotifiesCustomer(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := NewService(newFakeRepo(), nil, notifier)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, created.ID, models.DeliveryConfirmed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.completed) != 0 {
		t.Fatalf("notified on Confirmed, want no notification")
	}

	if _, err := svc.UpdateStatus(ctx, created.ID, models.DeliveryCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.completed) != 1 || notifier.completed[0] != created.DeliveryID {
		t.Fatalf("completion notifications = %v, want [%s]", notifier.completed, created.DeliveryID)
	}
}

func TestUpdateStatusCompletedSkipsCustomerWithoutEmail(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := NewService(newFakeRepo(), nil, notifier)
	ctx := context.Background()

	req := createRequest()
	req.Customer.Email = ""
	created, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, created.ID, models.DeliveryCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.completed) != 0 {
		t.Fatalf("notified customer without email: %v", notifier.completed)
	}
}

func TestDeleteMissingReturnsNotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)

	err := svc.Delete(context.Background(), "11111111-1111-1111-1111-000000000099")
	if err != models.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListByStatusReturnsExactSubset(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)
	ctx := context.Background()

	statuses := []string{models.DeliveryPending, models.DeliveryConfirmed, models.DeliveryCompleted}
	for _, s := range statuses {
		req := createRequest()
		req.DeliveryStatus = s
		if _, err := svc.Create(ctx, req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got, err := svc.ListByStatus(ctx, models.DeliveryConfirmed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 confirmed delivery, got %d", len(got))
	}
	if got[0].DeliveryStatus != models.DeliveryConfirmed {
		t.Fatalf("status = %q, want Confirmed", got[0].DeliveryStatus)
	}
}

func TestStatsAggregateFullList(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)
	ctx := context.Background()

	paid := createRequest()
	paid.PaymentStatus = models.PaymentPaid
	if _, err := svc.Create(ctx, paid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Create(ctx, createRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 2 {
		t.Fatalf("total = %d, want 2", stats.Total)
	}
	if stats.TotalRevenue != 26.00 {
		t.Fatalf("totalRevenue = %.2f, want 26.00", stats.TotalRevenue)
	}
	if stats.PendingPayments != 26.00 {
		t.Fatalf("pendingPayments = %.2f, want 26.00", stats.PendingPayments)
	}
}

func TestFormatDeliveryID(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{1, "DEL000001"},
		{42, "DEL000042"},
		{999999, "DEL999999"},
		{1234567, "DEL1234567"},
	}
	for _, tt := range tests {
		if got := FormatDeliveryID(tt.n); got != tt.want {
			t.Fatalf("FormatDeliveryID(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
