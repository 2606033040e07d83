package checkout_test

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EddyKilonzo/shopie/internal/application/checkout"
	"github.com/EddyKilonzo/shopie/internal/domain"
	"github.com/EddyKilonzo/shopie/internal/domain/entity"
	"github.com/EddyKilonzo/shopie/internal/domain/repository"
	"github.com/EddyKilonzo/shopie/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ──────────────────────────────────────────────────────────────────────────────

// memStore backs the fakes. The fake TxRunner snapshots it before the
// transaction body and restores the snapshot on error, which models the
// all-or-nothing commit of the real implementation.
type memStore struct {
	users         map[string]*entity.User
	lines         map[string]*entity.CartLine
	orders        map[string]*entity.Order
	orderLines    map[string]*entity.OrderLine
	notifications map[string]*entity.Notification

	failOrderCreate error // injected failure for the next order insert
}

func newMemStore() *memStore {
	return &memStore{
		users:         make(map[string]*entity.User),
		lines:         make(map[string]*entity.CartLine),
		orders:        make(map[string]*entity.Order),
		orderLines:    make(map[string]*entity.OrderLine),
		notifications: make(map[string]*entity.Notification),
	}
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, v := range s.lines {
		l := *v
		cp.lines[k] = &l
	}
	for k, v := range s.orders {
		o := *v
		cp.orders[k] = &o
	}
	for k, v := range s.orderLines {
		ol := *v
		cp.orderLines[k] = &ol
	}
	for k, v := range s.notifications {
		n := *v
		cp.notifications[k] = &n
	}
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.lines = snap.lines
	s.orders = snap.orders
	s.orderLines = snap.orderLines
	s.notifications = snap.notifications
}

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeCartRepo struct{ s *memStore }

func (r *fakeCartRepo) FindLine(_ context.Context, userID, productID string) (*entity.CartLine, error) {
	for _, l := range r.s.lines {
		if l.UserID == userID && l.ProductID == productID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCartRepo) GetLine(_ context.Context, lineID string) (*entity.CartLine, error) {
	l, ok := r.s.lines[lineID]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeCartRepo) Create(_ context.Context, line *entity.CartLine) error {
	cp := *line
	r.s.lines[line.ID] = &cp
	return nil
}

func (r *fakeCartRepo) UpdateLine(_ context.Context, lineID string, quantity int, total decimal.Decimal) error {
	l, ok := r.s.lines[lineID]
	if !ok {
		return domain.ErrCartLineNotFound
	}
	l.Quantity = quantity
	l.Total = total
	return nil
}

func (r *fakeCartRepo) ListByUser(_ context.Context, userID string) ([]*entity.CartLine, error) {
	out := make([]*entity.CartLine, 0)
	for _, l := range r.s.lines {
		if l.UserID == userID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCartRepo) Delete(_ context.Context, lineID string) error {
	delete(r.s.lines, lineID)
	return nil
}

func (r *fakeCartRepo) DeleteByUser(_ context.Context, userID string) error {
	for id, l := range r.s.lines {
		if l.UserID == userID {
			delete(r.s.lines, id)
		}
	}
	return nil
}

func (r *fakeCartRepo) Totals(_ context.Context, userID string) (*repository.CartTotals, error) {
	totals := &repository.CartTotals{Total: decimal.Zero}
	for _, l := range r.s.lines {
		if l.UserID == userID {
			totals.Total = totals.Total.Add(l.Total)
			totals.ItemCount += l.Quantity
		}
	}
	return totals, nil
}

type fakeOrderRepo struct{ s *memStore }

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if err := r.s.failOrderCreate; err != nil {
		return err
	}
	cp := *order
	r.s.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) CreateLine(_ context.Context, line *entity.OrderLine) error {
	cp := *line
	r.s.orderLines[line.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Lines = r.linesFor(id)
	return &cp, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0)
	for _, o := range r.s.orders {
		if o.UserID == userID {
			cp := *o
			cp.Lines = r.linesFor(o.ID)
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) linesFor(orderID string) []entity.OrderLine {
	var lines []entity.OrderLine
	for _, ol := range r.s.orderLines {
		if ol.OrderID == orderID {
			lines = append(lines, *ol)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines
}

type fakeNotifRepo struct{ s *memStore }

func (r *fakeNotifRepo) Enqueue(_ context.Context, n *entity.Notification) error {
	cp := *n
	r.s.notifications[n.ID] = &cp
	return nil
}

func (r *fakeNotifRepo) Due(_ context.Context, limit int) ([]*entity.Notification, error) {
	out := make([]*entity.Notification, 0)
	for _, n := range r.s.notifications {
		if n.Status == entity.NotificationPending && len(out) < limit {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeNotifRepo) MarkSent(_ context.Context, id string) error {
	r.s.notifications[id].Status = entity.NotificationSent
	return nil
}

func (r *fakeNotifRepo) Reschedule(_ context.Context, id string, attempts int, nextRun time.Time) error {
	n := r.s.notifications[id]
	n.Attempts = attempts
	n.NextRunAt = nextRun
	return nil
}

func (r *fakeNotifRepo) MarkFailed(_ context.Context, id string) error {
	r.s.notifications[id].Status = entity.NotificationFailed
	return nil
}

type fakeTxRunner struct{ s *memStore }

func (t *fakeTxRunner) RunCheckout(ctx context.Context, fn func(repository.CartRepository, repository.OrderRepository, repository.NotificationRepository) error) error {
	snap := t.s.snapshot()
	err := fn(&fakeCartRepo{s: t.s}, &fakeOrderRepo{s: t.s}, &fakeNotifRepo{s: t.s})
	if err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

const userID = "user-1"

func newTestCase(t *testing.T) (*checkout.CheckoutUseCase, *memStore) {
	t.Helper()
	store := newMemStore()
	store.users[userID] = &entity.User{
		ID:    userID,
		Email: "alice@example.com",
		Name:  "Alice",
		Role:  entity.RoleCustomer,
	}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	uc := checkout.NewCheckoutUseCase(
		&fakeTxRunner{s: store},
		&fakeCartRepo{s: store},
		&fakeUserRepo{s: store},
		&fakeOrderRepo{s: store},
		log,
	)
	return uc, store
}

func seedLine(store *memStore, id, productID string, qty int, total string) {
	store.lines[id] = &entity.CartLine{
		ID:          id,
		UserID:      userID,
		ProductID:   productID,
		ProductName: "Product " + productID,
		Quantity:    qty,
		Total:       decimal.RequireFromString(total),
		CreatedAt:   time.Now(),
	}
}

func TestCheckout_CreatesOrderFromCart(t *testing.T) {
	uc, store := newTestCase(t)
	seedLine(store, "l1", "p1", 3, "15.00") // 3 x 5.00
	seedLine(store, "l2", "p2", 2, "10.00") // 2 x 5.00

	result, err := uc.Checkout(context.Background(), userID)

	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.OrderID)

	order := store.orders[result.OrderID]
	require.NotNil(t, order)
	assert.Equal(t, entity.OrderStatusConfirmed, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("25.00")),
		"order total must equal the sum of line totals, got %s", order.TotalAmount)

	repo := &fakeOrderRepo{s: store}
	full, err := repo.GetByID(context.Background(), result.OrderID)
	require.NoError(t, err)
	require.Len(t, full.Lines, 2)
	first := full.Lines[0]
	assert.Equal(t, "p1", first.ProductID)
	assert.Equal(t, "Product p1", first.ProductName)
	assert.Equal(t, 3, first.Quantity)
	assert.True(t, first.UnitPrice.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, first.LineTotal.Equal(decimal.RequireFromString("15.00")))

	assert.Empty(t, store.lines, "checkout must purge the cart")
}

func TestCheckout_EnqueuesConfirmationJob(t *testing.T) {
	uc, store := newTestCase(t)
	seedLine(store, "l1", "p1", 2, "21.00")

	result, err := uc.Checkout(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, store.notifications, 1)
	var job *entity.Notification
	for _, n := range store.notifications {
		job = n
	}
	assert.Equal(t, entity.NotificationPending, job.Status)
	assert.Equal(t, result.OrderID, job.OrderID)
	assert.Equal(t, "alice@example.com", job.Recipient)
	assert.Equal(t, "Alice", job.UserName)

	var summary entity.OrderSummary
	require.NoError(t, json.Unmarshal(job.Payload, &summary))
	assert.Equal(t, result.OrderID, summary.OrderID)
	assert.True(t, summary.TotalAmount.Equal(decimal.RequireFromString("21.00")))
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "Product p1", summary.Items[0].ProductName)
	assert.Equal(t, 2, summary.Items[0].Quantity)
}

func TestCheckout_EmptyCart(t *testing.T) {
	uc, store := newTestCase(t)

	_, err := uc.Checkout(context.Background(), userID)

	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.notifications)
}

func TestCheckout_SecondCheckoutFindsEmptyCart(t *testing.T) {
	uc, store := newTestCase(t)
	seedLine(store, "l1", "p1", 1, "5.00")

	_, err := uc.Checkout(context.Background(), userID)
	require.NoError(t, err)

	_, err = uc.Checkout(context.Background(), userID)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Len(t, store.orders, 1, "a drained cart must not produce a second order")
}

func TestCheckout_UnknownUser(t *testing.T) {
	uc, store := newTestCase(t)
	store.lines["l1"] = &entity.CartLine{
		ID: "l1", UserID: "ghost", ProductID: "p1",
		Quantity: 1, Total: decimal.RequireFromString("5.00"),
	}

	_, err := uc.Checkout(context.Background(), "ghost")

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCheckout_StoreFailureLeavesCartIntact(t *testing.T) {
	uc, store := newTestCase(t)
	seedLine(store, "l1", "p1", 2, "10.00")
	store.failOrderCreate = errors.New("connection reset")

	_, err := uc.Checkout(context.Background(), userID)

	require.Error(t, err)
	assert.Len(t, store.lines, 1, "a failed checkout must leave the cart untouched")
	assert.Empty(t, store.orders)
	assert.Empty(t, store.notifications, "no confirmation job without a committed order")
}

func TestPurchaseHistory_ReturnsOrdersWithLines(t *testing.T) {
	uc, store := newTestCase(t)
	seedLine(store, "l1", "p1", 2, "10.00")

	result, err := uc.Checkout(context.Background(), userID)
	require.NoError(t, err)

	orders, err := uc.PurchaseHistory(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, result.OrderID, orders[0].ID)
	assert.True(t, orders[0].TotalAmount.Equal(decimal.RequireFromString("10.00")))
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "p1", orders[0].Items[0].ProductID)

	// Another user sees nothing.
	other, err := uc.PurchaseHistory(context.Background(), "someone-else")
	require.NoError(t, err)
	assert.Empty(t, other)
}
