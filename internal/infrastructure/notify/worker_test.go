package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EddyKilonzo/shopie/internal/domain/entity"
	"github.com/EddyKilonzo/shopie/internal/infrastructure/notify"
	"github.com/EddyKilonzo/shopie/pkg/config"
	"github.com/EddyKilonzo/shopie/pkg/logger"
)

type fakeNotifRepo struct {
	jobs map[string]*entity.Notification
}

func newFakeNotifRepo() *fakeNotifRepo {
	return &fakeNotifRepo{jobs: make(map[string]*entity.Notification)}
}

func (r *fakeNotifRepo) Enqueue(_ context.Context, n *entity.Notification) error {
	cp := *n
	r.jobs[n.ID] = &cp
	return nil
}

func (r *fakeNotifRepo) Due(_ context.Context, limit int) ([]*entity.Notification, error) {
	now := time.Now()
	out := make([]*entity.Notification, 0)
	for _, n := range r.jobs {
		if n.Status == entity.NotificationPending && !n.NextRunAt.After(now) && len(out) < limit {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeNotifRepo) MarkSent(_ context.Context, id string) error {
	r.jobs[id].Status = entity.NotificationSent
	return nil
}

func (r *fakeNotifRepo) Reschedule(_ context.Context, id string, attempts int, nextRun time.Time) error {
	n := r.jobs[id]
	n.Attempts = attempts
	n.NextRunAt = nextRun
	return nil
}

func (r *fakeNotifRepo) MarkFailed(_ context.Context, id string) error {
	r.jobs[id].Status = entity.NotificationFailed
	return nil
}

// fakeSender records deliveries and fails the first failFirst calls.
type fakeSender struct {
	calls     int
	failFirst int
	lastTo    string
}

func (s *fakeSender) SendOrderConfirmation(to, _ string, _ entity.OrderSummary) error {
	s.calls++
	s.lastTo = to
	if s.calls <= s.failFirst {
		return errors.New("smtp timeout")
	}
	return nil
}

func newWorker(repo *fakeNotifRepo, sender *fakeSender, maxAttempts int) *notify.Worker {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return notify.NewWorker(repo, sender, log, config.NotifyConfig{PollSeconds: 1, MaxAttempts: maxAttempts})
}

func pendingJob(t *testing.T, repo *fakeNotifRepo, id string) *entity.Notification {
	t.Helper()
	payload, err := json.Marshal(entity.OrderSummary{
		OrderID:     "order-1",
		TotalAmount: decimal.RequireFromString("25.00"),
		Items: []entity.OrderSummaryItem{
			{ProductName: "Product p1", Quantity: 2, LineTotal: decimal.RequireFromString("25.00")},
		},
	})
	require.NoError(t, err)
	job := &entity.Notification{
		ID:        id,
		OrderID:   "order-1",
		Recipient: "alice@example.com",
		UserName:  "Alice",
		Payload:   payload,
		Status:    entity.NotificationPending,
		NextRunAt: time.Now().Add(-time.Second),
	}
	repo.jobs[id] = job
	return job
}

func TestProcessDue_DeliversAndMarksSent(t *testing.T) {
	repo := newFakeNotifRepo()
	sender := &fakeSender{}
	pendingJob(t, repo, "n1")

	newWorker(repo, sender, 5).ProcessDue(context.Background())

	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "alice@example.com", sender.lastTo)
	assert.Equal(t, entity.NotificationSent, repo.jobs["n1"].Status)
}

func TestProcessDue_FailureReschedulesWithBackoff(t *testing.T) {
	repo := newFakeNotifRepo()
	sender := &fakeSender{failFirst: 1}
	pendingJob(t, repo, "n1")

	before := time.Now()
	newWorker(repo, sender, 5).ProcessDue(context.Background())

	job := repo.jobs["n1"]
	assert.Equal(t, entity.NotificationPending, job.Status, "a retryable failure keeps the job pending")
	assert.Equal(t, 1, job.Attempts)
	assert.True(t, job.NextRunAt.After(before), "the retry must be pushed into the future")

	// Not due yet, so the next pass skips it.
	newWorker(repo, sender, 5).ProcessDue(context.Background())
	assert.Equal(t, 1, sender.calls)
}

func TestProcessDue_ExhaustedAttemptsMarkFailed(t *testing.T) {
	repo := newFakeNotifRepo()
	sender := &fakeSender{failFirst: 100}
	job := pendingJob(t, repo, "n1")
	job.Attempts = 2 // next failure is attempt 3 of 3

	newWorker(repo, sender, 3).ProcessDue(context.Background())

	assert.Equal(t, entity.NotificationFailed, repo.jobs["n1"].Status)
	assert.Equal(t, 1, sender.calls)
}

func TestProcessDue_BadPayloadFailsImmediately(t *testing.T) {
	repo := newFakeNotifRepo()
	sender := &fakeSender{}
	job := pendingJob(t, repo, "n1")
	job.Payload = []byte("{not json")

	newWorker(repo, sender, 5).ProcessDue(context.Background())

	assert.Equal(t, entity.NotificationFailed, repo.jobs["n1"].Status)
	assert.Equal(t, 0, sender.calls, "an undecodable payload never reaches the sender")
}

func TestProcessDue_DeliversEachDueJob(t *testing.T) {
	repo := newFakeNotifRepo()
	sender := &fakeSender{}
	pendingJob(t, repo, "n1")
	pendingJob(t, repo, "n2")
	pendingJob(t, repo, "n3")

	newWorker(repo, sender, 5).ProcessDue(context.Background())

	assert.Equal(t, 3, sender.calls)
	for _, id := range []string{"n1", "n2", "n3"} {
		assert.Equal(t, entity.NotificationSent, repo.jobs[id].Status)
	}
}
