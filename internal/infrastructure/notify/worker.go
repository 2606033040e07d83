package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/EddyKilonzo/shopie/internal/domain/entity"
	"github.com/EddyKilonzo/shopie/internal/domain/repository"
	"github.com/EddyKilonzo/shopie/pkg/config"
	"github.com/EddyKilonzo/shopie/pkg/logger"
)

// Sender delivers one order confirmation. Implemented by the SMTP mailer.
type Sender interface {
	SendOrderConfirmation(to, userName string, summary entity.OrderSummary) error
}

// Worker drains the notification outbox in the background. Delivery is
// best-effort: failures are logged and retried with backoff, and a job is
// marked FAILED once its attempt limit is reached. Nothing here ever reaches
// back into the checkout path.
type Worker struct {
	repo        repository.NotificationRepository
	sender      Sender
	log         *logger.Logger
	tick        time.Duration
	maxAttempts int
	batchSize   int
}

// NewWorker builds the worker from configuration.
func NewWorker(repo repository.NotificationRepository, sender Sender, log *logger.Logger, cfg config.NotifyConfig) *Worker {
	tick := time.Duration(cfg.PollSeconds) * time.Second
	if tick <= 0 {
		tick = 5 * time.Second
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &Worker{
		repo:        repo,
		sender:      sender,
		log:         log,
		tick:        tick,
		maxAttempts: maxAttempts,
		batchSize:   20,
	}
}

// Run polls the outbox until ctx is canceled. Meant to run on its own goroutine.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	w.log.Info().Dur("tick", w.tick).Msg("notification worker started")
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("notification worker stopped")
			return
		case <-ticker.C:
			w.ProcessDue(ctx)
		}
	}
}

// ProcessDue delivers one batch of due jobs. Exported so tests can drive the
// worker without the ticker.
func (w *Worker) ProcessDue(ctx context.Context) {
	jobs, err := w.repo.Due(ctx, w.batchSize)
	if err != nil {
		w.log.Error().Err(err).Msg("fetch due notifications")
		return
	}

	for _, job := range jobs {
		w.deliver(ctx, job)
	}
}

func (w *Worker) deliver(ctx context.Context, job *entity.Notification) {
	var summary entity.OrderSummary
	if err := json.Unmarshal(job.Payload, &summary); err != nil {
		w.log.Error().Err(err).Str("notification_id", job.ID).Msg("bad notification payload")
		if err := w.repo.MarkFailed(ctx, job.ID); err != nil {
			w.log.Error().Err(err).Str("notification_id", job.ID).Msg("mark notification failed")
		}
		return
	}

	if err := w.sender.SendOrderConfirmation(job.Recipient, job.UserName, summary); err != nil {
		attempts := job.Attempts + 1
		if attempts >= w.maxAttempts {
			w.log.Error().Err(err).
				Str("notification_id", job.ID).
				Int("attempts", attempts).
				Msg("order confirmation abandoned")
			if err := w.repo.MarkFailed(ctx, job.ID); err != nil {
				w.log.Error().Err(err).Str("notification_id", job.ID).Msg("mark notification failed")
			}
			return
		}
		nextRun := time.Now().Add(time.Duration(attempts*10) * time.Second)
		w.log.Warn().Err(err).
			Str("notification_id", job.ID).
			Int("attempts", attempts).
			Time("next_run", nextRun).
			Msg("order confirmation delivery failed, rescheduled")
		if err := w.repo.Reschedule(ctx, job.ID, attempts, nextRun); err != nil {
			w.log.Error().Err(err).Str("notification_id", job.ID).Msg("reschedule notification")
		}
		return
	}

	if err := w.repo.MarkSent(ctx, job.ID); err != nil {
		w.log.Error().Err(err).Str("notification_id", job.ID).Msg("mark notification sent")
		return
	}
	w.log.Info().
		Str("notification_id", job.ID).
		Str("order_id", job.OrderID).
		Str("to", job.Recipient).
		Msg("order confirmation sent")
}
