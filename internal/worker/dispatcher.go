package worker

import (
	"context"
	"time"

	"parkhub/internal/domain"
	"parkhub/internal/metrics"
	"parkhub/internal/models"

	"github.com/rs/zerolog"
)

const defaultPollTimeout = 2 * time.Second

// NotificationWorker drains the dispatch queue and materializes tasks as
// notification rows. Failed deliveries are retried with backoff and land
// in the dead letter list once the retry budget is spent.
type NotificationWorker struct {
	store       domain.Store
	queue       domain.Queue
	retryPolicy RetryPolicy
	pollTimeout time.Duration
	log         zerolog.Logger
}

// NewNotificationWorker builds a worker with sane defaults. A non-positive
// poll falls back to defaultPollTimeout.
func NewNotificationWorker(store domain.Store, queue domain.Queue, retry RetryPolicy, poll time.Duration, logger *zerolog.Logger) *NotificationWorker {
	if poll <= 0 {
		poll = defaultPollTimeout
	}
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}

	return &NotificationWorker{
		store:       store,
		queue:       queue,
		retryPolicy: retry,
		pollTimeout: poll,
		log:         logger.With().Str("component", "notification_worker").Logger(),
	}
}

// Start launches the main loop; stops when ctx is done.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.log.Info().Msg("notification worker started")
	defer w.log.Info().Msg("notification worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		task, err := w.queue.Dequeue(ctx, w.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.log.Error().Err(err).Msg("dequeue failed")
			w.sleep(ctx, w.pollTimeout)
			continue
		}
		if task == nil {
			continue
		}

		w.process(ctx, task)
	}
}

func (w *NotificationWorker) process(ctx context.Context, task *models.DispatchTask) {
	err := w.deliver(ctx, task)
	if err == nil {
		metrics.IncDispatch("delivered")
		return
	}

	if task.Attempt+1 >= w.retryPolicy.MaxRetries {
		w.log.Error().
			Err(err).
			Int64("user_id", task.UserID).
			Int("attempt", task.Attempt+1).
			Msg("delivery failed, moving to dead letter")
		if dlErr := w.queue.DeadLetter(ctx, task); dlErr != nil {
			w.log.Error().Err(dlErr).Msg("dead letter push failed")
		}
		metrics.IncDispatch("deadletter")
		return
	}

	task.Attempt++
	w.log.Warn().
		Err(err).
		Int64("user_id", task.UserID).
		Int("attempt", task.Attempt).
		Msg("delivery failed, retrying")
	metrics.IncDispatch("retried")

	w.sleep(ctx, w.retryPolicy.NextDelay(task.Attempt))
	if err := w.queue.Enqueue(ctx, task); err != nil {
		w.log.Error().Err(err).Msg("re-enqueue failed")
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, task *models.DispatchTask) error {
	category := task.Category
	if !models.ValidNotifyCategory(category) {
		category = models.NotifyCategoryOther
	}

	return w.store.CreateNotification(ctx, &models.Notification{
		UserID:   task.UserID,
		Message:  task.Message,
		Category: category,
	})
}

func (w *NotificationWorker) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
