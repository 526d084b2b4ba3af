package queue

import (
	"context"
	"sync/atomic"
	"time"

	"parkhub/internal/domain"
	"parkhub/internal/models"

	"github.com/rs/zerolog"
)

// FailoverQueue routes tasks to the primary queue and falls back to a
// local one when the primary is down. Recovery is retried once a minute.
type FailoverQueue struct {
	primary  domain.Queue
	fallback domain.Queue
	logger   *zerolog.Logger

	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverQueue(primary, fallback domain.Queue, logger *zerolog.Logger) *FailoverQueue {
	return &FailoverQueue{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (q *FailoverQueue) markDown(err error) {
	q.logger.Error().Err(err).Msg("Primary queue failed, falling back to memory")
	q.isDown.Store(true)
	q.lastCheck.Store(time.Now().UnixNano())
}

func (q *FailoverQueue) primaryUsable(ctx context.Context) bool {
	if !q.isDown.Load() {
		return true
	}
	last := time.Unix(0, q.lastCheck.Load())
	if time.Since(last) < time.Minute {
		return false
	}
	q.lastCheck.Store(time.Now().UnixNano())
	if err := q.primary.Ping(ctx); err != nil {
		return false
	}
	q.isDown.Store(false)
	return true
}

func (q *FailoverQueue) Enqueue(ctx context.Context, task *models.DispatchTask) error {
	if q.primaryUsable(ctx) {
		err := q.primary.Enqueue(ctx, task)
		if err == nil {
			return nil
		}
		q.markDown(err)
	}

	return q.fallback.Enqueue(ctx, task)
}

func (q *FailoverQueue) Dequeue(ctx context.Context, timeout time.Duration) (*models.DispatchTask, error) {
	if q.primaryUsable(ctx) {
		task, err := q.primary.Dequeue(ctx, timeout)
		if err == nil {
			if task != nil {
				return task, nil
			}
			// Primary was empty; drain anything stranded locally.
			return q.fallback.Dequeue(ctx, time.Millisecond)
		}
		if ctx.Err() != nil {
			return nil, err
		}
		q.markDown(err)
	}

	return q.fallback.Dequeue(ctx, timeout)
}

func (q *FailoverQueue) DeadLetter(ctx context.Context, task *models.DispatchTask) error {
	if q.primaryUsable(ctx) {
		err := q.primary.DeadLetter(ctx, task)
		if err == nil {
			return nil
		}
		q.markDown(err)
	}

	return q.fallback.DeadLetter(ctx, task)
}

func (q *FailoverQueue) Ping(ctx context.Context) error {
	if err := q.primary.Ping(ctx); err != nil {
		return q.fallback.Ping(ctx)
	}
	return nil
}
