package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"parkhub/internal/models"
)

// MemoryQueue is a bounded in-process queue used when Redis is not
// configured or unreachable.
type MemoryQueue struct {
	tasks chan *models.DispatchTask

	mu         sync.Mutex
	deadLetter []*models.DispatchTask
}

func NewMemoryQueue(capacity int) *MemoryQueue {
	if capacity <= 0 {
		capacity = models.DispatchQueueSize
	}
	return &MemoryQueue{
		tasks: make(chan *models.DispatchTask, capacity),
	}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, task *models.DispatchTask) error {
	select {
	case q.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("memory queue is full")
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context, timeout time.Duration) (*models.DispatchTask, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case task := <-q.tasks:
		return task, nil
	case <-timer.C:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *MemoryQueue) DeadLetter(ctx context.Context, task *models.DispatchTask) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.deadLetter = append(q.deadLetter, task)
	return nil
}

func (q *MemoryQueue) Ping(ctx context.Context) error {
	return nil
}

// DeadLetters returns a snapshot of the dead letter list.
func (q *MemoryQueue) DeadLetters() []*models.DispatchTask {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*models.DispatchTask, len(q.deadLetter))
	copy(out, q.deadLetter)
	return out
}
