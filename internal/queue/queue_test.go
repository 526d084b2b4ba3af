package queue

import (
	"context"
	"io"
	"testing"
	"time"

	"parkhub/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisQueue(t *testing.T) (*RedisQueue, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisQueue(client, "notify:queue", "notify:deadletter"), mr
}

func testTask(userID int64, message string) *models.DispatchTask {
	return &models.DispatchTask{
		UserID:     userID,
		Message:    message,
		Category:   models.NotifyCategoryReservation,
		EnqueuedAt: time.Now().UTC(),
	}
}

func TestRedisQueueRoundTrip(t *testing.T) {
	q, _ := newRedisQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, testTask(1, "first")))
	require.NoError(t, q.Enqueue(ctx, testTask(2, "second")))

	task, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, int64(1), task.UserID)
	assert.Equal(t, "first", task.Message)

	task, err = q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, int64(2), task.UserID)
}

func TestRedisQueueEmptyReturnsNil(t *testing.T) {
	q, _ := newRedisQueue(t)

	task, err := q.Dequeue(context.Background(), 50*time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestRedisQueueDeadLetter(t *testing.T) {
	q, mr := newRedisQueue(t)
	ctx := context.Background()

	failed := testTask(9, "undeliverable")
	failed.Attempt = 5
	require.NoError(t, q.DeadLetter(ctx, failed))

	assert.Equal(t, 1, len(mr.Keys()))
	vals, err := mr.List("notify:deadletter")
	require.NoError(t, err)
	assert.Len(t, vals, 1)
}

func TestRedisQueuePing(t *testing.T) {
	q, mr := newRedisQueue(t)
	require.NoError(t, q.Ping(context.Background()))

	mr.Close()
	assert.Error(t, q.Ping(context.Background()))
}

func TestMemoryQueueRoundTrip(t *testing.T) {
	q := NewMemoryQueue(4)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, testTask(1, "hello")))

	task, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "hello", task.Message)

	task, err = q.Dequeue(ctx, 20*time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestMemoryQueueFull(t *testing.T) {
	q := NewMemoryQueue(1)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, testTask(1, "a")))
	assert.Error(t, q.Enqueue(ctx, testTask(2, "b")))
}

func TestMemoryQueueDeadLetters(t *testing.T) {
	q := NewMemoryQueue(1)
	require.NoError(t, q.DeadLetter(context.Background(), testTask(3, "x")))
	require.Len(t, q.DeadLetters(), 1)
	assert.Equal(t, int64(3), q.DeadLetters()[0].UserID)
}

func TestFailoverQueueFallsBack(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	primary := NewRedisQueue(client, "notify:queue", "notify:deadletter")
	fallback := NewMemoryQueue(8)
	logger := zerolog.New(io.Discard)
	q := NewFailoverQueue(primary, fallback, &logger)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, testTask(1, "via redis")))
	task, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "via redis", task.Message)

	mr.Close()

	require.NoError(t, q.Enqueue(ctx, testTask(2, "via memory")))
	task, err = q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "via memory", task.Message)
}
