package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"parkhub/internal/config"
	"parkhub/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisQueue keeps dispatch tasks in a Redis list. Enqueue pushes to the
// head, Dequeue blocks on the tail, so tasks leave in arrival order.
type RedisQueue struct {
	client        *redis.Client
	queueKey      string
	deadLetterKey string
}

// NewRedisClient creates a Redis client from configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	return redis.NewClient(options)
}

func NewRedisQueue(client *redis.Client, queueKey, deadLetterKey string) *RedisQueue {
	return &RedisQueue{
		client:        client,
		queueKey:      queueKey,
		deadLetterKey: deadLetterKey,
	}
}

func (q *RedisQueue) Enqueue(ctx context.Context, task *models.DispatchTask) error {
	if q.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	if err := q.client.LPush(ctx, q.queueKey, data).Err(); err != nil {
		return fmt.Errorf("failed to push task to redis: %w", err)
	}

	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*models.DispatchTask, error) {
	if q.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	res, err := q.client.BRPop(ctx, timeout, q.queueKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pop task from redis: %w", err)
	}

	// BRPop returns [key, value].
	var task models.DispatchTask
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", err)
	}

	return &task, nil
}

func (q *RedisQueue) DeadLetter(ctx context.Context, task *models.DispatchTask) error {
	if q.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	if err := q.client.LPush(ctx, q.deadLetterKey, data).Err(); err != nil {
		return fmt.Errorf("failed to push task to dead letter list: %w", err)
	}

	return nil
}

func (q *RedisQueue) Ping(ctx context.Context) error {
	if q.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := q.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// Close closes the underlying Redis connection.
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
