package notificationinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/tobyt50/PPALink-sub000/hiring/notification"
)

// RedisQueue implements notification.Queue using Redis
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisQueue creates a new Redis-based retry queue
func NewRedisQueue(client *redis.Client, queueName string) *RedisQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
	}
}

// Enqueue adds a delivery to the ready queue
func (q *RedisQueue) Enqueue(ctx context.Context, d notification.Delivery) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal delivery %s: %w", d.Notification.ID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue delivery %s: %w", d.Notification.ID, err)
	}

	return nil
}

// EnqueueDelayed schedules a delivery for a later retry
func (q *RedisQueue) EnqueueDelayed(ctx context.Context, d notification.Delivery, delay time.Duration) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal delayed delivery %s: %w", d.Notification.ID, err)
	}

	score := float64(time.Now().Add(delay).Unix())
	if err := q.client.ZAdd(ctx, q.delayedQueue(), &redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed delivery %s: %w", d.Notification.ID, err)
	}

	return nil
}

// Dequeue gets a delivery from the queue (blocking with timeout)
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*notification.Delivery, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		// redis.Nil is returned when the timeout expires
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue delivery: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	var d notification.Delivery
	if err := json.Unmarshal([]byte(result[1]), &d); err != nil {
		return nil, fmt.Errorf("unmarshal delivery: %w", err)
	}

	return &d, nil
}

// MoveDelayedToReady moves due delayed deliveries to the ready queue
func (q *RedisQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	now := float64(time.Now().Unix())

	due, err := q.client.ZRangeByScore(ctx, q.delayedQueue(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed deliveries: %w", err)
	}

	if len(due) == 0 {
		return 0, nil
	}

	// Pipeline so a delivery never exists in both queues
	pipe := q.client.Pipeline()
	for _, d := range due {
		pipe.LPush(ctx, q.queueName, d)
		pipe.ZRem(ctx, q.delayedQueue(), d)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed deliveries to ready: %w", err)
	}

	return len(due), nil
}

func (q *RedisQueue) delayedQueue() string {
	return q.queueName + ":delayed"
}
