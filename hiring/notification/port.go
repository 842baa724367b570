package notification

import (
	"context"
	"time"
)

// Store is the durable append-only notification record.
type Store interface {
	// Append persists a notification. At-least-once: duplicates are
	// tolerable, silent loss is not.
	Append(ctx context.Context, n Notification) error
}

// Delivery is a notification on its way to the store, carrying how many
// append attempts already failed.
type Delivery struct {
	Notification Notification `json:"notification"`
	Attempts     int          `json:"attempts"`
}

// Queue holds deliveries whose first append failed, for bounded retry.
type Queue interface {
	// Enqueue adds a delivery to the ready queue
	Enqueue(ctx context.Context, d Delivery) error

	// EnqueueDelayed schedules a delivery for a later retry
	EnqueueDelayed(ctx context.Context, d Delivery, delay time.Duration) error

	// Dequeue gets a delivery from the queue (blocking with timeout);
	// returns nil when none is available
	Dequeue(ctx context.Context, timeout time.Duration) (*Delivery, error)

	// MoveDelayedToReady moves due delayed deliveries to the ready queue
	MoveDelayedToReady(ctx context.Context) (int, error)
}
