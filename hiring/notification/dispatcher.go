package notification

import (
	"context"
	"time"

	"github.com/tobyt50/PPALink-sub000/pkg/logx"
)

const retryDelay = 30 * time.Second

// Dispatcher writes a notification to the durable store, falling back to the
// retry queue when the store is unavailable. It never reports failure to the
// caller: the business transaction that triggered the notification has
// already committed and must not appear failed.
type Dispatcher struct {
	store Store
	queue Queue
}

func NewDispatcher(store Store, queue Queue) *Dispatcher {
	return &Dispatcher{
		store: store,
		queue: queue,
	}
}

// Dispatch appends the notification, queueing it for retry on failure.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) {
	err := d.store.Append(ctx, n)
	if err == nil {
		return
	}
	logx.Warnf("notification append failed for user %s, queueing for retry: %v", n.UserID, err)

	delivery := Delivery{Notification: n, Attempts: 1}
	if err := d.queue.EnqueueDelayed(ctx, delivery, retryDelay); err != nil {
		logx.Errorf("notification %s for user %s lost: retry enqueue failed: %v", n.ID, n.UserID, err)
	}
}
