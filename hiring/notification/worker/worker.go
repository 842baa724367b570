package worker

import (
	"context"
	"time"

	"github.com/tobyt50/PPALink-sub000/hiring/notification"
	"github.com/tobyt50/PPALink-sub000/pkg/logx"
)

const (
	maxAttempts         = 5
	retryBackoff        = 30 * time.Second
	moverInterval       = 30 * time.Second
	dequeueErrorBackoff = time.Second
)

// NotificationWorker drains the retry queue and re-attempts the durable
// append a bounded number of times. Deliveries that exhaust their attempts
// are logged and dropped.
type NotificationWorker struct {
	store   notification.Store
	queue   notification.Queue
	workers int
}

func NewNotificationWorker(store notification.Store, queue notification.Queue, workers int) *NotificationWorker {
	return &NotificationWorker{
		store:   store,
		queue:   queue,
		workers: workers,
	}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d notification workers", w.workers)

	// Start delayed delivery mover
	go w.moveDelayedDeliveries(ctx)

	// Start worker pool
	for i := 0; i < w.workers; i++ {
		go w.processDeliveries(ctx, i)
	}
}

func (w *NotificationWorker) processDeliveries(ctx context.Context, workerID int) {
	logx.Infof("Notification worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Notification worker %d stopping", workerID)
			return
		default:
			// Dequeue with 5 second timeout
			delivery, err := w.queue.Dequeue(ctx, 5*time.Second)
			if err != nil {
				logx.Errorf("Notification worker %d dequeue error: %v", workerID, err)
				// A dead Redis fails fast, not after the blocking timeout;
				// back off instead of spinning on the error.
				w.pause(ctx, dequeueErrorBackoff)
				continue
			}

			// Queue timeout, nothing to deliver
			if delivery == nil {
				continue
			}

			w.attempt(ctx, workerID, *delivery)
		}
	}
}

func (w *NotificationWorker) attempt(ctx context.Context, workerID int, d notification.Delivery) {
	err := w.store.Append(ctx, d.Notification)
	if err == nil {
		logx.Infof("Notification worker %d delivered %s after %d failed attempts",
			workerID, d.Notification.ID, d.Attempts)
		return
	}

	d.Attempts++
	if d.Attempts >= maxAttempts {
		logx.Errorf("Notification %s for user %s dropped after %d attempts: %v",
			d.Notification.ID, d.Notification.UserID, d.Attempts, err)
		return
	}

	if err := w.queue.EnqueueDelayed(ctx, d, retryBackoff); err != nil {
		logx.Errorf("Notification worker %d re-enqueue failed for %s: %v",
			workerID, d.Notification.ID, err)
	}
}

func (w *NotificationWorker) pause(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (w *NotificationWorker) moveDelayedDeliveries(ctx context.Context) {
	ticker := time.NewTicker(moverInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed deliveries: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed deliveries to ready queue", count)
			}
		}
	}
}
