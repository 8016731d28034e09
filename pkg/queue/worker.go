package queue

import (
	"context"
	"log"
	"time"
)

type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Worker delivers due messages. A failed message goes back on the queue
// after Backoff times its attempt count until MaxRetries is spent.
type Worker struct {
	queue    *Queue
	sender   Sender
	interval time.Duration
	backoff  time.Duration
	log      *log.Logger
}

func NewWorker(q *Queue, sender Sender, interval, backoff time.Duration, logger *log.Logger) *Worker {
	return &Worker{queue: q, sender: sender, interval: interval, backoff: backoff, log: logger}
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Drain(ctx)
		}
	}
}

// Drain sends every message currently due and returns how many were delivered.
func (w *Worker) Drain(ctx context.Context) int {
	delivered := 0
	var retry []*Message

	for msg := w.queue.Dequeue(); msg != nil; msg = w.queue.Dequeue() {
		if err := w.sender.Send(ctx, msg); err != nil {
			msg.RetryCount++
			if msg.RetryCount > msg.MaxRetries {
				w.log.Printf("Dropping message %s to %s after %d attempts: %v", msg.ID, msg.To, msg.RetryCount, err)
				continue
			}
			msg.RetryAt = w.queue.now().Add(w.backoff * time.Duration(msg.RetryCount))
			w.log.Printf("Delivery of %s to %s failed (attempt %d/%d): %v", msg.ID, msg.To, msg.RetryCount, msg.MaxRetries+1, err)
			retry = append(retry, msg)
			continue
		}
		delivered++
	}

	for _, msg := range retry {
		w.queue.Enqueue(msg)
	}
	return delivered
}
