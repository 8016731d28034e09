package queue

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message is an outbound notification waiting for delivery.
type Message struct {
	ID         string
	To         string
	Subject    string
	Body       string
	RetryAt    time.Time
	RetryCount int
	MaxRetries int
}

type Queue struct {
	items []*Message
	mu    sync.Mutex
	now   func() time.Time
}

func NewQueue() *Queue {
	return &Queue{
		items: make([]*Message, 0),
		now:   time.Now,
	}
}

// Enqueue schedules msg for immediate delivery unless it already has a
// RetryAt. A missing ID is generated.
func (q *Queue) Enqueue(msg *Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.RetryAt.IsZero() {
		msg.RetryAt = q.now()
	}
	q.items = append(q.items, msg)
}

// Dequeue removes and returns the first message that is due, or nil.
func (q *Queue) Dequeue() *Message {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	for i, msg := range q.items {
		if !msg.RetryAt.After(now) {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return msg
		}
	}
	return nil
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue) GetAll() []*Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	result := make([]*Message, len(q.items))
	copy(result, q.items)
	return result
}
