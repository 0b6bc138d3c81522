package ripple

import (
	"container/list"
	"sync"
)

// Queue is a thread-safe FIFO of events waiting to be dispatched.
type Queue struct {
	mu   sync.Mutex
	list *list.List
}

// NewQueue creates and returns a new empty Queue.
func NewQueue() *Queue {
	return &Queue{list: list.New()}
}

// Enqueue adds an Event to the end of the queue and returns the new length.
func (q *Queue) Enqueue(event Event) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.list.PushBack(event)
	return q.list.Len()
}

// Requeue puts events back at the front of the queue, keeping their order.
func (q *Queue) Requeue(events []Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := len(events) - 1; i >= 0; i-- {
		q.list.PushFront(events[i])
	}
}

// Dequeue removes and returns the front Event in the queue.
// It returns false if the queue is empty.
func (q *Queue) Dequeue() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.list.Len() == 0 {
		return Event{}, false
	}
	front := q.list.Front()
	q.list.Remove(front)
	return front.Value.(Event), true
}

// Drain removes and returns every queued Event in order.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	events := q.snapshot()
	q.list.Init()
	return events
}

// IsEmpty reports whether the queue has no elements.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}

// Len returns the number of Events currently in the queue.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.list.Len()
}

// ToSlice returns a copy of the queued Events, preserving order.
func (q *Queue) ToSlice() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshot()
}

// LoadFromSlice replaces the queue contents with Events from the provided slice.
func (q *Queue) LoadFromSlice(events []Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.list.Init()
	for _, event := range events {
		q.list.PushBack(event)
	}
}

func (q *Queue) snapshot() []Event {
	events := make([]Event, 0, q.list.Len())
	for e := q.list.Front(); e != nil; e = e.Next() {
		events = append(events, e.Value.(Event))
	}
	return events
}
