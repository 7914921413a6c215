package fifoqueue

import (
	"fmt"
	"math"
	"sync"

	"github.com/ef-ds/deque"
)

// CapacityUnlimited defines the largest possible capacity for a FifoQueue.
const CapacityUnlimited = math.MaxInt32

// FifoQueue implements a FIFO queue with max capacity and length observer.
// Elements that exceed the queue's capacity are silently dropped.
type FifoQueue struct {
	mu             sync.RWMutex
	queue          deque.Deque
	maxCapacity    int
	lengthObserver QueueLengthObserver
}

// ConstructorOption can be used to configure the FifoQueue on construction.
type ConstructorOption func(*FifoQueue) error

// QueueLengthObserver is a callback that is invoked with the queue's length
// after each Push and Pop.
type QueueLengthObserver func(int)

// WithLengthObserver attaches a length observer to the queue. The observer
// must be non-blocking and concurrency safe.
func WithLengthObserver(callback QueueLengthObserver) ConstructorOption {
	return func(q *FifoQueue) error {
		if callback == nil {
			return fmt.Errorf("nil is not a valid QueueLengthObserver")
		}
		q.lengthObserver = callback
		return nil
	}
}

// NewFifoQueue is the constructor for FifoQueue.
func NewFifoQueue(maxCapacity int, options ...ConstructorOption) (*FifoQueue, error) {
	if maxCapacity < 1 {
		return nil, fmt.Errorf("capacity for FifoQueue must be positive, got %d", maxCapacity)
	}

	queue := &FifoQueue{
		maxCapacity:    maxCapacity,
		lengthObserver: func(int) {},
	}
	for _, opt := range options {
		err := opt(queue)
		if err != nil {
			return nil, fmt.Errorf("failed to apply constructor option: %w", err)
		}
	}
	return queue, nil
}

// Push appends the given element to the end of the queue. Returns true if the
// element was appended and false if the queue is at capacity.
func (q *FifoQueue) Push(element interface{}) bool {
	q.mu.Lock()
	length := q.queue.Len()
	if length >= q.maxCapacity {
		q.mu.Unlock()
		return false
	}

	q.queue.PushBack(element)
	length++
	q.mu.Unlock()

	q.lengthObserver(length)
	return true
}

// Pop removes and returns the queue's head element. Returns false if the
// queue is empty.
func (q *FifoQueue) Pop() (interface{}, bool) {
	q.mu.Lock()
	event, ok := q.queue.PopFront()
	length := q.queue.Len()
	q.mu.Unlock()

	if !ok {
		return nil, false
	}
	q.lengthObserver(length)
	return event, true
}

// Head peeks at the queue's head element without removing it. Returns false
// if the queue is empty.
func (q *FifoQueue) Head() (interface{}, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.queue.Front()
}

// Len returns the current length of the queue.
func (q *FifoQueue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.queue.Len()
}
