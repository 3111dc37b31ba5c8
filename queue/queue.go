package queue

import (
	"sync"
)

// MessageQueue is an unbounded FIFO queue that is safe for concurrent use.
// Receivers block until a message is available.
type MessageQueue[T any] struct {
	mutex    sync.Mutex
	nonEmpty *sync.Cond
	messages []T
}

func NewMessageQueue[T any]() *MessageQueue[T] {
	q := &MessageQueue[T]{}
	q.nonEmpty = sync.NewCond(&q.mutex)
	return q
}

// Send appends message to the queue and wakes up one waiting receiver.
func (q *MessageQueue[T]) Send(message T) {
	q.mutex.Lock()
	q.messages = append(q.messages, message)
	q.mutex.Unlock()
	q.nonEmpty.Signal()
}

// WaitForMessage removes and returns the oldest message, blocking while the queue is empty.
func (q *MessageQueue[T]) WaitForMessage() T {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	for len(q.messages) == 0 {
		q.nonEmpty.Wait()
	}

	var zero T
	message := q.messages[0]
	q.messages[0] = zero
	q.messages = q.messages[1:]
	if len(q.messages) == 0 {
		q.messages = nil
	}
	return message
}

// Clear discards all queued messages and returns how many there were.
func (q *MessageQueue[T]) Clear() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	n := len(q.messages)
	q.messages = nil
	return n
}

func (q *MessageQueue[T]) Size() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return len(q.messages)
}

func (q *MessageQueue[T]) Empty() bool {
	return q.Size() == 0
}
