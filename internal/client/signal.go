package client

import (
	"sync"

	"github.com/vovakirdan/thirteen/internal/protocol"
)

// Signal is a transport lifecycle notification. Signals for one client are
// delivered in the order they happened.
type Signal interface {
	signal()
}

// Connecting is queued when a dial starts.
type Connecting struct {
	ConnID string
}

func (Connecting) signal() {}

// Opened is queued once the websocket handshake completed.
type Opened struct {
	ConnID string
}

func (Opened) signal() {}

// Message carries one decoded server event.
type Message struct {
	ConnID string
	Event  protocol.Event
}

func (Message) signal() {}

// Closed is queued when a connection ends for any reason, including a
// failed dial. Err is nil for a normal closure.
type Closed struct {
	ConnID string
	Err    error
}

func (Closed) signal() {}

// Failed reports a transport error. It never changes game state.
type Failed struct {
	ConnID string
	Err    error
}

func (Failed) signal() {}

// queue is an unbounded FIFO feeding a channel. It never drops.
type queue struct {
	mu     sync.Mutex
	items  []Signal
	closed bool
	wake   chan struct{}
	out    chan Signal
}

func newQueue() *queue {
	q := &queue{
		wake: make(chan struct{}, 1),
		out:  make(chan Signal),
	}
	go q.run()
	return q
}

func (q *queue) push(s Signal) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items, s)
	q.mu.Unlock()
	q.notify()
}

// close stops accepting signals. Queued ones are still delivered, then out is closed.
func (q *queue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.notify()
}

func (q *queue) notify() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *queue) run() {
	defer close(q.out)
	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			closed := q.closed
			q.mu.Unlock()
			if closed {
				return
			}
			<-q.wake
			continue
		}
		s := q.items[0]
		q.items[0] = nil
		q.items = q.items[1:]
		q.mu.Unlock()

		q.out <- s
	}
}
