package http

import (
	"errors"
	"sync"
)

var (
	errOutboxFull   = errors.New("outbound queue full")
	errOutboxClosed = errors.New("connection closed")
)

// outbox is the bounded queue between a session's send callback and the
// connection's write loop. Pushing never blocks.
type outbox struct {
	mu     sync.Mutex
	closed bool
	frames chan string
}

func newOutbox(size int) *outbox {
	if size <= 0 {
		size = 1
	}
	return &outbox{frames: make(chan string, size)}
}

func (o *outbox) push(data string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return errOutboxClosed
	}
	select {
	case o.frames <- data:
		return nil
	default:
		return errOutboxFull
	}
}

func (o *outbox) close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.closed {
		o.closed = true
		close(o.frames)
	}
}
