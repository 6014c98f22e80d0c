package notification

import (
	"context"
	"sync"
	"time"

	"github.com/talentgate/portal/pkg/logx"
)

// Bus is an in-process event bus. Publish is non-blocking: if the buffer is
// full the event is dropped with a warning rather than stalling a lifecycle
// operation. Notification delivery is best-effort by contract.
type Bus struct {
	mu       sync.RWMutex
	handlers []func(Event)
	events   chan Event
	done     chan struct{}
	closeOne sync.Once
}

// NewBus creates a bus with the given buffer size and starts its delivery
// loop.
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 256
	}
	b := &Bus{
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
	go b.run()
	return b
}

// Subscribe registers a handler for all events. Handlers run sequentially on
// the bus goroutine and must not block for long; slow work belongs on the
// queue.
func (b *Bus) Subscribe(handler func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

// Publish enqueues an event for asynchronous handling. Never blocks.
func (b *Bus) Publish(event Event) {
	select {
	case b.events <- event:
	default:
		logx.Warnf("event bus full, dropping %s event", event.Kind())
	}
}

func (b *Bus) run() {
	for {
		select {
		case <-b.done:
			return
		case event := <-b.events:
			b.mu.RLock()
			handlers := b.handlers
			b.mu.RUnlock()
			for _, h := range handlers {
				h(event)
			}
		}
	}
}

// Close stops the delivery loop. Buffered events are discarded.
func (b *Bus) Close() {
	b.closeOne.Do(func() { close(b.done) })
}

// Drain waits until the buffer is empty or the context expires; test helper
// for deterministic assertions on published events.
func (b *Bus) Drain(ctx context.Context) error {
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for {
		if len(b.events) == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
