// Package eventbus provides an in-memory, asynchronous event bus.
// Events are dispatched through a buffered channel and processed by a worker pool.
package eventbus

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultWorkers    = 2
	defaultBufferSize = 256
)

// EventBus is the interface for publishing events and managing subscribers.
type EventBus interface {
	// Publish enqueues an event. It never blocks: when the buffer is full the
	// event is dropped and counted.
	Publish(eventType string, payload map[string]string)

	// Subscribe registers a listener called for every published event.
	Subscribe(listener Listener)

	// Dropped reports how many events were discarded because the buffer was full.
	Dropped() uint64

	// Close stops accepting new events and waits for pending ones to be processed.
	Close()
}

type inMemoryBus struct {
	ch        chan Event
	listeners []Listener
	mu        sync.RWMutex
	wg        sync.WaitGroup
	closeOnce sync.Once
	closed    atomic.Bool
	dropped   atomic.Uint64
	logger    *slog.Logger
}

// New creates an in-memory EventBus with the given number of worker goroutines.
// If workers is <= 0, defaultWorkers is used. A nil logger discards output.
func New(workers int, logger *slog.Logger) EventBus {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	b := &inMemoryBus{
		ch:     make(chan Event, defaultBufferSize),
		logger: logger,
	}
	for i := 0; i < workers; i++ {
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			for e := range b.ch {
				b.dispatch(e)
			}
		}()
	}
	return b
}

// dispatch calls every listener, recovering from panics so one bad
// listener cannot take down a worker.
func (b *inMemoryBus) dispatch(e Event) {
	b.mu.RLock()
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	for _, l := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("event listener panicked", "event", e.Type, "panic", r)
				}
			}()
			l(e)
		}()
	}
}

func (b *inMemoryBus) Publish(eventType string, payload map[string]string) {
	if b.closed.Load() {
		return
	}
	e := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}

	defer func() {
		// Close raced with this send.
		_ = recover()
	}()

	select {
	case b.ch <- e:
	default:
		b.dropped.Add(1)
		b.logger.Warn("event bus full, dropping event", "event", eventType)
	}
}

func (b *inMemoryBus) Subscribe(listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, listener)
}

func (b *inMemoryBus) Dropped() uint64 {
	return b.dropped.Load()
}

// Close is safe to call more than once.
func (b *inMemoryBus) Close() {
	b.closeOnce.Do(func() {
		b.closed.Store(true)
		close(b.ch)
		b.wg.Wait()
	})
}
