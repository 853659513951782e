package events

import (
	"context"
	"sync"
)

// MemoryBus is an in-process Publisher and Subscriber used when no brokers
// are configured. Events published while the buffer is full block the
// publisher until ctx ends.
type MemoryBus struct {
	ch     chan OrderCreated
	done   chan struct{}
	closed sync.Once
}

func NewMemoryBus(buffer int) *MemoryBus {
	return &MemoryBus{
		ch:   make(chan OrderCreated, buffer),
		done: make(chan struct{}),
	}
}

func (b *MemoryBus) PublishOrderCreated(ctx context.Context, event OrderCreated) error {
	select {
	case <-b.done:
		return ErrClosed
	default:
	}

	select {
	case b.ch <- event:
		return nil
	case <-b.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *MemoryBus) NextOrderCreated(ctx context.Context) (OrderCreated, error) {
	select {
	case event := <-b.ch:
		return event, nil
	case <-b.done:
		return OrderCreated{}, ErrClosed
	case <-ctx.Done():
		return OrderCreated{}, ctx.Err()
	}
}

func (b *MemoryBus) Close() error {
	b.closed.Do(func() { close(b.done) })

	return nil
}
