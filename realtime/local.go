// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"context"
	"sync"
)

type localSub struct {
	ch   chan Event
	done <-chan struct{}
}

// LocalBroker fans events out to in-process subscribers.
type LocalBroker struct {
	// Publishers hold the read lock while delivering; unsubscribing takes
	// the write lock before closing a channel.
	mu     sync.RWMutex
	subs   map[*localSub]struct{}
	buffer int
}

func NewLocalBroker(buffer int) *LocalBroker {
	if buffer <= 0 {
		buffer = 64
	}
	return &LocalBroker{
		subs:   make(map[*localSub]struct{}),
		buffer: buffer,
	}
}

// Publish delivers e to every subscriber. It waits while a subscriber's
// buffer is full and returns ctx.Err() if ctx ends first; subscribers that
// have gone away are skipped.
func (b *LocalBroker) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs {
		select {
		case sub.ch <- e:
		case <-sub.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (b *LocalBroker) Subscribe(ctx context.Context) (<-chan Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sub := &localSub{ch: make(chan Event, b.buffer), done: ctx.Done()}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, sub)
		close(sub.ch)
		b.mu.Unlock()
	}()

	return sub.ch, nil
}

// Subscribers returns the number of live subscriptions.
func (b *LocalBroker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
