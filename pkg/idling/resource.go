// Package idling tracks outstanding asynchronous work so test harnesses can wait
// until an application is quiet before asserting.
package idling

import (
	"context"
	"fmt"
	"sync"
)

type Resource struct {
	name string

	mu      sync.Mutex
	counter int
	idle    chan struct{}
}

func New(name string) *Resource {
	idle := make(chan struct{})
	close(idle)
	return &Resource{name: name, idle: idle}
}

func (r *Resource) Name() string {
	return r.name
}

// Increment marks one more unit of work as pending.
func (r *Resource) Increment() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.counter == 0 {
		r.idle = make(chan struct{})
	}
	r.counter++
}

// Decrement panics when called more often than Increment.
func (r *Resource) Decrement() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.counter == 0 {
		panic(fmt.Sprintf("idling: %s counter has been corrupted", r.name))
	}
	r.counter--
	if r.counter == 0 {
		close(r.idle)
	}
}

func (r *Resource) IsIdle() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counter == 0
}

func (r *Resource) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counter
}

// WaitIdle blocks until the counter reaches zero or ctx is done.
func (r *Resource) WaitIdle(ctx context.Context) error {
	for {
		r.mu.Lock()
		if r.counter == 0 {
			r.mu.Unlock()
			return nil
		}
		idle := r.idle
		r.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
