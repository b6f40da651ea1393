// Package completion provides a one-shot completion handle: a value that is
// pending until resolved with a result or rejected with an error, exactly
// once. Late resolutions are safe no-ops, which lets terminal protocol events
// race without double-reporting.
package completion

import (
	"context"
	"sync"
)

// Handle is a single-assignment completion value. The zero value is not
// usable; construct with New. Handles are safe for concurrent use.
type Handle[T any] struct {
	done chan struct{}

	mu  sync.Mutex
	set bool
	val T
	err error
}

// New returns a pending handle.
func New[T any]() *Handle[T] {
	return &Handle[T]{done: make(chan struct{})}
}

// Resolve completes the handle with a value. It reports whether this call won
// the resolution; a false return means the handle was already settled.
func (h *Handle[T]) Resolve(v T) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.set {
		return false
	}
	h.set = true
	h.val = v
	close(h.done)
	return true
}

// Reject completes the handle with an error. It reports whether this call won
// the resolution.
func (h *Handle[T]) Reject(err error) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.set {
		return false
	}
	h.set = true
	h.err = err
	close(h.done)
	return true
}

// Done returns a channel that is closed once the handle settles.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// Result returns the outcome. ok is false while the handle is still pending.
func (h *Handle[T]) Result() (v T, err error, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.set {
		var zero T
		return zero, nil, false
	}
	return h.val, h.err, true
}

// Await blocks until the handle settles or ctx is done. The handle itself
// carries no timeout; callers bound the wait through ctx.
func (h *Handle[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-h.done:
		v, err, _ := h.Result()
		return v, err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
