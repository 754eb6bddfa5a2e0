// Package task runs delayed callbacks that their owner can abort.
//
// A Handle guarantees that once Cancel reports success the callback will
// never start. Owners that go away (a closing view, a finished command)
// cancel their Group instead of tracking each handle.
package task

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	statePending int32 = iota
	stateRunning
	stateFinished
	stateCancelled
)

// Handle is a scheduled callback
type Handle struct {
	state atomic.Int32
	timer *time.Timer
	done  chan struct{}
	once  sync.Once
}

// After schedules fn to run once after delay
func After(delay time.Duration, fn func()) *Handle {
	h := &Handle{done: make(chan struct{})}
	h.timer = time.AfterFunc(delay, func() {
		defer h.finish()
		if !h.state.CompareAndSwap(statePending, stateRunning) {
			return
		}
		fn()
		h.state.Store(stateFinished)
	})
	return h
}

// Cancel prevents the callback from running. It returns false when the
// callback has already started or the handle was already cancelled.
func (h *Handle) Cancel() bool {
	if h == nil || !h.state.CompareAndSwap(statePending, stateCancelled) {
		return false
	}
	if h.timer.Stop() {
		h.finish()
	}
	return true
}

// Cancelled reports whether Cancel succeeded
func (h *Handle) Cancelled() bool {
	return h != nil && h.state.Load() == stateCancelled
}

// Done is closed once the callback has returned or the handle was cancelled
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) finish() {
	h.once.Do(func() { close(h.done) })
}

// Group owns a set of handles and cancels them together
type Group struct {
	mu      sync.Mutex
	handles []*Handle
	closed  bool
}

// After schedules fn on the group. Scheduling on a cancelled group
// returns an already-cancelled handle.
func (g *Group) After(delay time.Duration, fn func()) *Handle {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		h := &Handle{done: make(chan struct{})}
		h.state.Store(stateCancelled)
		h.finish()
		return h
	}

	h := After(delay, fn)
	g.handles = append(g.handles, h)
	g.compact()
	return h
}

// CancelAll cancels every pending handle and refuses new ones
func (g *Group) CancelAll() {
	g.mu.Lock()
	handles := g.handles
	g.handles = nil
	g.closed = true
	g.mu.Unlock()

	for _, h := range handles {
		h.Cancel()
	}
}

// Pending returns the number of handles that have not yet run
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.compact()
	return len(g.handles)
}

// compact drops handles that can no longer be cancelled
func (g *Group) compact() {
	kept := g.handles[:0]
	for _, h := range g.handles {
		if h.state.Load() == statePending {
			kept = append(kept, h)
		}
	}
	g.handles = kept
}
