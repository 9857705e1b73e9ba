package dispose

import (
	"sync"
	"sync/atomic"
)

// Group collects Disposers owned by a single object and releases them
// together. It is a flat list, not a registry: a Group knows nothing about
// the objects behind its disposers.
//
// Disposers run in reverse add order, mirroring defer semantics: the most
// recently acquired resource is released first. A panic in one disposer is
// recovered so the remaining disposers still run.
//
// The zero value is ready to use. Group satisfies Disposable and is safe
// for concurrent use.
type Group struct {
	disposed atomic.Bool

	mu        sync.Mutex
	disposers []Disposer
	drained   bool
}

var _ Disposable = (*Group)(nil)

// Add registers a disposer. If the group is already disposed the disposer
// runs immediately.
func (g *Group) Add(d Disposer) {
	g.mu.Lock()
	if g.drained {
		g.mu.Unlock()
		d()
		return
	}
	g.disposers = append(g.disposers, d)
	g.mu.Unlock()
}

// Len returns the number of registered disposers that have not yet run.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.disposers)
}

// IsDisposed returns true if Dispose has been called.
func (g *Group) IsDisposed() bool {
	return g.disposed.Load()
}

// Dispose runs every registered disposer in reverse add order. Repeated
// or concurrent calls after the first are no-ops.
func (g *Group) Dispose() {
	if g.disposed.Swap(true) {
		// Already disposed
		return
	}

	g.mu.Lock()
	disposers := g.disposers
	g.disposers = nil
	g.drained = true
	g.mu.Unlock()

	for i := len(disposers) - 1; i >= 0; i-- {
		runIsolated(disposers[i])
	}
}

// runIsolated runs d, recovering a panic so one failing cleanup cannot
// abort the rest of the chain.
func runIsolated(d Disposer) {
	defer func() {
		_ = recover()
	}()
	d()
}
