package dispose

import (
	"sync"
	"sync/atomic"
)

// Base supplies the disposal bookkeeping for ChainedDisposable types.
// Embed it to get an idempotent Dispose with fixed sequencing: the
// disposed flag is set, the hook installed with SetOnDispose runs exactly
// once, deferred cleanups run in reverse registration order, and finally
// Done is closed.
//
// Go embedding does not dispatch virtually, so overriding the hook means
// installing it with SetOnDispose rather than shadowing the OnDispose
// method:
//
//	type Conn struct {
//	    dispose.Base
//	    sock net.Conn
//	}
//
//	func NewConn(sock net.Conn) *Conn {
//	    c := &Conn{sock: sock}
//	    c.SetOnDispose(func() { c.sock.Close() })
//	    return c
//	}
//
// The zero value is ready to use and satisfies ChainedDisposable with a
// no-op hook. Base is safe for concurrent use; racing Dispose calls
// produce exactly one cleanup execution, and losers of the race can await
// completion via Done.
type Base struct {
	// disposed flips false -> true exactly once and never reverts.
	disposed atomic.Bool

	hookMu sync.Mutex
	hook   Disposer

	// drained is set under deferredMu once Dispose has taken the deferred
	// slice; disposers added after that point run immediately.
	deferredMu sync.Mutex
	deferred   []Disposer
	drained    bool

	doneMu sync.Mutex
	done   chan struct{}
}

var _ ChainedDisposable = (*Base)(nil)

// IsDisposed returns true if Dispose has been called.
func (b *Base) IsDisposed() bool {
	return b.disposed.Load()
}

// SetOnDispose installs the cleanup hook. The hook runs exactly once,
// during the first Dispose; installing a hook after disposal has no
// effect.
func (b *Base) SetOnDispose(hook Disposer) {
	b.hookMu.Lock()
	b.hook = hook
	b.hookMu.Unlock()
}

// OnDispose runs the installed hook, or nothing if no hook is installed.
// Dispose calls it exactly once; it is exported so Base satisfies
// ChainedDisposable.
func (b *Base) OnDispose() {
	b.hookMu.Lock()
	hook := b.hook
	b.hookMu.Unlock()

	if hook != nil {
		hook()
	}
}

// Defer registers a cleanup for a dependent resource. Deferred disposers
// run during Dispose, after the hook, in reverse registration order. If
// the Base is already disposed the disposer runs immediately.
func (b *Base) Defer(d Disposer) {
	b.deferredMu.Lock()
	if b.drained {
		b.deferredMu.Unlock()
		d()
		return
	}
	b.deferred = append(b.deferred, d)
	b.deferredMu.Unlock()
}

// Done returns a channel that is closed once cleanup has fully completed.
// It lets callers await disposal uniformly whether the work behind the
// hook was synchronous or asynchronous.
func (b *Base) Done() <-chan struct{} {
	return b.doneChan()
}

// Dispose runs the hook, then the deferred cleanups in reverse order, then
// closes Done. Repeated or concurrent calls after the first are no-ops and
// never panic.
func (b *Base) Dispose() {
	if b.disposed.Swap(true) {
		// Already disposed
		return
	}

	b.OnDispose()

	b.deferredMu.Lock()
	deferred := b.deferred
	b.deferred = nil
	b.drained = true
	b.deferredMu.Unlock()

	for i := len(deferred) - 1; i >= 0; i-- {
		deferred[i]()
	}

	close(b.doneChan())
}

// doneChan lazily creates the done channel so the zero value works.
func (b *Base) doneChan() chan struct{} {
	b.doneMu.Lock()
	defer b.doneMu.Unlock()
	if b.done == nil {
		b.done = make(chan struct{})
	}
	return b.done
}
