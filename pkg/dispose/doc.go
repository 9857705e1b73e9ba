// Package dispose defines shared contracts for releasing resources held by
// an object: a Disposable capability, a ChainedDisposable refinement with a
// cleanup hook, and a Disposer function type, together with the Base
// implementation that supplies the idempotency bookkeeping.
//
// # Core Types
//
// Disposable is the single-operation cleanup capability:
//
//	var d Disposable = openSomething()
//	d.Dispose() // idempotent: further calls are no-ops
//
// Disposer is a zero-argument cleanup function, the lightweight alternative
// to implementing Disposable for a single cleanup action:
//
//	var flush Disposer = func() { buf.Flush() }
//	flush.Dispose() // Disposer satisfies Disposable
//
// ChainedDisposable splits disposal into fixed bookkeeping and an
// overridable hook. Base supplies the bookkeeping; embedding types install
// the hook:
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
// Group releases a set of disposers in reverse add order:
//
//	var g dispose.Group
//	g.Add(func() { f.Close() })
//	g.Add(func() { tmp.Remove() })
//	defer g.Dispose()
//
// # Sequencing
//
// Base fixes the disposal order: the disposed flag is set first, then the
// hook runs exactly once, then deferred cleanups run in reverse
// registration order, then Done is closed. Concurrent or repeated Dispose
// calls observe exactly one cleanup execution.
//
// # Thread Safety
//
// Base and Group are safe for concurrent use. A bare Disposer imposes
// nothing; callers that share one across goroutines synchronize themselves.
package dispose
