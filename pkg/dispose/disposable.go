package dispose

// Disposable is the capability to release the resources an object holds.
//
// Dispose transitions the object to its disposed state. Implementations
// must be idempotent: calling Dispose any number of times after the first
// has no additional effect and never re-runs cleanup logic. Calling Dispose
// on an already disposed object must not panic.
//
// Cleanup may complete synchronously or asynchronously. Implementations
// whose cleanup finishes asynchronously should give callers a way to await
// completion; Base does this with Done.
//
// After disposal the object is expected to reject or no-op further use.
// Enforcement is left to each implementation.
type Disposable interface {
	Dispose()
}

// ChainedDisposable extends Disposable with a single customization point.
//
// A conforming base implementation (Base in this package) performs the
// idempotency check, sets the disposed flag, invokes OnDispose exactly
// once, and then releases any dependent resources registered with it. The
// ordering is fixed: the flag is set before OnDispose runs, and OnDispose
// runs before dependent cleanups.
type ChainedDisposable interface {
	Disposable

	// OnDispose performs the type-specific cleanup. A no-op by default;
	// the base implementation calls it exactly once during Dispose.
	OnDispose()
}
