package dispose

// Disposer is a zero-argument cleanup function. It is a lightweight
// substitute for implementing Disposable when a single cleanup action is
// all that is needed, such as registering one callback with Base.Defer or
// Group.Add.
//
// Invoking a Disposer returns once its cleanup has completed, whether the
// work ran inline or was handed off and waited on internally.
type Disposer func()

// Dispose calls d. It allows a Disposer to be used wherever a Disposable
// is expected, following the same pattern as net/http.HandlerFunc.
func (d Disposer) Dispose() {
	d()
}

// Noop is the Disposer that does nothing.
var Noop = Disposer(func() {})
