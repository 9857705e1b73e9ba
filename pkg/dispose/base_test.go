package dispose

import (
	"sync"
	"testing"
	"time"
)

// fileHandle is a test resource built on Base the way embedding types are
// expected to: the hook does the actual cleanup, Base does the bookkeeping.
type fileHandle struct {
	Base
	cleanups int
}

func newFileHandle() *fileHandle {
	f := &fileHandle{}
	f.SetOnDispose(func() {
		f.cleanups++
	})
	return f
}

func TestBaseZeroValue(t *testing.T) {
	var b Base

	if b.IsDisposed() {
		t.Error("zero-value Base should not be disposed")
	}

	b.Dispose()

	if !b.IsDisposed() {
		t.Error("Base should be disposed after Dispose()")
	}

	// No hook installed: disposing again must not panic
	b.Dispose()
}

func TestBaseDisposeScenario(t *testing.T) {
	f := newFileHandle()

	if f.IsDisposed() {
		t.Error("new resource should not be disposed")
	}

	f.Dispose()

	if !f.IsDisposed() {
		t.Error("resource should be disposed")
	}
	if f.cleanups != 1 {
		t.Errorf("cleanups = %d, want 1", f.cleanups)
	}

	f.Dispose()

	if f.cleanups != 1 {
		t.Errorf("cleanups after second Dispose = %d, want 1", f.cleanups)
	}
}

func TestBaseHookRunsOnceAcrossManyCalls(t *testing.T) {
	f := newFileHandle()

	for i := 0; i < 10; i++ {
		f.Dispose()
	}

	if f.cleanups != 1 {
		t.Errorf("cleanups = %d, want 1", f.cleanups)
	}
}

func TestBaseFlagSetBeforeHook(t *testing.T) {
	var b Base

	sawDisposed := false
	b.SetOnDispose(func() {
		sawDisposed = b.IsDisposed()
	})

	b.Dispose()

	if !sawDisposed {
		t.Error("disposed flag should be set before the hook runs")
	}
}

func TestBaseHookBeforeDeferredReverseOrder(t *testing.T) {
	var b Base

	order := []string{}
	b.SetOnDispose(func() {
		order = append(order, "hook")
	})
	b.Defer(func() {
		order = append(order, "first")
	})
	b.Defer(func() {
		order = append(order, "second")
	})

	b.Dispose()

	want := []string{"hook", "second", "first"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestBaseDeferAfterDisposeRunsImmediately(t *testing.T) {
	var b Base
	b.Dispose()

	ran := false
	b.Defer(func() {
		ran = true
	})

	if !ran {
		t.Error("disposer added after disposal should run immediately")
	}
}

func TestBaseSetOnDisposeAfterDispose(t *testing.T) {
	var b Base
	b.Dispose()

	ran := false
	b.SetOnDispose(func() {
		ran = true
	})
	b.Dispose()

	if ran {
		t.Error("hook installed after disposal should never run")
	}
}

func TestBaseDone(t *testing.T) {
	var b Base

	select {
	case <-b.Done():
		t.Fatal("Done should not be closed before Dispose")
	default:
	}

	b.Dispose()

	select {
	case <-b.Done():
	case <-time.After(time.Second):
		t.Fatal("Done should be closed after Dispose")
	}
}

func TestBaseDoneAwaitsAsyncCleanup(t *testing.T) {
	var b Base

	finished := make(chan struct{})
	b.SetOnDispose(func() {
		// Hand off and wait, so disposal completes asynchronously from the
		// hook body's point of view.
		done := make(chan struct{})
		go func() {
			close(done)
		}()
		<-done
		close(finished)
	})

	go b.Dispose()

	select {
	case <-b.Done():
	case <-time.After(time.Second):
		t.Fatal("Done should close once async cleanup completes")
	}

	select {
	case <-finished:
	default:
		t.Fatal("Done closed before the hook finished")
	}
}

func TestBaseConcurrentDispose(t *testing.T) {
	var b Base

	var mu sync.Mutex
	cleanups := 0
	b.SetOnDispose(func() {
		mu.Lock()
		cleanups++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Dispose()
			<-b.Done()
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if cleanups != 1 {
		t.Errorf("cleanups = %d, want 1 under concurrent Dispose", cleanups)
	}
}

func TestChainedDisposableHookCount(t *testing.T) {
	f := newFileHandle()

	// Exercise through the interface to match how frameworks hold it
	var cd ChainedDisposable = f
	cd.Dispose()
	cd.Dispose()

	if f.cleanups != 1 {
		t.Errorf("OnDispose invocations = %d, want 1", f.cleanups)
	}
}
