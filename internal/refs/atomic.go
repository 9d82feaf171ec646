package refs

import "sync/atomic"

// atomicCell is the shared, heap-allocated storage backing every handle
// issued for one hash-consed value under the Atomic reference variant.
type atomicCell[D any] struct {
	data   D
	strong atomic.Int64
}

// AtomicHandle is the default, cross-goroutine-safe strong reference
// variant: clone and release use atomic increment/decrement, so a table
// built on this variant may be shared freely across producer goroutines
// (it is what backs the Sharded shared table by default).
type AtomicHandle[D any] struct {
	c *atomicCell[D]
}

// AtomicWeak is the weak counterpart of AtomicHandle.
type AtomicWeak[D any] struct {
	c *atomicCell[D]
}

// AtomicFactory builds AtomicHandle-backed cells.
type AtomicFactory[D any] struct{}

func (AtomicFactory[D]) New(data D) Handle[D] {
	c := &atomicCell[D]{data: data}
	c.strong.Store(1)
	return AtomicHandle[D]{c: c}
}

func (h AtomicHandle[D]) Deref() *D { return &h.c.data }

func (h AtomicHandle[D]) Clone() Handle[D] {
	h.c.strong.Add(1)
	return AtomicHandle[D]{c: h.c}
}

func (h AtomicHandle[D]) PtrEq(other Handle[D]) bool {
	o, ok := other.(AtomicHandle[D])
	return ok && o.c == h.c
}

func (h AtomicHandle[D]) Downgrade() WeakHandle[D] {
	return AtomicWeak[D]{c: h.c}
}

func (h AtomicHandle[D]) Release() {
	h.c.strong.Add(-1)
}

func (w AtomicWeak[D]) Upgrade() (Handle[D], bool) {
	for {
		n := w.c.strong.Load()
		if n <= 0 {
			var zero Handle[D]
			return zero, false
		}
		if w.c.strong.CompareAndSwap(n, n+1) {
			return AtomicHandle[D]{c: w.c}, true
		}
	}
}
