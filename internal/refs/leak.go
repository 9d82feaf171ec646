package refs

// leakCell never tracks a strong count: once allocated, data lives for the
// process lifetime. Used as a performance baseline to measure the overhead
// refcounting adds to the atomic/local variants.
type leakCell[D any] struct {
	data D
}

// LeakHandle never frees its cell. Downgrade/Upgrade both hand back a live
// duplicate handle unconditionally, since nothing ever decays.
type LeakHandle[D any] struct {
	c *leakCell[D]
}

// LeakWeak is the weak counterpart of LeakHandle; Upgrade always succeeds.
type LeakWeak[D any] struct {
	c *leakCell[D]
}

// LeakFactory builds LeakHandle-backed cells.
type LeakFactory[D any] struct{}

func (LeakFactory[D]) New(data D) Handle[D] {
	return LeakHandle[D]{c: &leakCell[D]{data: data}}
}

func (h LeakHandle[D]) Deref() *D { return &h.c.data }

func (h LeakHandle[D]) Clone() Handle[D] { return h }

func (h LeakHandle[D]) PtrEq(other Handle[D]) bool {
	o, ok := other.(LeakHandle[D])
	return ok && o.c == h.c
}

func (h LeakHandle[D]) Downgrade() WeakHandle[D] { return LeakWeak[D]{c: h.c} }

// Release is a no-op: the leaking variant never frees.
func (h LeakHandle[D]) Release() {}

func (w LeakWeak[D]) Upgrade() (Handle[D], bool) {
	return LeakHandle[D]{c: w.c}, true
}
