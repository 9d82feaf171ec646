package refs

// localCell is the storage backing the Local reference variant. The strong
// counter is a plain int64, not an atomic: a table built on LocalHandle
// must never be touched from more than one goroutine at a time.
type localCell[D any] struct {
	data   D
	strong int64
}

// LocalHandle is the thread-local strong reference variant: cheaper than
// AtomicHandle because clone/release skip atomic instructions entirely, at
// the cost of requiring external single-threaded discipline. Intended for
// single-goroutine construction contexts, e.g. a Mutex-shared table used
// from exactly one producer.
type LocalHandle[D any] struct {
	c *localCell[D]
}

// LocalWeak is the weak counterpart of LocalHandle.
type LocalWeak[D any] struct {
	c *localCell[D]
}

// LocalFactory builds LocalHandle-backed cells.
type LocalFactory[D any] struct{}

func (LocalFactory[D]) New(data D) Handle[D] {
	c := &localCell[D]{data: data, strong: 1}
	return LocalHandle[D]{c: c}
}

func (h LocalHandle[D]) Deref() *D { return &h.c.data }

func (h LocalHandle[D]) Clone() Handle[D] {
	h.c.strong++
	return LocalHandle[D]{c: h.c}
}

func (h LocalHandle[D]) PtrEq(other Handle[D]) bool {
	o, ok := other.(LocalHandle[D])
	return ok && o.c == h.c
}

func (h LocalHandle[D]) Downgrade() WeakHandle[D] {
	return LocalWeak[D]{c: h.c}
}

func (h LocalHandle[D]) Release() {
	h.c.strong--
}

func (w LocalWeak[D]) Upgrade() (Handle[D], bool) {
	if w.c.strong <= 0 {
		var zero Handle[D]
		return zero, false
	}
	w.c.strong++
	return LocalHandle[D]{c: w.c}, true
}
