package table

import (
	"github.com/Voskan/hashcons/internal/cellpool"
	"github.com/Voskan/hashcons/internal/refs"
)

// Linear is an unordered sequence of weak entries, probed by linear scan.
// Suitable for small tables and as the innermost fallback tier of
// HashmapFallback.
type Linear[D any] struct {
	eq      EqFunc[D]
	factory refs.Factory[D]
	entries []refs.WeakEntry[D]
	pool    *cellpool.SlicePool[refs.WeakEntry[D]]
}

// NewLinear constructs an empty linear table.
func NewLinear[D any](eq EqFunc[D], factory refs.Factory[D]) Table[D] {
	return &Linear[D]{eq: eq, factory: factory, pool: cellpool.New[refs.WeakEntry[D]](8)}
}

func (t *Linear[D]) Get(hash uint64, data D) (refs.Handle[D], bool) {
	for i := range t.entries {
		if h, ok := t.entries[i].Get(hash, data, t.eq); ok {
			return h, true
		}
	}
	var zero refs.Handle[D]
	return zero, false
}

func (t *Linear[D]) GetOrInsert(hash uint64, data D, onCreate func(*D)) (refs.Handle[D], Outcome) {
	decayedAt := -1
	for i := range t.entries {
		h, ok, decayed := t.entries[i].Probe(hash, data, t.eq)
		if ok {
			return h, Hit
		}
		if decayed && decayedAt < 0 {
			decayedAt = i
		}
	}

	onCreate(&data)
	h := t.factory.New(data)
	entry := refs.NewWeakEntry[D](hash, h.Downgrade())
	if decayedAt >= 0 {
		t.entries[decayedAt] = entry
		return h, InsertedAfterDecay
	}
	t.appendEntry(entry)
	return h, Inserted
}

// appendEntry grows t.entries by one, routing the backing-array swap
// through t.pool whenever the current array is full, instead of letting
// append's own grow policy allocate and discard it.
func (t *Linear[D]) appendEntry(e refs.WeakEntry[D]) {
	if len(t.entries) == cap(t.entries) {
		next := t.pool.Get(nextSliceCap(cap(t.entries)))
		next = append(next, t.entries...)
		old := t.entries
		t.entries = next
		t.pool.Put(old)
	}
	t.entries = append(t.entries, e)
}

func nextSliceCap(c int) int {
	if c == 0 {
		return 8
	}
	return c * 2
}
