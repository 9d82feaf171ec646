package table

import (
	"sort"

	"github.com/Voskan/hashcons/internal/cellpool"
	"github.com/Voskan/hashcons/internal/refs"
)

// Sorted keeps weak entries ordered by hash. Lookup binary-searches for any
// entry with a matching hash, then scans both directions over the
// contiguous run of equal-hash entries (binary search may land anywhere
// inside that run). Insertion keeps the ordering invariant.
type Sorted[D any] struct {
	eq      EqFunc[D]
	factory refs.Factory[D]
	entries []refs.WeakEntry[D]
	pool    *cellpool.SlicePool[refs.WeakEntry[D]]
}

// NewSorted constructs an empty sorted table.
func NewSorted[D any](eq EqFunc[D], factory refs.Factory[D]) Table[D] {
	return &Sorted[D]{eq: eq, factory: factory, pool: cellpool.New[refs.WeakEntry[D]](8)}
}

// search returns the index of the first entry with Hash >= hash (the
// classic lower-bound binary search), which may or may not actually carry
// a matching hash.
func (t *Sorted[D]) search(hash uint64) int {
	return sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].HashCmp(hash) >= 0
	})
}

func (t *Sorted[D]) Get(hash uint64, data D) (refs.Handle[D], bool) {
	idx := t.search(hash)
	return t.scanAround(idx, hash, data)
}

// scanAround walks outward from idx in both directions across the run of
// entries sharing hash, stopping each direction as soon as the hash no
// longer matches.
func (t *Sorted[D]) scanAround(idx int, hash uint64, data D) (refs.Handle[D], bool) {
	h, ok, _ := t.scanAroundDecay(idx, hash, data)
	return h, ok
}

// scanAroundDecay is scanAround plus a report of whether any decayed entry
// for this hash was observed along the way, used to classify a subsequent
// insert as Inserted vs InsertedAfterDecay.
func (t *Sorted[D]) scanAroundDecay(idx int, hash uint64, data D) (refs.Handle[D], bool, bool) {
	sawDecay := false
	for i := idx; i < len(t.entries); i++ {
		h, ok, matched, decayed := t.entries[i].GetExistingNear(hash, data, t.eq)
		if !matched {
			break
		}
		if ok {
			return h, true, sawDecay
		}
		sawDecay = sawDecay || decayed
	}
	for i := idx - 1; i >= 0; i-- {
		h, ok, matched, decayed := t.entries[i].GetExistingNear(hash, data, t.eq)
		if !matched {
			break
		}
		if ok {
			return h, true, sawDecay
		}
		sawDecay = sawDecay || decayed
	}
	var zero refs.Handle[D]
	return zero, false, sawDecay
}

func (t *Sorted[D]) GetOrInsert(hash uint64, data D, onCreate func(*D)) (refs.Handle[D], Outcome) {
	idx := t.search(hash)
	if h, ok, sawDecay := t.scanAroundDecay(idx, hash, data); ok || sawDecay {
		if ok {
			return h, Hit
		}
		// idx is the lower bound, so the run of entries carrying this hash
		// starts there; overwriting a decayed one keeps the ordering intact.
		for i := idx; i < len(t.entries) && t.entries[i].Hash == hash; i++ {
			if up, live := t.entries[i].Weak.Upgrade(); live {
				up.Release()
				continue
			}
			onCreate(&data)
			nh := t.factory.New(data)
			t.entries[i] = refs.NewWeakEntry[D](hash, nh.Downgrade())
			return nh, InsertedAfterDecay
		}
		return t.insertAt(idx, hash, data, onCreate, InsertedAfterDecay)
	}

	return t.insertAt(idx, hash, data, onCreate, Inserted)
}

func (t *Sorted[D]) insertAt(idx int, hash uint64, data D, onCreate func(*D), outcome Outcome) (refs.Handle[D], Outcome) {
	onCreate(&data)
	h := t.factory.New(data)
	entry := refs.NewWeakEntry[D](hash, h.Downgrade())

	if len(t.entries) == cap(t.entries) {
		next := t.pool.Get(nextSliceCap(cap(t.entries)))
		next = append(next, t.entries...)
		old := t.entries
		t.entries = next
		t.pool.Put(old)
	}
	t.entries = append(t.entries, refs.WeakEntry[D]{})
	copy(t.entries[idx+1:], t.entries[idx:])
	t.entries[idx] = entry
	return h, outcome
}
