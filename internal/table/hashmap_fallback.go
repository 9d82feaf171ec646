package table

import "github.com/Voskan/hashcons/internal/refs"

// HashmapFallback indexes entries by their raw hash with a single primary
// weak entry per hash in a Go map, and delegates collisions (distinct
// values sharing a hash) to one nested table built by fallback. In the
// overwhelmingly common case of one live value per hash, lookup is a
// single map access plus one upgrade-and-compare, never touching the
// fallback at all.
type HashmapFallback[D any] struct {
	eq       EqFunc[D]
	factory  refs.Factory[D]
	primary  map[uint64]refs.WeakEntry[D]
	fallback Table[D]
}

// NewHashmapFallback constructs a hashmap-with-fallback table. fallback
// builds the nested table absorbing collisions; NewLinear is the natural
// choice since collision runs are expected to stay short.
func NewHashmapFallback[D any](fallback Factory[D]) Factory[D] {
	return func(eq EqFunc[D], refFactory refs.Factory[D]) Table[D] {
		return &HashmapFallback[D]{
			eq:       eq,
			factory:  refFactory,
			primary:  make(map[uint64]refs.WeakEntry[D]),
			fallback: fallback(eq, refFactory),
		}
	}
}

func (t *HashmapFallback[D]) Get(hash uint64, data D) (refs.Handle[D], bool) {
	if entry, ok := t.primary[hash]; ok {
		if h, ok := entry.Get(hash, data, t.eq); ok {
			return h, true
		}
	}
	return t.fallback.Get(hash, data)
}

func (t *HashmapFallback[D]) GetOrInsert(hash uint64, data D, onCreate func(*D)) (refs.Handle[D], Outcome) {
	entry, occupied := t.primary[hash]
	if occupied {
		h, found, decayed := entry.Probe(hash, data, t.eq)
		if found {
			return h, Hit
		}
		if !decayed {
			// Live primary slot, different value: a genuine collision.
			// Delegate entirely to the fallback tier.
			return t.fallback.GetOrInsert(hash, data, onCreate)
		}
		// Slot decayed: fall through to consult the fallback, then
		// reclaim the primary slot if the fallback doesn't have it either.
	}

	if h, ok := t.fallback.Get(hash, data); ok {
		return h, Hit
	}

	onCreate(&data)
	h := t.factory.New(data)
	t.primary[hash] = refs.NewWeakEntry[D](hash, h.Downgrade())
	if occupied {
		return h, InsertedAfterDecay
	}
	return h, Inserted
}
