package table

import "github.com/Voskan/hashcons/internal/refs"

// HashFunc computes the structural hash of a value of type D. It is
// supplied by the façade, which is the only layer that knows how a given
// node type should be hashed.
type HashFunc[D any] func(D) uint64

// Shared is the concurrency-safe counterpart of Table: the façade talks to
// exactly one Shared[D] per declared node type, regardless of how many
// goroutines call Hashcons concurrently.
type Shared[D any] interface {
	Get(data D) (refs.Handle[D], bool)
	GetOrInsert(data D, onCreate func(*D)) (refs.Handle[D], Outcome)
}

// SharedFactory builds a Shared[D] table, given the hash/eq functions and
// reference-handle factory the façade has selected.
type SharedFactory[D any] func(hash HashFunc[D], eq EqFunc[D], refFactory refs.Factory[D]) Shared[D]
