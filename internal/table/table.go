// Package table implements the single-threaded, content-addressed storage
// tables that back hash-consing (linear scan, sorted binary search, and a
// hashmap-with-fallback hybrid), plus the concurrent sharded and
// single-mutex wrappers that make them safe for producer goroutines.
//
// Every table here is generic purely over the data type D; hashing and
// structural equality are supplied as plain function values rather than
// methods on D, so the same table implementations serve any node type the
// façade in package hashcons declares, without imposing a method-set
// contract at this layer.
//
// © 2025 hashcons authors. MIT License.
package table

import "github.com/Voskan/hashcons/internal/refs"

// EqFunc reports structural equality between two values of type D.
type EqFunc[D any] func(a, b D) bool

// Outcome classifies what GetOrInsert actually did, distinguishing an
// ordinary fresh insert from one that reclaimed a decayed weak entry's
// slot — the two are observably different for metrics even though both
// return a brand new cell.
type Outcome int

const (
	// Hit means an existing live cell already satisfied the probe.
	Hit Outcome = iota
	// Inserted means a fresh cell was added without finding a decayed entry
	// for this hash to reclaim (live entries with the same hash but
	// different data may exist).
	Inserted
	// InsertedAfterDecay means an entry for this hash existed but its
	// weak handle had already decayed; its slot was reclaimed.
	InsertedAfterDecay
)

// Table is a single-threaded, content-addressed store mapping (hash, data)
// to a strong handle. Implementations never mutate on Get.
type Table[D any] interface {
	// Get performs a structural lookup without side effects.
	Get(hash uint64, data D) (refs.Handle[D], bool)

	// GetOrInsert returns an existing live handle equal to data, or
	// allocates a fresh cell: onCreate is invoked to let the caller
	// finalize the value (typically writing metadata) before the cell is
	// built and the new handle is returned.
	GetOrInsert(hash uint64, data D, onCreate func(*D)) (refs.Handle[D], Outcome)
}

// Factory builds a fresh Table instance, given the equality function and
// reference-handle factory the owning façade has selected.
type Factory[D any] func(eq EqFunc[D], refFactory refs.Factory[D]) Table[D]
