// Package hashcons is the per-type interning façade: given a hash and
// equality function for a node's field data, it guarantees that repeated
// construction of observationally-equal values yields the same Ref, folds
// metadata once at insertion time, and layers a memoizable rewrite engine
// on top. Everything below the façade (reference handles, weak entries,
// tables, sharding) lives in internal/refs and internal/table; this package
// is the only one client schema code imports directly.
//
// © 2025 hashcons authors. MIT License.
package hashcons

import "github.com/Voskan/hashcons/internal/meta"

// cell is the storage pair the table actually keys and stores: the user's
// field data plus the metadata folded once, immediately after insertion.
// Equality and hashing only ever look at data; meta is write-once scratch
// space filled in by onCreate.
type cell[D any] struct {
	meta meta.Meta
	data D
	seq  uint64
}
