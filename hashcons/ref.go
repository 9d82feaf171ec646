package hashcons

import (
	"fmt"

	"github.com/Voskan/hashcons/internal/meta"
	"github.com/Voskan/hashcons/internal/refs"
)

// Ref is a strong handle to an interned value of type D. Equality on Ref is
// pointer identity (PtrEq), never structural comparison of the underlying
// data — two Refs from the same Table are PtrEq iff their data is
// structurally equal.
type Ref[D any] struct {
	h refs.Handle[cell[D]]
}

// Deref exposes the interned field data. The returned pointer is valid for
// the lifetime of the Ref and must never be mutated by callers.
func (r Ref[D]) Deref() *D { return &r.h.Deref().data }

// Meta returns the metadata folded once at interning time.
func (r Ref[D]) Meta() meta.Meta { return r.h.Deref().meta }

// HashconsMeta satisfies internal/meta.Computer, letting a Ref contribute
// its own precomputed metadata directly wherever a containing node folds
// it in, an O(fan-out) shortcut instead of recursing into child structure.
func (r Ref[D]) HashconsMeta() meta.Meta { return r.Meta() }

// Clone returns a new strong handle to the same cell.
func (r Ref[D]) Clone() Ref[D] { return Ref[D]{h: r.h.Clone()} }

// PtrEq reports whether both handles observe the same storage cell.
func (r Ref[D]) PtrEq(other Ref[D]) bool { return r.h.PtrEq(other.h) }

// Downgrade produces a non-owning observer of the same cell.
func (r Ref[D]) Downgrade() WeakRef[D] { return WeakRef[D]{w: r.h.Downgrade()} }

// Release drops this strong handle's share of the cell.
func (r Ref[D]) Release() { r.h.Release() }

// IsValid reports whether r wraps a real cell, as opposed to a Ref's zero
// value (which callers might produce accidentally by declaring `var r Ref[D]`
// rather than obtaining one from Table.Hashcons).
func (r Ref[D]) IsValid() bool { return r.h != nil }

// key identifies the underlying cell by pointer value, used by Memoizer to
// cache rewrites per distinct input handle rather than per call.
func (r Ref[D]) key() string { return fmt.Sprintf("%p", r.Deref()) }

// Seq exposes the insertion-order sequence number stamped on the cell the
// first time it was ever interned. It has no bearing on equality or hashing
// (PtrEq and the table's own hash/eq govern those); it exists solely to
// give callers a total, deterministic order over handles — e.g. to
// canonicalize the child order of a commutative n-ary node before interning
// it — without resorting to unsafe pointer-address comparison.
func (r Ref[D]) Seq() uint64 { return r.h.Deref().seq }

// WeakRef is a non-owning observer of an interned cell.
type WeakRef[D any] struct {
	w refs.WeakHandle[cell[D]]
}

// Upgrade attempts to recover a strong Ref, failing iff every strong handle
// to the cell has already been released.
func (w WeakRef[D]) Upgrade() (Ref[D], bool) {
	h, ok := w.w.Upgrade()
	if !ok {
		return Ref[D]{}, false
	}
	return Ref[D]{h: h}, true
}
