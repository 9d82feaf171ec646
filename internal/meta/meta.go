// Package meta implements the folded subtree metadata attached to every
// hash-consed storage cell: a node count, a height, and an OR-accumulated
// flag word, all combined with saturating arithmetic so that pathological
// inputs clamp instead of wrapping.
//
// © 2025 hashcons authors. MIT License.
package meta

// CountType, HeightType and FlagType mirror the fixed-width fields the
// source assigns to metadata: a 32-bit saturating counter, a 16-bit
// saturating height, and a 16-bit OR-accumulated flag word.
type (
	CountType  = uint32
	HeightType = uint16
	FlagType   = uint16
)

// Meta is the per-cell fold computed once at intern time and never mutated
// afterward.
type Meta struct {
	Count  CountType
	Height HeightType
	Flags  FlagType
}

// Zero is the fold identity: an empty subtree contributes nothing.
func Zero() Meta { return Meta{} }

// Increment bumps Count and Height by one node, saturating at the type
// maximum. Flags are left untouched; callers OR in node-specific flags
// separately via AddFlags.
func (m Meta) Increment() Meta {
	m.Count = satAddU32(m.Count, 1)
	m.Height = satAddU16(m.Height, 1)
	return m
}

// AddFlags ORs flag bits into the metadata.
func (m Meta) AddFlags(flag FlagType) Meta {
	m.Flags |= flag
	return m
}

// Fold combines two metadata values: counts saturate-add, heights take the
// max (the tallest child determines subtree height), flags OR together.
func Fold(a, b Meta) Meta {
	return Meta{
		Count:  satAddU32(a.Count, b.Count),
		Height: maxU16(a.Height, b.Height),
		Flags:  a.Flags | b.Flags,
	}
}

// FoldAll reduces a sequence of metadata values to a single fold, starting
// from the identity. Used when computing a node's contribution by folding
// across an ordered sequence of field contributions.
func FoldAll(ms []Meta) Meta {
	acc := Zero()
	for _, m := range ms {
		acc = Fold(acc, m)
	}
	return acc
}

func satAddU32(a, b uint32) uint32 {
	sum := a + b
	if sum < a {
		return ^uint32(0)
	}
	return sum
}

func satAddU16(a, b uint16) uint16 {
	sum := a + b
	if sum < a {
		return ^uint16(0)
	}
	return sum
}

func maxU16(a, b uint16) uint16 {
	if a > b {
		return a
	}
	return b
}

// Computer is implemented by any field type that contributes metadata when
// folded into its owning node: primitives and opaque strings contribute
// Zero, slices/optionals fold their elements, and handles contribute their
// own cell's precomputed metadata directly (the O(fan-out) shortcut that
// keeps metadata computation off the subtree-size critical path).
type Computer interface {
	HashconsMeta() Meta
}

// ComputeSlice folds the metadata contributions of an ordered sequence of
// fields, in order, left to right. Corresponds to Vec<T>'s Sum impl in the
// source.
func ComputeSlice[T Computer](xs []T) Meta {
	acc := Zero()
	for _, x := range xs {
		acc = Fold(acc, x.HashconsMeta())
	}
	return acc
}

// ComputeOption folds the metadata contribution of an optional field,
// represented as a nil-able pointer: nil contributes Zero, present
// contributes the pointee's fold. Corresponds to Option<T>.
func ComputeOption[T Computer](x *T) Meta {
	if x == nil {
		return Zero()
	}
	return (*x).HashconsMeta()
}
