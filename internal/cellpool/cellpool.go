// Package cellpool recycles backing arrays for the entry slices
// internal/table's Linear and Sorted variants grow by repeated
// single-element appends. It is a sync.Pool-based allocator that works on
// any stock toolchain: no experimental build tag, no bulk free, just "hand
// back a spent backing array instead of letting the collector take it, and
// pull one from the pool instead of allocating fresh on the next grow".
//
// © 2025 hashcons authors. MIT License.
package cellpool

import "sync"

// SlicePool recycles []T backing arrays of a given element type.
type SlicePool[T any] struct {
	pool sync.Pool
}

// New constructs a SlicePool whose freshly allocated backing arrays start
// at initialCap.
func New[T any](initialCap int) *SlicePool[T] {
	if initialCap < 1 {
		initialCap = 1
	}
	return &SlicePool[T]{
		pool: sync.Pool{
			New: func() any {
				s := make([]T, 0, initialCap)
				return &s
			},
		},
	}
}

// Get returns a zero-length slice with at least minCap capacity, reused
// from a prior Put when one large enough is available.
func (p *SlicePool[T]) Get(minCap int) []T {
	s := *(p.pool.Get().(*[]T))
	if cap(s) < minCap {
		return make([]T, 0, minCap)
	}
	return s[:0]
}

// Put returns s's backing array to the pool. Callers must not read or
// write s (or any slice sharing its backing array) afterward.
func (p *SlicePool[T]) Put(s []T) {
	if cap(s) == 0 {
		return
	}
	s = s[:0]
	p.pool.Put(&s)
}
