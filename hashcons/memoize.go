package hashcons

// memoize.go implements a decorator over a user rewrite function that
// caches input-handle → output-handle results keyed by pointer identity.
// A memoized rewrite may be exposed to goroutines, so this makes a
// stronger guarantee explicit: x/sync/singleflight collapses concurrent
// rewrites of the same input handle to a single inner-rewrite invocation
// instead of merely serializing them after the fact with a mutex, so the
// inner function is invoked at most once per distinct input handle even
// under concurrent callers.
//
// © 2025 hashcons authors. MIT License.

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Memoizer wraps inner so that inner is called at most once per
// distinct input Ref, identified by the pointer identity of its cell.
// Caches are populated on demand and live as long as the Memoizer; there is
// no eviction.
type Memoizer[D any] struct {
	inner func(Ref[D]) Ref[D]
	cache sync.Map // string (cell pointer) -> Ref[D]
	group singleflight.Group
}

// NewMemoizer builds a Memoizer decorating inner.
func NewMemoizer[D any](inner func(Ref[D]) Ref[D]) *Memoizer[D] {
	return &Memoizer[D]{inner: inner}
}

// Rewrite returns the memoized result of applying the wrapped rewriter to
// x, invoking the inner rewriter at most once for any given x.
func (m *Memoizer[D]) Rewrite(x Ref[D]) Ref[D] {
	key := x.key()

	if v, ok := m.cache.Load(key); ok {
		return v.(Ref[D])
	}

	v, _, _ := m.group.Do(key, func() (interface{}, error) {
		if v, ok := m.cache.Load(key); ok {
			return v.(Ref[D]), nil
		}
		out := m.inner(x)
		m.cache.Store(key, out)
		return out, nil
	})
	return v.(Ref[D])
}
