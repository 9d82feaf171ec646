package hashcons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/Voskan/hashcons/internal/meta"
)

type pairData struct {
	A int
	B string
}

func hashPair(d pairData) uint64 {
	h := uint64(14695981039346656037)
	for _, b := range []byte(d.B) {
		h = (h ^ uint64(b)) * 1099511628211
	}
	return h ^ uint64(d.A)
}

func eqPair(a, b pairData) bool { return a.A == b.A && a.B == b.B }

func metaPair(pairData) meta.Meta { return meta.Zero().Increment() }

func newPairTable(t *testing.T, opts ...Option) *Table[pairData] {
	t.Helper()
	tbl, err := New("pairData", hashPair, eqPair, metaPair, opts...)
	require.NoError(t, err)
	return tbl
}

func TestHashconsDeduplicatesStructurallyEqualValues(t *testing.T) {
	tbl := newPairTable(t)
	a := tbl.Hashcons(pairData{A: 1, B: "x"})
	b := tbl.Hashcons(pairData{A: 1, B: "x"})
	assert.True(t, a.PtrEq(b))
}

func TestHashconsDistinguishesStructurallyDifferentValues(t *testing.T) {
	tbl := newPairTable(t)
	a := tbl.Hashcons(pairData{A: 1, B: "x"})
	c := tbl.Hashcons(pairData{A: 2, B: "x"})
	assert.False(t, a.PtrEq(c))
}

func TestHashconsPtrEqImpliesStructuralEquality(t *testing.T) {
	tbl := newPairTable(t)
	a := tbl.Hashcons(pairData{A: 7, B: "same"})
	b := tbl.Hashcons(pairData{A: 7, B: "same"})
	require.True(t, a.PtrEq(b))
	assert.True(t, eqPair(*a.Deref(), *b.Deref()))
}

func TestGetReturnsFalseOnMiss(t *testing.T) {
	tbl := newPairTable(t)
	_, ok := tbl.Get(pairData{A: 99, B: "nope"})
	assert.False(t, ok)
}

func TestGetFindsPreviouslyInternedValue(t *testing.T) {
	tbl := newPairTable(t)
	interned := tbl.Hashcons(pairData{A: 3, B: "y"})
	found, ok := tbl.Get(pairData{A: 3, B: "y"})
	require.True(t, ok)
	assert.True(t, interned.PtrEq(found))
}

func TestHashconsConcurrentInsertsConverge(t *testing.T) {
	tbl := newPairTable(t)
	const n = 64
	results := make([]Ref[pairData], n)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			results[i] = tbl.Hashcons(pairData{A: 42, B: "race"})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i := 1; i < n; i++ {
		assert.True(t, results[0].PtrEq(results[i]))
	}
}

func TestStatsAdvancesInsertEpochOnlyOnInsert(t *testing.T) {
	tbl := newPairTable(t)
	_, epoch0 := tbl.Stats()

	tbl.Hashcons(pairData{A: 1, B: "one"})
	_, epoch1 := tbl.Stats()
	assert.Greater(t, epoch1, epoch0)

	tbl.Hashcons(pairData{A: 1, B: "one"})
	_, epoch2 := tbl.Stats()
	assert.Equal(t, epoch1, epoch2, "a hit must not advance the insert epoch")
}

func TestTableVariantsAllDeduplicate(t *testing.T) {
	variants := []TableVariant{HashmapFallback, Linear, Sorted}
	for _, v := range variants {
		v := v
		t.Run(v.String(), func(t *testing.T) {
			tbl := newPairTable(t, WithTableVariant(v))
			a := tbl.Hashcons(pairData{A: 5, B: "v"})
			b := tbl.Hashcons(pairData{A: 5, B: "v"})
			assert.True(t, a.PtrEq(b))
		})
	}
}

func TestSharedVariantsAllDeduplicate(t *testing.T) {
	variants := []SharedVariant{Sharded, SingleMutex}
	for _, v := range variants {
		v := v
		t.Run(v.String(), func(t *testing.T) {
			tbl := newPairTable(t, WithSharedVariant(v))
			a := tbl.Hashcons(pairData{A: 6, B: "w"})
			b := tbl.Hashcons(pairData{A: 6, B: "w"})
			assert.True(t, a.PtrEq(b))
		})
	}
}

func TestWithShardCountInvalidReturnsError(t *testing.T) {
	_, err := New("invalid", hashPair, eqPair, metaPair, WithShardCount(0))
	assert.ErrorIs(t, err, errInvalidShardCount)
}

func TestReferenceVariantsAllDeduplicate(t *testing.T) {
	variants := []ReferenceVariant{Atomic, Local, Leak}
	for _, v := range variants {
		v := v
		t.Run(v.String(), func(t *testing.T) {
			tbl := newPairTable(t, WithReferenceVariant(v))
			a := tbl.Hashcons(pairData{A: 7, B: "rv"})
			b := tbl.Hashcons(pairData{A: 7, B: "rv"})
			assert.True(t, a.PtrEq(b))
		})
	}
}

func TestReferenceVariantsReclaimDecayedEntry(t *testing.T) {
	variants := []ReferenceVariant{Atomic, Local, Leak}
	for _, v := range variants {
		v := v
		t.Run(v.String(), func(t *testing.T) {
			tbl := newPairTable(t, WithReferenceVariant(v))

			first := tbl.Hashcons(pairData{A: 11, B: "decay"})
			first.Release()

			second := tbl.Hashcons(pairData{A: 11, B: "decay"})
			if v == Leak {
				assert.True(t, first.PtrEq(second), "Leak never decays, so Release must not free the cell")
			} else {
				assert.False(t, first.PtrEq(second), "the cell must have decayed once its last strong handle released, so reinsertion allocates a fresh one")
			}
		})
	}
}
