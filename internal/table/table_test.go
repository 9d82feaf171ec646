package table

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Voskan/hashcons/internal/refs"
)

// intData is a minimal cell payload used to exercise the table variants
// without pulling in the façade's metadata machinery.
type intData struct {
	v int
}

func eqInt(a, b intData) bool { return a.v == b.v }

func hashInt(d intData) uint64 { return uint64(d.v) }

func noopCreate(*intData) {}

func factories() map[string]Factory[intData] {
	return map[string]Factory[intData]{
		"linear":         NewLinear[intData],
		"sorted":         NewSorted[intData],
		"hashmap-linear": NewHashmapFallback[intData](NewLinear[intData]),
		"hashmap-sorted": NewHashmapFallback[intData](NewSorted[intData]),
	}
}

func TestTableGetOrInsertDeduplicates(t *testing.T) {
	for name, factory := range factories() {
		t.Run(name, func(t *testing.T) {
			tbl := factory(eqInt, refs.AtomicFactory[intData]{})

			h1, outcome1 := tbl.GetOrInsert(42, intData{v: 42}, noopCreate)
			h2, outcome2 := tbl.GetOrInsert(42, intData{v: 42}, noopCreate)

			require.True(t, h1.PtrEq(h2), "interning the same value twice must yield the same handle")
			assert.Equal(t, 42, h1.Deref().v)
			assert.Equal(t, Inserted, outcome1)
			assert.Equal(t, Hit, outcome2)
		})
	}
}

func TestTableGetMissReturnsFalse(t *testing.T) {
	for name, factory := range factories() {
		t.Run(name, func(t *testing.T) {
			tbl := factory(eqInt, refs.AtomicFactory[intData]{})

			_, ok := tbl.Get(7, intData{v: 7})
			assert.False(t, ok)
		})
	}
}

func TestTableDistinguishesHashCollisions(t *testing.T) {
	// Two distinct values that happen to share a hash still round-trip to
	// their own independent handles.
	collidingEq := func(a, b intData) bool { return a.v == b.v }

	for name, factory := range map[string]Factory[intData]{
		"linear":         NewLinear[intData],
		"sorted":         NewSorted[intData],
		"hashmap-linear": NewHashmapFallback[intData](NewLinear[intData]),
	} {
		t.Run(name, func(t *testing.T) {
			tbl := factory(collidingEq, refs.AtomicFactory[intData]{})

			const sharedHash = 9
			hA, _ := tbl.GetOrInsert(sharedHash, intData{v: 1}, noopCreate)
			hB, _ := tbl.GetOrInsert(sharedHash, intData{v: 2}, noopCreate)

			assert.False(t, hA.PtrEq(hB))

			gotA, ok := tbl.Get(sharedHash, intData{v: 1})
			require.True(t, ok)
			assert.True(t, gotA.PtrEq(hA))

			gotB, ok := tbl.Get(sharedHash, intData{v: 2})
			require.True(t, ok)
			assert.True(t, gotB.PtrEq(hB))
		})
	}
}

func TestSortedMaintainsOrder(t *testing.T) {
	tbl := NewSorted[intData](eqInt, refs.AtomicFactory[intData]{}).(*Sorted[intData])

	for _, v := range []int{50, 10, 30, 20, 40} {
		tbl.GetOrInsert(uint64(v), intData{v: v}, noopCreate)
	}

	var hashes []uint64
	for _, e := range tbl.entries {
		hashes = append(hashes, e.Hash)
	}
	assert.Equal(t, []uint64{10, 20, 30, 40, 50}, hashes)
}

func TestTableReclaimsDecayedEntry(t *testing.T) {
	for name, factory := range factories() {
		t.Run(name, func(t *testing.T) {
			tbl := factory(eqInt, refs.AtomicFactory[intData]{})

			h1, outcome1 := tbl.GetOrInsert(13, intData{v: 13}, noopCreate)
			require.Equal(t, Inserted, outcome1)
			h1.Release() // last strong handle gone: the weak entry decays

			h2, outcome2 := tbl.GetOrInsert(13, intData{v: 13}, noopCreate)
			assert.Equal(t, InsertedAfterDecay, outcome2)
			assert.Equal(t, 13, h2.Deref().v)
		})
	}
}

func sharedFactories() map[string]SharedFactory[intData] {
	return map[string]SharedFactory[intData]{
		"sharded-linear": NewSharded[intData](DefaultShardCount, NewLinear[intData]),
		"mutex-linear":   NewMutex[intData](NewLinear[intData]),
	}
}

func TestSharedGetOrInsertDeduplicates(t *testing.T) {
	for name, factory := range sharedFactories() {
		t.Run(name, func(t *testing.T) {
			shared := factory(hashInt, eqInt, refs.AtomicFactory[intData]{})

			h1, _ := shared.GetOrInsert(intData{v: 5}, noopCreate)
			h2, _ := shared.GetOrInsert(intData{v: 5}, noopCreate)

			assert.True(t, h1.PtrEq(h2))
		})
	}
}

// TestSharedConcurrentInsertsConverge exercises the table-monotonicity
// invariant under concurrency: any number of goroutines racing to intern the
// same value must all observe a single winning handle.
func TestSharedConcurrentInsertsConverge(t *testing.T) {
	for name, factory := range sharedFactories() {
		t.Run(name, func(t *testing.T) {
			shared := factory(hashInt, eqInt, refs.AtomicFactory[intData]{})

			const goroutines = 64
			handles := make([]refs.Handle[intData], goroutines)
			var wg sync.WaitGroup
			wg.Add(goroutines)
			for i := 0; i < goroutines; i++ {
				go func(i int) {
					defer wg.Done()
					handles[i], _ = shared.GetOrInsert(intData{v: 99}, noopCreate)
				}(i)
			}
			wg.Wait()

			for i := 1; i < goroutines; i++ {
				assert.True(t, handles[0].PtrEq(handles[i]), "goroutine %d got a distinct handle", i)
			}
		})
	}
}

func TestSharedDistributesAcrossShards(t *testing.T) {
	shared := NewSharded[intData](8, NewLinear[intData])(hashInt, eqInt, refs.AtomicFactory[intData]{}).(*Sharded[intData])

	for i := 0; i < 100; i++ {
		shared.GetOrInsert(intData{v: i}, noopCreate)
	}

	nonEmpty := 0
	for _, s := range shared.shards {
		lin := s.table.(*Linear[intData])
		if len(lin.entries) > 0 {
			nonEmpty++
		}
	}
	assert.Greater(t, nonEmpty, 1, "values should spread across more than one shard")
}

func BenchmarkSharedGetOrInsert(b *testing.B) {
	shared := NewSharded[intData](DefaultShardCount, NewLinear[intData])(hashInt, eqInt, refs.AtomicFactory[intData]{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		shared.GetOrInsert(intData{v: i % 1024}, noopCreate)
	}
}
