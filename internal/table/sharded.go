package table

import (
	"sync"

	"github.com/Voskan/hashcons/internal/refs"
)

// DefaultShardCount is a small power of two that keeps mutex contention low
// without wasting memory on mostly-idle shards in single-goroutine uses of
// the façade.
const DefaultShardCount = 8

// Sharded partitions the keyspace across a fixed, power-of-two number of
// independently-locked tables, selecting a shard by masking the low bits of
// the hash. Distinct shards never contend with one another, so the cost of
// concurrent interning scales with the number of shards rather than
// collapsing to a single critical section.
type Sharded[D any] struct {
	hash   HashFunc[D]
	mask   uint64
	shards []*shardedSlot[D]
}

type shardedSlot[D any] struct {
	mu    sync.Mutex
	table Table[D]
}

// NewSharded builds a Shared[D] table with shardCount shards, each backed
// by an instance of inner. shardCount must be a power of two; it is rounded
// up to the next one if it is not.
func NewSharded[D any](shardCount int, inner Factory[D]) SharedFactory[D] {
	if shardCount <= 0 {
		shardCount = DefaultShardCount
	}
	shardCount = nextPowerOfTwo(shardCount)

	return func(hash HashFunc[D], eq EqFunc[D], refFactory refs.Factory[D]) Shared[D] {
		shards := make([]*shardedSlot[D], shardCount)
		for i := range shards {
			shards[i] = &shardedSlot[D]{table: inner(eq, refFactory)}
		}
		return &Sharded[D]{
			hash:   hash,
			mask:   uint64(shardCount - 1),
			shards: shards,
		}
	}
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func (s *Sharded[D]) shardFor(h uint64) *shardedSlot[D] {
	return s.shards[h&s.mask]
}

func (s *Sharded[D]) Get(data D) (refs.Handle[D], bool) {
	h := s.hash(data)
	slot := s.shardFor(h)
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.table.Get(h, data)
}

func (s *Sharded[D]) GetOrInsert(data D, onCreate func(*D)) (refs.Handle[D], Outcome) {
	h := s.hash(data)
	slot := s.shardFor(h)
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.table.GetOrInsert(h, data, onCreate)
}
