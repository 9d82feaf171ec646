package table

import (
	"sync"

	"github.com/Voskan/hashcons/internal/refs"
)

// Mutex guards a single inner table with one mutex for the whole table,
// rather than sharding the keyspace. It exists as the straightforward
// baseline Sharded is benchmarked against: correct under concurrency, but
// every goroutine serializes on the same lock regardless of hash.
type Mutex[D any] struct {
	hash HashFunc[D]
	mu   sync.Mutex
	tbl  Table[D]
}

// NewMutex builds a Shared[D] table backed by a single instance of inner
// guarded by one mutex.
func NewMutex[D any](inner Factory[D]) SharedFactory[D] {
	return func(hash HashFunc[D], eq EqFunc[D], refFactory refs.Factory[D]) Shared[D] {
		return &Mutex[D]{hash: hash, tbl: inner(eq, refFactory)}
	}
}

func (m *Mutex[D]) Get(data D) (refs.Handle[D], bool) {
	h := m.hash(data)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tbl.Get(h, data)
}

func (m *Mutex[D]) GetOrInsert(data D, onCreate func(*D)) (refs.Handle[D], Outcome) {
	h := m.hash(data)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tbl.GetOrInsert(h, data, onCreate)
}
