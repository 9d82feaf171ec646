package hashcons

// facade.go implements the per-type interning façade. A Table[D] owns
// exactly one Shared[cell[D]] and knows how to hash, compare, and fold
// metadata for D; everything else is delegated to internal/table.
//
// © 2025 hashcons authors. MIT License.

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Voskan/hashcons/internal/epoch"
	"github.com/Voskan/hashcons/internal/meta"
	"github.com/Voskan/hashcons/internal/table"
)

// cellSeq hands out a process-wide monotonic sequence number to each newly
// inserted cell, across every Table[D] regardless of D. It exists solely so
// Ref.Seq can give callers a safe, deterministic total order over handles
// (e.g. to canonicalize a commutative node's child order) without resorting
// to pointer-address comparison.
var cellSeq atomic.Uint64

// HashFunc computes the structural hash of a node's field data.
type HashFunc[D any] func(D) uint64

// EqFunc reports structural equality between two field-data values.
type EqFunc[D any] func(a, b D) bool

// MetaFunc computes a node's folded metadata from its field data. For
// a declared node type this folds the metadata of each field (primitives
// contribute zero, sequences fold their elements, handles contribute their
// cell's precomputed metadata, see package meta), applies Increment, then
// ORs in any node-specific flag bits.
type MetaFunc[D any] func(D) meta.Meta

// Table is the process-wide interning façade for one declared node type.
// Construct it once (ordinarily via Singleton) and call Hashcons for every
// construction of a value of type D; Table guarantees at most one live cell
// per distinct value.
type Table[D any] struct {
	name   string
	hash   HashFunc[D]
	eq     EqFunc[D]
	meta   MetaFunc[D]
	shared table.Shared[cell[D]]
	logger *zap.Logger
	sink   metricsSink
	epoch  epoch.Counter
}

// New constructs a Table for node type D. name identifies the type in logs
// and metrics (e.g. "Expr", "MessageA"); it should match the declared type
// name.
func New[D any](name string, hash HashFunc[D], eq EqFunc[D], computeMeta MetaFunc[D], opts ...Option) (*Table[D], error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	cellEq := func(a, b cell[D]) bool { return eq(a.data, b.data) }
	cellHash := func(c cell[D]) uint64 { return hash(c.data) }
	refFactory := referenceFactory[cell[D]](cfg.refVariant)
	shared := sharedFactory[cell[D]](cfg)(cellHash, cellEq, refFactory)

	cfg.logger.Debug("hashcons table constructed",
		zap.String("type", name),
		zap.String("reference_variant", cfg.refVariant.String()),
		zap.String("table_variant", cfg.tableVariant.String()),
		zap.String("shared_variant", cfg.sharedVariant.String()),
		zap.Int("shard_count", cfg.shardCount),
	)

	return &Table[D]{
		name:   name,
		hash:   hash,
		eq:     eq,
		meta:   computeMeta,
		shared: shared,
		logger: cfg.logger,
		sink:   newMetricsSink(name, cfg.registry),
	}, nil
}

// Singleton wraps build so it runs at most once process-wide, matching the
// per-type lazily-initialized singleton contract: the first Hashcons
// call (indirectly, via the returned accessor) constructs the table, and
// all later calls observe the same instance.
func Singleton[D any](build func() (*Table[D], error)) func() *Table[D] {
	once := sync.OnceValue(func() *Table[D] {
		t, err := build()
		if err != nil {
			panic(err)
		}
		return t
	})
	return once
}

// Hashcons interns data, returning the unique live Ref for its value. Two
// calls with structurally-equal data return Refs that are PtrEq.
func (t *Table[D]) Hashcons(data D) Ref[D] {
	probe := cell[D]{data: data}
	h, outcome := t.shared.GetOrInsert(probe, func(c *cell[D]) {
		c.meta = t.meta(c.data)
		c.seq = cellSeq.Add(1)
	})
	switch outcome {
	case table.Hit:
		t.sink.incHit()
	case table.InsertedAfterDecay:
		t.sink.incInsert()
		t.sink.incDecayedReclaim()
		t.sink.setLiveCells(float64(t.epoch.Advance()))
	default:
		t.sink.incInsert()
		t.sink.setLiveCells(float64(t.epoch.Advance()))
	}
	return Ref[D]{h: h}
}

// Get performs a structural lookup without interning on miss.
func (t *Table[D]) Get(data D) (Ref[D], bool) {
	h, ok := t.shared.Get(cell[D]{data: data})
	if !ok {
		t.sink.incMiss()
		return Ref[D]{}, false
	}
	t.sink.incHit()
	return Ref[D]{h: h}, true
}

// Stats reports the table's name and the current insert epoch (the number
// of cells ever inserted, not currently-live count, which has no O(1)
// answer without a lock shared across shards). The CLI inspector polls
// this to show something that advances over time in watch mode.
func (t *Table[D]) Stats() (name string, insertEpoch uint64) {
	return t.name, t.epoch.Count()
}
