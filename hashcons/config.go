package hashcons

// config.go defines the per-Table configuration object and the functional
// options used to customize it. Every field is initialised with a sensible
// default in defaultConfig, and the struct itself is unexported: callers
// can only influence behaviour via Option[D]. Once New returns a
// *Table[D], none of this is mutable again.
//
// © 2025 hashcons authors. MIT License.

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Voskan/hashcons/internal/refs"
	"github.com/Voskan/hashcons/internal/table"
)

// ReferenceVariant selects which of the three reference-handle
// implementations backs a Table's cells.
type ReferenceVariant int

const (
	// Atomic uses lock-free atomic reference counts; safe to share a Table
	// across goroutines. This is the default.
	Atomic ReferenceVariant = iota
	// Local uses plain, non-atomic reference counts. A Table configured
	// with Local must only ever be used from a single goroutine.
	Local
	// Leak never frees a cell. Handles never decay. Useful as a
	// performance baseline or for small, short-lived processes that don't
	// care about reclaiming memory.
	Leak
)

// TableVariant selects the single-threaded storage tier used inside
// each shard.
type TableVariant int

const (
	// HashmapFallback indexes primarily by raw hash with a nested Linear
	// fallback table for collisions. Default; fastest for the common case
	// of one live value per hash.
	HashmapFallback TableVariant = iota
	// Linear scans an unordered sequence. Appropriate for small tables.
	Linear
	// Sorted keeps entries ordered by hash, probed by binary search.
	Sorted
)

// SharedVariant selects the concurrency wrapper around the
// single-threaded table tier.
type SharedVariant int

const (
	// Sharded partitions the keyspace across ShardCount independently
	// locked tables. Default.
	Sharded SharedVariant = iota
	// SingleMutex guards one table with a single mutex; provided as a
	// comparison baseline against Sharded.
	SingleMutex
)

// config bundles every knob influencing a Table's behaviour. Copied once
// into the constructed Table by applyOptions; never mutated afterward.
type config struct {
	refVariant    ReferenceVariant
	tableVariant  TableVariant
	sharedVariant SharedVariant
	shardCount    int

	registry *prometheus.Registry
	logger   *zap.Logger
}

func defaultConfig() *config {
	return &config{
		refVariant:    Atomic,
		tableVariant:  HashmapFallback,
		sharedVariant: Sharded,
		shardCount:    table.DefaultShardCount,
		logger:        zap.NewNop(),
		registry:      nil,
	}
}

// Option customizes a Table at construction time.
type Option func(*config)

// WithReferenceVariant selects the reference-handle implementation.
func WithReferenceVariant(v ReferenceVariant) Option {
	return func(c *config) { c.refVariant = v }
}

// WithTableVariant selects the single-threaded table tier.
func WithTableVariant(v TableVariant) Option {
	return func(c *config) { c.tableVariant = v }
}

// WithSharedVariant selects the concurrency wrapper.
func WithSharedVariant(v SharedVariant) Option {
	return func(c *config) { c.sharedVariant = v }
}

// WithShardCount overrides the shard count used by the Sharded variant. It
// is rounded up to the next power of two and ignored under SingleMutex.
func WithShardCount(n int) Option {
	return func(c *config) { c.shardCount = n }
}

// WithMetrics enables Prometheus metrics for this Table. Passing nil
// disables metrics (the default): no-op sink, zero hot-path overhead.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(c *config) { c.registry = reg }
}

// WithLogger plugs an external zap.Logger. Hashcons and rewrite never log
// on the hot path; the logger is only used by New, to record the
// construction of a Table and its selected variants. An invalid option is
// reported through New's error, not logged.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

var errInvalidShardCount = errors.New("hashcons: shard count must be > 0")

func applyOptions(opts []Option) (*config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.shardCount <= 0 {
		return nil, errInvalidShardCount
	}
	return cfg, nil
}

func (e ReferenceVariant) String() string {
	switch e {
	case Atomic:
		return "atomic"
	case Local:
		return "local"
	case Leak:
		return "leak"
	default:
		return fmt.Sprintf("ReferenceVariant(%d)", int(e))
	}
}

func (e TableVariant) String() string {
	switch e {
	case HashmapFallback:
		return "hashmap-fallback"
	case Linear:
		return "linear"
	case Sorted:
		return "sorted"
	default:
		return fmt.Sprintf("TableVariant(%d)", int(e))
	}
}

func (e SharedVariant) String() string {
	switch e {
	case Sharded:
		return "sharded"
	case SingleMutex:
		return "single-mutex"
	default:
		return fmt.Sprintf("SharedVariant(%d)", int(e))
	}
}

// referenceFactory builds the internal/refs.Factory matching v.
func referenceFactory[D any](v ReferenceVariant) refs.Factory[D] {
	switch v {
	case Local:
		return refs.LocalFactory[D]{}
	case Leak:
		return refs.LeakFactory[D]{}
	default:
		return refs.AtomicFactory[D]{}
	}
}

// tableFactory builds the internal/table.Factory matching v.
func tableFactory[D any](v TableVariant) table.Factory[D] {
	switch v {
	case Linear:
		return table.NewLinear[D]
	case Sorted:
		return table.NewSorted[D]
	default:
		return table.NewHashmapFallback[D](table.NewLinear[D])
	}
}

// sharedFactory builds the internal/table.SharedFactory matching cfg.
func sharedFactory[D any](cfg *config) table.SharedFactory[D] {
	inner := tableFactory[D](cfg.tableVariant)
	if cfg.sharedVariant == SingleMutex {
		return table.NewMutex[D](inner)
	}
	return table.NewSharded[D](cfg.shardCount, inner)
}
