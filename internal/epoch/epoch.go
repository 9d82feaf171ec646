// Package epoch provides a process-wide monotonically increasing counter,
// one per hashcons.Table, used to stamp and report "how many inserts has
// this table done so far" without taking a lock shared across shards. It
// is the same "cheap, lock-free, monotonic tick" idea as a ring buffer's
// generation-ID counter, repurposed from generation rotation to insert
// counting so hashcons.Table.Stats() and the CLI inspector's watch mode
// have something that visibly advances over time.
//
// © 2025 hashcons authors. MIT License.
package epoch

import "sync/atomic"

// Counter is a lock-free monotonic tick, safe for concurrent use by every
// shard of a sharded table.
type Counter struct {
	n atomic.Uint64
}

// Advance bumps the counter by one and returns the new value, called once
// per successful insert (never per Get/hit, which must stay allocation-
// and bookkeeping-free on the hot path per spec's no-lock-contention goal).
func (c *Counter) Advance() uint64 { return c.n.Add(1) }

// Count returns the current tick without advancing it.
func (c *Counter) Count() uint64 { return c.n.Load() }
