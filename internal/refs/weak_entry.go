package refs

// WeakEntry is the (hash, weak) pair a table probes during lookup. The weak
// handle may decay between probes; Get treats a decayed entry as absent
// rather than surfacing any error.
type WeakEntry[D any] struct {
	Hash uint64
	Weak WeakHandle[D]
}

// NewWeakEntry records a weak observer of a freshly-interned cell.
func NewWeakEntry[D any](hash uint64, weak WeakHandle[D]) WeakEntry[D] {
	return WeakEntry[D]{Hash: hash, Weak: weak}
}

// Get returns a live strong handle iff the probe hash matches the entry's
// hash, the weak handle is still upgradable, and the upgraded data equals
// probe under eq. A hash mismatch short-circuits without touching the weak
// handle at all.
func (e *WeakEntry[D]) Get(hash uint64, probe D, eq func(D, D) bool) (Handle[D], bool) {
	if e.Hash != hash {
		var zero Handle[D]
		return zero, false
	}
	return e.getData(probe, eq)
}

func (e *WeakEntry[D]) getData(probe D, eq func(D, D) bool) (Handle[D], bool) {
	up, ok := e.Weak.Upgrade()
	if !ok {
		var zero Handle[D]
		return zero, false
	}
	if !eq(*up.Deref(), probe) {
		up.Release()
		var zero Handle[D]
		return zero, false
	}
	return up, true
}

// GetExistingNear is used by the sorted table's bidirectional scan: it
// reports (handle, found, hashMatched, decayed). hashMatched is false once
// the run of equal-hash entries ends, telling the caller to stop scanning
// in that direction. decayed reports that the hash matched but the weak
// handle had already let go of its cell, distinct from a live hash
// collision with unequal data.
func (e *WeakEntry[D]) GetExistingNear(hash uint64, probe D, eq func(D, D) bool) (handle Handle[D], found bool, hashMatched bool, decayed bool) {
	if e.Hash != hash {
		var zero Handle[D]
		return zero, false, false, false
	}
	up, ok := e.Weak.Upgrade()
	if !ok {
		var zero Handle[D]
		return zero, false, true, true
	}
	if !eq(*up.Deref(), probe) {
		up.Release()
		var zero Handle[D]
		return zero, false, true, false
	}
	return up, true, true, false
}

// Probe is the Linear/HashmapFallback-bucket counterpart of
// GetExistingNear: a single-shot lookup against one entry that also reports
// whether a hash match was lost to decay rather than to a genuine
// collision.
func (e *WeakEntry[D]) Probe(hash uint64, probe D, eq func(D, D) bool) (handle Handle[D], found bool, decayed bool) {
	if e.Hash != hash {
		var zero Handle[D]
		return zero, false, false
	}
	up, ok := e.Weak.Upgrade()
	if !ok {
		var zero Handle[D]
		return zero, false, true
	}
	if !eq(*up.Deref(), probe) {
		up.Release()
		var zero Handle[D]
		return zero, false, false
	}
	return up, true, false
}

// HashCmp orders entries by hash for the sorted table's binary search.
func (e *WeakEntry[D]) HashCmp(hash uint64) int {
	switch {
	case e.Hash < hash:
		return -1
	case e.Hash > hash:
		return 1
	default:
		return 0
	}
}
