package collection

import (
	"sync"

	"github.com/docstore-incubator/tinydoc/db/metrics"
)

// A Ditch pins a collection's storage blocks while a transaction reads them.
// The compactor scans the collection's ditch list before reclaiming any block
// range; as long as a ditch is registered the blocks must stay valid. A ditch
// belongs to exactly one transaction context and never outlives it.
type Ditch struct {
	col        *Collection
	registered bool // guarded by the owning list's mutex
}

// Collection returns the collection whose storage this ditch pins.
func (d *Ditch) Collection() *Collection {
	return d.col
}

// Release removes the ditch from its collection's ditch list. Releasing a
// ditch twice is a programming error and panics.
func (d *Ditch) Release() {
	l := d.col.ditches
	l.mu.Lock()
	if !d.registered {
		l.mu.Unlock()
		panic("ditch released twice")
	}
	d.registered = false
	delete(l.ditches, d)
	l.mu.Unlock()
	metrics.DitchesReleasedTotal.Inc()
}

// DitchList is the per-collection registry of active ditches. It is the only
// piece of state in the transaction core shared across threads: reader threads
// insert and remove concurrently, and the compactor scans it before touching
// the collection's storage.
//
// A single mutex orders every insert, remove and scan. The release/acquire
// pair on that mutex is what makes a registration visible to the compactor
// before the registering thread dereferences the pinned memory, and a removal
// visible before the compactor may treat the collection as quiescent. No scan
// that starts after an insert completes can miss that ditch.
type DitchList struct {
	mu      sync.Mutex
	ditches map[*Ditch]struct{}
	max     int
	closed  bool
}

func newDitchList(maxDitches int) *DitchList {
	return &DitchList{
		ditches: make(map[*Ditch]struct{}),
		max:     maxDitches,
	}
}

func (l *DitchList) insert(d *Ditch) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	if l.max > 0 && len(l.ditches) >= l.max {
		return false
	}
	d.registered = true
	l.ditches[d] = struct{}{}
	return true
}

// NumDocumentDitches reports how many ditches are currently registered. This
// is the compactor's scan: a non-zero result means the collection's storage
// blocks are pinned and must not be reclaimed.
func (l *DitchList) NumDocumentDitches() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ditches)
}

// IfQuiescent runs fn while holding the list mutex, but only if no ditch is
// registered. It reports whether fn ran. Because the mutex is held across fn,
// no ditch can be ordered while fn reclaims storage.
func (l *DitchList) IfQuiescent(fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.ditches) > 0 {
		return false
	}
	fn()
	return true
}

func (l *DitchList) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
}

func (l *DitchList) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}
