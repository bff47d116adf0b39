package collection

import (
	"go.uber.org/atomic"

	"github.com/docstore-incubator/tinydoc/db/metrics"
)

// Collection is one document collection of a database. It owns the global
// ditch list transactions register in, and keeps the dead-space accounting
// the compactor reclaims from.
//
// A collection's documents live in storage blocks that are append-written and
// later compacted. This package does not model the block format itself, only
// the bookkeeping the compactor needs: how many dead bytes a collection
// carries and whether any transaction currently pins its blocks.
type Collection struct {
	id   uint64
	name string

	ditches  *DitchList
	deadSize atomic.Int64
}

// NewCollection opens a collection with the given identity. maxDitches bounds
// the ditch list; zero means unbounded.
func NewCollection(id uint64, name string, maxDitches int) *Collection {
	return &Collection{
		id:      id,
		name:    name,
		ditches: newDitchList(maxDitches),
	}
}

func (c *Collection) ID() uint64 {
	return c.id
}

func (c *Collection) Name() string {
	return c.name
}

// Ditches returns the collection's global ditch list, scanned by the
// compactor.
func (c *Collection) Ditches() *DitchList {
	return c.ditches
}

// CreateDocumentDitch allocates a ditch and registers it in the collection's
// ditch list. It returns nil when the collection is closed or the ditch limit
// is reached; the caller must abort the enclosing operation, not retry.
func (c *Collection) CreateDocumentDitch() *Ditch {
	d := &Ditch{col: c}
	if !c.ditches.insert(d) {
		metrics.DitchesRejectedTotal.Inc()
		return nil
	}
	metrics.DitchesOrderedTotal.Inc()
	return d
}

// Close tears the ditch list down. Ditches can no longer be created; already
// registered ditches stay valid until their owners release them.
func (c *Collection) Close() {
	c.ditches.close()
}

func (c *Collection) IsClosed() bool {
	return c.ditches.isClosed()
}

// NoteDeadSpace records n bytes of superseded or deleted document data. The
// write path calls this when a document revision becomes unreachable.
func (c *Collection) NoteDeadSpace(n int64) {
	c.deadSize.Add(n)
}

// DeadSpace reports the dead bytes currently awaiting compaction.
func (c *Collection) DeadSpace() int64 {
	return c.deadSize.Load()
}

// TryReclaimDeadSpace reclaims the collection's dead space if no ditch pins
// its storage. It returns the reclaimed byte count and whether reclamation
// ran; a false result means an active ditch deferred it.
func (c *Collection) TryReclaimDeadSpace() (int64, bool) {
	var n int64
	ok := c.ditches.IfQuiescent(func() {
		n = c.deadSize.Swap(0)
	})
	return n, ok
}
