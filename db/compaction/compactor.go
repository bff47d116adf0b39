package compaction

import (
	"sync"
	"time"

	"github.com/ngaut/log"
	"go.uber.org/atomic"

	"github.com/docstore-incubator/tinydoc/db/catalog"
	"github.com/docstore-incubator/tinydoc/db/config"
	"github.com/docstore-incubator/tinydoc/db/metrics"
)

// Compactor reclaims dead space from a database's collections in the
// background. Before touching a collection it scans the collection's ditch
// list; any registered ditch means a transaction still references the
// collection's storage blocks, and the compactor defers that collection to a
// later pass. Transactions never wait for the compactor; all waiting is on
// this side.
type Compactor struct {
	db       *catalog.Database
	interval time.Duration

	stopc  chan struct{}
	wg     sync.WaitGroup
	passes *atomic.Int64
}

func NewCompactor(db *catalog.Database, cfg *config.Config) *Compactor {
	return &Compactor{
		db:       db,
		interval: cfg.CompactionInterval.Duration,
		stopc:    make(chan struct{}),
		passes:   atomic.NewInt64(0),
	}
}

// Start launches the background compaction loop.
func (c *Compactor) Start() {
	c.wg.Add(1)
	go c.run()
	log.Infof("[%s] compactor started, interval %s", c.db.Name(), c.interval)
}

// Stop terminates the loop and waits for it to exit. The pass in progress,
// if any, completes first.
func (c *Compactor) Stop() {
	close(c.stopc)
	c.wg.Wait()
	log.Infof("[%s] compactor stopped after %d passes", c.db.Name(), c.passes.Load())
}

func (c *Compactor) run() {
	defer c.wg.Done()
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopc:
			return
		case <-ticker.C:
			c.Pass()
		}
	}
}

// Pass runs one synchronous compaction sweep over every open collection. It
// returns the bytes reclaimed and the number of collections deferred because
// active ditches pinned their storage.
func (c *Compactor) Pass() (reclaimed int64, deferred int) {
	for _, col := range c.db.Collections() {
		n, ok := col.TryReclaimDeadSpace()
		if !ok {
			deferred++
			metrics.CompactionDeferredTotal.Inc()
			log.Debugf("[%s] compaction of %q deferred, %d active ditches",
				c.db.Name(), col.Name(), col.Ditches().NumDocumentDitches())
			continue
		}
		if n > 0 {
			reclaimed += n
			metrics.CompactionReclaimedBytesTotal.Add(float64(n))
			log.Debugf("[%s] reclaimed %d dead bytes from %q", c.db.Name(), n, col.Name())
		}
	}
	c.passes.Inc()
	metrics.CompactionPassesTotal.Inc()
	return reclaimed, deferred
}

// Passes reports how many passes have completed.
func (c *Compactor) Passes() int64 {
	return c.passes.Load()
}
