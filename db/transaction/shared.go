package transaction

import (
	"github.com/docstore-incubator/tinydoc/db/catalog"
	"github.com/docstore-incubator/tinydoc/db/config"
)

// SharedContext is the context of an embeddable transaction. A nested
// transaction started while it is active joins the registered parent
// transaction instead of opening its own: it calls ParentTransaction, finds
// the parent state, and runs against this same context, thereby sharing the
// parent's resolver, ditches, scratch pools and type handler. The
// reference-counted handler keeps the shared serialization state alive until
// the last holder releases it.
type SharedContext struct {
	resourceCore
}

var _ Context = (*SharedContext)(nil)

// NewSharedContext creates an embeddable context on db.
func NewSharedContext(db *catalog.Database, cfg *config.Config) *SharedContext {
	return &SharedContext{resourceCore: newResourceCore(db, cfg)}
}

// ParentTransaction returns the registered transaction while one is active,
// letting a nested transaction embed itself into it.
func (c *SharedContext) ParentTransaction() *State {
	return c.current
}

// Embeddable reports true.
func (c *SharedContext) Embeddable() bool {
	return true
}
