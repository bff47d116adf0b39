package transaction

import (
	"github.com/docstore-incubator/tinydoc/db/catalog"
	"github.com/docstore-incubator/tinydoc/db/config"
)

// StandaloneContext is the context of one top-level transaction. It owns its
// resolver, ditch map, scratch pools and type handler outright; nothing is
// shared with any other transaction.
type StandaloneContext struct {
	resourceCore
}

var _ Context = (*StandaloneContext)(nil)

// NewStandaloneContext creates the context for a top-level transaction on db.
func NewStandaloneContext(db *catalog.Database, cfg *config.Config) *StandaloneContext {
	return &StandaloneContext{resourceCore: newResourceCore(db, cfg)}
}

// ParentTransaction always returns nil: a standalone context never exposes
// its transaction for nesting.
func (c *StandaloneContext) ParentTransaction() *State {
	return nil
}

// Embeddable reports false.
func (c *StandaloneContext) Embeddable() bool {
	return false
}
