package transaction

import (
	"fmt"

	"github.com/docstore-incubator/tinydoc/db/catalog"
	"github.com/docstore-incubator/tinydoc/db/codec"
	"github.com/docstore-incubator/tinydoc/db/collection"
	"github.com/docstore-incubator/tinydoc/db/config"
	"github.com/docstore-incubator/tinydoc/db/metrics"
)

// Context is the resource context of one transaction. See the package
// documentation for the overall contract. Exactly two implementations exist:
// StandaloneContext and SharedContext.
type Context interface {
	// Database returns the database this context is bound to.
	Database() *catalog.Database

	// OrderDitch returns the context's ditch for the collection, registering
	// a new one in the collection's global ditch list if none exists yet.
	// It returns nil when no ditch can be registered (closed collection or
	// ditch limit reached); the caller must abort the enclosing operation.
	OrderDitch(col *collection.Collection) *collection.Ditch
	// Ditch returns the context's ditch for the collection id, or nil. It
	// never registers one.
	Ditch(cid uint64) *collection.Ditch
	// ReleaseDitch releases the context's ditch for the collection id ahead
	// of context close, removing it from both the local map and the
	// collection's global list. It is a no-op if no ditch exists.
	ReleaseDitch(cid uint64)

	// LeaseBuilder hands out a scratch builder for exclusive use until it is
	// returned with ReturnBuilder.
	LeaseBuilder() *codec.Builder
	ReturnBuilder(b *codec.Builder)

	// LeaseStringBuffer hands out a scratch buffer with capacity of at least
	// minSize, reusing the context's cached buffer when it is free.
	LeaseStringBuffer(minSize int) *codec.StringBuffer
	ReturnStringBuffer(sb *codec.StringBuffer)

	// Options returns the runtime serialization options. The value is bound
	// to the context and may be mutated by the caller; it is independent of
	// DumpOptions.
	Options() *codec.Options
	// DumpOptions returns the serialization options for full-fidelity
	// export.
	DumpOptions() *codec.Options

	// Resolver returns the context's collection name resolver.
	Resolver() *catalog.Resolver
	// OrderTypeHandler returns the context's shared type handler with an
	// additional reference the caller must release.
	OrderTypeHandler() *codec.SharedTypeHandler

	// StoreTransactionResult records the transaction's final outcome.
	// Calling it twice on one context is a programming error and panics.
	StoreTransactionResult(id uint64, hasFailedOperations bool)
	// Result returns the recorded outcome, if any.
	Result() (Result, bool)

	// RegisterTransaction moves the context from Created to Active and binds
	// the running transaction's state to it.
	RegisterTransaction(s *State)
	// UnregisterTransaction ends the registered transaction.
	UnregisterTransaction()
	// ParentTransaction returns the transaction a nested transaction may
	// join, or nil. Only a SharedContext ever returns non-nil.
	ParentTransaction() *State
	// Embeddable reports whether nested transactions may join this context.
	Embeddable() bool

	// Close releases every still-registered ditch, the pooled scratch
	// objects, the type handler reference and, if owned, the resolver.
	// Closing with ditches still registered is the normal abort-time
	// cleanup, not an error. Close is idempotent.
	Close()
}

// resourceCore carries the state common to both context kinds.
type resourceCore struct {
	db *catalog.Database

	resolver     *catalog.Resolver
	ownsResolver bool

	handler *codec.SharedTypeHandler

	ditches map[uint64]*collection.Ditch

	builders          []*codec.Builder
	maxPooledBuilders int

	stringBuffer     *codec.StringBuffer
	stringBufferSize int

	options     codec.Options
	dumpOptions codec.Options
	optionsInit bool

	result       Result
	resultStored bool

	current *State
	ph      phase
	closed  bool
}

func newResourceCore(db *catalog.Database, cfg *config.Config) resourceCore {
	return resourceCore{
		db:                db,
		ditches:           make(map[uint64]*collection.Ditch),
		maxPooledBuilders: cfg.MaxPooledBuilders,
		stringBufferSize:  cfg.StringBufferSize,
	}
}

// mustBeLive guards operations that are invalid once the transaction has
// ended. Calling them afterward is a contract violation, not a recoverable
// error.
func (c *resourceCore) mustBeLive(op string) {
	if c.closed || c.ph == phaseEnded {
		panic(fmt.Sprintf("transaction context: %s on %s context", op, c.ph))
	}
}

func (c *resourceCore) Database() *catalog.Database {
	return c.db
}

func (c *resourceCore) OrderDitch(col *collection.Collection) *collection.Ditch {
	c.mustBeLive("orderDitch")
	if d, ok := c.ditches[col.ID()]; ok {
		return d
	}
	d := col.CreateDocumentDitch()
	if d == nil {
		return nil
	}
	c.ditches[col.ID()] = d
	return d
}

func (c *resourceCore) Ditch(cid uint64) *collection.Ditch {
	return c.ditches[cid]
}

func (c *resourceCore) ReleaseDitch(cid uint64) {
	if d, ok := c.ditches[cid]; ok {
		delete(c.ditches, cid)
		d.Release()
	}
}

func (c *resourceCore) LeaseBuilder() *codec.Builder {
	c.mustBeLive("leaseBuilder")
	if n := len(c.builders); n > 0 {
		b := c.builders[n-1]
		c.builders[n-1] = nil
		c.builders = c.builders[:n-1]
		metrics.BuildersReusedTotal.Inc()
		return b
	}
	metrics.BuildersCreatedTotal.Inc()
	return codec.NewBuilder()
}

func (c *resourceCore) ReturnBuilder(b *codec.Builder) {
	b.Reset()
	if len(c.builders) < c.maxPooledBuilders {
		c.builders = append(c.builders, b)
	}
}

func (c *resourceCore) LeaseStringBuffer(minSize int) *codec.StringBuffer {
	c.mustBeLive("leaseStringBuffer")
	if sb := c.stringBuffer; sb != nil {
		c.stringBuffer = nil
		sb.Reserve(minSize)
		return sb
	}
	if minSize < c.stringBufferSize {
		minSize = c.stringBufferSize
	}
	return codec.NewStringBuffer(minSize)
}

func (c *resourceCore) ReturnStringBuffer(sb *codec.StringBuffer) {
	sb.Reset()
	if c.stringBuffer == nil {
		c.stringBuffer = sb
	}
}

func (c *resourceCore) Options() *codec.Options {
	c.ensureOptions()
	return &c.options
}

func (c *resourceCore) DumpOptions() *codec.Options {
	c.ensureOptions()
	return &c.dumpOptions
}

func (c *resourceCore) ensureOptions() {
	if c.optionsInit {
		return
	}
	h := c.ensureHandler().Handler()
	c.options = codec.Options{
		Handler:          h,
		ExpandReferences: false,
		ZeroCopyStrings:  true,
	}
	c.dumpOptions = codec.Options{
		Handler:          h,
		ExpandReferences: true,
		ZeroCopyStrings:  false,
	}
	c.optionsInit = true
}

func (c *resourceCore) Resolver() *catalog.Resolver {
	c.mustBeLive("resolver")
	if c.resolver == nil {
		c.resolver = catalog.NewResolver(c.db, c.db)
		c.ownsResolver = true
	}
	return c.resolver
}

// ensureHandler lazily builds the context's type handler without handing out
// an extra reference; the context's own reference is dropped in Close.
func (c *resourceCore) ensureHandler() *codec.SharedTypeHandler {
	if c.handler == nil {
		h := codec.NewRefHandler(c.db, c.Resolver())
		c.handler = codec.NewSharedTypeHandler(h)
	}
	return c.handler
}

func (c *resourceCore) OrderTypeHandler() *codec.SharedTypeHandler {
	c.mustBeLive("orderTypeHandler")
	return c.ensureHandler().Acquire()
}

func (c *resourceCore) StoreTransactionResult(id uint64, hasFailedOperations bool) {
	if c.resultStored {
		panic("transaction result stored twice")
	}
	c.result = Result{ID: id, HasFailedOperations: hasFailedOperations}
	c.resultStored = true
}

func (c *resourceCore) Result() (Result, bool) {
	return c.result, c.resultStored
}

func (c *resourceCore) RegisterTransaction(s *State) {
	if c.closed || c.ph != phaseCreated {
		panic(fmt.Sprintf("transaction context: register on %s context", c.ph))
	}
	c.current = s
	c.ph = phaseActive
}

func (c *resourceCore) UnregisterTransaction() {
	if c.closed || c.ph != phaseActive {
		panic(fmt.Sprintf("transaction context: unregister on %s context", c.ph))
	}
	c.current = nil
	c.ph = phaseEnded
}

func (c *resourceCore) Close() {
	if c.closed {
		return
	}
	for cid, d := range c.ditches {
		d.Release()
		delete(c.ditches, cid)
	}
	if c.handler != nil {
		c.handler.Release()
		c.handler = nil
	}
	if c.ownsResolver {
		c.resolver = nil
	}
	c.builders = nil
	c.stringBuffer = nil
	c.current = nil
	c.ph = phaseEnded
	c.closed = true
}
