// The transaction package implements the per-transaction resource context of
// the tinydoc engine. A context is created when a transaction begins, lives on
// the transaction's thread, and is closed when the transaction ends. It is
// the hot-path broker between three concerns:
//
// *Ditches* protect a collection's storage blocks from the background
// compactor while a transaction reads them. Ordering a ditch registers it in
// the collection's global ditch list (see the collection package); the
// compactor scans that list before reclaiming anything, so a registered ditch
// defers reclamation without the reader taking a lock on every access. Within
// one context, ordering a ditch for the same collection twice returns the
// same ditch. All of a context's ditches are released when the context
// closes.
//
// *Scratch pools* amortize allocation across the many small serialization
// steps of one transaction. Builders are kept on a per-context free list;
// a single string buffer is cached and handed out to at most one borrower at
// a time. The pools do no borrow tracking: callers lease at the start of a
// serialization step and return on every exit path, including failure.
//
// *Serialization options* bind the codec to the transaction's view of
// collection identities through a pluggable type handler. A context carries
// two independent options values, one for the runtime hot path and one for
// full-fidelity dumps; mutating one never affects the other.
//
// There are exactly two kinds of context. A StandaloneContext belongs to a
// single top-level transaction and owns its resolver, pools, ditches and type
// handler outright. A SharedContext is embeddable: a nested transaction
// started while it is active joins the registered parent transaction and, by
// reusing the same context object, shares its resolver, pools, ditches and
// reference-counted type handler.
//
// A context is used by exactly one thread and performs no locking of its own;
// the only cross-thread state it touches is the per-collection ditch list,
// which carries its own mutex discipline.
package transaction
