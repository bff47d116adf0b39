package codec

// Options configures how documents and cross-document references are encoded
// and decoded within one transaction.
//
// A transaction context carries two independent Options values: the runtime
// set used on the query hot path (references kept in their compact id form,
// string data borrowed from storage where possible) and the dump set used for
// full-fidelity export (references expanded to "collection/key" strings,
// everything copied). The two never share mutable state; mutating one must
// not perturb the other.
type Options struct {
	// Handler translates cross-document references. Never nil on a context's
	// options.
	Handler TypeHandler

	// ExpandReferences emits references as resolved "collection/key" strings
	// instead of the compact id form. Dump policy.
	ExpandReferences bool

	// ZeroCopyStrings lets decoded string data alias the underlying storage
	// block instead of being copied out. Only safe while a ditch pins the
	// block. Runtime policy.
	ZeroCopyStrings bool
}
