package tinydoc

/*
TinyDoc is the in-process core of a document-oriented storage engine, intended
for teaching and experimentation. It is not suitable for production use.

TinyDoc implements the transaction-scoped resource layer of such an engine:
the machinery that lets many unsynchronized reader transactions coexist with a
background compactor that reclaims dead storage space, and that keeps
per-transaction serialization cheap through object reuse. It deliberately owns
no wire protocol, no query execution and no on-disk file format; those belong
to the layers stacked on top of it.

The `tinydoc` module is organized into the following packages:

* `db/catalog`: database identity, the collection catalog and read-only
  collection name resolvers.
* `db/collection`: the collection entity with its global ditch list, the pin
  records ("ditches") that protect storage blocks from the compactor.
* `db/codec`: serialization scratch objects (builders, string buffers),
  per-transaction encode/decode options and the pluggable type handler that
  translates cross-document references.
* `db/transaction`: the per-transaction resource context tying the above
  together across a transaction's lifetime, including embedded transactions.
* `db/compaction`: the background compactor that scans ditch lists and
  reclaims dead space only from quiescent collections.
* `db/config`: engine configuration.
* `db/metrics`: prometheus collectors.
*/
