package codec

import (
	"strings"

	"github.com/pingcap/errors"
	"go.uber.org/atomic"

	"github.com/docstore-incubator/tinydoc/db/catalog"
)

// ErrMalformedRef is returned when a reference string is not of the form
// "collection/key".
var ErrMalformedRef = errors.New("malformed document reference")

// DocumentRef is a cross-document reference in its compact form: the target
// collection's id and the document key within it.
type DocumentRef struct {
	CollectionID uint64 `msgpack:"c"`
	Key          string `msgpack:"k"`
}

// TypeHandler translates cross-document references between their compact id
// form and the "collection/key" string form, consistent with one
// transaction's view of collection identities.
type TypeHandler interface {
	RefToString(ref DocumentRef) (string, error)
	RefFromString(s string) (DocumentRef, error)
}

// RefHandler is the standard TypeHandler, resolving collection identities
// through a name resolver. The zero value is not usable; build one with
// NewRefHandler. It is a plain value the caller owns outright.
type RefHandler struct {
	db       *catalog.Database
	resolver *catalog.Resolver
}

// NewRefHandler builds a resolver-bound handler for the given database.
func NewRefHandler(db *catalog.Database, resolver *catalog.Resolver) RefHandler {
	return RefHandler{db: db, resolver: resolver}
}

func (h RefHandler) RefToString(ref DocumentRef) (string, error) {
	name, err := h.resolver.CollectionName(ref.CollectionID)
	if err != nil {
		return "", err
	}
	return name + "/" + ref.Key, nil
}

func (h RefHandler) RefFromString(s string) (DocumentRef, error) {
	i := strings.IndexByte(s, '/')
	if i <= 0 || i == len(s)-1 {
		return DocumentRef{}, errors.Annotatef(ErrMalformedRef, "%q", s)
	}
	id, err := h.resolver.CollectionID(s[:i])
	if err != nil {
		return DocumentRef{}, err
	}
	return DocumentRef{CollectionID: id, Key: s[i+1:]}, nil
}

// SharedTypeHandler is a reference-counted handle on a TypeHandler shared
// between a transaction context and the nested transactions embedded in it.
// The handler stays alive as long as any holder does. Holders acquire and
// release on a single thread; only the count itself is atomic, so a scan of
// it from tooling never tears.
type SharedTypeHandler struct {
	handler TypeHandler
	refs    *atomic.Int32
}

// NewSharedTypeHandler wraps h with an initial reference count of one.
func NewSharedTypeHandler(h TypeHandler) *SharedTypeHandler {
	return &SharedTypeHandler{handler: h, refs: atomic.NewInt32(1)}
}

// Handler returns the wrapped handler.
func (s *SharedTypeHandler) Handler() TypeHandler {
	return s.handler
}

// Acquire takes an additional reference and returns the same handle.
// Acquiring a fully released handle is a programming error and panics.
func (s *SharedTypeHandler) Acquire() *SharedTypeHandler {
	if s.refs.Load() <= 0 {
		panic("acquire of released type handler")
	}
	s.refs.Inc()
	return s
}

// Release drops one reference. Releasing more often than acquired panics.
func (s *SharedTypeHandler) Release() {
	if s.refs.Dec() < 0 {
		panic("type handler released more often than acquired")
	}
}

// Refs reports the current reference count.
func (s *SharedTypeHandler) Refs() int32 {
	return s.refs.Load()
}
