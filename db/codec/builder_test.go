package codec

import (
	"testing"

	"github.com/pingcap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstore-incubator/tinydoc/db/catalog"
)

type testDoc struct {
	Key   string `msgpack:"_key"`
	Value int    `msgpack:"value"`
}

func newTestHandler(t *testing.T) (RefHandler, uint64) {
	db := catalog.NewDatabase(1, "test", 0)
	orders, err := db.CreateCollection("orders")
	require.NoError(t, err)
	return NewRefHandler(db, catalog.NewResolver(db, db)), orders.ID()
}

func TestBuilderDocumentRoundtrip(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddDocument(testDoc{Key: "k1", Value: 7}))
	assert.True(t, b.Len() > 0)

	var out testDoc
	require.NoError(t, DecodeDocument(b.Bytes(), &out))
	assert.Equal(t, testDoc{Key: "k1", Value: 7}, out)

	b.Reset()
	assert.Equal(t, 0, b.Len())
}

func TestBuilderRefCompact(t *testing.T) {
	h, cid := newTestHandler(t)
	opts := &Options{Handler: h, ExpandReferences: false}

	b := NewBuilder()
	ref := DocumentRef{CollectionID: cid, Key: "k1"}
	require.NoError(t, b.AddRef(opts, ref))

	out, err := DecodeRef(opts, b.Bytes())
	require.NoError(t, err)
	assert.Equal(t, ref, out)
}

func TestBuilderRefExpanded(t *testing.T) {
	h, cid := newTestHandler(t)
	opts := &Options{Handler: h, ExpandReferences: true}

	b := NewBuilder()
	require.NoError(t, b.AddRef(opts, DocumentRef{CollectionID: cid, Key: "k1"}))

	// The expanded form is the resolved "collection/key" string.
	var s string
	require.NoError(t, DecodeDocument(b.Bytes(), &s))
	assert.Equal(t, "orders/k1", s)

	out, err := DecodeRef(opts, b.Bytes())
	require.NoError(t, err)
	assert.Equal(t, DocumentRef{CollectionID: cid, Key: "k1"}, out)
}

func TestRefHandlerErrors(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.RefToString(DocumentRef{CollectionID: 42, Key: "k"})
	assert.Equal(t, catalog.ErrCollectionNotFound, errors.Cause(err))

	for _, s := range []string{"", "orders", "/k1", "orders/"} {
		_, err = h.RefFromString(s)
		assert.Equal(t, ErrMalformedRef, errors.Cause(err), "input %q", s)
	}

	_, err = h.RefFromString("nope/k1")
	assert.Equal(t, catalog.ErrCollectionNotFound, errors.Cause(err))
}
