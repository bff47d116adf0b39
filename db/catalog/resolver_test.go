package catalog

import (
	"testing"

	"github.com/pingcap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverLookups(t *testing.T) {
	db := NewDatabase(1, "test", 0)
	orders, err := db.CreateCollection("orders")
	require.NoError(t, err)

	r := NewResolver(db, db)
	assert.Equal(t, db, r.Database())

	name, err := r.CollectionName(orders.ID())
	require.NoError(t, err)
	assert.Equal(t, "orders", name)

	id, err := r.CollectionID("orders")
	require.NoError(t, err)
	assert.Equal(t, orders.ID(), id)
}

func TestResolverCachesAcrossCatalogChanges(t *testing.T) {
	db := NewDatabase(1, "test", 0)
	orders, err := db.CreateCollection("orders")
	require.NoError(t, err)

	r := NewResolver(db, db)
	_, err = r.CollectionName(orders.ID())
	require.NoError(t, err)

	// The resolver keeps the transaction's view even after the catalog
	// changes underneath it.
	require.NoError(t, db.DropCollection("orders"))
	name, err := r.CollectionName(orders.ID())
	require.NoError(t, err)
	assert.Equal(t, "orders", name)

	id, err := r.CollectionID("orders")
	require.NoError(t, err)
	assert.Equal(t, orders.ID(), id)
}

func TestResolverMiss(t *testing.T) {
	db := NewDatabase(1, "test", 0)
	r := NewResolver(db, db)

	_, err := r.CollectionName(42)
	assert.Equal(t, ErrCollectionNotFound, errors.Cause(err))

	_, err = r.CollectionID("nope")
	assert.Equal(t, ErrCollectionNotFound, errors.Cause(err))

	// A miss never poisons the resolver.
	orders, err := db.CreateCollection("orders")
	require.NoError(t, err)
	name, err := r.CollectionName(orders.ID())
	require.NoError(t, err)
	assert.Equal(t, "orders", name)
}
