package catalog

import (
	"testing"

	"github.com/pingcap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndLookupCollection(t *testing.T) {
	db := NewDatabase(1, "test", 0)

	orders, err := db.CreateCollection("orders")
	require.NoError(t, err)
	users, err := db.CreateCollection("users")
	require.NoError(t, err)

	// Ids are assigned monotonically from 1.
	assert.Equal(t, uint64(1), orders.ID())
	assert.Equal(t, uint64(2), users.ID())

	byID, err := db.CollectionByID(orders.ID())
	require.NoError(t, err)
	assert.Equal(t, orders, byID)

	byName, err := db.CollectionByName("users")
	require.NoError(t, err)
	assert.Equal(t, users, byName)

	assert.Len(t, db.Collections(), 2)
}

func TestCreateDuplicateCollection(t *testing.T) {
	db := NewDatabase(1, "test", 0)
	_, err := db.CreateCollection("orders")
	require.NoError(t, err)

	_, err = db.CreateCollection("orders")
	assert.Equal(t, ErrCollectionExists, errors.Cause(err))
}

func TestLookupMissingCollection(t *testing.T) {
	db := NewDatabase(1, "test", 0)

	_, err := db.CollectionByID(42)
	assert.Equal(t, ErrCollectionNotFound, errors.Cause(err))

	_, err = db.CollectionByName("nope")
	assert.Equal(t, ErrCollectionNotFound, errors.Cause(err))
}

func TestDropCollection(t *testing.T) {
	db := NewDatabase(1, "test", 0)
	orders, err := db.CreateCollection("orders")
	require.NoError(t, err)

	require.NoError(t, db.DropCollection("orders"))
	assert.True(t, orders.IsClosed())

	_, err = db.CollectionByName("orders")
	assert.Equal(t, ErrCollectionNotFound, errors.Cause(err))

	err = db.DropCollection("orders")
	assert.Equal(t, ErrCollectionNotFound, errors.Cause(err))
}
