package catalog

import (
	"sync"

	"github.com/ngaut/log"
	"github.com/pingcap/errors"

	"github.com/docstore-incubator/tinydoc/db/collection"
)

var (
	// ErrCollectionNotFound is returned when an id or name cannot be mapped
	// to a collection.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrCollectionExists is returned when creating a collection whose name
	// is already taken.
	ErrCollectionExists = errors.New("collection already exists")
)

// NameSource is the read-only id↔name view resolvers are built from. It is a
// capability: holders can look collections up but not change the catalog.
type NameSource interface {
	CollectionByID(id uint64) (*collection.Collection, error)
	CollectionByName(name string) (*collection.Collection, error)
}

// Database is the identity scope for collections, ditches and resolvers.
// Databases are compared only by identity; two handles are the same database
// iff they are the same pointer.
type Database struct {
	id   uint64
	name string

	mu         sync.RWMutex
	nextCollID uint64
	byID       map[uint64]*collection.Collection
	byName     map[string]*collection.Collection

	maxDitchesPerCollection int
}

// NewDatabase creates an empty database. maxDitchesPerCollection bounds every
// collection's ditch list; zero means unbounded.
func NewDatabase(id uint64, name string, maxDitchesPerCollection int) *Database {
	return &Database{
		id:                      id,
		name:                    name,
		nextCollID:              1,
		byID:                    make(map[uint64]*collection.Collection),
		byName:                  make(map[string]*collection.Collection),
		maxDitchesPerCollection: maxDitchesPerCollection,
	}
}

func (d *Database) ID() uint64 {
	return d.id
}

func (d *Database) Name() string {
	return d.name
}

// CreateCollection opens a new collection under the next free id.
func (d *Database) CreateCollection(name string) (*collection.Collection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.byName[name]; ok {
		return nil, errors.Annotatef(ErrCollectionExists, "name %q", name)
	}
	id := d.nextCollID
	d.nextCollID++
	c := collection.NewCollection(id, name, d.maxDitchesPerCollection)
	d.byID[id] = c
	d.byName[name] = c
	log.Infof("[%s] created collection %q (id %d)", d.name, name, id)
	return c, nil
}

// DropCollection closes the named collection and removes it from the catalog.
func (d *Database) DropCollection(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.byName[name]
	if !ok {
		return errors.Annotatef(ErrCollectionNotFound, "name %q", name)
	}
	c.Close()
	delete(d.byName, name)
	delete(d.byID, c.ID())
	log.Infof("[%s] dropped collection %q (id %d)", d.name, name, c.ID())
	return nil
}

// CollectionByID implements NameSource.
func (d *Database) CollectionByID(id uint64) (*collection.Collection, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.byID[id]
	if !ok {
		return nil, errors.Annotatef(ErrCollectionNotFound, "id %d", id)
	}
	return c, nil
}

// CollectionByName implements NameSource.
func (d *Database) CollectionByName(name string) (*collection.Collection, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.byName[name]
	if !ok {
		return nil, errors.Annotatef(ErrCollectionNotFound, "name %q", name)
	}
	return c, nil
}

// Collections returns a snapshot of the open collections, in no particular
// order. The compactor iterates this per pass.
func (d *Database) Collections() []*collection.Collection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*collection.Collection, 0, len(d.byID))
	for _, c := range d.byID {
		out = append(out, c)
	}
	return out
}
