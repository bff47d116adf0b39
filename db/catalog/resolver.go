package catalog

// Resolver maps collection ids to names and back, caching every hit for its
// own lifetime. One resolver serves one transaction: lookups within a
// transaction keep seeing the identities that were current when first
// resolved, even if the catalog changes underneath.
//
// Resolvers are read-only and not safe for concurrent use; like the
// transaction context that owns them they belong to a single thread.
type Resolver struct {
	db  *Database
	src NameSource

	idCache   map[uint64]string
	nameCache map[string]uint64
}

// NewResolver builds a resolver over the given database, reading through src.
func NewResolver(db *Database, src NameSource) *Resolver {
	return &Resolver{
		db:        db,
		src:       src,
		idCache:   make(map[uint64]string),
		nameCache: make(map[string]uint64),
	}
}

// Database returns the database this resolver is scoped to.
func (r *Resolver) Database() *Database {
	return r.db
}

// CollectionName resolves a collection id to its name. A miss surfaces
// ErrCollectionNotFound; it never invalidates the resolver.
func (r *Resolver) CollectionName(id uint64) (string, error) {
	if name, ok := r.idCache[id]; ok {
		return name, nil
	}
	c, err := r.src.CollectionByID(id)
	if err != nil {
		return "", err
	}
	r.idCache[id] = c.Name()
	r.nameCache[c.Name()] = id
	return c.Name(), nil
}

// CollectionID resolves a collection name to its id.
func (r *Resolver) CollectionID(name string) (uint64, error) {
	if id, ok := r.nameCache[name]; ok {
		return id, nil
	}
	c, err := r.src.CollectionByName(name)
	if err != nil {
		return 0, err
	}
	r.nameCache[name] = c.ID()
	r.idCache[c.ID()] = name
	return c.ID(), nil
}
