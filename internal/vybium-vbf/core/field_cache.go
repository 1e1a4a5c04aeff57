package core

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultFieldCacheSize is the number of field contexts kept by NewFieldCache
// when no size is given.
const DefaultFieldCacheSize = 32

type fieldKey struct {
	n    uint
	poly uint32
}

// FieldCache memoizes Field construction per (n, polynomial) pair. Fields are
// immutable, so a cached instance may be shared by concurrent callers.
type FieldCache struct {
	cache *lru.Cache[fieldKey, *Field]
}

// NewFieldCache creates a cache holding at most size fields.
func NewFieldCache(size int) (*FieldCache, error) {
	if size <= 0 {
		size = DefaultFieldCacheSize
	}
	c, err := lru.New[fieldKey, *Field](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create field cache: %w", err)
	}
	return &FieldCache{cache: c}, nil
}

// Get returns the field for (n, poly), building it on a miss. A zero poly
// selects the default primitive polynomial for n.
func (c *FieldCache) Get(n uint, poly uint32) (*Field, error) {
	if poly == 0 {
		def, ok := DefaultPolynomial(n)
		if !ok {
			return nil, fmt.Errorf("%w: no default polynomial for n=%d", ErrInvalidDimension, n)
		}
		poly = def
	}
	key := fieldKey{n: n, poly: poly}
	if f, ok := c.cache.Get(key); ok {
		return f, nil
	}
	f, err := NewField(n, poly)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, f)
	return f, nil
}

// Len returns the number of cached fields.
func (c *FieldCache) Len() int {
	return c.cache.Len()
}

// Purge drops every cached field.
func (c *FieldCache) Purge() {
	c.cache.Purge()
}
