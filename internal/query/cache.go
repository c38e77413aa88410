package query

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of (snapshot, query) match sets kept.
const DefaultCacheSize = 256

type cacheKey struct {
	snapshot string
	query    string
}

// match is the fuzzy score of the project at index in the engine's list.
type match struct {
	index int
	score int
}

// Cache holds fuzzy match sets across searches. Keys include the snapshot
// ID, so entries from a previous snapshot are never hit and age out.
// Bonuses are time dependent and are never cached.
type Cache struct {
	lru *lru.Cache[cacheKey, []match]
}

// NewCache creates a Cache holding up to size match sets.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, _ := lru.New[cacheKey, []match](size)
	return &Cache{lru: c}
}

func (c *Cache) get(snapshot, query string) ([]match, bool) {
	if c == nil {
		return nil, false
	}
	return c.lru.Get(cacheKey{snapshot: snapshot, query: query})
}

func (c *Cache) add(snapshot, query string, matches []match) {
	if c == nil {
		return
	}
	c.lru.Add(cacheKey{snapshot: snapshot, query: query}, matches)
}

// Len returns the number of cached match sets.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	if c != nil {
		c.lru.Purge()
	}
}
