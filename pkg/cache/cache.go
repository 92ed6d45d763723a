// Package cache memoizes select results by table and where-clause.
//
// The cache does not know which operations mutate data. Whoever owns it
// must call InvalidateAll after every successful write.
package cache

import (
	"github.com/zhangbiao2009/primitive-db/pkg/query"
	"github.com/zhangbiao2009/primitive-db/pkg/storage"
)

// ComputeFunc produces the records for a cache miss
type ComputeFunc func() ([]storage.Record, error)

// Stats reports cache effectiveness
type Stats struct {
	Hits    int
	Misses  int
	Entries int
}

// QueryCache maps table+where keys to select results
type QueryCache struct {
	entries map[string][]storage.Record
	hits    int
	misses  int
}

// New creates an empty cache
func New() *QueryCache {
	return &QueryCache{
		entries: make(map[string][]storage.Record),
	}
}

// Key builds the cache key for a table and where-clause
func Key(table string, where query.Where) string {
	return table + "|" + where.Key()
}

// Get returns the cached result for table and where, calling compute on a
// miss. Failed computations are not cached. Callers get their own copy of
// the records.
func (c *QueryCache) Get(table string, where query.Where, compute ComputeFunc) ([]storage.Record, error) {
	key := Key(table, where)
	if records, ok := c.entries[key]; ok {
		c.hits++
		return storage.CloneRecords(records), nil
	}

	c.misses++
	records, err := compute()
	if err != nil {
		return nil, err
	}
	c.entries[key] = storage.CloneRecords(records)
	return records, nil
}

// InvalidateAll drops every entry
func (c *QueryCache) InvalidateAll() {
	c.entries = make(map[string][]storage.Record)
}

// Stats returns hit/miss counters and the current entry count
func (c *QueryCache) Stats() Stats {
	return Stats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}
