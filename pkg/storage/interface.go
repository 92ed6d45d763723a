package storage

import (
	"github.com/zhangbiao2009/primitive-db/pkg/catalog"
	"github.com/zhangbiao2009/primitive-db/pkg/types"
)

// Store is the persistence substrate. It keeps one metadata blob holding
// the whole catalog and one blob per table holding that table's records.
// Every call reads or overwrites a whole blob.
type Store interface {
	// LoadCatalog returns the persisted catalog, or an empty one if none
	// has been saved yet
	LoadCatalog() (*catalog.Catalog, error)

	// SaveCatalog overwrites the persisted catalog
	SaveCatalog(cat *catalog.Catalog) error

	// LoadTable returns the records of a table, or an empty slice if the
	// table has no blob
	LoadTable(tableName string) ([]Record, error)

	// SaveTable overwrites the records of a table
	SaveTable(tableName string, records []Record) error

	// RemoveTable deletes a table's blob; a missing blob is not an error
	RemoveTable(tableName string) error
}

// Record represents a row: column name to typed value
type Record map[string]types.Value

// FilterFunc is a function that filters records
type FilterFunc func(rec Record) bool

// Clone returns a shallow copy; values are immutable so this is a full copy
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ID returns the record's ID column
func (r Record) ID() (int64, bool) {
	v, ok := r[catalog.IDColumn].(types.IntValue)
	if !ok {
		return 0, false
	}
	return v.Int(), true
}

// CloneRecords deep-copies a slice of records
func CloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = rec.Clone()
	}
	return out
}
