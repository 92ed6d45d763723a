package executor

import (
	"fmt"

	"github.com/zhangbiao2009/primitive-db/pkg/catalog"
	"github.com/zhangbiao2009/primitive-db/pkg/dberr"
	"github.com/zhangbiao2009/primitive-db/pkg/logging"
	"github.com/zhangbiao2009/primitive-db/pkg/query"
	"github.com/zhangbiao2009/primitive-db/pkg/storage"
	"github.com/zhangbiao2009/primitive-db/pkg/types"
)

// TableInfo summarizes a table for display
type TableInfo struct {
	Name        string
	Columns     []catalog.Column
	RecordCount int
}

// Executor runs table operations against a store. Every operation is a
// full load-modify-save cycle; validation happens before the load, so a
// failed operation never writes.
type Executor struct {
	storage storage.Store
}

// NewExecutor creates a new executor with the given storage
func NewExecutor(store storage.Store) *Executor {
	return &Executor{
		storage: store,
	}
}

// LoadCatalog reads the current catalog from storage
func (e *Executor) LoadCatalog() (*catalog.Catalog, error) {
	return e.storage.LoadCatalog()
}

// CreateTable adds a table to the catalog, persists the catalog and
// creates an empty data blob. The updated catalog is returned.
func (e *Executor) CreateTable(cat *catalog.Catalog, name string, defs []string) (*catalog.Catalog, error) {
	next, err := cat.CreateTable(name, defs)
	if err != nil {
		return nil, err
	}

	if err := e.storage.SaveCatalog(next); err != nil {
		return nil, err
	}
	if err := e.storage.SaveTable(name, []storage.Record{}); err != nil {
		return nil, err
	}

	logging.WithTable(name).Debug("table created", "columns", len(defs)+1)
	return next, nil
}

// DropTable removes a table from the catalog, persists the catalog and
// removes the table's data blob.
func (e *Executor) DropTable(cat *catalog.Catalog, name string) (*catalog.Catalog, error) {
	next, err := cat.DropTable(name)
	if err != nil {
		return nil, err
	}

	if err := e.storage.SaveCatalog(next); err != nil {
		return nil, err
	}
	if err := e.storage.RemoveTable(name); err != nil {
		// Orphaned blob; CreateTable overwrites it if the name is reused.
		logging.WithTable(name).Warn("failed to remove table data", "error", err)
	}

	logging.WithTable(name).Debug("table dropped")
	return next, nil
}

// ListTables lists table names in catalog order
func (e *Executor) ListTables(cat *catalog.Catalog) []string {
	return cat.ListTables()
}

// Insert appends a record built from values, given in schema order
// without ID. The new record is returned.
//
// The ID is one past both the largest stored ID and the table's
// high-water mark, so IDs are never handed out twice, even after the
// newest record is deleted.
func (e *Executor) Insert(cat *catalog.Catalog, tableName string, values []types.Value) (storage.Record, error) {
	schema, found := cat.GetTable(tableName)
	if !found {
		return nil, dberr.TableNotFound(tableName)
	}

	userColumns := schema.UserColumns()
	if len(values) != len(userColumns) {
		return nil, dberr.New(dberr.KindArityMismatch, "expected %d values, got %d", len(userColumns), len(values))
	}

	// Coerce everything before touching storage
	record := make(storage.Record, len(userColumns)+1)
	for i, col := range userColumns {
		v, err := types.CoerceValue(values[i], col.Type)
		if err != nil {
			return nil, dberr.ColumnType(tableName, col.Name, err)
		}
		record[col.Name] = v
	}

	records, err := e.storage.LoadTable(tableName)
	if err != nil {
		return nil, err
	}

	// cat may be stale; the high-water mark comes from storage
	current, err := e.storage.LoadCatalog()
	if err != nil {
		return nil, err
	}
	var lastID int64
	if stored, ok := current.GetTable(tableName); ok {
		lastID = stored.LastID()
	}
	id := max(nextID(records), lastID+1)

	record[catalog.IDColumn] = types.NewIntValue(id)
	records = append(records, record)

	if err := e.storage.SaveTable(tableName, records); err != nil {
		return nil, err
	}

	// Best effort: the saved records already keep id from being reissued
	if bumped, err := current.RecordID(tableName, id); err != nil {
		logging.WithTable(tableName).Warn("failed to record last id", "id", id, "error", err)
	} else if err := e.storage.SaveCatalog(bumped); err != nil {
		logging.WithTable(tableName).Warn("failed to record last id", "id", id, "error", err)
	}

	logging.WithTable(tableName).Debug("record inserted", "id", id)
	return record, nil
}

// Select returns the records matching where, in stored order. A nil
// where returns every record.
func (e *Executor) Select(cat *catalog.Catalog, tableName string, where query.Where) ([]storage.Record, error) {
	if _, found := cat.GetTable(tableName); !found {
		return nil, dberr.TableNotFound(tableName)
	}

	records, err := e.storage.LoadTable(tableName)
	if err != nil {
		return nil, err
	}
	if where == nil {
		return records, nil
	}

	filter := query.Filter(where)
	out := make([]storage.Record, 0, len(records))
	for _, rec := range records {
		if filter(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Update assigns set to every record matching where and returns how many
// records matched. Unknown columns and ID are ignored in set.
func (e *Executor) Update(cat *catalog.Catalog, tableName string, set query.Set, where query.Where) (int, error) {
	schema, found := cat.GetTable(tableName)
	if !found {
		return 0, dberr.TableNotFound(tableName)
	}

	assignments := make(map[string]types.Value, len(set))
	for colName, val := range set {
		col, ok := schema.GetColumn(colName)
		if !ok || colName == catalog.IDColumn {
			continue
		}
		v, err := types.CoerceValue(val, col.Type)
		if err != nil {
			return 0, dberr.ColumnType(tableName, colName, err)
		}
		assignments[colName] = v
	}

	records, err := e.storage.LoadTable(tableName)
	if err != nil {
		return 0, err
	}

	filter := query.Filter(where)
	matched := 0
	for _, rec := range records {
		if !filter(rec) {
			continue
		}
		for colName, v := range assignments {
			if _, ok := rec[colName]; ok {
				rec[colName] = v
			}
		}
		matched++
	}

	if matched == 0 {
		return 0, dberr.NoMatch(tableName)
	}

	if err := e.storage.SaveTable(tableName, records); err != nil {
		return 0, err
	}

	logging.WithTable(tableName).Debug("records updated", "count", matched)
	return matched, nil
}

// Delete removes every record matching where and returns how many were
// removed.
func (e *Executor) Delete(cat *catalog.Catalog, tableName string, where query.Where) (int, error) {
	if _, found := cat.GetTable(tableName); !found {
		return 0, dberr.TableNotFound(tableName)
	}

	records, err := e.storage.LoadTable(tableName)
	if err != nil {
		return 0, err
	}

	filter := query.Filter(where)
	kept := make([]storage.Record, 0, len(records))
	deleted := 0
	for _, rec := range records {
		if filter(rec) {
			deleted++
		} else {
			kept = append(kept, rec)
		}
	}

	if deleted == 0 {
		return 0, dberr.NoMatch(tableName)
	}

	if err := e.storage.SaveTable(tableName, kept); err != nil {
		return 0, err
	}

	logging.WithTable(tableName).Debug("records deleted", "count", deleted)
	return deleted, nil
}

// TableInfo returns the table's schema and record count
func (e *Executor) TableInfo(cat *catalog.Catalog, tableName string) (*TableInfo, error) {
	schema, found := cat.GetTable(tableName)
	if !found {
		return nil, dberr.TableNotFound(tableName)
	}

	records, err := e.storage.LoadTable(tableName)
	if err != nil {
		return nil, fmt.Errorf("info %s: %w", tableName, err)
	}

	return &TableInfo{
		Name:        tableName,
		Columns:     schema.Columns(),
		RecordCount: len(records),
	}, nil
}

// nextID is one past the largest existing ID, or 1 for an empty table.
func nextID(records []storage.Record) int64 {
	var maxID int64
	for _, rec := range records {
		if id, ok := rec.ID(); ok && id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}
