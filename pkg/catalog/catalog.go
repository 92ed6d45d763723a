// Package catalog holds the schema catalog: the ordered mapping from table
// name to column definitions.
//
// A Catalog is treated as a value. CreateTable and DropTable return a new
// Catalog and never modify the receiver, so a caller that fails to persist
// the result still holds the previous state.
package catalog

import (
	"strings"

	"github.com/zhangbiao2009/primitive-db/pkg/dberr"
	"github.com/zhangbiao2009/primitive-db/pkg/types"
)

// Catalog maps table names to schemas, preserving insertion order. Each
// schema also carries the table's ID high-water mark.
type Catalog struct {
	names  []string
	tables map[string]*TableSchema
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{
		tables: make(map[string]*TableSchema),
	}
}

// Clone returns a copy that can be modified independently
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{
		names:  make([]string, len(c.names)),
		tables: make(map[string]*TableSchema, len(c.tables)),
	}
	copy(out.names, c.names)
	for name, schema := range c.tables {
		out.tables[name] = schema
	}
	return out
}

// Len returns the number of tables
func (c *Catalog) Len() int {
	return len(c.names)
}

// CreateTable returns a catalog with the new table added. The schema is
// the ID column followed by the validated definitions, in the given order.
func (c *Catalog) CreateTable(name string, defs []string) (*Catalog, error) {
	if err := validateTableName(name); err != nil {
		return nil, err
	}
	if _, exists := c.tables[name]; exists {
		return nil, dberr.TableExists(name)
	}

	columns := make([]Column, 0, len(defs)+1)
	columns = append(columns, Column{Name: IDColumn, Type: types.TypeInt})
	seen := map[string]bool{IDColumn: true}

	for _, def := range defs {
		colName, colType, err := types.ValidateColumnDefinition(def)
		if err != nil {
			return nil, err
		}
		if seen[colName] {
			return nil, dberr.New(dberr.KindInvalidDefinition, "duplicate column '%s' in table '%s'", colName, name)
		}
		seen[colName] = true
		columns = append(columns, Column{Name: colName, Type: colType})
	}

	out := c.Clone()
	out.names = append(out.names, name)
	out.tables[name] = &TableSchema{name: name, columns: columns}
	return out, nil
}

// DropTable returns a catalog without the named table
func (c *Catalog) DropTable(name string) (*Catalog, error) {
	if _, exists := c.tables[name]; !exists {
		return nil, dberr.TableNotFound(name)
	}

	out := c.Clone()
	delete(out.tables, name)
	out.names = out.names[:0]
	for _, n := range c.names {
		if n != name {
			out.names = append(out.names, n)
		}
	}
	return out, nil
}

// RecordID returns a catalog in which id counts as issued for the table.
// LastID never moves backwards.
func (c *Catalog) RecordID(name string, id int64) (*Catalog, error) {
	schema, exists := c.tables[name]
	if !exists {
		return nil, dberr.TableNotFound(name)
	}
	if id <= schema.lastID {
		return c, nil
	}

	out := c.Clone()
	bumped := *schema
	bumped.lastID = id
	out.tables[name] = &bumped
	return out, nil
}

// GetTable retrieves a table schema
func (c *Catalog) GetTable(name string) (*TableSchema, bool) {
	schema, ok := c.tables[name]
	return schema, ok
}

// ListTables lists all tables in insertion order
func (c *Catalog) ListTables() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Columns returns the table's column definitions, ID first
func (c *Catalog) Columns(name string) ([]Column, error) {
	schema, ok := c.tables[name]
	if !ok {
		return nil, dberr.TableNotFound(name)
	}
	return schema.Columns(), nil
}

// UserColumns returns the table's columns without ID
func (c *Catalog) UserColumns(name string) ([]Column, error) {
	schema, ok := c.tables[name]
	if !ok {
		return nil, dberr.TableNotFound(name)
	}
	return schema.UserColumns(), nil
}

// ColumnTypes maps each column of the table to its type
func (c *Catalog) ColumnTypes(name string) (map[string]types.DataType, error) {
	cols, err := c.Columns(name)
	if err != nil {
		return nil, err
	}
	out := make(map[string]types.DataType, len(cols))
	for _, col := range cols {
		out[col.Name] = col.Type
	}
	return out, nil
}

// validateTableName rejects names that cannot double as a blob key.
func validateTableName(name string) error {
	if strings.TrimSpace(name) == "" {
		return dberr.New(dberr.KindInvalidDefinition, "table name must not be empty")
	}
	if name != strings.TrimSpace(name) || strings.ContainsAny(name, `/\:`) || strings.HasPrefix(name, ".") {
		return dberr.New(dberr.KindInvalidDefinition, "invalid table name: %q", name)
	}
	return nil
}
