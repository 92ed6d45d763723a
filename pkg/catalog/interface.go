package catalog

import (
	"github.com/zhangbiao2009/primitive-db/pkg/types"
)

// IDColumn is the system-generated first column of every table.
const IDColumn = "ID"

// Column is a single column definition
type Column struct {
	Name string
	Type types.DataType
}

// String renders the column as "name:type"
func (c Column) String() string {
	return c.Name + ":" + c.Type.String()
}

// TableSchema represents a table's schema. It is immutable once built.
type TableSchema struct {
	name    string
	columns []Column
	lastID  int64
}

// Name returns the table name
func (s *TableSchema) Name() string {
	return s.name
}

// LastID is the highest ID ever issued for the table, 0 if none
func (s *TableSchema) LastID() int64 {
	return s.lastID
}

// Columns returns all column definitions, ID first
func (s *TableSchema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// UserColumns returns the columns a caller supplies values for, in schema order
func (s *TableSchema) UserColumns() []Column {
	out := make([]Column, 0, len(s.columns))
	for _, col := range s.columns {
		if col.Name != IDColumn {
			out = append(out, col)
		}
	}
	return out
}

// GetColumn retrieves a column by name
func (s *TableSchema) GetColumn(name string) (Column, bool) {
	for _, col := range s.columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// HasColumn checks if a column exists
func (s *TableSchema) HasColumn(name string) bool {
	_, found := s.GetColumn(name)
	return found
}

// GetColumnType gets the data type of a column
func (s *TableSchema) GetColumnType(name string) types.DataType {
	col, found := s.GetColumn(name)
	if !found {
		return types.TypeInvalid
	}
	return col.Type
}

// ColumnNames returns the column names in schema order
func (s *TableSchema) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for i, col := range s.columns {
		names[i] = col.Name
	}
	return names
}
