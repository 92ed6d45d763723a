package catalog

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/zhangbiao2009/primitive-db/pkg/types"
)

// tableEntry is the persisted shape of one table:
// {"columns": ["ID:int", "name:str"], "last_id": 3}
type tableEntry struct {
	Columns []string `json:"columns"`
	LastID  int64    `json:"last_id,omitempty"`
}

// MarshalJSON encodes the catalog as a JSON object keyed by table name,
// with keys in insertion order.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		schema := c.tables[name]
		entry := tableEntry{
			Columns: make([]string, len(schema.columns)),
			LastID:  schema.lastID,
		}
		for j, col := range schema.columns {
			entry.Columns[j] = col.String()
		}
		val, err := marshal(entry)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshal is json.Marshal without HTML escaping.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes the object written by MarshalJSON, keeping the
// order of its keys. A JSON null yields an empty catalog.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	*c = *New()

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("catalog: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("catalog: expected table name, got %v", tok)
		}

		var entry tableEntry
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("catalog: table '%s': %w", name, err)
		}

		schema, err := decodeSchema(name, entry)
		if err != nil {
			return err
		}
		if _, dup := c.tables[name]; dup {
			return fmt.Errorf("catalog: duplicate table '%s'", name)
		}
		c.names = append(c.names, name)
		c.tables[name] = schema
	}

	if _, err := dec.Token(); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func decodeSchema(table string, entry tableEntry) (*TableSchema, error) {
	defs := entry.Columns
	if len(defs) == 0 {
		return nil, fmt.Errorf("catalog: table '%s' has no columns", table)
	}

	columns := make([]Column, 0, len(defs))
	for _, def := range defs {
		name, t, err := types.ValidateColumnDefinition(def)
		if err != nil {
			return nil, fmt.Errorf("catalog: table '%s': %w", table, err)
		}
		columns = append(columns, Column{Name: name, Type: t})
	}

	if columns[0].Name != IDColumn || columns[0].Type != types.TypeInt {
		return nil, fmt.Errorf("catalog: table '%s' must start with %s:int", table, IDColumn)
	}
	if entry.LastID < 0 {
		return nil, fmt.Errorf("catalog: table '%s' has negative last_id", table)
	}
	return &TableSchema{name: table, columns: columns, lastID: entry.LastID}, nil
}
