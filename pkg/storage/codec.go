package storage

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/zhangbiao2009/primitive-db/pkg/types"
)

// MarshalJSON encodes the record as a flat JSON object of native values
func (r Record) MarshalJSON() ([]byte, error) {
	natives := make(map[string]any, len(r))
	for k, v := range r {
		if v == nil {
			natives[k] = nil
			continue
		}
		natives[k] = v.Native()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(natives); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes a flat JSON object. Numbers must be integers.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	out := make(Record, len(raw))
	for k, x := range raw {
		v, err := decodeValue(x)
		if err != nil {
			return fmt.Errorf("column '%s': %w", k, err)
		}
		out[k] = v
	}
	*r = out
	return nil
}

func decodeValue(x any) (types.Value, error) {
	switch v := x.(type) {
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("non-integer number %s", v)
		}
		return types.NewIntValue(i), nil
	case string:
		return types.NewStringValue(v), nil
	case bool:
		return types.NewBoolValue(v), nil
	default:
		return nil, fmt.Errorf("unsupported JSON value %v", x)
	}
}

// Encode writes v as UTF-8 JSON with two-space indentation. HTML-sensitive
// characters and non-ASCII text are written as is.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// DecodeRecords reads a JSON array of records. Blank input is an empty table.
func DecodeRecords(data []byte) ([]Record, error) {
	if strings.TrimSpace(string(data)) == "" {
		return []Record{}, nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
