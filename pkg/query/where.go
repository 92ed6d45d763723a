// Package query evaluates where-clauses against records.
//
// A Where is a conjunction: every condition must hold. A condition names a
// column and either a literal (equality) or an operator and a value. A
// record that lacks a referenced column never matches, and values of
// different types never compare as equal, ordered, or unequal.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zhangbiao2009/primitive-db/pkg/storage"
	"github.com/zhangbiao2009/primitive-db/pkg/types"
)

// Operator is a comparison operator
type Operator string

const (
	OpEq Operator = "="
	OpGt Operator = ">"
	OpLt Operator = "<"
	OpGe Operator = ">="
	OpLe Operator = "<="
	OpNe Operator = "!="
)

// Operators lists every operator, longest token first, which is the order
// a parser must try them in.
var Operators = []Operator{OpGe, OpLe, OpNe, OpGt, OpLt, OpEq}

// ParseOperator maps a token to an Operator
func ParseOperator(token string) (Operator, bool) {
	for _, op := range Operators {
		if string(op) == token {
			return op, true
		}
	}
	return "", false
}

// Condition is one column test
type Condition struct {
	Op    Operator
	Value types.Value
}

// Eq builds the bare-literal equality condition
func Eq(v types.Value) Condition {
	return Condition{Op: OpEq, Value: v}
}

// Cmp builds an operator condition
func Cmp(op Operator, v types.Value) Condition {
	return Condition{Op: op, Value: v}
}

// Holds reports whether the stored value satisfies the condition.
func (c Condition) Holds(stored types.Value) bool {
	cmp, ok := types.Compare(stored, c.Value)
	if !ok {
		return false
	}

	switch c.Op {
	case OpEq, "":
		return cmp == 0
	case OpNe:
		return cmp != 0
	case OpGt:
		return cmp > 0
	case OpLt:
		return cmp < 0
	case OpGe:
		return cmp >= 0
	case OpLe:
		return cmp <= 0
	}
	return false
}

func (c Condition) String() string {
	op := c.Op
	if op == "" {
		op = OpEq
	}
	return fmt.Sprintf("%s %s", op, types.Quote(c.Value))
}

// Where maps column names to conditions. A nil Where means no filtering.
type Where map[string]Condition

// Set maps column names to new values for an update
type Set map[string]types.Value

// Columns returns the referenced columns in sorted order
func (w Where) Columns() []string {
	cols := make([]string, 0, len(w))
	for col := range w {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// Matches reports whether rec satisfies every condition. Columns are
// checked in sorted order and evaluation stops at the first failure.
func Matches(rec storage.Record, where Where) bool {
	for _, col := range where.Columns() {
		stored, ok := rec[col]
		if !ok {
			return false
		}
		if !where[col].Holds(stored) {
			return false
		}
	}
	return true
}

// Filter returns a storage.FilterFunc for where
func Filter(where Where) storage.FilterFunc {
	return func(rec storage.Record) bool {
		return Matches(rec, where)
	}
}

// Key serializes the where-clause deterministically. Values carry their
// type so that 1 and "1" produce different keys. A nil Where has key "*".
func (w Where) Key() string {
	if w == nil {
		return "*"
	}

	var sb strings.Builder
	sb.WriteByte('{')
	for i, col := range w.Columns() {
		if i > 0 {
			sb.WriteByte(',')
		}
		cond := w[col]
		op := cond.Op
		if op == "" {
			op = OpEq
		}
		typ := "nil"
		if cond.Value != nil {
			typ = cond.Value.Type().String()
		}
		fmt.Fprintf(&sb, "%q%s%s(%s)", col, op, typ, types.Quote(cond.Value))
	}
	sb.WriteByte('}')
	return sb.String()
}

// String renders the clause the way the command parser reads it
func (w Where) String() string {
	parts := make([]string, 0, len(w))
	for _, col := range w.Columns() {
		parts = append(parts, col+" "+w[col].String())
	}
	return strings.Join(parts, " and ")
}
