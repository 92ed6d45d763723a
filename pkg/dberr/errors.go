// Package dberr defines the typed failures reported by the engine.
//
// Every failure the engine can produce carries a Kind. Callers branch on the
// kind with errors.Is against the sentinel values below, or extract it with
// KindOf; the wrapped Cause (if any) is reachable through errors.Unwrap.
package dberr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an engine failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindTableExists
	KindTableNotFound
	KindInvalidDefinition
	KindUnsupportedType
	KindTypeConversion
	KindArityMismatch
	KindColumnType
	KindNoMatch
	KindStorage
	KindSyntax
)

var kindNames = map[Kind]string{
	KindUnknown:           "Unknown",
	KindTableExists:       "TableExists",
	KindTableNotFound:     "TableNotFound",
	KindInvalidDefinition: "InvalidDefinition",
	KindUnsupportedType:   "UnsupportedType",
	KindTypeConversion:    "TypeConversion",
	KindArityMismatch:     "ArityMismatch",
	KindColumnType:        "ColumnTypeError",
	KindNoMatch:           "NoMatch",
	KindStorage:           "StorageFailure",
	KindSyntax:            "Syntax",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels for errors.Is. They compare equal to any *Error of the same kind.
var (
	ErrTableExists       = &Error{Kind: KindTableExists}
	ErrTableNotFound     = &Error{Kind: KindTableNotFound}
	ErrInvalidDefinition = &Error{Kind: KindInvalidDefinition}
	ErrUnsupportedType   = &Error{Kind: KindUnsupportedType}
	ErrTypeConversion    = &Error{Kind: KindTypeConversion}
	ErrArityMismatch     = &Error{Kind: KindArityMismatch}
	ErrColumnType        = &Error{Kind: KindColumnType}
	ErrNoMatch           = &Error{Kind: KindNoMatch}
	ErrStorage           = &Error{Kind: KindStorage}
	ErrSyntax            = &Error{Kind: KindSyntax}
)

// Error is a typed engine failure.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Table is the table the operation targeted, if any.
	Table string

	// Column is the offending column for ColumnTypeError and friends.
	Column string

	// Detail is the human-readable description of this instance.
	Detail string

	// Cause is the underlying error, e.g. the TypeConversion wrapped by a
	// ColumnTypeError or the I/O error behind a StorageFailure.
	Cause error
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Column != "" {
		fmt.Fprintf(&sb, "column '%s': ", e.Column)
	}
	switch {
	case e.Detail != "":
		sb.WriteString(e.Detail)
	case e.Table != "":
		fmt.Fprintf(&sb, "%s: table '%s'", e.Kind, e.Table)
	default:
		sb.WriteString(e.Kind.String())
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an error of the given kind with a formatted detail.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind around cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or
// KindUnknown if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// TableExists reports an attempt to create a table that already exists.
func TableExists(table string) *Error {
	return &Error{Kind: KindTableExists, Table: table, Detail: fmt.Sprintf("table '%s' already exists", table)}
}

// TableNotFound reports a reference to a table missing from the catalog.
func TableNotFound(table string) *Error {
	return &Error{Kind: KindTableNotFound, Table: table, Detail: fmt.Sprintf("table '%s' does not exist", table)}
}

// ColumnType wraps a conversion failure with the column it happened in.
func ColumnType(table, column string, cause error) *Error {
	return &Error{Kind: KindColumnType, Table: table, Column: column, Cause: cause, Detail: "invalid value"}
}

// NoMatch reports an update or delete whose where-clause matched nothing.
func NoMatch(table string) *Error {
	return &Error{Kind: KindNoMatch, Table: table, Detail: "no records match the where condition"}
}

// Storage wraps a failure of the persistence substrate.
func Storage(op, key string, cause error) *Error {
	return &Error{Kind: KindStorage, Detail: fmt.Sprintf("storage %s '%s' failed", op, key), Cause: cause}
}
