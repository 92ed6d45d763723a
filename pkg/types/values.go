package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a typed cell value
type Value interface {
	Type() DataType
	// Native returns the Go value: int64, string or bool.
	Native() any
	String() string
}

// IntValue represents an integer value
type IntValue struct {
	value int64
}

// NewIntValue creates a new integer value
func NewIntValue(value int64) Value {
	return IntValue{value: value}
}

func (v IntValue) Type() DataType {
	return TypeInt
}

func (v IntValue) Native() any {
	return v.value
}

// Int returns the underlying integer
func (v IntValue) Int() int64 {
	return v.value
}

func (v IntValue) String() string {
	return strconv.FormatInt(v.value, 10)
}

// StringValue represents a string value
type StringValue struct {
	value string
}

// NewStringValue creates a new string value
func NewStringValue(value string) Value {
	return StringValue{value: value}
}

func (v StringValue) Type() DataType {
	return TypeStr
}

func (v StringValue) Native() any {
	return v.value
}

func (v StringValue) String() string {
	return v.value
}

// BoolValue represents a boolean value
type BoolValue struct {
	value bool
}

// NewBoolValue creates a new boolean value
func NewBoolValue(value bool) Value {
	return BoolValue{value: value}
}

func (v BoolValue) Type() DataType {
	return TypeBool
}

func (v BoolValue) Native() any {
	return v.value
}

// Bool returns the underlying boolean
func (v BoolValue) Bool() bool {
	return v.value
}

func (v BoolValue) String() string {
	return strconv.FormatBool(v.value)
}

// ValueOf lifts a Go native into a Value. Any signed or unsigned integer
// becomes an IntValue; a Value is returned unchanged.
func ValueOf(x any) (Value, error) {
	switch v := x.(type) {
	case Value:
		return v, nil
	case int:
		return NewIntValue(int64(v)), nil
	case int8:
		return NewIntValue(int64(v)), nil
	case int16:
		return NewIntValue(int64(v)), nil
	case int32:
		return NewIntValue(int64(v)), nil
	case int64:
		return NewIntValue(v), nil
	case uint8:
		return NewIntValue(int64(v)), nil
	case uint16:
		return NewIntValue(int64(v)), nil
	case uint32:
		return NewIntValue(int64(v)), nil
	case string:
		return NewStringValue(v), nil
	case bool:
		return NewBoolValue(v), nil
	default:
		return nil, fmt.Errorf("unsupported value %v of type %T", x, x)
	}
}

// MustValueOf is like ValueOf but panics on unsupported input.
// Intended for literals in tests and static tables.
func MustValueOf(x any) Value {
	v, err := ValueOf(x)
	if err != nil {
		panic(err)
	}
	return v
}

// Equal reports whether a and b have the same type and value.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Type() == b.Type() && a.Native() == b.Native()
}

// Compare orders a against b. ok is false when the two values have
// different types; no coercion is attempted.
func Compare(a, b Value) (cmp int, ok bool) {
	if a == nil || b == nil || a.Type() != b.Type() {
		return 0, false
	}

	switch av := a.Native().(type) {
	case int64:
		bv := b.Native().(int64)
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		}
		return 0, true
	case string:
		return strings.Compare(av, b.Native().(string)), true
	case bool:
		bv := b.Native().(bool)
		switch {
		case av == bv:
			return 0, true
		case !av:
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

// Quote renders v the way the command parser reads it back: strings are
// double-quoted, everything else is bare.
func Quote(v Value) string {
	if v == nil {
		return "null"
	}
	if v.Type() == TypeStr {
		return strconv.Quote(v.String())
	}
	return v.String()
}
