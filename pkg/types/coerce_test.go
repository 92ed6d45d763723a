package types

import (
	"errors"
	"strings"
	"testing"

	"github.com/zhangbiao2009/primitive-db/pkg/dberr"
)

func TestValidateColumnDefinition(t *testing.T) {
	tests := []struct {
		name     string
		def      string
		wantName string
		wantType DataType
		wantErr  error
	}{
		{"int", "age:int", "age", TypeInt, nil},
		{"str upper case type", "name:STR", "name", TypeStr, nil},
		{"bool with spaces", "  active : Bool ", "active", TypeBool, nil},
		{"no colon", "age", "", TypeInvalid, dberr.ErrInvalidDefinition},
		{"empty name", ":int", "", TypeInvalid, dberr.ErrInvalidDefinition},
		{"blank name", "   :int", "", TypeInvalid, dberr.ErrInvalidDefinition},
		{"unsupported", "price:float", "", TypeInvalid, dberr.ErrUnsupportedType},
		{"split on first colon", "a:int:str", "", TypeInvalid, dberr.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, typ, err := ValidateColumnDefinition(tt.def)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ValidateColumnDefinition(%q) error = %v, want %v", tt.def, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateColumnDefinition(%q) error = %v", tt.def, err)
			}
			if name != tt.wantName || typ != tt.wantType {
				t.Errorf("ValidateColumnDefinition(%q) = (%q, %v), want (%q, %v)", tt.def, name, typ, tt.wantName, tt.wantType)
			}
		})
	}
}

func TestUnsupportedTypeMessage(t *testing.T) {
	_, _, err := ValidateColumnDefinition("price:Float")
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "float") {
		t.Errorf("error %q does not name the offending token", msg)
	}
	for _, token := range SupportedTypes {
		if !strings.Contains(msg, token) {
			t.Errorf("error %q does not list supported type %q", msg, token)
		}
	}
}

func TestCoerceValue(t *testing.T) {
	tests := []struct {
		name    string
		in      Value
		target  DataType
		want    Value
		wantErr error
	}{
		{"int passthrough", NewIntValue(30), TypeInt, NewIntValue(30), nil},
		{"numeric string", NewStringValue("30"), TypeInt, NewIntValue(30), nil},
		{"negative numeric string", NewStringValue(" -7 "), TypeInt, NewIntValue(-7), nil},
		{"non numeric string", NewStringValue("thirty"), TypeInt, nil, dberr.ErrTypeConversion},
		{"bool to int", NewBoolValue(true), TypeInt, nil, dberr.ErrTypeConversion},
		{"bool passthrough", NewBoolValue(false), TypeBool, NewBoolValue(false), nil},
		{"yes", NewStringValue("YES"), TypeBool, NewBoolValue(true), nil},
		{"one", NewStringValue("1"), TypeBool, NewBoolValue(true), nil},
		{"no", NewStringValue("No"), TypeBool, NewBoolValue(false), nil},
		{"zero", NewStringValue("0"), TypeBool, NewBoolValue(false), nil},
		{"maybe", NewStringValue("maybe"), TypeBool, nil, dberr.ErrTypeConversion},
		{"int to bool", NewIntValue(1), TypeBool, nil, dberr.ErrTypeConversion},
		{"int to str", NewIntValue(42), TypeStr, NewStringValue("42"), nil},
		{"bool to str", NewBoolValue(true), TypeStr, NewStringValue("true"), nil},
		{"str passthrough", NewStringValue("Алиса"), TypeStr, NewStringValue("Алиса"), nil},
		{"unsupported target", NewIntValue(1), TypeInvalid, nil, dberr.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceValue(tt.in, tt.target)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CoerceValue(%v, %v) error = %v, want %v", tt.in, tt.target, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CoerceValue(%v, %v) error = %v", tt.in, tt.target, err)
			}
			if !Equal(got, tt.want) {
				t.Errorf("CoerceValue(%v, %v) = %v, want %v", tt.in, tt.target, got, tt.want)
			}
		})
	}
}

func TestCoerceValueIdempotent(t *testing.T) {
	inputs := []Value{
		NewIntValue(0),
		NewIntValue(-12),
		NewStringValue("15"),
		NewStringValue("true"),
		NewStringValue("no"),
		NewStringValue("hello"),
		NewBoolValue(true),
	}

	for _, target := range []DataType{TypeInt, TypeStr, TypeBool} {
		for _, in := range inputs {
			once, err := CoerceValue(in, target)
			if err != nil {
				continue
			}
			twice, err := CoerceValue(once, target)
			if err != nil {
				t.Errorf("CoerceValue(CoerceValue(%v, %v)) error = %v", in, target, err)
				continue
			}
			if !Equal(once, twice) {
				t.Errorf("CoerceValue not idempotent for %v -> %v: %v then %v", in, target, once, twice)
			}
		}
	}
}
