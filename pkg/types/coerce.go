package types

import (
	"strconv"
	"strings"

	"github.com/zhangbiao2009/primitive-db/pkg/dberr"
)

var (
	trueTokens  = map[string]bool{"true": true, "1": true, "yes": true}
	falseTokens = map[string]bool{"false": true, "0": true, "no": true}
)

// ValidateColumnDefinition parses a "name:type" column definition.
// The definition is split on the first colon; both halves are trimmed.
func ValidateColumnDefinition(def string) (string, DataType, error) {
	name, token, found := strings.Cut(def, ":")
	if !found {
		return "", TypeInvalid, dberr.New(dberr.KindInvalidDefinition, "invalid column definition: %s", def)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", TypeInvalid, dberr.New(dberr.KindInvalidDefinition, "invalid column definition: %s", def)
	}

	token = strings.ToLower(strings.TrimSpace(token))
	t, ok := ParseDataType(token)
	if !ok {
		return "", TypeInvalid, dberr.New(dberr.KindUnsupportedType,
			"unsupported type: %s. Supported types: %s", token, strings.Join(SupportedTypes, ", "))
	}

	return name, t, nil
}

// CoerceValue converts v to the target column type.
func CoerceValue(v Value, target DataType) (Value, error) {
	switch target {
	case TypeInt:
		return coerceInt(v)
	case TypeBool:
		return coerceBool(v)
	case TypeStr:
		if v == nil {
			return NewStringValue(""), nil
		}
		if v.Type() == TypeStr {
			return v, nil
		}
		return NewStringValue(v.String()), nil
	default:
		return nil, dberr.New(dberr.KindUnsupportedType, "unsupported type: %s", target)
	}
}

func coerceInt(v Value) (Value, error) {
	if v != nil {
		switch v.Type() {
		case TypeInt:
			return v, nil
		case TypeStr:
			i, err := strconv.ParseInt(strings.TrimSpace(v.String()), 10, 64)
			if err == nil {
				return NewIntValue(i), nil
			}
		}
	}
	return nil, conversionError(v, TypeInt)
}

func coerceBool(v Value) (Value, error) {
	if v != nil {
		switch v.Type() {
		case TypeBool:
			return v, nil
		case TypeStr:
			s := strings.ToLower(v.String())
			if trueTokens[s] {
				return NewBoolValue(true), nil
			}
			if falseTokens[s] {
				return NewBoolValue(false), nil
			}
		}
	}
	return nil, conversionError(v, TypeBool)
}

func conversionError(v Value, target DataType) error {
	shown := "<nil>"
	if v != nil {
		shown = v.String()
	}
	return dberr.New(dberr.KindTypeConversion, "value '%s' cannot be converted to %s", shown, target)
}
