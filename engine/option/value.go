package option

import (
	"encoding/json"
	"fmt"

	"github.com/toolpact/toolpact/engine/core"
)

// ValueType is the primitive type of a task option.
type ValueType string

const (
	TypeInt    ValueType = "integer"
	TypeFloat  ValueType = "float"
	TypeBool   ValueType = "boolean"
	TypeString ValueType = "string"
)

func (t ValueType) String() string {
	return string(t)
}

// ValueTypeFromString parses a type id from a document. "number" is accepted
// as a legacy alias for "float".
func ValueTypeFromString(s string) (ValueType, error) {
	switch s {
	case "number":
		return TypeFloat, nil
	case string(TypeInt), string(TypeFloat), string(TypeBool), string(TypeString):
		return ValueType(s), nil
	default:
		return "", fmt.Errorf("unsupported option value type %q", s)
	}
}

// Value is a tagged variant holding one validated option value. Options are
// never carried as untyped any: the tag always matches the schema that
// produced the value.
type Value struct {
	typ ValueType
	i   int
	f   float64
	b   bool
	s   string
}

func Int(v int) Value       { return Value{typ: TypeInt, i: v} }
func Float(v float64) Value { return Value{typ: TypeFloat, f: v} }
func Bool(v bool) Value     { return Value{typ: TypeBool, b: v} }
func String(v string) Value { return Value{typ: TypeString, s: v} }

func (v Value) Type() ValueType { return v.typ }
func (v Value) Int() int        { return v.i }
func (v Value) Float() float64  { return v.f }
func (v Value) Bool() bool      { return v.b }
func (v Value) Str() string     { return v.s }

// Any returns the native Go form of the value.
func (v Value) Any() any {
	switch v.typ {
	case TypeInt:
		return v.i
	case TypeFloat:
		return v.f
	case TypeBool:
		return v.b
	case TypeString:
		return v.s
	default:
		return nil
	}
}

func (v Value) Equal(o Value) bool {
	return v == o
}

func (v Value) String() string {
	return fmt.Sprintf("%v", v.Any())
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// Infer builds a Value from a decoded JSON literal without a schema at hand,
// e.g. when reading back a resolved contract document. Integral numbers come
// back as ints; the wire form is identical either way.
func Infer(raw any) (Value, error) {
	switch t := raw.(type) {
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	}
	if i, ok := core.AsInt(raw); ok {
		return Int(i), nil
	}
	if f, ok := core.AsFloat(raw); ok {
		return Float(f), nil
	}
	return Value{}, fmt.Errorf("unsupported option value %v (%T)", raw, raw)
}

// FromAny converts a decoded JSON value into a typed Value, strictly: string
// candidates never coerce to numbers or bools and vice versa. Integral
// float64 values qualify as ints because JSON carries a single number type.
func FromAny(t ValueType, raw any) (Value, error) {
	switch t {
	case TypeInt:
		if _, isBool := raw.(bool); isBool {
			return Value{}, fmt.Errorf("expected %s, got boolean", t)
		}
		if i, ok := core.AsInt(raw); ok {
			return Int(i), nil
		}
	case TypeFloat:
		if _, isBool := raw.(bool); isBool {
			return Value{}, fmt.Errorf("expected %s, got boolean", t)
		}
		if f, ok := core.AsFloat(raw); ok {
			return Float(f), nil
		}
	case TypeBool:
		if b, ok := raw.(bool); ok {
			return Bool(b), nil
		}
	case TypeString:
		if s, ok := raw.(string); ok {
			return String(s), nil
		}
	default:
		return Value{}, fmt.Errorf("unsupported option value type %q", t)
	}
	return Value{}, fmt.Errorf("expected %s, got %T", t, raw)
}
