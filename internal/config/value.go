package config

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindInteger
	KindFloat
	KindBool
	KindDatetime
	KindArray
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	case KindDatetime:
		return "datetime"
	case KindArray:
		return "array"
	case KindTable:
		return "table"
	default:
		return "invalid"
	}
}

// Value is a TOML-shaped value: a string, integer, float, boolean,
// datetime, array or table. The zero Value is KindInvalid.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	b    bool
	t    time.Time
	arr  []Value
	tbl  Table
}

// Table maps keys to structured values.
type Table map[string]Value

// NewValue converts decoded TOML or plain Go data into a Value. Maps must be
// keyed by strings; nil and other types are rejected.
func NewValue(data any) (Value, error) {
	switch v := data.(type) {
	case Value:
		return v.clone(), nil
	case Table:
		return Value{kind: KindTable, tbl: v.Clone()}, nil
	case time.Time:
		return Value{kind: KindDatetime, t: v}, nil
	case nil:
		return Value{}, fmt.Errorf("nil is not a valid value")
	}

	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.String:
		return Value{kind: KindString, str: rv.String()}, nil
	case reflect.Bool:
		return Value{kind: KindBool, b: rv.Bool()}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Value{kind: KindInteger, num: rv.Int()}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Value{}, fmt.Errorf("integer %d overflows int64", u)
		}
		return Value{kind: KindInteger, num: int64(u)}, nil
	case reflect.Float32, reflect.Float64:
		return Value{kind: KindFloat, flt: rv.Float()}, nil
	case reflect.Slice, reflect.Array:
		arr := make([]Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := NewValue(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			arr = append(arr, elem)
		}
		return Value{kind: KindArray, arr: arr}, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, fmt.Errorf("table keys must be strings, got %s", rv.Type().Key())
		}
		tbl := make(Table, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			elem, err := NewValue(iter.Value().Interface())
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", key, err)
			}
			tbl[key] = elem
		}
		return Value{kind: KindTable, tbl: tbl}, nil
	}

	return Value{}, fmt.Errorf("unsupported value of type %T", data)
}

// MustValue is like NewValue but panics on error. Intended for literals.
func MustValue(data any) Value {
	v, err := NewValue(data)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

func (v Value) Int() (int64, bool) { return v.num, v.kind == KindInteger }

// Float returns the value as a float64. Integers are converted.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.flt, true
	case KindInteger:
		return float64(v.num), true
	}
	return 0, false
}

func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) Time() (time.Time, bool) { return v.t, v.kind == KindDatetime }

// Array returns a copy of the array elements.
func (v Value) Array() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.clone().arr, true
}

// Table returns a copy of the table.
func (v Value) Table() (Table, bool) {
	if v.kind != KindTable {
		return nil, false
	}
	return v.tbl.Clone(), true
}

// Interface converts v back to plain Go data: string, int64, float64, bool,
// time.Time, []any or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInteger:
		return v.num
	case KindFloat:
		return v.flt
	case KindBool:
		return v.b
	case KindDatetime:
		return v.t
	case KindArray:
		out := make([]any, 0, len(v.arr))
		for _, elem := range v.arr {
			out = append(out, elem.Interface())
		}
		return out
	case KindTable:
		return v.tbl.Interface()
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("%q", v.str)
	case KindDatetime:
		return v.t.Format(time.RFC3339Nano)
	case KindArray:
		parts := make([]string, 0, len(v.arr))
		for _, elem := range v.arr {
			parts = append(parts, elem.String())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindTable:
		return fmt.Sprint(v.tbl.Interface())
	case KindInvalid:
		return "<invalid>"
	}
	return fmt.Sprint(v.Interface())
}

func (v Value) clone() Value {
	switch v.kind {
	case KindArray:
		arr := make([]Value, 0, len(v.arr))
		for _, elem := range v.arr {
			arr = append(arr, elem.clone())
		}
		v.arr = arr
	case KindTable:
		v.tbl = v.tbl.Clone()
	}
	return v
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for key, value := range t {
		out[key] = value.clone()
	}
	return out
}

// Interface converts t back to a plain map.
func (t Table) Interface() map[string]any {
	out := make(map[string]any, len(t))
	for key, value := range t {
		out[key] = value.Interface()
	}
	return out
}
