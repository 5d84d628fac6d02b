package value

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

// String returns the friendly name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Value is an immutable tagged value. The zero Value is invalid; always build
// one through a constructor or FromCty.
type Value struct {
	v cty.Value
}

// StringVal constructs a string Value.
func StringVal(s string) Value {
	return Value{v: cty.StringVal(s)}
}

// NumberVal constructs a number Value from a float64.
func NumberVal(f float64) Value {
	return Value{v: cty.NumberFloatVal(f)}
}

// NumberIntVal constructs a number Value from an int64.
func NumberIntVal(i int64) Value {
	return Value{v: cty.NumberIntVal(i)}
}

// BoolVal constructs a boolean Value.
func BoolVal(b bool) Value {
	return Value{v: cty.BoolVal(b)}
}

// ListVal constructs a list Value preserving element order. Elements may be
// of mixed kinds, so the backing representation is a cty tuple.
func ListVal(elems []Value) Value {
	if len(elems) == 0 {
		return Value{v: cty.EmptyTupleVal}
	}
	raw := make([]cty.Value, len(elems))
	for i, e := range elems {
		raw[i] = e.v
	}
	return Value{v: cty.TupleVal(raw)}
}

// MapVal constructs a map Value. Values may be of mixed kinds, so the backing
// representation is a cty object. Iteration over maps elsewhere in this
// module is always in lexicographic key order.
func MapVal(entries map[string]Value) Value {
	if len(entries) == 0 {
		return Value{v: cty.EmptyObjectVal}
	}
	raw := make(map[string]cty.Value, len(entries))
	for k, e := range entries {
		raw[k] = e.v
	}
	return Value{v: cty.ObjectVal(raw)}
}

// FromCty wraps an already-constructed cty value. It fails for kinds outside
// the value domain (null, unknown, sets, capsules).
func FromCty(v cty.Value) (Value, error) {
	if v == cty.NilVal || v.IsNull() {
		return Value{}, fmt.Errorf("null value is outside the value domain")
	}
	if !v.IsWhollyKnown() {
		return Value{}, fmt.Errorf("unknown value is outside the value domain")
	}
	wrapped := Value{v: v}
	if wrapped.Kind() == KindInvalid {
		return Value{}, fmt.Errorf("unsupported value type %s", v.Type().FriendlyName())
	}
	return wrapped, nil
}

// Cty exposes the backing cty value for rendering and bridging.
func (v Value) Cty() cty.Value {
	return v.v
}

// Kind returns the variant tag of the Value.
func (v Value) Kind() Kind {
	ty := v.v.Type()
	switch {
	case ty == cty.String:
		return KindString
	case ty == cty.Number:
		return KindNumber
	case ty == cty.Bool:
		return KindBool
	case ty.IsTupleType() || ty.IsListType():
		return KindList
	case ty.IsObjectType() || ty.IsMapType():
		return KindMap
	default:
		return KindInvalid
	}
}

// AsString returns the string payload, or a TypeMismatchError for any other
// kind. No coercion happens here; see InterpolationString.
func (v Value) AsString() (string, error) {
	if v.Kind() != KindString {
		return "", &TypeMismatchError{Wanted: "string", Got: v.Kind()}
	}
	return v.v.AsString(), nil
}

// AsNumber returns the numeric payload as a float64.
func (v Value) AsNumber() (float64, error) {
	if v.Kind() != KindNumber {
		return 0, &TypeMismatchError{Wanted: "number", Got: v.Kind()}
	}
	f, _ := v.v.AsBigFloat().Float64()
	return f, nil
}

// AsBool returns the boolean payload. Strings like "true" and numbers are
// rejected, never treated as truthy.
func (v Value) AsBool() (bool, error) {
	if v.Kind() != KindBool {
		return false, &TypeMismatchError{Wanted: "bool", Got: v.Kind()}
	}
	return v.v.True(), nil
}

// AsList returns the elements in order.
func (v Value) AsList() ([]Value, error) {
	if v.Kind() != KindList {
		return nil, &TypeMismatchError{Wanted: "list", Got: v.Kind()}
	}
	elems := make([]Value, 0, v.v.LengthInt())
	for it := v.v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		elems = append(elems, Value{v: ev})
	}
	return elems, nil
}

// AsMap returns the entries as a Go map. Callers needing a deterministic
// order should pair this with MapKeys.
func (v Value) AsMap() (map[string]Value, error) {
	if v.Kind() != KindMap {
		return nil, &TypeMismatchError{Wanted: "map", Got: v.Kind()}
	}
	entries := make(map[string]Value, v.v.LengthInt())
	for it := v.v.ElementIterator(); it.Next(); {
		kv, ev := it.Element()
		entries[kv.AsString()] = Value{v: ev}
	}
	return entries, nil
}

// MapKeys returns the map's keys in lexicographic order, the iteration order
// this module guarantees for maps.
func (v Value) MapKeys() ([]string, error) {
	entries, err := v.AsMap()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Attr looks up a single map entry. The boolean reports presence; calling
// Attr on a non-map is a TypeMismatchError.
func (v Value) Attr(name string) (Value, bool, error) {
	entries, err := v.AsMap()
	if err != nil {
		return Value{}, false, err
	}
	e, ok := entries[name]
	return e, ok, nil
}

// InterpolationString renders the Value for a string-template context. This
// is the one documented coercion: numbers and booleans become their canonical
// string forms, strings pass through, and collections fail.
func (v Value) InterpolationString() (string, error) {
	switch v.Kind() {
	case KindString:
		return v.v.AsString(), nil
	case KindNumber, KindBool:
		converted, err := convert.Convert(v.v, cty.String)
		if err != nil {
			return "", &TypeMismatchError{Wanted: "string", Got: v.Kind()}
		}
		return converted.AsString(), nil
	default:
		return "", &TypeMismatchError{
			Subject: "interpolation sequence",
			Wanted:  "string, number, or bool",
			Got:     v.Kind(),
		}
	}
}

// Equal reports deep equality. Values of different kinds are unequal rather
// than an error, so == comparisons in configuration never fail.
func (v Value) Equal(other Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}
	eq := v.v.Equals(other.v)
	return eq.IsKnown() && eq.True()
}

// GoString helps debugging output and test failure messages.
func (v Value) GoString() string {
	return fmt.Sprintf("value.Value(%#v)", v.v)
}
