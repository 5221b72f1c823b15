// Package record decodes raw log lines into ordered JSON records.
package record

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a decoded JSON value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	s    string // string contents, or the literal text of a number
	arr  []Value
	obj  *Object
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a JSON number literal.
func Number(n json.Number) Value { return Value{kind: KindNumber, s: string(n)} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps a list of values.
func Array(vs ...Value) Value { return Value{kind: KindArray, arr: vs} }

// ObjectValue wraps an object.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsNumber returns the number literal held by v.
func (v Value) AsNumber() (json.Number, bool) { return json.Number(v.s), v.kind == KindNumber }

// AsArray returns the elements held by v.
func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == KindArray }

// AsObject returns the object held by v.
func (v Value) AsObject() (*Object, bool) { return v.obj, v.kind == KindObject }

// Text returns the display form of v: strings are returned verbatim,
// everything else as compact JSON.
func (v Value) Text() string {
	if v.kind == KindString {
		return v.s
	}
	return v.JSON()
}

// JSON returns the compact JSON encoding of v. Object keys keep their
// decoded order and HTML characters are not escaped.
func (v Value) JSON() string {
	var sb strings.Builder
	v.writeJSON(&sb)
	return sb.String()
}

func (v Value) writeJSON(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		if v.b {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindNumber:
		sb.WriteString(v.s)
	case KindString:
		sb.WriteString(Quote(v.s))
	case KindArray:
		sb.WriteByte('[')
		for i, elem := range v.arr {
			if i > 0 {
				sb.WriteByte(',')
			}
			elem.writeJSON(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		v.obj.writeJSON(sb)
	}
}

// Quote encodes s as a JSON string literal without HTML escaping.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // strings always encode
	return strings.TrimSuffix(buf.String(), "\n")
}

// Field is one key/value entry of an Object.
type Field struct {
	Key   string
	Value Value
}

// Object is a JSON object that remembers key order.
type Object struct {
	fields []Field
	index  map[string]int
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Set stores value under key. A key that already exists keeps its
// original position and takes the new value.
func (o *Object) Set(key string, value Value) {
	if i, ok := o.index[key]; ok {
		o.fields[i].Value = value
		return
	}
	o.index[key] = len(o.fields)
	o.fields = append(o.fields, Field{Key: key, Value: value})
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.fields[i].Value, true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.fields)
}

// Fields returns the entries in key order. The slice must not be modified.
func (o *Object) Fields() []Field {
	if o == nil {
		return nil
	}
	return o.fields
}

// Keys returns the keys in order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	for _, f := range o.Fields() {
		keys = append(keys, f.Key)
	}
	return keys
}

// JSON returns the compact JSON encoding of the object.
func (o *Object) JSON() string {
	var sb strings.Builder
	o.writeJSON(&sb)
	return sb.String()
}

func (o *Object) writeJSON(sb *strings.Builder) {
	writeFields(sb, o.Fields())
}

// FieldsJSON encodes a list of fields as one JSON object.
func FieldsJSON(fields []Field) string {
	var sb strings.Builder
	writeFields(&sb, fields)
	return sb.String()
}

func writeFields(sb *strings.Builder, fields []Field) {
	sb.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(Quote(f.Key))
		sb.WriteByte(':')
		f.Value.writeJSON(sb)
	}
	sb.WriteByte('}')
}
