// Package jsonout builds the compact JSON lines printed by the wintools
// utilities. Keys keep insertion order and the separators are fixed to
// `": "` and `", "`, so output is byte-stable across runs.
package jsonout

import (
	"strconv"
	"strings"
)

// Object is an ordered JSON object under construction.
type Object struct {
	b     strings.Builder
	count int
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{}
}

func (o *Object) key(k string) {
	if o.count > 0 {
		o.b.WriteString(", ")
	}

	o.count++
	o.b.WriteByte('"')
	o.b.WriteString(Escape(k))
	o.b.WriteString(`": `)
}

// String adds an escaped string field.
func (o *Object) String(k, v string) *Object {
	o.key(k)
	o.b.WriteByte('"')
	o.b.WriteString(Escape(v))
	o.b.WriteByte('"')

	return o
}

// Int adds a signed integer field.
func (o *Object) Int(k string, v int64) *Object {
	o.key(k)
	o.b.WriteString(strconv.FormatInt(v, 10))

	return o
}

// Uint adds an unsigned integer field.
func (o *Object) Uint(k string, v uint64) *Object {
	o.key(k)
	o.b.WriteString(strconv.FormatUint(v, 10))

	return o
}

// Bool adds a boolean field.
func (o *Object) Bool(k string, v bool) *Object {
	o.key(k)
	o.b.WriteString(strconv.FormatBool(v))

	return o
}

// StringIf adds the field only when v is non-empty.
func (o *Object) StringIf(k, v string) *Object {
	if v == "" {
		return o
	}

	return o.String(k, v)
}

// IntIf adds the field only when v is non-zero.
func (o *Object) IntIf(k string, v int64) *Object {
	if v == 0 {
		return o
	}

	return o.Int(k, v)
}

// UintIf adds the field only when v is non-zero.
func (o *Object) UintIf(k string, v uint64) *Object {
	if v == 0 {
		return o
	}

	return o.Uint(k, v)
}

// Flag adds `k: true` when v is set and nothing otherwise.
func (o *Object) Flag(k string, v bool) *Object {
	if !v {
		return o
	}

	return o.Bool(k, true)
}

// Len reports how many fields were added.
func (o *Object) Len() int { return o.count }

// Encode returns the finished object.
func (o *Object) Encode() string {
	return "{" + o.b.String() + "}"
}

// Array joins already-encoded values into a JSON array.
func Array(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}
