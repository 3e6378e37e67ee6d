package jsonutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-json-experiment/json/jsontext"
)

// ErrNotObject is returned when the input is valid JSON but not an object.
var ErrNotObject = errors.New("jsonutil: not a JSON object")

// Object is a JSON object that preserves key insertion order. Values keep
// their original raw encoding until overwritten, so re-marshalling an
// untouched Object reproduces the input byte-for-byte (modulo
// insignificant whitespace). Replacement values are re-encoded.
type Object struct {
	keys     []string
	raw      map[string]jsontext.Value
	replaced map[string]any
	deleted  map[string]bool
}

// ParseObject decodes data into an Object. Returns ErrNotObject for
// valid JSON that is not an object.
func ParseObject(data []byte) (*Object, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(data))

	tok, err := dec.ReadToken()
	if err != nil {
		return nil, fmt.Errorf("jsonutil: parse object: %w", err)
	}
	if tok.Kind() != '{' {
		return nil, ErrNotObject
	}

	obj := &Object{
		raw:      make(map[string]jsontext.Value),
		replaced: make(map[string]any),
		deleted:  make(map[string]bool),
	}

	for dec.PeekKind() != '}' {
		nameTok, err := dec.ReadToken()
		if err != nil {
			return nil, fmt.Errorf("jsonutil: parse object key: %w", err)
		}
		name := nameTok.String()

		val, err := dec.ReadValue()
		if err != nil {
			return nil, fmt.Errorf("jsonutil: parse object value: %w", err)
		}

		if _, dup := obj.raw[name]; !dup {
			obj.keys = append(obj.keys, name)
		}
		obj.raw[name] = jsontext.Value(bytes.Clone(val))
	}

	return obj, nil
}

// Keys returns the key names in original insertion order, excluding
// deleted keys.
func (o *Object) Keys() []string {
	out := make([]string, 0, len(o.keys))
	for _, k := range o.keys {
		if !o.deleted[k] {
			out = append(out, k)
		}
	}
	return out
}

// Has reports whether key is present (and not deleted).
func (o *Object) Has(key string) bool {
	if o.deleted[key] {
		return false
	}
	_, ok := o.raw[key]
	return ok
}

// Len returns the number of live keys.
func (o *Object) Len() int {
	return len(o.Keys())
}

// Get returns the decoded value for key, or nil if absent.
func (o *Object) Get(key string) any {
	if o.deleted[key] {
		return nil
	}
	if v, ok := o.replaced[key]; ok {
		return v
	}
	rawVal, ok := o.raw[key]
	if !ok {
		return nil
	}
	var v any
	if err := Unmarshal(rawVal, &v); err != nil {
		return nil
	}
	return v
}

// GetString returns the value for key if it is a string.
func (o *Object) GetString(key string) (string, bool) {
	s, ok := o.Get(key).(string)
	return s, ok
}

// Set replaces the value for an existing key. Keys not already present
// are ignored: consumers must never invent fields.
func (o *Object) Set(key string, value any) {
	if _, ok := o.raw[key]; !ok {
		return
	}
	delete(o.deleted, key)
	o.replaced[key] = value
}

// Delete removes key from the object.
func (o *Object) Delete(key string) {
	o.deleted[key] = true
}

// Marshal serializes the object preserving key order. Untouched values
// are emitted with their original encoding.
func (o *Object) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, k := range o.keys {
		if o.deleted[k] {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		nameJSON, err := Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(nameJSON)
		buf.WriteByte(':')

		if v, ok := o.replaced[k]; ok {
			valJSON, err := Marshal(v)
			if err != nil {
				return nil, err
			}
			buf.Write(valJSON)
		} else {
			buf.Write(o.raw[k])
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
