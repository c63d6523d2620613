package objectchecker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// ElemKey is the schema key holding the schema of every list element.
const ElemKey = "$"

const typeKey = "$type"

// Schema is one node of a directive schema. Entries keep declaration order.
// Field keys and [ElemKey] map to child nodes; directive keys map to their
// option, which is a [Value] or, for $assertTrue and $assertFalse, an
// [Assertion].
//
// A nil *Schema behaves as an empty node.
type Schema struct {
	entries *orderedmap.OrderedMap[string, any]
}

// NewSchema returns an empty schema node.
func NewSchema() *Schema {
	return &Schema{entries: orderedmap.New[string, any]()}
}

// IsDirective reports whether key names a directive rather than a field or
// the element schema.
func IsDirective(key string) bool {
	return len(key) > 1 && key[0] == '$'
}

// Set adds or replaces an entry and returns s for chaining. Field keys and
// [ElemKey] require a *Schema (nil means an empty node). Directive options
// are converted with [ValueOf] unless they are an [Assertion], a
// func(Value) bool or a Value already.
//
// Set panics on an option it cannot store, like regexp.MustCompile does on a
// bad pattern.
func (s *Schema) Set(key string, option any) *Schema {
	if !IsDirective(key) {
		child, ok := option.(*Schema)
		if !ok && option != nil {
			panic(fmt.Sprintf("objectchecker: field %q requires a *Schema, got %T", key, option))
		}
		if child == nil {
			child = NewSchema()
		}
		s.entries.Set(key, child)
		return s
	}
	switch t := option.(type) {
	case Assertion, Value:
		s.entries.Set(key, t)
	case func(Value) bool:
		s.entries.Set(key, Assertion(t))
	default:
		s.entries.Set(key, MustValueOf(option))
	}
	return s
}

func (s *Schema) put(key string, option any) {
	s.entries.Set(key, option)
}

// Get returns the raw entry stored under key.
func (s *Schema) Get(key string) (any, bool) {
	if s == nil || s.entries == nil {
		return nil, false
	}
	return s.entries.Get(key)
}

// Has reports whether key is declared in s.
func (s *Schema) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Len returns the number of entries.
func (s *Schema) Len() int {
	if s == nil || s.entries == nil {
		return 0
	}
	return s.entries.Len()
}

// Keys returns the entry keys in declaration order.
func (s *Schema) Keys() []string {
	if s.Len() == 0 {
		return nil
	}
	keys := make([]string, 0, s.entries.Len())
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Field returns the child node of a field key or of [ElemKey].
func (s *Schema) Field(key string) (*Schema, bool) {
	e, ok := s.Get(key)
	if !ok {
		return nil, false
	}
	child, ok := e.(*Schema)
	return child, ok
}

// Option returns the option of directive key when it is a [Value].
func (s *Schema) Option(key string) (Value, bool) {
	e, ok := s.Get(key)
	if !ok {
		return Value{}, false
	}
	v, ok := e.(Value)
	return v, ok
}

// flag reports whether directive key is set to exactly true.
func (s *Schema) flag(key string) bool {
	v, ok := s.Option(key)
	if !ok {
		return false
	}
	b, ok := v.AsBool()
	return ok && b
}

// TypeName returns the lowercased $type option, or "" when it is missing or
// not a string.
func (s *Schema) TypeName() string {
	v, _ := s.Option(typeKey)
	name, _ := v.AsString()
	return strings.ToLower(name)
}

func (s *Schema) each(f func(key string, entry any) bool) {
	if s.Len() == 0 {
		return
	}
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		if !f(pair.Key, pair.Value) {
			return
		}
	}
}

// MarshalJSON encodes the schema in declaration order. Assertions encode as
// null.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	var err error
	s.each(func(key string, entry any) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		var b []byte
		b, err = encodeOption(entry)
		if err != nil {
			return false
		}
		buf.Write(b)
		return true
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeOption(option any) ([]byte, error) {
	switch t := option.(type) {
	case Value:
		return t.MarshalJSON()
	case *Schema:
		return t.MarshalJSON()
	}
	return []byte("null"), nil
}

// SchemaFromValue builds a schema from a decoded object. A null value yields
// an empty schema.
func SchemaFromValue(v Value) (*Schema, error) {
	s := NewSchema()
	if v.IsNull() || v.IsAbsent() {
		return s, nil
	}
	obj, ok := v.AsObject()
	if !ok {
		return nil, fmt.Errorf("schema must be an object, got %s", v.Kind())
	}
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if IsDirective(pair.Key) {
			s.put(pair.Key, pair.Value)
			continue
		}
		child, err := SchemaFromValue(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", pair.Key, err)
		}
		s.put(pair.Key, child)
	}
	return s, nil
}

// ParseSchema decodes a JSON schema document.
func ParseSchema(data []byte) (*Schema, error) {
	v, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return SchemaFromValue(v)
}

// ParseSchemaYAML decodes a YAML schema document, keeping key order.
func ParseSchemaYAML(data []byte) (*Schema, error) {
	v, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	return SchemaFromValue(v)
}

// SchemaFromYAML builds a schema from an already decoded YAML node.
func SchemaFromYAML(n *yaml.Node) (*Schema, error) {
	v, err := ValueFromYAML(n)
	if err != nil {
		return nil, err
	}
	return SchemaFromValue(v)
}

// MustParseSchema is like [ParseSchema] but takes a string and panics on
// error. It is meant for schemas declared in source.
func MustParseSchema(text string) *Schema {
	s, err := ParseSchema([]byte(text))
	if err != nil {
		panic(fmt.Sprintf("objectchecker: MustParseSchema: %v", err))
	}
	return s
}
