package objectchecker

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// FlatSchema maps dotted field paths to directive-only schema nodes, in the
// order the fields appear in the source schema. List elements use the path
// segment "0". Root directives, when present, sit under the empty path.
type FlatSchema struct {
	entries *orderedmap.OrderedMap[string, *Schema]
}

// Paths returns the flattened paths in traversal order.
func (f *FlatSchema) Paths() []string {
	paths := make([]string, 0, f.entries.Len())
	for pair := f.entries.Oldest(); pair != nil; pair = pair.Next() {
		paths = append(paths, pair.Key)
	}
	return paths
}

// Get returns the directives of path.
func (f *FlatSchema) Get(path string) (*Schema, bool) {
	return f.entries.Get(path)
}

// Len returns the number of entries.
func (f *FlatSchema) Len() int {
	return f.entries.Len()
}

// MarshalJSON encodes the entries as an object keyed by path.
func (f *FlatSchema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := f.entries.Oldest(); pair != nil; pair = pair.Next() {
		if pair != f.entries.Oldest() {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(pair.Key)
		buf.Write(k)
		buf.WriteByte(':')
		b, err := pair.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Flatten walks s depth-first and records one entry per nested node. Each
// entry starts with an implicit $type of "array" when the node has an element
// schema and "json" otherwise; an explicit $type replaces it in place.
func Flatten(s *Schema) *FlatSchema {
	f := &FlatSchema{entries: orderedmap.New[string, *Schema]()}
	var root *Schema
	s.each(func(key string, _ any) bool {
		if key == ElemKey || IsDirective(key) {
			root = f.open("", s)
			return false
		}
		return true
	})
	f.walk(s, "", root)
	return f
}

func (f *FlatSchema) open(path string, s *Schema) *Schema {
	entry := NewSchema()
	if s.Has(ElemKey) {
		entry.put(typeKey, String("array"))
	} else {
		entry.put(typeKey, String("json"))
	}
	f.entries.Set(path, entry)
	return entry
}

func (f *FlatSchema) walk(s *Schema, path string, entry *Schema) {
	s.each(func(key string, option any) bool {
		switch {
		case key == ElemKey:
			child, _ := option.(*Schema)
			f.walk(child, joinPath(path, "0"), f.open(joinPath(path, "0"), child))
		case IsDirective(key):
			if entry != nil {
				entry.put(key, option)
			}
		default:
			child, _ := option.(*Schema)
			f.walk(child, joinPath(path, key), f.open(joinPath(path, key), child))
		}
		return true
	})
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
