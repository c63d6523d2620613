package objectchecker

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a single YAML document into a [Value], keeping mapping
// key order.
func ParseYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, err
	}
	return ValueFromYAML(&doc)
}

// ValueFromYAML converts a decoded YAML node tree into a [Value].
func ValueFromYAML(n *yaml.Node) (Value, error) {
	if n == nil {
		return Null(), nil
	}
	switch n.Kind {
	case 0:
		return Null(), nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return ValueFromYAML(n.Content[0])
	case yaml.AliasNode:
		return ValueFromYAML(n.Alias)
	case yaml.SequenceNode:
		items := make([]Value, len(n.Content))
		for i, c := range n.Content {
			item, err := ValueFromYAML(c)
			if err != nil {
				return Value{}, err
			}
			items[i] = item
		}
		return List(items...), nil
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, vn := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("objectchecker: line %d: mapping key is not a scalar", k.Line)
			}
			item, err := ValueFromYAML(vn)
			if err != nil {
				return Value{}, err
			}
			obj.Set(k.Value, item)
		}
		return ObjectValue(obj), nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return Value{}, fmt.Errorf("objectchecker: line %d: unsupported YAML node kind %d", n.Line, n.Kind)
}

func yamlScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return Float(f), nil
	}
	return String(n.Value), nil
}
