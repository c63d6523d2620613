package route

import (
	"errors"
	"fmt"
	"io"
	"os"

	oc "github.com/Gobd/objectchecker"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Table holds routes by group and key, in file order.
type Table struct {
	groups *orderedmap.OrderedMap[string, *orderedmap.OrderedMap[string, *Route]]
}

type routeYAML struct {
	Name      string    `yaml:"name"`
	Method    string    `yaml:"method"`
	URL       string    `yaml:"url"`
	Prefix    string    `yaml:"prefix"`
	Desc      string    `yaml:"desc"`
	ShowInDoc bool      `yaml:"showInDoc"`
	Query     yaml.Node `yaml:"query"`
	Body      yaml.Node `yaml:"body"`
}

// LoadFile reads a route table from a YAML file.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Load reads a route table from YAML. Every route is validated; the returned
// error lists the failing routes as [validation.Errors].
func Load(r io.Reader) (*Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Table{groups: orderedmap.New[string, *orderedmap.OrderedMap[string, *Route]]()}, nil
		}
		return nil, fmt.Errorf("decode route table: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("route table: line %d: expected a mapping of groups", root.Line)
	}

	t := &Table{groups: orderedmap.New[string, *orderedmap.OrderedMap[string, *Route]]()}
	errs := validation.Errors{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		group, routes := root.Content[i].Value, root.Content[i+1]
		if routes.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("route group %q: line %d: expected a mapping of routes", group, routes.Line)
		}
		entries := orderedmap.New[string, *Route]()
		for j := 0; j+1 < len(routes.Content); j += 2 {
			key := routes.Content[j].Value
			rt, err := decodeRoute(group, key, routes.Content[j+1])
			if err != nil {
				return nil, err
			}
			if err := rt.Validate(); err != nil {
				errs[rt.ID()] = err
			}
			entries.Set(key, rt)
		}
		t.groups.Set(group, entries)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return t, nil
}

func decodeRoute(group, key string, n *yaml.Node) (*Route, error) {
	var raw routeYAML
	if err := n.Decode(&raw); err != nil {
		return nil, fmt.Errorf("route %s.%s: %w", group, key, err)
	}
	rt := &Route{
		Group:     group,
		Key:       key,
		Name:      raw.Name,
		Method:    raw.Method,
		URL:       raw.URL,
		Prefix:    raw.Prefix,
		Desc:      raw.Desc,
		ShowInDoc: raw.ShowInDoc,
	}
	if rt.Name == "" {
		rt.Name = key
	}
	var err error
	if rt.Query, err = schemaOf(&raw.Query); err != nil {
		return nil, fmt.Errorf("route %s.%s query: %w", group, key, err)
	}
	if rt.Body, err = schemaOf(&raw.Body); err != nil {
		return nil, fmt.Errorf("route %s.%s body: %w", group, key, err)
	}
	return rt, nil
}

func schemaOf(n *yaml.Node) (*oc.Schema, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	return oc.SchemaFromYAML(n)
}

// Get returns the route stored under group and key.
func (t *Table) Get(group, key string) (*Route, bool) {
	routes, ok := t.groups.Get(group)
	if !ok {
		return nil, false
	}
	return routes.Get(key)
}

// MustGet is like Get but panics when the route does not exist.
func (t *Table) MustGet(group, key string) *Route {
	rt, ok := t.Get(group, key)
	if !ok {
		panic(fmt.Sprintf("route: no route %s.%s", group, key))
	}
	return rt
}

// Groups returns the group names in file order.
func (t *Table) Groups() []string {
	names := make([]string, 0, t.groups.Len())
	for pair := t.groups.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Routes returns every route in file order.
func (t *Table) Routes() []*Route {
	var out []*Route
	for g := t.groups.Oldest(); g != nil; g = g.Next() {
		for r := g.Value.Oldest(); r != nil; r = r.Next() {
			out = append(out, r.Value)
		}
	}
	return out
}
