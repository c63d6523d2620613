package objectchecker

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// IDPlaceholder is the example used for string fields named "id" or ending
// in "Id": "X-" followed by the nil UUID.
const IDPlaceholder = "X-00000000-0000-0000-0000-000000000000"

const anyPlaceholder = "<Any Value>"

// GenerateSample derives an example value from s. See [GenerateFromFlat].
func GenerateSample(s *Schema) Value {
	return GenerateFromFlat(Flatten(s))
}

// GenerateFromFlat builds an example value by inserting a generated value at
// every flattened path, creating objects and lists on the way. A $example
// option always wins over the generated value.
func GenerateFromFlat(f *FlatSchema) Value {
	var root any = orderedmap.New[string, any]()
	if entry, ok := f.Get(""); ok {
		root = scalarSample(entry, "")
	}
	for pair := f.entries.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == "" {
			continue
		}
		insertSample(root, strings.Split(pair.Key, "."), pair.Value)
	}
	return sampleValue(root)
}

// sampleList is a list under construction. min and max are the length
// limits of the list, -1 when unset.
type sampleList struct {
	items    []any
	min, max int
}

func newSampleList(entry *Schema) *sampleList {
	lo, hi := lengthLimits(entry)
	return &sampleList{min: lo, max: hi}
}

func insertSample(node any, steps []string, entry *Schema) {
	for i, step := range steps {
		parent := ""
		if i > 0 {
			parent = steps[i-1]
		}
		switch n := node.(type) {
		case *orderedmap.OrderedMap[string, any]:
			cur, ok := n.Get(step)
			if !ok {
				cur = scalarSample(entry, step)
				n.Set(step, cur)
			}
			node = cur
		case *sampleList:
			idx, err := strconv.Atoi(step)
			if err != nil {
				return
			}
			if len(n.items) < idx+1 {
				n.items = append(n.items, elementSamples(entry, parent)...)
			}
			if idx >= len(n.items) {
				return
			}
			node = n.items[idx]
		default:
			return
		}
	}
}

func sampleValue(node any) Value {
	switch n := node.(type) {
	case *orderedmap.OrderedMap[string, any]:
		obj := NewObject()
		for pair := n.Oldest(); pair != nil; pair = pair.Next() {
			obj.Set(pair.Key, sampleValue(pair.Value))
		}
		return ObjectValue(obj)
	case *sampleList:
		nodes := n.items
		for len(nodes) < n.min {
			if len(nodes) == 0 {
				nodes = append(nodes, Null())
				continue
			}
			nodes = append(nodes, nodes[len(nodes)-1])
		}
		if n.max >= 0 && len(nodes) > n.max {
			nodes = nodes[:n.max]
		}
		items := make([]Value, len(nodes))
		for i, item := range nodes {
			items[i] = sampleValue(item)
		}
		return List(items...)
	case Value:
		return n
	}
	return Null()
}

// scalarSample generates the value of a field named name.
func scalarSample(entry *Schema, name string) any {
	example, hasExample := entry.Option("$example")
	if fixed, ok := entry.Option("$isValue"); ok && !hasExample {
		return fixed
	}
	switch entry.TypeName() {
	case "arr", "array":
		if !hasExample || isEmptyExample(example) {
			return newSampleList(entry)
		}
		if example.Kind() == KindList {
			return example
		}
		return List(example)
	case "":
		if hasExample {
			return example
		}
		return orderedmap.New[string, any]()
	}
	if hasExample {
		return example
	}
	switch entry.TypeName() {
	case "enum", "str", "string", "commaarray":
		return stringSample(entry, name)
	case "int", "integer", "num", "number", "float":
		return numberSample(entry)
	case "bool", "boolean":
		return Bool(false)
	case "any", "*":
		return String(anyPlaceholder)
	case "jsonstring":
		return String("{}")
	}
	return orderedmap.New[string, any]()
}

// elementSamples generates the items appended to a list named parent.
func elementSamples(entry *Schema, parent string) []any {
	if example, ok := entry.Option("$example"); ok {
		if items, isList := example.AsList(); isList {
			out := make([]any, len(items))
			for i := range items {
				out[i] = items[i]
			}
			return out
		}
		return []any{example}
	}
	if fixed, ok := entry.Option("$isValue"); ok {
		return []any{fixed}
	}
	switch entry.TypeName() {
	case "enum", "str", "string", "commaarray":
		if in, ok := inOptions(entry); ok {
			return []any{in[0], in[len(in)-1]}
		}
		if v, ok := fixedString(entry); ok {
			return []any{v}
		}
		return stringElements(entry, parent)
	case "int", "integer", "num", "number", "float":
		if in, ok := inOptions(entry); ok {
			return []any{in[0], in[len(in)-1]}
		}
		lo := numberSample(entry)
		hi := addTen(lo)
		if limit, ok := entry.Option("$maxValue"); ok && limit.IsNumber() {
			hi = maxSample(entry, limit)
		}
		if isNonPositive(entry) {
			hi = lo
		}
		return []any{lo, hi}
	case "arr", "array":
		return []any{newSampleList(entry)}
	case "bool", "boolean":
		return []any{Bool(true), Bool(false)}
	case "any", "*":
		return []any{Int(1), Float(1.2), String("String Value"), Bool(true), Bool(false)}
	case "jsonstring":
		return []any{String("{}")}
	}
	return []any{orderedmap.New[string, any]()}
}

func isEmptyExample(v Value) bool {
	switch v.Kind() {
	case KindNull, KindAbsent:
		return true
	case KindList, KindString:
		n, _ := v.Len()
		return n == 0
	case KindBool:
		b, _ := v.AsBool()
		return !b
	}
	if f, ok := v.AsNumber(); ok {
		return f == 0
	}
	return false
}

func inOptions(entry *Schema) ([]Value, bool) {
	return listOption(entry, "$in")
}

func listOption(entry *Schema, key string) ([]Value, bool) {
	v, ok := entry.Option(key)
	if !ok {
		return nil, false
	}
	items, ok := v.AsList()
	return items, ok && len(items) > 0
}

// fixedString returns the only kind of string some directives accept.
func fixedString(entry *Schema) (Value, bool) {
	if in, ok := listOption(entry, "$commaArrayIn"); ok {
		return in[0], true
	}
	if v, ok := entry.Option("$notEmptyString"); ok {
		if b, isBool := v.AsBool(); isBool && !b {
			return String(""), true
		}
	}
	if entry.flag("$isEmail") {
		return String("user@example.com"), true
	}
	return Value{}, false
}

func stringElements(entry *Schema, parent string) []any {
	if name, ok := entry.Option("$name"); ok {
		return []any{fitLength(entry, name), fitLength(entry, name)}
	}
	return []any{
		fitLength(entry, String(parent+"1")),
		fitLength(entry, String(parent+"2")),
	}
}

func stringSample(entry *Schema, name string) Value {
	if in, ok := inOptions(entry); ok {
		return in[0]
	}
	if v, ok := fixedString(entry); ok {
		return v
	}
	switch {
	case name == "id" || strings.HasSuffix(name, "Id"):
		return fitLength(entry, String(IDPlaceholder))
	case name == "":
		return fitLength(entry, String("string"))
	}
	return fitLength(entry, String(name))
}

// fitLength pads or trims a generated string to the length directives.
func fitLength(entry *Schema, v Value) Value {
	s, ok := v.AsString()
	if !ok {
		return v
	}
	lo, hi := lengthLimits(entry)
	if pad := lo - utf8.RuneCountInString(s); pad > 0 {
		s += strings.Repeat("x", pad)
	}
	if hi >= 0 && utf8.RuneCountInString(s) > hi {
		s = string([]rune(s)[:hi])
	}
	return String(s)
}

// lengthLimits returns the length bounds set by $isLength, $minLength and
// $maxLength, -1 when unset.
func lengthLimits(entry *Schema) (lo, hi int) {
	lo, hi = -1, -1
	if n, ok := intOption(entry, "$isLength"); ok {
		lo, hi = n, n
	}
	if n, ok := intOption(entry, "$minLength"); ok && n > lo {
		lo = n
	}
	if n, ok := intOption(entry, "$maxLength"); ok && (hi < 0 || n < hi) {
		hi = n
	}
	return lo, hi
}

func intOption(entry *Schema, key string) (int, bool) {
	v, ok := entry.Option(key)
	if !ok {
		return 0, false
	}
	f, ok := v.AsNumber()
	return int(f), ok
}

func numberSample(entry *Schema) Value {
	if in, ok := inOptions(entry); ok {
		return in[0]
	}
	v, ok := entry.Option("$minValue")
	if !ok || !v.IsNumber() {
		v = Int(0)
	}
	n, _ := v.AsNumber()
	switch {
	case entry.flag("$isPositiveInteger") && n <= 0:
		v = Int(1)
	case entry.flag("$isNegativeInteger") && n >= 0:
		v = Int(-1)
	case (entry.flag("$isNegativeZeroInteger") || entry.flag("$isNegativeIntegerOrZero")) && n > 0:
		v = Int(0)
	}
	if hi, ok := entry.Option("$maxValue"); ok && hi.IsNumber() {
		if c, _ := compare(v, hi); c > 0 {
			v = maxSample(entry, hi)
		}
	}
	return v
}

// maxSample is the largest value of the entry's type not above hi.
func maxSample(entry *Schema, hi Value) Value {
	if f, _ := hi.AsNumber(); !hi.IsInteger() && isIntegerType(entry) {
		return Int(int64(math.Floor(f)))
	}
	return hi
}

func isIntegerType(entry *Schema) bool {
	name := entry.TypeName()
	return name == "int" || name == "integer"
}

func isNonPositive(entry *Schema) bool {
	return entry.flag("$isNegativeInteger") ||
		entry.flag("$isNegativeZeroInteger") ||
		entry.flag("$isNegativeIntegerOrZero")
}

func addTen(v Value) Value {
	if i, ok := v.AsInt(); ok {
		return Int(i + 10)
	}
	f, _ := v.AsNumber()
	return Float(f + 10)
}
