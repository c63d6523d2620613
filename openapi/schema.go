package openapi

import (
	"fmt"

	oc "github.com/Gobd/objectchecker"
	"github.com/getkin/kin-openapi/openapi3"
)

// NewSchemaRef converts a directive schema into an OpenAPI schema. Fields are
// listed as required according to defaultRequired and their own
// $isOptional/$isRequired markers, matching how a [oc.Checker] built with the
// same default treats them.
func NewSchemaRef(s *oc.Schema, defaultRequired bool) (*openapi3.SchemaRef, error) {
	schema, err := convert(s, defaultRequired)
	if err != nil {
		return nil, err
	}
	if schema.Example == nil {
		schema.Example = oc.GenerateSample(s).Interface()
	}
	return openapi3.NewSchemaRef("", schema), nil
}

func baseSchema(s *oc.Schema) *openapi3.Schema {
	switch s.TypeName() {
	case "str", "string", "commaarray", "enum":
		return openapi3.NewStringSchema()
	case "jsonstring":
		return openapi3.NewStringSchema().WithFormat("json")
	case "num", "number", "float":
		return openapi3.NewFloat64Schema()
	case "int", "integer":
		return openapi3.NewIntegerSchema()
	case "bool", "boolean":
		return openapi3.NewBoolSchema()
	case "arr", "array":
		return openapi3.NewArraySchema()
	case "json", "obj", "object":
		return openapi3.NewObjectSchema()
	case "any", "*":
		return openapi3.NewSchema()
	}
	if s.Has(oc.ElemKey) {
		return openapi3.NewArraySchema()
	}
	for _, k := range s.Keys() {
		if !oc.IsDirective(k) && k != oc.ElemKey {
			return openapi3.NewObjectSchema()
		}
	}
	return openapi3.NewSchema()
}

func convert(s *oc.Schema, defaultRequired bool) (*openapi3.Schema, error) {
	schema := baseSchema(s)
	isArray := schema.Type != nil && schema.Type.Is(openapi3.TypeArray)

	for _, key := range s.Keys() {
		if key == oc.ElemKey {
			elem, _ := s.Field(key)
			items, err := convert(elem, defaultRequired)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			schema.Items = openapi3.NewSchemaRef("", items)
			continue
		}
		if !oc.IsDirective(key) {
			child, _ := s.Field(key)
			prop, err := convert(child, defaultRequired)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			if schema.Properties == nil {
				schema.Properties = openapi3.Schemas{}
			}
			schema.Properties[key] = openapi3.NewSchemaRef("", prop)
			if oc.IsRequired(child, defaultRequired) {
				schema.Required = append(schema.Required, key)
			}
			continue
		}
		opt, ok := s.Option(key)
		if !ok {
			continue
		}
		if err := describe(schema, key, opt, isArray); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
	}
	return schema, nil
}

// describe applies one directive to schema.
func describe(schema *openapi3.Schema, key string, opt oc.Value, isArray bool) error { //nolint:revive // one case per directive
	flag, _ := opt.AsBool()
	switch key {
	case "$desc":
		schema.Description, _ = opt.AsString()
	case "$example":
		schema.Example = opt.Interface()
	case "$allowNull":
		schema.Nullable = flag
	case "$minValue", "$maxValue":
		f, ok := opt.AsNumber()
		if !ok {
			return fmt.Errorf("option %s is not a number", opt)
		}
		if key == "$minValue" {
			schema.Min = &f
		} else {
			schema.Max = &f
		}
	case "$isPositiveInteger", "$isPositiveZeroInteger", "$isPositiveIntegerOrZero":
		if flag {
			lo := 0.0
			if key == "$isPositiveInteger" {
				lo = 1
			}
			schema.Min = &lo
		}
	case "$isNegativeInteger", "$isNegativeZeroInteger", "$isNegativeIntegerOrZero":
		if flag {
			hi := 0.0
			if key == "$isNegativeInteger" {
				hi = -1
			}
			schema.Max = &hi
		}
	case "$minLength", "$maxLength", "$isLength":
		f, ok := opt.AsNumber()
		if !ok || f < 0 {
			return fmt.Errorf("option %s is not a length", opt)
		}
		setLength(schema, key, uint64(f), isArray)
	case "$notEmptyString":
		if flag {
			schema.MinLength = 1
		}
	case "$in":
		items, ok := opt.AsList()
		if !ok {
			return fmt.Errorf("option %s is not a list", opt)
		}
		schema.Enum = interfaces(items)
	case "$notIn":
		items, ok := opt.AsList()
		if !ok {
			return fmt.Errorf("option %s is not a list", opt)
		}
		schema.Not = openapi3.NewSchemaRef("", &openapi3.Schema{Enum: interfaces(items)})
	case "$isValue":
		schema.Enum = []any{opt.Interface()}
	case "$matchRegExp":
		pattern, ok := opt.AsString()
		if !ok {
			return fmt.Errorf("option %s is not a pattern", opt)
		}
		schema.Pattern = "^(?:" + pattern + ")"
	case "$isEmail":
		if flag {
			schema.Format = "email"
		}
	case "$commaArrayIn":
		items, _ := opt.AsList()
		schema.Description = appendDesc(schema.Description, fmt.Sprintf("comma separated values from %s", oc.List(items...)))
	}
	return nil
}

func setLength(schema *openapi3.Schema, key string, n uint64, isArray bool) {
	if isArray {
		if key != "$maxLength" {
			schema.MinItems = n
		}
		if key != "$minLength" {
			schema.MaxItems = &n
		}
		return
	}
	if key != "$maxLength" {
		schema.MinLength = n
	}
	if key != "$minLength" {
		schema.MaxLength = &n
	}
}

func interfaces(items []oc.Value) []any {
	out := make([]any, len(items))
	for i := range items {
		out[i] = items[i].Interface()
	}
	return out
}

func appendDesc(desc, more string) string {
	if desc != "" {
		desc += " "
	}
	return desc + more
}
