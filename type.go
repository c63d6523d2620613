package objectchecker

import (
	"strings"

	"github.com/asaskevich/govalidator"
)

// typeDirective implements $type. Unknown type names accept every value.
func typeDirective(value Value, option any) bool {
	v, ok := option.(Value)
	if !ok {
		return false
	}
	name, ok := v.AsString()
	if !ok {
		return false
	}
	switch strings.ToLower(name) {
	case "str", "string", "commaarray", "enum":
		return value.Kind() == KindString
	case "num", "number", "float":
		return value.IsNumber()
	case "int", "integer":
		return value.IsInteger()
	case "bool", "boolean":
		return value.Kind() == KindBool
	case "arr", "array":
		return value.Kind() == KindList
	case "json", "obj", "object":
		return value.Kind() == KindObject
	case "jsonstring":
		s, ok := value.AsString()
		return ok && govalidator.IsJSON(s)
	}
	return true
}

// isFreeForm reports whether a lowercased type name allows undeclared keys.
func isFreeForm(typeName string) bool {
	switch typeName {
	case "json", "obj", "object":
		return true
	}
	return false
}

// isAnyType reports whether a lowercased type name disables checking.
func isAnyType(typeName string) bool {
	return typeName == "any" || typeName == "*"
}
