package objectchecker

// skipped reports whether s turns off checking for its value: $skip is true
// or the type is "any" or "*".
func skipped(s *Schema) bool {
	return s.flag("$skip") || isAnyType(s.TypeName())
}
