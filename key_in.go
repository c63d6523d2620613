package objectchecker

// checkKeys rejects object members that s does not declare, unless the
// schema type is free-form.
func checkKeys(obj *Object, s *Schema) *ValidationError {
	if isFreeForm(s.TypeName()) {
		return nil
	}
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if !s.Has(pair.Key) {
			return &ValidationError{Kind: Unexpected, Field: pair.Key}
		}
	}
	return nil
}
