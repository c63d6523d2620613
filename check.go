package objectchecker

// Check validates value against s with a checker built from [Default] and
// the default options. Build a [Checker] with [New] for repeated use.
func Check(value Value, s *Schema) Result {
	return New().Check(value, s)
}

// IsValid reports whether value satisfies s under the default options.
func IsValid(value Value, s *Schema) bool {
	return Check(value, s).IsValid
}
