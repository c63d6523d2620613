package objectchecker

// Control keys steer the walk and are never run as predicates.
var controlKeys = map[string]bool{
	"$isOptional": true,
	"$optional":   true,
	"$isRequired": true,
	"$required":   true,
	"$allowNull":  true,
	"$skip":       true,
}

func isControlKey(key string) bool {
	return controlKeys[key]
}

// IsRequired reports whether a field described by s must be present under
// the given default.
func IsRequired(s *Schema, defaultRequired bool) bool {
	if defaultRequired {
		return !s.flag("$isOptional") && !s.flag("$optional")
	}
	return s.flag("$isRequired") || s.flag("$required")
}
