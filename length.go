package objectchecker

// lengthDirective builds the length directives. Strings are measured in
// runes; values that are neither strings nor lists fail.
func lengthDirective(accept func(n, limit float64) bool) Directive {
	return func(value Value, option any) bool {
		n, ok := value.Len()
		if !ok {
			return false
		}
		opt, ok := option.(Value)
		if !ok {
			return false
		}
		limit, ok := opt.AsNumber()
		if !ok {
			return false
		}
		return accept(float64(n), limit)
	}
}
