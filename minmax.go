package objectchecker

func isInteger(v Value) bool { return v.IsInteger() }

func isPositiveZeroInteger(v Value) bool {
	i, ok := v.AsInt()
	return ok && i >= 0
}

func isPositiveInteger(v Value) bool {
	i, ok := v.AsInt()
	return ok && i > 0
}

func isNegativeZeroInteger(v Value) bool {
	i, ok := v.AsInt()
	return ok && i <= 0
}

func isNegativeInteger(v Value) bool {
	i, ok := v.AsInt()
	return ok && i < 0
}

// thresholdDirective builds $minValue and $maxValue. Numbers compare with
// numbers and strings with strings; any other pairing fails.
func thresholdDirective(accept func(c int) bool) Directive {
	return func(value Value, option any) bool {
		threshold, ok := option.(Value)
		if !ok {
			return false
		}
		c, ok := compare(value, threshold)
		return ok && accept(c)
	}
}
