package objectchecker

func assertionOf(option any) Assertion {
	switch f := option.(type) {
	case Assertion:
		return f
	case func(Value) bool:
		return f
	}
	return nil
}

// assertDirective builds $assertTrue and $assertFalse: the option function
// must return want.
func assertDirective(want bool) Directive {
	return func(value Value, option any) bool {
		f := assertionOf(option)
		if f == nil {
			return false
		}
		return f(value) == want
	}
}
