package objectchecker

type (
	// Directive reports whether value satisfies a directive option. The
	// option is the entry stored in the schema: usually a [Value], or an
	// [Assertion] for $assertTrue and $assertFalse. Directives must not
	// panic on options of an unexpected shape; they return false instead.
	Directive func(value Value, option any) bool

	// Assertion is the option of $assertTrue and $assertFalse.
	//
	//	s := objectchecker.NewSchema().
	//	    Set("$type", "string").
	//	    Set("$assertTrue", objectchecker.Assertion(func(v objectchecker.Value) bool {
	//	        s, _ := v.AsString()
	//	        return strings.HasPrefix(s, "ord_")
	//	    }))
	Assertion func(value Value) bool

	// Option configures a [Checker].
	Option func(*config)
)

// NoOp is a directive that accepts every value. Register documentation keys
// such as $desc with it so they pass validation.
func NoOp(Value, any) bool { return true }
