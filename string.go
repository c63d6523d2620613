package objectchecker

import (
	"regexp"
	"sync"
)

var emailRegexp = regexp.MustCompile(`(?i)^(?:[a-z\d]+[_\-+.]?)*[a-z\d]+@(?:([a-z\d]+-?)*[a-z\d]+\.)+([a-z]{2,})+$`)

func notEmptyString(value Value, option any) bool {
	s, ok := value.AsString()
	if !ok {
		return false
	}
	flg, ok := optionBool(option)
	return ok && flg == (len(s) > 0)
}

// regexpDirective builds $matchRegExp and $notMatchRegExp. The pattern is
// anchored at the start of the value's string form. A pattern that does not
// compile fails both directives.
func regexpDirective(want bool) Directive {
	return func(value Value, option any) bool {
		opt, ok := option.(Value)
		if !ok {
			return false
		}
		pattern, ok := opt.AsString()
		if !ok {
			return false
		}
		re := compilePattern(pattern)
		if re == nil {
			return false
		}
		return re.MatchString(value.String()) == want
	}
}

// patterns caches compiled $matchRegExp patterns. A pattern that does not
// compile is stored as nil.
var patterns sync.Map

func compilePattern(pattern string) *regexp.Regexp {
	if re, ok := patterns.Load(pattern); ok {
		return re.(*regexp.Regexp)
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		re = nil
	}
	actual, _ := patterns.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp)
}

func isEmail(value Value, option any) bool {
	flg, ok := optionBool(option)
	if !ok {
		return false
	}
	s, isString := value.AsString()
	return flg == (isString && emailRegexp.MatchString(s))
}
