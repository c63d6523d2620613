package objectchecker

import (
	"strings"
)

// contains reports whether v is a member of the container option: an item of
// a list, a key of an object, or a substring of a string. ok is false when
// the option is not a container.
func contains(v Value, option any) (found, ok bool) {
	opt, isValue := option.(Value)
	if !isValue {
		return false, false
	}
	switch opt.Kind() {
	case KindList:
		items, _ := opt.AsList()
		for _, item := range items {
			if Equal(v, item) {
				return true, true
			}
		}
		return false, true
	case KindObject:
		obj, _ := opt.AsObject()
		key, isString := v.AsString()
		if !isString {
			return false, true
		}
		_, found = obj.Get(key)
		return found, true
	case KindString:
		haystack, _ := opt.AsString()
		needle, isString := v.AsString()
		return isString && strings.Contains(haystack, needle), true
	}
	return false, false
}

func inDirective(value Value, option any) bool {
	found, ok := contains(value, option)
	return ok && found
}

func notInDirective(value Value, option any) bool {
	found, ok := contains(value, option)
	return ok && !found
}

// commaArrayIn splits a string on commas and requires every token to be in
// the option.
func commaArrayIn(value Value, option any) bool {
	s, ok := value.AsString()
	if !ok {
		return false
	}
	for _, tok := range strings.Split(s, ",") {
		if found, ok := contains(String(tok), option); !ok || !found {
			return false
		}
	}
	return true
}

func isValue(value Value, option any) bool {
	want, ok := option.(Value)
	return ok && Equal(value, want)
}
