package transform

import (
	"strings"

	oc "github.com/Gobd/objectchecker"
)

// TrimSpace runs [strings.TrimSpace] on every string in v, including list
// items and object members. Object keys are left alone.
func TrimSpace(v oc.Value) oc.Value {
	return StringFunc(v, strings.TrimSpace)
}

// ToLower runs [strings.ToLower] on every string in v.
func ToLower(v oc.Value) oc.Value {
	return StringFunc(v, strings.ToLower)
}

// StringFunc returns a copy of v with f applied to every string. v itself is
// not modified.
func StringFunc(v oc.Value, f func(string) string) oc.Value {
	switch v.Kind() {
	case oc.KindString:
		s, _ := v.AsString()
		return oc.String(f(s))
	case oc.KindList:
		items, _ := v.AsList()
		out := make([]oc.Value, len(items))
		for i := range items {
			out[i] = StringFunc(items[i], f)
		}
		return oc.List(out...)
	case oc.KindObject:
		obj, _ := v.AsObject()
		out := oc.NewObject()
		for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, StringFunc(pair.Value, f))
		}
		return oc.ObjectValue(out)
	}
	return v
}

// Multi applies every function to v in order.
func Multi(v oc.Value, fns ...func(oc.Value) oc.Value) oc.Value {
	for _, f := range fns {
		v = f(v)
	}
	return v
}
