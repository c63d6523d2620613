package objectchecker

import (
	"errors"
	"fmt"
	"maps"
	"sync"
)

// ErrRegistryFrozen is returned when registering on a sealed [Registry].
var ErrRegistryFrozen = errors.New("objectchecker: registry is sealed")

// Registry maps directive names to predicates. It starts with the built-in
// directives and only grows: names are added or replaced, never removed.
// Checkers copy the table when they are built, so registration belongs to
// program setup.
type Registry struct {
	mu         sync.Mutex
	sealed     bool
	directives map[string]Directive
}

// NewRegistry returns a registry holding the built-in directives.
func NewRegistry() *Registry {
	return &Registry{directives: maps.Clone(builtins)}
}

// Default is the process-wide registry used by checkers built without
// [WithRegistry].
var Default = NewRegistry()

// RegisterDirective registers fn under name on [Default].
func RegisterDirective(name string, fn Directive) error {
	return Default.Register(name, fn)
}

// Register adds fn under name, replacing an earlier registration of the same
// name. A nil fn registers a key that is accepted without checking.
func (r *Registry) Register(name string, fn Directive) error {
	if !IsDirective(name) {
		return fmt.Errorf("objectchecker: directive name %q must start with $", name)
	}
	if isControlKey(name) {
		return fmt.Errorf("objectchecker: %q is a control key", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return ErrRegistryFrozen
	}
	r.directives[name] = fn
	return nil
}

// Seal stops further registration.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Lookup returns the directive registered under name.
func (r *Registry) Lookup(name string) (Directive, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn, ok := r.directives[name]
	return fn, ok
}

func (r *Registry) snapshot() map[string]Directive {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.directives)
}

var builtins = map[string]Directive{
	"$type":                    typeDirective,
	"$assertTrue":              assertDirective(true),
	"$assertFalse":             assertDirective(false),
	"$notEmptyString":          notEmptyString,
	"$isInteger":               flagDirective(isInteger),
	"$isPositiveZeroInteger":   flagDirective(isPositiveZeroInteger),
	"$isPositiveIntegerOrZero": flagDirective(isPositiveZeroInteger),
	"$isPositiveInteger":       flagDirective(isPositiveInteger),
	"$isNegativeZeroInteger":   flagDirective(isNegativeZeroInteger),
	"$isNegativeIntegerOrZero": flagDirective(isNegativeZeroInteger),
	"$isNegativeInteger":       flagDirective(isNegativeInteger),
	"$minValue":                thresholdDirective(func(c int) bool { return c >= 0 }),
	"$maxValue":                thresholdDirective(func(c int) bool { return c <= 0 }),
	"$isValue":                 isValue,
	"$in":                      inDirective,
	"$notIn":                   notInDirective,
	"$commaArrayIn":            commaArrayIn,
	"$minLength":               lengthDirective(func(n, limit float64) bool { return n >= limit }),
	"$maxLength":               lengthDirective(func(n, limit float64) bool { return n <= limit }),
	"$isLength":                lengthDirective(func(n, limit float64) bool { return n == limit }),
	"$matchRegExp":             regexpDirective(true),
	"$notMatchRegExp":          regexpDirective(false),
	"$isEmail":                 isEmail,
}

// optionBool returns a boolean directive option.
func optionBool(option any) (bool, bool) {
	v, ok := option.(Value)
	if !ok {
		return false, false
	}
	return v.AsBool()
}

// flagDirective builds a directive whose boolean option must equal pred(value).
func flagDirective(pred func(Value) bool) Directive {
	return func(value Value, option any) bool {
		flg, ok := optionBool(option)
		if !ok {
			return false
		}
		return flg == pred(value)
	}
}
