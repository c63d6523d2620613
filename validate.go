package objectchecker

import (
	"maps"
)

type config struct {
	defaultRequired bool
	templates       map[ErrorKind]string
	registry        *Registry
	custom          map[string]Directive
}

// WithDefaultRequired sets whether fields are required unless marked
// $isOptional (true, the default) or optional unless marked $isRequired
// (false).
func WithDefaultRequired(required bool) Option {
	return func(c *config) {
		c.defaultRequired = required
	}
}

// WithMessageTemplates overrides message templates per error kind.
func WithMessageTemplates(templates map[ErrorKind]string) Option {
	return func(c *config) {
		maps.Copy(c.templates, templates)
	}
}

// WithRegistry builds the checker from r instead of [Default].
func WithRegistry(r *Registry) Option {
	return func(c *config) {
		c.registry = r
	}
}

// WithDirective adds a directive for this checker only. It takes precedence
// over a registry directive of the same name. A nil fn accepts every value.
func WithDirective(name string, fn Directive) Option {
	return func(c *config) {
		c.custom[name] = fn
	}
}

// WithDocKeys accepts the given keys without checking, for schemas carrying
// documentation such as $desc or $example.
func WithDocKeys(keys ...string) Option {
	return func(c *config) {
		for _, k := range keys {
			c.custom[k] = nil
		}
	}
}

// Checker validates values against schemas. Its directive table is fixed at
// construction, so a Checker is safe for concurrent use.
type Checker struct {
	defaultRequired bool
	templates       map[ErrorKind]string
	directives      map[string]Directive
}

// New builds a checker. Fields are required by default.
func New(opts ...Option) *Checker {
	cfg := config{
		defaultRequired: true,
		templates:       maps.Clone(DefaultTemplates),
		registry:        Default,
		custom:          map[string]Directive{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	table := cfg.registry.snapshot()
	maps.Copy(table, cfg.custom)
	return &Checker{
		defaultRequired: cfg.defaultRequired,
		templates:       cfg.templates,
		directives:      table,
	}
}

// Verify walks value against s and returns the first violation as a
// *ValidationError. An empty path means the root, reported as "obj".
func (c *Checker) Verify(value Value, s *Schema, path string) error {
	if path == "" {
		path = rootPath
	}
	if err := c.verify(value, s, path); err != nil {
		return err
	}
	return nil
}

// Check validates value against s and reports the outcome as a [Result].
func (c *Checker) Check(value Value, s *Schema) Result {
	err := c.verify(value, s, rootPath)
	if err == nil {
		return Result{IsValid: true}
	}
	return Result{
		IsValid: false,
		Message: FormatMessage(err, c.templates),
		Detail:  err,
	}
}

// IsValid reports whether value satisfies s.
func (c *Checker) IsValid(value Value, s *Schema) bool {
	return c.Check(value, s).IsValid
}

// Validate is like Check but returns the failure as [ValidationErrors], or
// nil when value is valid.
func (c *Checker) Validate(value Value, s *Schema) error {
	return c.Check(value, s).Errors()
}

func (c *Checker) verify(value Value, s *Schema, path string) *ValidationError {
	if value.IsAbsent() && !IsRequired(s, c.defaultRequired) {
		return nil
	}
	if value.IsNull() && s.flag("$allowNull") {
		return nil
	}
	if value.IsAbsent() {
		return &ValidationError{Kind: Missing, Field: path}
	}
	if skipped(s) {
		return nil
	}
	if obj, ok := value.AsObject(); ok {
		if err := checkKeys(obj, s); err != nil {
			return err
		}
	}

	if option, ok := s.Get(typeKey); ok {
		if err := c.apply(value, typeKey, option, path); err != nil {
			return err
		}
	}
	var err *ValidationError
	s.each(func(key string, option any) bool {
		if key == typeKey {
			return true
		}
		err = c.apply(value, key, option, path)
		return err == nil
	})
	return err
}

func (c *Checker) apply(value Value, key string, option any, path string) *ValidationError {
	if fn, ok := c.directives[key]; ok {
		if fn == nil || fn(value, option) {
			return nil
		}
		return &ValidationError{Kind: Invalid, Field: path, Value: value, Directive: key, Option: option}
	}
	if isControlKey(key) {
		return nil
	}
	if key == ElemKey {
		return c.verifyEach(value, option, path)
	}
	if IsDirective(key) {
		// Unknown directive.
		return &ValidationError{Kind: Invalid, Field: path, Value: value, Directive: key, Option: option}
	}
	if value.Kind() != KindObject {
		return &ValidationError{Kind: Invalid, Field: path, Value: value, Directive: key, Option: option}
	}
	child, _ := option.(*Schema)
	return c.verify(value.Get(key), child, key)
}
