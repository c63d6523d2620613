package objectchecker

import (
	"strings"
)

// FormatMessage renders err with the template for its kind. {{fieldName}}
// becomes the field path; for Invalid errors {{fieldValue}} and
// {{checkerOption}} become JSON and {{checkerName}} the directive name without
// its leading "$". Without a template the error's own string is returned.
func FormatMessage(err *ValidationError, templates map[ErrorKind]string) string {
	tmpl := templates[err.Kind]
	if tmpl == "" {
		return err.Error()
	}
	if err.Kind != Invalid {
		return strings.ReplaceAll(tmpl, "{{fieldName}}", err.Field)
	}
	fieldValue, e := err.Value.MarshalJSON()
	if e != nil {
		fieldValue = []byte(err.Value.String())
	}
	option, e := encodeOption(err.Option)
	if e != nil {
		option = []byte("null")
	}
	return strings.NewReplacer(
		"{{fieldName}}", err.Field,
		"{{fieldValue}}", string(fieldValue),
		"{{checkerName}}", strings.TrimPrefix(err.Directive, "$"),
		"{{checkerOption}}", string(option),
	).Replace(tmpl)
}
