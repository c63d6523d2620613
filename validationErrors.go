package objectchecker

import (
	"bytes"
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidationErrors is a map of field names to their validation errors.
// It is an alias for [validation.Errors] from ozzo-validation and implements
// the error interface with a JSON-friendly string representation.
type ValidationErrors = validation.Errors

// ErrorKind classifies a [ValidationError].
type ErrorKind string

const (
	// Missing means a required field is absent.
	Missing ErrorKind = "missing"
	// Invalid means a directive rejected the value, or the value has the
	// wrong shape for an element schema.
	Invalid ErrorKind = "invalid"
	// Unexpected means an object carries a key its schema does not declare.
	Unexpected ErrorKind = "unexpected"
)

// ValidationError is the first violation found by [Checker.Verify].
type ValidationError struct {
	Kind ErrorKind
	// Field is the path of the offending value: "obj" for the root, the
	// field key for object members, and "path[i]" for list elements. For
	// Unexpected it is the undeclared key.
	Field string
	// Value is the rejected value; Absent for Missing and Unexpected.
	Value Value
	// Directive and Option are set for Invalid.
	Directive string
	Option    any
}

// Error describes the violation with its kind, field and directive.
func (e *ValidationError) Error() string {
	if e.Kind == Invalid && e.Directive != "" {
		return fmt.Sprintf("objectchecker: %s field %q (%s)", e.Kind, e.Field, e.Directive)
	}
	return fmt.Sprintf("objectchecker: %s field %q", e.Kind, e.Field)
}

// Code returns the ozzo-validation error code for the kind, such as
// "validation_missing".
func (e *ValidationError) Code() string {
	return "validation_" + string(e.Kind)
}

// MarshalJSON encodes the error the way HTTP consumers report it:
// type, fieldName, fieldValue, checkerName and checkerOption.
func (e *ValidationError) MarshalJSON() ([]byte, error) {
	fieldValue, err := e.Value.MarshalJSON()
	if err != nil {
		return nil, err
	}
	option, err := encodeOption(e.Option)
	if err != nil {
		return nil, err
	}
	var checker any
	if e.Directive != "" {
		checker = e.Directive
	}
	return json.Marshal(struct {
		Type          ErrorKind       `json:"type"`
		FieldName     string          `json:"fieldName"`
		FieldValue    json.RawMessage `json:"fieldValue"`
		CheckerName   any             `json:"checkerName"`
		CheckerOption json.RawMessage `json:"checkerOption"`
	}{e.Kind, e.Field, fieldValue, checker, option})
}

// Result is the outcome of [Checker.Check].
type Result struct {
	IsValid bool
	// Message is the formatted error message, empty when valid.
	Message string
	Detail  *ValidationError
}

// MarshalJSON encodes r as {"isValid", "message", "detail"} with nulls when
// valid.
func (r Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"isValid":`)
	if r.IsValid {
		buf.WriteString("true")
	} else {
		buf.WriteString("false")
	}
	buf.WriteString(`,"message":`)
	if r.Message == "" {
		buf.WriteString("null")
	} else {
		b, _ := json.Marshal(r.Message)
		buf.Write(b)
	}
	buf.WriteString(`,"detail":`)
	if r.Detail == nil {
		buf.WriteString("null")
	} else {
		b, err := r.Detail.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Errors returns the failure as [ValidationErrors] keyed by field path, or
// nil when r is valid.
func (r Result) Errors() error {
	if r.IsValid || r.Detail == nil {
		return nil
	}
	return ValidationErrors{
		r.Detail.Field: validation.NewError(r.Detail.Code(), r.Message),
	}
}
