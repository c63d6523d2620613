// Package objectchecker validates JSON-shaped values against directive
// schemas and derives example payloads from the same schemas.
//
// A schema is a JSON object. Keys starting with "$" are directives whose
// value is the directive option; other keys describe nested fields. The bare
// key "$" holds the schema applied to every element of a list:
//
//	schema := objectchecker.MustParseSchema(`{
//	    "id":   {"$type": "string"},
//	    "age":  {"$type": "integer", "$minValue": 0, "$isOptional": true},
//	    "tags": {"$": {"$type": "string"}}
//	}`)
//
// Validate a decoded value with a [Checker]:
//
//	value, err := objectchecker.ParseJSON(body)
//	res := objectchecker.New().Check(value, schema)
//	if !res.IsValid {
//	    // res.Message is human readable, res.Detail is the structured error
//	}
//
// Validation is fail-fast: the first violation ends the walk. Custom
// directives are registered on a [Registry] before checkers are built, or
// passed per checker with [WithDirective].
//
// [Flatten] and [GenerateSample] turn a schema into dotted-path leaf entries
// and an example value, which the documentation tooling in the openapi and
// route sub-packages builds on.
//
// Sub-packages:
//   - openapi – OpenAPI 3 schema generation from directive schemas
//   - route – YAML route tables, validating chi handlers and route docs
package objectchecker
