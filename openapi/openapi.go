package openapi

import (
	"fmt"
	"net/http"
	"regexp"

	oc "github.com/Gobd/objectchecker"
	"github.com/getkin/kin-openapi/openapi3"
)

// Endpoint describes a single API operation for the convenience helpers
// [Get], [Post], [Put], [Patch], and [Delete].
type Endpoint struct {
	Summary     string
	Description string
	Query       *oc.Schema // each field becomes a query parameter
	Body        *oc.Schema // application/json request body
	Response    *oc.Schema // 200 response body
	// DefaultRequired mirrors the checker option used for Query and Body.
	DefaultRequired bool
}

// NewRequest generates an OpenAPI request body from a schema.
func NewRequest(s *oc.Schema, defaultRequired bool) (*openapi3.RequestBodyRef, error) {
	ref, err := NewSchemaRef(s, defaultRequired)
	if err != nil {
		return nil, err
	}
	return &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Required: hasRequired(s, defaultRequired),
			Content: openapi3.Content{
				"application/json": &openapi3.MediaType{Schema: ref},
			},
		},
	}, nil
}

// NewQueryParameters turns every field of a query schema into a query
// parameter.
func NewQueryParameters(s *oc.Schema, defaultRequired bool) (openapi3.Parameters, error) {
	var params openapi3.Parameters
	for _, key := range s.Keys() {
		child, ok := s.Field(key)
		if !ok || key == oc.ElemKey {
			continue
		}
		ref, err := NewSchemaRef(child, defaultRequired)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", key, err)
		}
		if !child.Has("$example") {
			ref.Value.Example = nil
		}
		p := openapi3.NewQueryParameter(key).
			WithSchema(ref.Value).
			WithRequired(oc.IsRequired(child, defaultRequired))
		p.Description = ref.Value.Description
		params = append(params, &openapi3.ParameterRef{Value: p})
	}
	return params, nil
}

var pathParamRegexp = regexp.MustCompile(`\{([^}:]+)(?::[^}]*)?\}`)

// PathTemplate strips chi style regexp constraints ({id:[0-9]+}) from path.
func PathTemplate(path string) string {
	return pathParamRegexp.ReplaceAllString(path, "{$1}")
}

func pathParameters(path string) openapi3.Parameters {
	var params openapi3.Parameters
	for _, m := range pathParamRegexp.FindAllStringSubmatch(path, -1) {
		p := openapi3.NewPathParameter(m[1]).WithSchema(openapi3.NewStringSchema())
		params = append(params, &openapi3.ParameterRef{Value: p})
	}
	return params
}

// NewResponse creates an OpenAPI responses object with a 200 response and
// a 400 response carrying the check result.
func NewResponse(s *oc.Schema) (*openapi3.Responses, error) {
	ok := "OK"
	res := &openapi3.Response{Description: &ok}
	if s != nil {
		ref, err := NewSchemaRef(s, true)
		if err != nil {
			return nil, err
		}
		res.Content = openapi3.Content{
			"application/json": &openapi3.MediaType{Schema: ref},
		}
	}
	bad := "Validation failed"
	return openapi3.NewResponses(
		openapi3.WithName("200", res),
		openapi3.WithName("400", &openapi3.Response{
			Description: &bad,
			Content: openapi3.Content{
				"application/json": &openapi3.MediaType{Schema: resultSchema()},
			},
		}),
	), nil
}

func resultSchema() *openapi3.SchemaRef {
	detail := openapi3.NewObjectSchema().
		WithProperty("type", openapi3.NewStringSchema().WithEnum(string(oc.Missing), string(oc.Invalid), string(oc.Unexpected))).
		WithProperty("fieldName", openapi3.NewStringSchema()).
		WithProperty("fieldValue", openapi3.NewSchema()).
		WithProperty("checkerName", openapi3.NewStringSchema().WithNullable()).
		WithProperty("checkerOption", openapi3.NewSchema())
	detail.Nullable = true
	result := openapi3.NewObjectSchema().
		WithProperty("isValid", openapi3.NewBoolSchema()).
		WithProperty("message", openapi3.NewStringSchema().WithNullable()).
		WithProperty("detail", detail)
	return openapi3.NewSchemaRef("", result)
}

func hasRequired(s *oc.Schema, defaultRequired bool) bool {
	for _, key := range s.Keys() {
		if child, ok := s.Field(key); ok && key != oc.ElemKey && oc.IsRequired(child, defaultRequired) {
			return true
		}
	}
	return false
}

// DocBase returns a basic OpenAPI 3.0.3 document structure.
func DocBase(serviceName, description, version string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       serviceName,
			Description: description,
			Version:     version,
		},
		Paths: &openapi3.Paths{},
	}
}

// AddPath adds an operation to the OpenAPI spec at the given path and method.
func AddPath(path, method string, s *openapi3.T, op *openapi3.Operation) {
	path = PathTemplate(path)
	p := s.Paths.Value(path)
	if p == nil {
		p = &openapi3.PathItem{}
	}

	switch method {
	case http.MethodGet:
		p.Get = op
	case http.MethodPost:
		p.Post = op
	case http.MethodPut:
		p.Put = op
	case http.MethodPatch:
		p.Patch = op
	case http.MethodDelete:
		p.Delete = op
	}

	s.Paths.Set(path, p)
}

// AddEndpoint builds an [openapi3.Operation] from ep and registers it at
// path+method.
func AddEndpoint(doc *openapi3.T, path, method, operationID string, ep Endpoint) error {
	op := &openapi3.Operation{
		OperationID: operationID,
		Summary:     ep.Summary,
		Description: ep.Description,
		Parameters:  pathParameters(path),
	}

	if ep.Query != nil {
		params, err := NewQueryParameters(ep.Query, ep.DefaultRequired)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		op.Parameters = append(op.Parameters, params...)
	}

	if ep.Body != nil {
		body, err := NewRequest(ep.Body, ep.DefaultRequired)
		if err != nil {
			return fmt.Errorf("%s %s body: %w", method, path, err)
		}
		op.RequestBody = body
	}

	responses, err := NewResponse(ep.Response)
	if err != nil {
		return fmt.Errorf("%s %s response: %w", method, path, err)
	}
	op.Responses = responses

	AddPath(path, method, doc, op)
	return nil
}

// Get registers a GET endpoint on doc.
func Get(doc *openapi3.T, path, operationID string, ep Endpoint) error {
	return AddEndpoint(doc, path, http.MethodGet, operationID, ep)
}

// Post registers a POST endpoint on doc.
func Post(doc *openapi3.T, path, operationID string, ep Endpoint) error {
	return AddEndpoint(doc, path, http.MethodPost, operationID, ep)
}

// Put registers a PUT endpoint on doc.
func Put(doc *openapi3.T, path, operationID string, ep Endpoint) error {
	return AddEndpoint(doc, path, http.MethodPut, operationID, ep)
}

// Patch registers a PATCH endpoint on doc.
func Patch(doc *openapi3.T, path, operationID string, ep Endpoint) error {
	return AddEndpoint(doc, path, http.MethodPatch, operationID, ep)
}

// Delete registers a DELETE endpoint on doc.
func Delete(doc *openapi3.T, path, operationID string, ep Endpoint) error {
	return AddEndpoint(doc, path, http.MethodDelete, operationID, ep)
}
