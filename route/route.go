package route

import (
	"net/http"
	"regexp"

	oc "github.com/Gobd/objectchecker"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Route describes one endpoint.
type Route struct {
	// Group and Key locate the route in its table.
	Group string
	Key   string

	Name   string
	Method string
	// URL is the chi pattern the handler is mounted at. Prefix is prepended
	// in documentation only, for routers mounted under a sub path.
	URL    string
	Prefix string
	Desc   string
	// Query and Body are checked with fields optional unless $isRequired.
	// A nil or empty schema turns the check off.
	Query     *oc.Schema
	Body      *oc.Schema
	ShowInDoc bool
}

var urlRegexp = regexp.MustCompile(`^/`)

// Validate checks the route configuration.
func (r *Route) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Method, validation.Required, validation.In(
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
		)),
		validation.Field(&r.URL, validation.Required, validation.Match(urlRegexp)),
		validation.Field(&r.Prefix, validation.Match(urlRegexp)),
	)
}

// Path returns the documented path, Prefix followed by URL.
func (r *Route) Path() string {
	return r.Prefix + r.URL
}

// ID names the route for metrics and logs.
func (r *Route) ID() string {
	if r.Key == "" {
		return r.Method + " " + r.URL
	}
	if r.Group == "" {
		return r.Key
	}
	return r.Group + "." + r.Key
}

func hasRules(s *oc.Schema) bool {
	return s != nil && s.Len() > 0
}
