package route

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	oc "github.com/Gobd/objectchecker"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, opts ...Option) (*chi.Mux, *Loader, *Table) {
	t.Helper()
	table, err := LoadFile("testdata/route.yaml")
	require.NoError(t, err)

	l := NewLoader(opts...)
	r := chi.NewRouter()
	echo := func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
	require.NoError(t, l.Handle(r, table.MustGet("app", "index"), echo))
	require.NoError(t, l.Handle(r, table.MustGet("app", "listUsers"), echo))
	require.NoError(t, l.Handle(r, table.MustGet("app", "createUser"), echo))
	return r, l, table
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLoaderQuery(t *testing.T) {
	r, _, _ := newServer(t)

	tests := []struct {
		name     string
		target   string
		wantCode int
		wantBody string
	}{
		{"valid", "/users?page=2&order=asc", http.StatusOK, ""},
		{"missing required", "/users?order=asc", http.StatusBadRequest, `"type":"missing","fieldName":"page"`},
		{"regexp", "/users?page=two", http.StatusBadRequest, `"checkerName":"$matchRegExp"`},
		{"enum", "/users?page=1&order=up", http.StatusBadRequest, `"checkerName":"$in"`},
		{"unexpected", "/users?page=1&debug=1", http.StatusBadRequest, `"type":"unexpected","fieldName":"debug"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
				assert.Contains(t, rec.Body.String(), tt.wantBody)
				assert.Contains(t, rec.Body.String(), `"isValid":false`)
			}
		})
	}
}

func TestLoaderBody(t *testing.T) {
	r, _, _ := newServer(t)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantBody string
	}{
		{"valid", `{"name":"Ann","age":30,"tags":["a"]}`, http.StatusOK, `{"name":"Ann","age":30,"tags":["a"]}`},
		{"optional fields", `{"name":"Ann"}`, http.StatusOK, `{"name":"Ann"}`},
		{"empty body", "", http.StatusOK, ""},
		{"invalid json", `{"name":`, http.StatusBadRequest, `"Invalid JSON string"`},
		{"missing name", `{"age":3}`, http.StatusBadRequest, "Field `name` is missing."},
		{"wrong type", `{"name":"Ann","age":"3"}`, http.StatusBadRequest, `"checkerName":"$type"`},
		{"bad element", `{"name":"Ann","tags":[1]}`, http.StatusBadRequest, `"fieldName":"tags[0]"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, http.MethodPost, "/users", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestLoaderMiddlewares(t *testing.T) {
	var calls []string
	global := func(name string) Middleware {
		return func(rt *Route, r *http.Request) error {
			calls = append(calls, name)
			if r.URL.Query().Get("abort") == name {
				return errors.New("abort in " + name)
			}
			return nil
		}
	}

	l := NewLoader(WithMiddlewares(global("global1"), global("global2")))
	r := chi.NewRouter()
	rt := &Route{Key: "doPost", Method: http.MethodPost, URL: "/do"}
	require.NoError(t, l.Handle(r, rt, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "handler")
	}, global("api1")))

	rec := do(r, http.MethodPost, "/do", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"global1", "global2", "api1", "handler"}, calls)

	calls = nil
	rec = do(r, http.MethodPost, "/do?abort=global2", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "abort in global2\n", rec.Body.String())
	assert.Equal(t, []string{"global1", "global2"}, calls)
}

func TestLoaderChecksBeforeMiddlewares(t *testing.T) {
	called := false
	l := NewLoader(WithMiddlewares(func(*Route, *http.Request) error {
		called = true
		return nil
	}))
	r := chi.NewRouter()
	rt := &Route{Key: "q", Method: http.MethodGet, URL: "/q", Query: oc.MustParseSchema(`{"id": {"$isRequired": true}}`)}
	require.NoError(t, l.Handle(r, rt, func(http.ResponseWriter, *http.Request) {}))

	rec := do(r, http.MethodGet, "/q", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}

func TestLoaderHandleInvalidRoute(t *testing.T) {
	l := NewLoader()
	err := l.Handle(chi.NewRouter(), &Route{Key: "bad", Method: "TRACE", URL: "/x"}, func(http.ResponseWriter, *http.Request) {})
	assert.Error(t, err)
	assert.Empty(t, l.Routes())
}

func TestLoaderCustomDirective(t *testing.T) {
	even := func(v oc.Value, _ any) bool {
		s, _ := v.AsString()
		return len(s)%2 == 0
	}
	l := NewLoader(WithCheckerOptions(oc.WithDirective("$evenLength", even)))
	r := chi.NewRouter()
	rt := &Route{Key: "even", Method: http.MethodGet, URL: "/even", Query: oc.MustParseSchema(`{"code": {"$evenLength": true}}`)}
	require.NoError(t, l.Handle(r, rt, func(http.ResponseWriter, *http.Request) {}))

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/even?code=ab", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/even?code=abc", "").Code)
}

func TestLoaderMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	r, _, _ := newServer(t, WithMetrics(m))

	do(r, http.MethodGet, "/users?page=1", "")
	do(r, http.MethodGet, "/users", "")
	do(r, http.MethodPost, "/users", "{")

	assert.InDelta(t, 1, testutil.ToFloat64(m.checks.WithLabelValues("app.listUsers", "query", resultValid)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.checks.WithLabelValues("app.listUsers", "query", resultInvalid)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.checks.WithLabelValues("app.createUser", "body", resultInvalidJSON)), 0)

	n, err := testutil.GatherAndCount(reg, "objectchecker_route_checks_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestQueryValue(t *testing.T) {
	v := QueryValue(url.Values{"b": {"2", "3"}, "a": {"1"}, "empty": {}})
	assert.Equal(t, `{"a":"1","b":"2"}`, v.String())
}

func TestLoaderBodyLimit(t *testing.T) {
	r, _, _ := newServer(t, WithMaxBodyBytes(16))

	rec := do(r, http.MethodPost, "/users", `{"name": "a"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodPost, "/users", `{"name": "`+strings.Repeat("a", 32)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "request body too large")

	r, _, _ = newServer(t, WithMaxBodyBytes(0))
	rec = do(r, http.MethodPost, "/users", `{"name": "`+strings.Repeat("a", 32)+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code, "no limit")
}
