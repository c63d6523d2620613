package route

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	oc "github.com/Gobd/objectchecker"
	"github.com/Gobd/objectchecker/internal/logging"
	"github.com/go-chi/chi/v5"
)

// InvalidJSON is the response body sent when a request body is not JSON.
const InvalidJSON = "Invalid JSON string"

// DefaultMaxBodyBytes is the request body limit unless [WithMaxBodyBytes]
// sets another.
const DefaultMaxBodyBytes int64 = 1 << 20

// Middleware runs after the request passed its checks and before the
// handler. A non-nil error rejects the request with 400 and the error text.
type Middleware func(rt *Route, r *http.Request) error

// Option configures a [Loader].
type Option func(*Loader)

// WithMiddlewares adds middlewares run for every route, before the route's own.
func WithMiddlewares(mw ...Middleware) Option {
	return func(l *Loader) {
		l.middlewares = append(l.middlewares, mw...)
	}
}

// WithLogger sets the logger used for rejected requests.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithMetrics records check outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(l *Loader) {
		l.metrics = m
	}
}

// WithMaxBodyBytes limits the request bodies read for checking. Larger bodies
// are rejected with 413. n <= 0 removes the limit.
func WithMaxBodyBytes(n int64) Option {
	return func(l *Loader) {
		l.maxBody = n
	}
}

// WithCheckerOptions adds checker options, such as custom directives, to both
// the query and the body checker.
func WithCheckerOptions(opts ...oc.Option) Option {
	return func(l *Loader) {
		l.checkerOpts = append(l.checkerOpts, opts...)
	}
}

// Loader mounts routes and keeps track of them for documentation.
type Loader struct {
	middlewares []Middleware
	logger      *slog.Logger
	metrics     *Metrics
	checkerOpts []oc.Option
	maxBody     int64

	query *oc.Checker
	body  *oc.Checker

	mu     sync.Mutex
	routes []*Route
}

// NewLoader creates a loader. Query strings are checked with $desc, $name,
// $type and $example ignored, since query values are always strings; bodies
// are checked with $desc, $name and $example ignored. Fields of both are
// optional unless marked $isRequired.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{logger: logging.NewNop(), maxBody: DefaultMaxBodyBytes}
	for _, opt := range opts {
		opt(l)
	}
	l.query = oc.New(append([]oc.Option{
		oc.WithDefaultRequired(false),
		oc.WithDocKeys("$desc", "$name", "$type", "$example"),
	}, l.checkerOpts...)...)
	l.body = oc.New(append([]oc.Option{
		oc.WithDefaultRequired(false),
		oc.WithDocKeys(oc.DocKeys...),
	}, l.checkerOpts...)...)
	return l
}

// Handle validates rt and mounts h on router at rt.Method and rt.URL, wrapped
// by [Loader.Wrap].
func (l *Loader) Handle(router chi.Router, rt *Route, h http.HandlerFunc, mw ...Middleware) error {
	if err := rt.Validate(); err != nil {
		return fmt.Errorf("route %s: %w", rt.ID(), err)
	}
	router.Method(rt.Method, rt.URL, l.Wrap(rt, h, mw...))

	l.mu.Lock()
	l.routes = append(l.routes, rt)
	l.mu.Unlock()

	l.logger.Debug("route mounted", "route", rt.ID(), "method", rt.Method, "url", rt.URL)
	return nil
}

// Routes returns the mounted routes in mount order.
func (l *Loader) Routes() []*Route {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.routes)
}

// Wrap returns a handler that checks the query string and JSON body of each
// request against rt, then runs the loader's middlewares, mw and h. Failed
// checks are answered with 400 and the check result as JSON.
func (l *Loader) Wrap(rt *Route, h http.HandlerFunc, mw ...Middleware) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hasRules(rt.Query) {
			res := l.check(l.query, rt, "query", QueryValue(r.URL.Query()), rt.Query)
			if !res.IsValid {
				writeJSON(w, http.StatusBadRequest, res)
				return
			}
		}

		if hasRules(rt.Body) {
			if l.maxBody > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, l.maxBody)
			}
			data, err := io.ReadAll(r.Body)
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					l.logger.Info("request rejected", "route", rt.ID(), "part", "body", "limit", tooLarge.Limit)
					http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
					return
				}
				l.logger.Warn("read request body", "route", rt.ID(), "error", err)
				http.Error(w, "cannot read request body", http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(data))

			if len(data) > 0 {
				start := time.Now()
				body, err := oc.ParseJSON(data)
				if err != nil {
					l.metrics.observe(rt.ID(), "body", resultInvalidJSON, time.Since(start).Seconds())
					l.logger.Info("request rejected", "route", rt.ID(), "part", "body", "error", err)
					writeJSON(w, http.StatusBadRequest, InvalidJSON)
					return
				}
				res := l.check(l.body, rt, "body", body, rt.Body)
				if !res.IsValid {
					writeJSON(w, http.StatusBadRequest, res)
					return
				}
			}
		}

		for _, list := range [][]Middleware{l.middlewares, mw} {
			for _, m := range list {
				if err := m(rt, r); err != nil {
					l.logger.Info("request rejected by middleware", "route", rt.ID(), "error", err)
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
			}
		}

		h(w, r)
	})
}

func (l *Loader) check(c *oc.Checker, rt *Route, part string, v oc.Value, s *oc.Schema) oc.Result {
	start := time.Now()
	res := c.Check(v, s)
	result := resultValid
	if !res.IsValid {
		result = resultInvalid
		l.logger.Info("request rejected",
			"route", rt.ID(),
			"part", part,
			"kind", res.Detail.Kind,
			"field", res.Detail.Field,
		)
	}
	l.metrics.observe(rt.ID(), part, result, time.Since(start).Seconds())
	return res
}

// QueryValue converts a query string to an object of strings. Only the first
// value of a repeated parameter is kept; keys are sorted.
func QueryValue(q url.Values) oc.Value {
	obj := oc.NewObject()
	for _, k := range slices.Sorted(maps.Keys(q)) {
		if len(q[k]) > 0 {
			obj.Set(k, oc.String(q[k][0]))
		}
	}
	return oc.ObjectValue(obj)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
