package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gobd/objectchecker/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCheck(t *testing.T) {
	tests := []struct {
		name    string
		opts    checkOptions
		stdin   string
		wantErr error
		want    string
	}{
		{
			name: "valid file",
			opts: checkOptions{schema: "testdata/user.schema.yaml", value: "testdata/user.json"},
			want: `"isValid": true`,
		},
		{
			name:    "missing field",
			opts:    checkOptions{schema: "testdata/user.schema.yaml", value: "-"},
			stdin:   `{"name": "Ann", "tags": []}`,
			wantErr: errInvalid,
			want:    "Field `email` is missing.",
		},
		{
			name:  "optional",
			opts:  checkOptions{schema: "testdata/user.schema.yaml", value: "-", optional: true},
			stdin: `{"name": "Ann"}`,
			want:  `"isValid": true`,
		},
		{
			name:    "too short",
			opts:    checkOptions{schema: "testdata/user.schema.yaml", value: "-"},
			stdin:   `{"name": "", "email": "ann@example.com", "tags": []}`,
			wantErr: errInvalid,
			want:    `"checkerName": "$minLength"`,
		},
		{
			name:  "trim",
			opts:  checkOptions{schema: "testdata/user.schema.yaml", value: "-", trim: true},
			stdin: `{"name": "Ann", "email": " ann@example.com ", "tags": []}`,
			want:  `"isValid": true`,
		},
		{
			name:    "strict rejects doc keys",
			opts:    checkOptions{schema: "testdata/user.schema.yaml", value: "testdata/user.json", strict: true},
			wantErr: errInvalid,
			want:    `"checkerName": "$desc"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runCheck(&out, strings.NewReader(tt.stdin), tt.opts)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestRunCheckBadInput(t *testing.T) {
	var out bytes.Buffer
	err := runCheck(&out, strings.NewReader("{"), checkOptions{schema: "testdata/user.schema.yaml", value: "-"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errInvalid)

	err = runCheck(&out, nil, checkOptions{schema: "testdata/missing.json", value: "-"})
	assert.Error(t, err)
}

func TestRunFlatten(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runFlatten(&out, nil, "testdata/user.schema.yaml"))

	var flat map[string]map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &flat))
	assert.Equal(t, "json", flat[""]["$type"])
	assert.Equal(t, "string", flat["tags.0"]["$type"])
	assert.Contains(t, flat, "age")
}

func TestRunSample(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runSample(&out, strings.NewReader(`{"id": {"$type": "string"}, "n": {"$type": "int", "$minValue": 3}}`), "-"))
	assert.JSONEq(t, `{"id": "X-00000000-0000-0000-0000-000000000000", "n": 3}`, out.String())
}

func TestRunDoc(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runDoc(&out, docOptions{routes: "testdata/route.yaml", title: "Users API", raw: true}))

	md := out.String()
	assert.Contains(t, md, "# Users API")
	assert.Contains(t, md, "## Create user")
	assert.NotContains(t, md, "## Get user")

	out.Reset()
	require.NoError(t, runDoc(&out, docOptions{routes: "testdata/route.yaml", title: "Users API"}))
	assert.Contains(t, out.String(), "Create user")
}

func TestServeHandler(t *testing.T) {
	cfg := serveConfig{DocPath: "/docs"}
	h, err := newServeHandler("testdata/route.yaml", cfg, logging.NewNop(), prometheus.NewRegistry())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Ann"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"route":"users.create","query":{},"body":{"name":"Ann"}}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{}`))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/users/42?x=1", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.JSONEq(t, `{"route":"users.get","query":{"x":"1"},"body":null}`, rec.Body.String())

	for _, path := range []string{"/docs", "/docs.md", "/metrics"} {
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
	assert.Contains(t, rec.Body.String(), "objectchecker_route_checks_total")
}

func TestLoadServeConfigDefaults(t *testing.T) {
	t.Setenv("OBJECTCHECKER_ADDR", ":9999")
	cfg := loadServeConfig()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "/docs", cfg.DocPath)
	assert.Equal(t, "info", cfg.LogLevel)
}
