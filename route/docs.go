package route

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	oc "github.com/Gobd/objectchecker"
	"github.com/Gobd/objectchecker/openapi"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
)

// DefaultDocPath is where [Loader.CreateDoc] mounts documentation unless told
// otherwise.
const DefaultDocPath = "/docs"

// documented returns the mounted routes flagged ShowInDoc.
func (l *Loader) documented() []*Route {
	var out []*Route
	for _, rt := range l.Routes() {
		if rt.ShowInDoc {
			out = append(out, rt)
		}
	}
	return out
}

// OpenAPI builds an OpenAPI document of the mounted routes flagged ShowInDoc.
func (l *Loader) OpenAPI(title, description, version string) (*openapi3.T, error) {
	doc := openapi.DocBase(title, description, version)
	for _, rt := range l.documented() {
		ep := openapi.Endpoint{Summary: rt.Name, Description: rt.Desc}
		if hasRules(rt.Query) {
			ep.Query = rt.Query
		}
		if hasRules(rt.Body) {
			ep.Body = rt.Body
		}
		if err := openapi.AddEndpoint(doc, rt.Path(), rt.Method, rt.ID(), ep); err != nil {
			return nil, fmt.Errorf("route %s: %w", rt.ID(), err)
		}
	}
	return doc, nil
}

// Markdown renders the routes flagged ShowInDoc as a markdown document: one
// section per route with a field table and a sample for its query and body.
func (l *Loader) Markdown(title string) string {
	return Markdown(title, l.documented())
}

// Markdown renders routes as a markdown document.
func Markdown(title string, routes []*Route) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	for _, rt := range routes {
		fmt.Fprintf(&b, "\n## %s\n\n`%s %s`\n", rt.Name, rt.Method, rt.Path())
		if rt.Desc != "" {
			fmt.Fprintf(&b, "\n%s\n", strings.TrimSpace(rt.Desc))
		}
		if hasRules(rt.Query) {
			writeSection(&b, "Query", rt.Query)
		}
		if hasRules(rt.Body) {
			writeSection(&b, "Body", rt.Body)
		}
	}
	return b.String()
}

var hiddenKeys = map[string]bool{
	"$type": true, "$desc": true, "$name": true, "$example": true,
	"$isOptional": true, "$optional": true, "$isRequired": true, "$required": true,
}

func writeSection(b *strings.Builder, heading string, s *oc.Schema) {
	fmt.Fprintf(b, "\n### %s\n\n", heading)
	b.WriteString("| Field | Type | Required | Description | Rules |\n")
	b.WriteString("|---|---|---|---|---|\n")

	flat := oc.Flatten(s)
	for _, path := range flat.Paths() {
		if path == "" {
			continue
		}
		entry, _ := flat.Get(path)
		required := "no"
		if oc.IsRequired(entry, false) {
			required = "yes"
		}
		desc := ""
		if v, ok := entry.Option("$desc"); ok {
			desc = v.String()
		}
		var rules []string
		for _, key := range entry.Keys() {
			if hiddenKeys[key] {
				continue
			}
			if v, ok := entry.Option(key); ok {
				rules = append(rules, fmt.Sprintf("`%s: %s`", key, jsonText(v)))
			} else {
				rules = append(rules, fmt.Sprintf("`%s`", key))
			}
		}
		fmt.Fprintf(b, "| `%s` | %s | %s | %s | %s |\n",
			path, entry.TypeName(), required, cell(desc), cell(strings.Join(rules, " ")))
	}

	sample, err := oc.GenerateSample(s).MarshalJSON()
	if err != nil {
		return
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, sample, "", "  "); err != nil {
		return
	}
	fmt.Fprintf(b, "\nSample:\n\n```json\n%s\n```\n", pretty.String())
}

func jsonText(v oc.Value) string {
	b, err := v.MarshalJSON()
	if err != nil {
		return v.String()
	}
	return string(b)
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// DocHandler serves the OpenAPI document of the documented routes as JSON.
func (l *Loader) DocHandler(title, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := l.OpenAPI(title, "", version)
		if err != nil {
			l.logger.Error("build openapi document", "error", err)
			http.Error(w, "cannot build document", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

// MarkdownHandler serves [Loader.Markdown].
func (l *Loader) MarkdownHandler(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(l.Markdown(title)))
	}
}

// CreateDoc mounts the OpenAPI JSON at path, the markdown document at
// path + ".md" and a Swagger UI page at path + "/ui". An empty path means
// [DefaultDocPath].
func (l *Loader) CreateDoc(router chi.Router, path, title, version string) {
	if path == "" {
		path = DefaultDocPath
	}
	router.Get(path, l.DocHandler(title, version))
	router.Get(path+".md", l.MarkdownHandler(title))
	router.Handle(path+"/ui", openapi.UIHandlerMust(title, path))
}
