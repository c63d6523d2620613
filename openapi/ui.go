package openapi

import (
	"bytes"
	"html/template"
	"net/http"
)

var uiTemplate = template.Must(template.New("ui").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({url: {{.SpecURL}}, dom_id: "#swagger-ui"});
  </script>
</body>
</html>
`))

// UIHandler returns an http.Handler that serves a Swagger UI page loading
// the OpenAPI document from specURL.
func UIHandler(title, specURL string) (http.Handler, error) {
	var buf bytes.Buffer
	if err := uiTemplate.Execute(&buf, map[string]string{"Title": title, "SpecURL": specURL}); err != nil {
		return nil, err
	}
	page := buf.Bytes()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}), nil
}

// UIHandlerMust is like UIHandler but panics on error.
func UIHandlerMust(title, specURL string) http.Handler {
	h, err := UIHandler(title, specURL)
	if err != nil {
		panic(err)
	}
	return h
}
