// Command example checks JSON order bodies against a directive schema and
// serves the matching OpenAPI document with a Swagger UI.
//
// Run:
//
//	go run ./_example
//
// Then open http://localhost:8080/docs/ui in your browser.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	oc "github.com/Gobd/objectchecker"
	"github.com/Gobd/objectchecker/openapi"
)

var order = oc.MustParseSchema(`{
	"customerName": {"$type": "string", "$minLength": 1, "$maxLength": 200, "$desc": "Who placed the order"},
	"itemCount": {"$type": "integer", "$isPositiveInteger": true},
	"total": {"$type": "number", "$minValue": 0.01},
	"note": {"$type": "string", "$isOptional": true}
}`)

func main() {
	doc := openapi.DocBase("Example API", "Orders checked with objectchecker", "0.1.0")
	if err := openapi.Post(doc, "/orders", "createOrder", openapi.Endpoint{
		Summary:         "Create an order",
		Body:            order,
		Response:        order,
		DefaultRequired: true,
	}); err != nil {
		log.Fatal(err)
	}

	checker := oc.New(oc.WithDocKeys(oc.DocKeys...))

	http.HandleFunc("/docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	})
	http.Handle("/docs/ui", openapi.UIHandlerMust("Example API", "/docs"))

	http.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")

		data, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		body, err := oc.ParseJSON(data)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid JSON string"})
			return
		}
		if res := checker.Check(body, order); !res.IsValid {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(res)
			return
		}
		_ = json.NewEncoder(w).Encode(body)
	})

	fmt.Println("Listening on http://localhost:8080")
	fmt.Println("Swagger UI: http://localhost:8080/docs/ui")
	log.Fatal(http.ListenAndServe(":8080", nil))
}
