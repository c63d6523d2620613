// Command chi mounts a route table on a chi router. Every request is checked
// against its route's query and body schemas before the handler runs.
//
// Run:
//
//	cd _example/chi && go run .
//
// Then open http://localhost:8080/docs/ui in your browser.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/Gobd/objectchecker/route"
	"github.com/go-chi/chi/v5"
)

const routes = `
orders:
  list:
    method: GET
    url: /orders
    desc: List orders
    showInDoc: true
    query:
      page:
        $desc: Page number
        $matchRegExp: '[0-9]+'
  create:
    method: POST
    url: /orders
    desc: Create an order
    showInDoc: true
    body:
      customerName:
        $type: string
        $minLength: 1
        $isRequired: true
      itemCount:
        $type: integer
        $isPositiveInteger: true
        $isRequired: true
      total:
        $type: number
        $minValue: 0.01
`

func requireJSON(_ *route.Route, r *http.Request) error {
	if r.Method == http.MethodPost && !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return errors.New("content type must be application/json")
	}
	return nil
}

func reply(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"method": r.Method, "path": r.URL.Path})
}

func main() {
	table, err := route.Load(strings.NewReader(routes))
	if err != nil {
		log.Fatal(err)
	}

	r := chi.NewRouter()
	loader := route.NewLoader(route.WithMiddlewares(requireJSON))
	for _, rt := range table.Routes() {
		if err := loader.Handle(r, rt, reply); err != nil {
			log.Fatal(err)
		}
	}
	loader.CreateDoc(r, route.DefaultDocPath, "Example API (chi)", "0.1.0")

	fmt.Println("Listening on http://localhost:8080")
	fmt.Println("Swagger UI: http://localhost:8080/docs/ui")
	log.Fatal(http.ListenAndServe(":8080", r))
}
