// Package route mounts HTTP handlers described by a YAML route table and
// checks each request's query and JSON body against the route's directive
// schemas before the handler runs.
//
// A route table groups routes by name:
//
//	app:
//	  createUser:
//	    method: POST
//	    url: /users
//	    desc: Create a user
//	    showInDoc: true
//	    body:
//	      name: {$type: string, $isRequired: true}
//
// Load it with [LoadFile], then register handlers through a [Loader]:
//
//	table, err := route.LoadFile("route.yaml")
//	loader := route.NewLoader(route.WithLogger(logger))
//	err = loader.Handle(r, table.MustGet("app", "createUser"), createUser)
//	r.Get("/docs", loader.DocHandler("Users", "1.0"))
package route
