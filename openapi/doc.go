// Package openapi generates OpenAPI 3 specifications from directive schemas
// (see [objectchecker.Schema]). It also provides helpers for registering
// endpoints on a document.
//
// Use [DocBase] to create a base document and register endpoints with [Get],
// [Post], [Put], [Patch], or [Delete]:
//
//	doc := openapi.DocBase("my-api", "My API", "1.0")
//	err := openapi.Post(doc, "/orders", "createOrder", openapi.Endpoint{
//	    Body:     orderSchema,
//	    Response: orderSchema,
//	})
package openapi
