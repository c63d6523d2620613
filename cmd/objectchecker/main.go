// Command objectchecker checks JSON and YAML documents against directive
// schemas, prints flattened schemas and samples, renders route
// documentation and serves a route table over HTTP.
package main

func main() {
	Execute()
}
