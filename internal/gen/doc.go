// Package gen provides the built-in plugins.
//
// go-types renders the resolved schema as Go source: one struct per type and
// model, one named type with constants per enum. Generation uses
// text/template + golang.org/x/tools/imports for readable output.
//
// schema-yaml writes the resolved schema back out as ordered YAML.
package gen
