// Package plugin runs code-generation plugins against a resolved schema.
//
// A plugin entry is keyed by its specifier. Project-relative specifiers
// ("./in/make-enums", "../gen/types.lua", absolute paths) name a script
// next to the schema and are handed to a ScriptHost; bare specifiers
// ("go-types") are looked up in a Registry of Go plugins.
//
// Plugins run one at a time in declared order. The first failure stops the
// run; files written by earlier plugins are left in place.
package plugin
