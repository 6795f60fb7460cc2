// Package parser turns schema source text into a raw schema.Table.
//
// Two front-ends are provided. YAML (also accepting JSON, which is a YAML
// subset) handles .yml, .yaml, .json and .idea files; CUE handles .cue
// files. Both first build the ordered document tree understood by
// schema.Decode, so mapping order in the source is the iteration order of
// the resulting table.
package parser
