package gen

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"idea-transformer/internal/common"
	"idea-transformer/internal/plugin"
	"idea-transformer/internal/schema"
)

// Plugin option keys read by the generators.
const (
	OptionPackage  = "package"
	OptionComments = "comments"
)

// GoTypesConfig holds configuration for Go type generation.
type GoTypesConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// GenerateComments emits doc comments taken from label attributes.
	GenerateComments bool
}

// DefaultGoTypesConfig returns the default generator configuration.
func DefaultGoTypesConfig() GoTypesConfig {
	return GoTypesConfig{
		PackageName:      "schema",
		GenerateComments: true,
	}
}

// goTypesConfig applies plugin options over the defaults.
func goTypesConfig(cfg *schema.PluginConfig) GoTypesConfig {
	c := DefaultGoTypesConfig()
	c.PackageName = cfg.StringOption(OptionPackage, c.PackageName)

	if v, ok := cfg.Option(OptionComments); ok {
		if b, ok := v.(bool); ok {
			c.GenerateComments = b
		}
	}

	return c
}

// GoTypes generates Go declarations for a resolved schema.
type GoTypes struct{}

// Run implements plugin.Plugin. The generated file is written to the
// entry's output path.
func (GoTypes) Run(ctx context.Context, s *schema.Table, cfg *schema.PluginConfig, pc *plugin.Context) error {
	if cfg.Output == "" {
		return fmt.Errorf("%s: output is required", NameGoTypes)
	}

	g := NewGenerator(goTypesConfig(cfg))

	src, err := g.Generate(s)
	if err != nil {
		if src != nil {
			_ = writeDebugUnformatted(pc, cfg.Output, src)
		}

		return err
	}

	for _, name := range g.Unknown() {
		if pc.Logger == nil {
			break
		}

		pc.Logger.WarnContext(ctx, "unknown column type rendered as any", "type", name)
	}

	_, err = pc.WriteFile(cfg.Output, src)

	return err
}

// Generator renders Go source from a resolved schema.
type Generator struct {
	config  GoTypesConfig
	unknown []string
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GoTypesConfig) *Generator {
	return &Generator{config: config}
}

// Unknown returns the column types of the last Generate call that matched
// neither a builtin nor a declared name.
func (g *Generator) Unknown() []string {
	return g.unknown
}

// fileData holds all data needed for the file template.
type fileData struct {
	PackageName      string
	Imports          []importSpec
	GenerateComments bool
	Enums            []enumDecl
	Structs          []structDecl
}

type enumDecl struct {
	Name   string
	Base   string
	Values []enumValue
}

type enumValue struct {
	Key     string
	Name    string
	Literal string
}

type structDecl struct {
	Name    string
	Section schema.Section
	Fields  []fieldDecl
}

type fieldDecl struct {
	Name    string
	Type    typeRef
	Tag     string
	Comment string
}

// Generate returns formatted Go source. When formatting fails the
// unformatted source is returned along with the error.
func (g *Generator) Generate(s *schema.Table) ([]byte, error) {
	f := newTypeFormatter(s)

	data := &fileData{
		PackageName:      g.config.PackageName,
		GenerateComments: g.config.GenerateComments,
	}

	seen := make(map[string]string)

	claim := func(goName, kind, name string) error {
		if prev, ok := seen[goName]; ok {
			return fmt.Errorf("%s %q and %s both generate %s", kind, name, prev, goName)
		}

		seen[goName] = fmt.Sprintf("%s %q", kind, name)

		return nil
	}

	for name, values := range s.Enum.All() {
		decl := buildEnum(name, values)
		if err := claim(decl.Name, string(schema.SectionEnum), name); err != nil {
			return nil, err
		}

		for _, v := range decl.Values {
			if err := claim(v.Name, "enum value", name+"."+v.Key); err != nil {
				return nil, err
			}
		}

		data.Enums = append(data.Enums, decl)
	}

	structs, err := g.buildStructs(s, f, claim)
	if err != nil {
		return nil, err
	}

	data.Structs = structs

	for _, imp := range f.imports {
		data.Imports = append(data.Imports, imp)
	}

	slices.SortFunc(data.Imports, func(a, b importSpec) int {
		return strings.Compare(a.Path, b.Path)
	})

	g.unknown = slices.Compact(slices.Sorted(slices.Values(f.unknown)))

	var buf bytes.Buffer
	if err := goTypesTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := imports.Process(data.PackageName+".go", buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return buf.Bytes(), fmt.Errorf("formatting code: %w", err)
	}

	return formatted, nil
}

// buildStructs returns type then model declarations, each referenced
// declaration ahead of the ones that use it.
func (g *Generator) buildStructs(
	s *schema.Table,
	f *typeFormatter,
	claim func(goName, kind, name string) error,
) ([]structDecl, error) {
	type entry struct {
		section schema.Section
		name    string
		config  *schema.TypeConfig
	}

	var entries []entry

	index := make(map[string]int)

	for _, section := range []schema.Section{schema.SectionType, schema.SectionModel} {
		for name, cfg := range s.Entries(section).All() {
			if err := claim(common.ExportedName(name), string(section), name); err != nil {
				return nil, err
			}

			index[name] = len(entries)
			entries = append(entries, entry{section: section, name: name, config: cfg})
		}
	}

	order, _, err := topoSort(len(entries), func(i int) []int {
		var deps []int

		for _, col := range entries[i].config.Columns {
			if ref, ok := f.reference(col); ok {
				if j, ok := index[ref]; ok {
					deps = append(deps, j)
				}
			}
		}

		return deps
	})
	if err != nil {
		return nil, err
	}

	decls := make([]structDecl, 0, len(entries))

	for _, i := range order {
		e := entries[i]

		decl := structDecl{Name: common.ExportedName(e.name), Section: e.section}

		for _, col := range e.config.Columns {
			tag := col.Name
			if !col.Required {
				tag += ",omitempty"
			}

			decl.Fields = append(decl.Fields, fieldDecl{
				Name:    common.ExportedName(col.Name),
				Type:    f.columnType(col),
				Tag:     fmt.Sprintf("json:%q", tag),
				Comment: label(col.Attributes),
			})
		}

		decls = append(decls, decl)
	}

	return decls, nil
}

// buildEnum declares an int-based enum when every value is an integer and a
// string-based one otherwise.
func buildEnum(name string, values *schema.Map[any]) enumDecl {
	decl := enumDecl{Name: common.ExportedName(name), Base: "int"}

	for _, v := range values.All() {
		if _, ok := v.(int); !ok {
			decl.Base = "string"
			break
		}
	}

	for key, v := range values.All() {
		literal := strconv.Quote(fmt.Sprint(v))
		if decl.Base == "int" {
			literal = strconv.Itoa(v.(int))
		}

		decl.Values = append(decl.Values, enumValue{
			Key:     key,
			Name:    decl.Name + common.ExportedName(key),
			Literal: literal,
		})
	}

	return decl
}

// label returns the first label attribute value, if any.
func label(attrs *schema.Map[any]) string {
	v, ok := attrs.Get("label")
	if !ok {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case []any:
		if first, ok := common.First(val); ok {
			return fmt.Sprint(first)
		}
	}

	return ""
}

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. This is best-effort.
func writeDebugUnformatted(pc *plugin.Context, output string, content []byte) error {
	ext := filepath.Ext(output)
	debugName := strings.TrimSuffix(output, ext) + ".unformatted" + ext

	_, err := pc.WriteFile(debugName, content)

	return err
}

var goTypesTemplate = template.Must(template.New("go-types").Parse(`// Code generated by idea-transformer. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{range $enum := .Enums}}
{{if $.GenerateComments}}// {{$enum.Name}} is an enum.
{{end}}type {{$enum.Name}} {{$enum.Base}}

const (
{{range $enum.Values}}	{{.Name}} {{$enum.Name}} = {{.Literal}}
{{end}})
{{end}}
{{range .Structs}}
{{if $.GenerateComments}}// {{.Name}} is a generated {{.Section}}.
{{end}}type {{.Name}} struct {
{{range .Fields}}{{if and $.GenerateComments .Comment}}	// {{.Comment}}
{{end}}	{{.Name}} {{.Type}} ` + "`{{.Tag}}`" + `
{{end}}}
{{end}}
`))
