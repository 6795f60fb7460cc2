package gen

import (
	"strings"

	"idea-transformer/internal/common"
	"idea-transformer/internal/schema"
)

// typeRef is a reference to a Go type with optional package qualifier.
type typeRef struct {
	Package   string // Package alias (empty if same package or builtin)
	Name      string // Type name
	IsPointer bool
	IsSlice   bool
}

// String returns the full type string (e.g., "*time.Time", "[]Address").
func (t typeRef) String() string {
	var sb strings.Builder

	if t.IsSlice {
		sb.WriteString("[]")
	} else if t.IsPointer {
		sb.WriteString("*")
	}

	if t.Package != "" {
		sb.WriteString(t.Package)
		sb.WriteString(".")
	}

	sb.WriteString(t.Name)

	return sb.String()
}

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// builtinTypes maps column types, lower-cased, to Go types.
var builtinTypes = map[string]typeRef{
	"string":   {Name: "string"},
	"text":     {Name: "string"},
	"integer":  {Name: "int"},
	"int":      {Name: "int"},
	"number":   {Name: "float64"},
	"float":    {Name: "float64"},
	"boolean":  {Name: "bool"},
	"bool":     {Name: "bool"},
	"date":     {Package: "time", Name: "Time"},
	"time":     {Package: "time", Name: "Time"},
	"datetime": {Package: "time", Name: "Time"},
	"json":     {Name: "map[string]any"},
	"object":   {Name: "map[string]any"},
	"hash":     {Name: "map[string]any"},
}

// packagePaths maps qualifiers used by builtinTypes to import paths.
var packagePaths = map[string]string{
	"time": "time",
}

// typeFormatter maps column types to Go types. declared holds the schema
// names (types, models, enums) that render as named Go types.
type typeFormatter struct {
	declared map[string]string
	imports  map[string]importSpec
	unknown  []string
}

func newTypeFormatter(s *schema.Table) *typeFormatter {
	f := &typeFormatter{
		declared: make(map[string]string),
		imports:  make(map[string]importSpec),
	}

	for _, name := range s.Enum.Keys() {
		f.declared[name] = common.ExportedName(name)
	}

	for _, name := range s.Type.Keys() {
		f.declared[name] = common.ExportedName(name)
	}

	for _, name := range s.Model.Keys() {
		f.declared[name] = common.ExportedName(name)
	}

	return f
}

// columnType returns the Go type of col. Optional scalars become pointers,
// multiple columns become slices. Maps and any are never wrapped in a
// pointer.
func (f *typeFormatter) columnType(col schema.ColumnConfig) typeRef {
	ref := f.baseType(col.Type)

	switch {
	case col.Multiple:
		ref.IsSlice = true
	case !col.Required && ref.Name != "any" && !strings.HasPrefix(ref.Name, "map["):
		ref.IsPointer = true
	}

	return ref
}

func (f *typeFormatter) baseType(name string) typeRef {
	if goName, ok := f.declared[name]; ok {
		return typeRef{Name: goName}
	}

	if ref, ok := builtinTypes[strings.ToLower(name)]; ok {
		f.addImport(ref.Package)
		return ref
	}

	f.unknown = append(f.unknown, name)

	return typeRef{Name: "any"}
}

// addImport adds an import for a package qualifier.
func (f *typeFormatter) addImport(pkg string) {
	if pkg == "" {
		return
	}

	path := packagePaths[pkg]
	f.imports[path] = importSpec{Path: path}
}

// reference returns the schema name col points at, if it is declared.
func (f *typeFormatter) reference(col schema.ColumnConfig) (string, bool) {
	_, ok := f.declared[col.Type]
	return col.Type, ok
}
