package schema

import "slices"

// Section names a top-level schema section.
type Section string

const (
	SectionModel  Section = "model"
	SectionType   Section = "type"
	SectionEnum   Section = "enum"
	SectionProp   Section = "prop"
	SectionPlugin Section = "plugin"
)

// KeyUse is the top-level key holding import directives.
const KeyUse = "use"

// Sections lists the sections in the order they are encoded.
var Sections = []Section{SectionProp, SectionEnum, SectionType, SectionModel, SectionPlugin}

// Table is a schema, raw or resolved.
type Table struct {
	// Model holds persisted entity definitions.
	Model *Map[*TypeConfig]
	// Type holds reusable column-bearing shapes.
	Type *Map[*TypeConfig]
	// Enum maps an enum name to its ordered key/value pairs.
	Enum *Map[*Map[any]]
	// Prop maps a property bag name to its free-form values.
	Prop *Map[*Map[any]]
	// Plugin maps a plugin specifier to its configuration.
	Plugin *Map[*PluginConfig]
	// Use lists the schema files imported by this one, in declared order.
	Use []string
}

// NewTable returns a Table with every section present and empty.
func NewTable() *Table {
	return &Table{
		Model:  NewMap[*TypeConfig](),
		Type:   NewMap[*TypeConfig](),
		Enum:   NewMap[*Map[any]](),
		Prop:   NewMap[*Map[any]](),
		Plugin: NewMap[*PluginConfig](),
	}
}

// Entries returns the column-bearing section s, or nil for any other section.
func (t *Table) Entries(s Section) *Map[*TypeConfig] {
	switch s {
	case SectionModel:
		return t.Model
	case SectionType:
		return t.Type
	default:
		return nil
	}
}

// Import adds every entry of other that t does not define yet.
// Entries already in t are kept as they are.
func (t *Table) Import(other *Table) {
	if other == nil {
		return
	}

	importMissing(&t.Model, other.Model)
	importMissing(&t.Type, other.Type)
	importMissing(&t.Enum, other.Enum)
	importMissing(&t.Prop, other.Prop)
	importMissing(&t.Plugin, other.Plugin)
}

func importMissing[V any](dst **Map[V], src *Map[V]) {
	if src.Len() == 0 {
		return
	}

	if *dst == nil {
		*dst = NewMap[V]()
	}

	for k, v := range src.All() {
		if !(*dst).Has(k) {
			(*dst).Set(k, v)
		}
	}
}

// TypeConfig is a model or type entry.
type TypeConfig struct {
	// Name is the entry identifier within its section.
	Name string
	// Extends names the single parent entry, if any.
	Extends string
	// Columns in declared order. Nil means the entry declares no columns,
	// which is not the same as an empty list.
	Columns []ColumnConfig
	// Attributes of the entry itself.
	Attributes *Map[any]
}

// Column returns the column called name.
func (c *TypeConfig) Column(name string) (ColumnConfig, bool) {
	i := slices.IndexFunc(c.Columns, func(col ColumnConfig) bool { return col.Name == name })
	if i < 0 {
		return ColumnConfig{}, false
	}

	return c.Columns[i], true
}

// ColumnNames returns the column names in order.
func (c *TypeConfig) ColumnNames() []string {
	names := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		names[i] = col.Name
	}

	return names
}

// Clone returns a deep copy of c.
func (c *TypeConfig) Clone() *TypeConfig {
	if c == nil {
		return nil
	}

	out := *c
	out.Attributes = CloneAttributes(c.Attributes)

	if c.Columns != nil {
		out.Columns = make([]ColumnConfig, len(c.Columns))
		for i, col := range c.Columns {
			out.Columns[i] = col.Clone()
		}
	}

	return &out
}

// ColumnConfig is a named field of a model or type. Name is its identity.
type ColumnConfig struct {
	Name       string
	Type       string
	Required   bool
	Multiple   bool
	Attributes *Map[any]
}

// Clone returns a deep copy of c.
func (c ColumnConfig) Clone() ColumnConfig {
	c.Attributes = CloneAttributes(c.Attributes)
	return c
}

// PluginConfig is the configuration record of one plugin entry.
type PluginConfig struct {
	// Output is the path the plugin writes to, relative to the schema
	// directory. It is passed to the plugin unresolved.
	Output string
	// Options holds every other key of the entry, in declared order.
	Options *Map[any]
}

// Option returns the plugin option called key.
func (c *PluginConfig) Option(key string) (any, bool) {
	return c.Options.Get(key)
}

// StringOption returns the string option called key, or def when it is
// absent or not a string.
func (c *PluginConfig) StringOption(key, def string) string {
	v, ok := c.Option(key)
	if !ok {
		return def
	}

	s, ok := v.(string)
	if !ok {
		return def
	}

	return s
}

// Clone returns a deep copy of c.
func (c *PluginConfig) Clone() *PluginConfig {
	if c == nil {
		return nil
	}

	return &PluginConfig{Output: c.Output, Options: CloneAttributes(c.Options)}
}
