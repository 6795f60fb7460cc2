package schema

// Encode converts t back into the ordered document form. Every section is
// present in the result, empty sections included, so consumers never need a
// nil check. Nil columns are omitted from their entry.
func Encode(t *Table) *Map[any] {
	doc := NewMap[any]()

	if len(t.Use) > 0 {
		use := make([]any, len(t.Use))
		for i, u := range t.Use {
			use[i] = u
		}

		doc.Set(KeyUse, use)
	}

	for _, s := range Sections {
		section := NewMap[any]()

		switch s {
		case SectionModel, SectionType:
			for name, entry := range t.Entries(s).All() {
				section.Set(name, EncodeEntry(entry))
			}
		case SectionEnum:
			for name, bag := range t.Enum.All() {
				section.Set(name, CloneAttributes(bag))
			}
		case SectionProp:
			for name, bag := range t.Prop.All() {
				section.Set(name, CloneAttributes(bag))
			}
		case SectionPlugin:
			for name, cfg := range t.Plugin.All() {
				section.Set(name, EncodePlugin(cfg))
			}
		}

		doc.Set(string(s), section)
	}

	return doc
}

// EncodeEntry converts a model or type entry into document form.
func EncodeEntry(entry *TypeConfig) *Map[any] {
	out := NewMap[any]()

	if entry.Extends != "" {
		out.Set(keyExtends, entry.Extends)
	}

	out.Set(keyAttributes, orEmpty(CloneAttributes(entry.Attributes)))

	if entry.Columns != nil {
		cols := make([]any, len(entry.Columns))

		for i, col := range entry.Columns {
			c := NewMap[any]()
			c.Set(keyName, col.Name)
			c.Set(keyType, col.Type)
			c.Set(keyRequired, col.Required)
			c.Set(keyMultiple, col.Multiple)
			c.Set(keyAttributes, orEmpty(CloneAttributes(col.Attributes)))
			cols[i] = c
		}

		out.Set(keyColumns, cols)
	}

	return out
}

// EncodePlugin converts a plugin configuration into document form, output
// first.
func EncodePlugin(cfg *PluginConfig) *Map[any] {
	out := NewMap[any]()
	out.Set(keyOutput, cfg.Output)

	for k, v := range cfg.Options.All() {
		out.Set(k, CloneValue(v))
	}

	return out
}

func orEmpty(m *Map[any]) *Map[any] {
	if m == nil {
		return NewMap[any]()
	}

	return m
}
