package schema

import (
	"errors"
	"fmt"
)

// Column record keys.
const (
	keyName       = "name"
	keyType       = "type"
	keyRequired   = "required"
	keyMultiple   = "multiple"
	keyAttributes = "attributes"
	keyColumns    = "columns"
	keyExtends    = "extends"
	keyOutput     = "output"
)

// Decode builds a Table from a parsed document. The document is the ordered
// tree a parser produces: *Map[any] for mappings, []any for sequences and
// plain Go scalars.
func Decode(doc *Map[any]) (*Table, error) {
	t := NewTable()

	for key, raw := range doc.All() {
		var err error

		switch Section(key) {
		case SectionModel:
			t.Model, err = decodeEntries(SectionModel, raw)
		case SectionType:
			t.Type, err = decodeEntries(SectionType, raw)
		case SectionEnum:
			t.Enum, err = decodeBags(SectionEnum, raw)
		case SectionProp:
			t.Prop, err = decodeBags(SectionProp, raw)
		case SectionPlugin:
			t.Plugin, err = decodePlugins(raw)
		default:
			if key != KeyUse {
				return nil, fmt.Errorf("unknown section %q", key)
			}

			t.Use, err = stringList(raw)
			if err != nil {
				err = fmt.Errorf("%s: %w", KeyUse, err)
			}
		}

		if err != nil {
			return nil, err
		}
	}

	return t, nil
}

func decodeEntries(section Section, raw any) (*Map[*TypeConfig], error) {
	out := NewMap[*TypeConfig]()

	m, err := asMap(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", section, err)
	}

	for name, v := range m.All() {
		entry, err := decodeEntry(name, v)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", section, name, err)
		}

		out.Set(name, entry)
	}

	return out, nil
}

func decodeEntry(name string, raw any) (*TypeConfig, error) {
	m, err := asMap(raw)
	if err != nil {
		return nil, err
	}

	entry := &TypeConfig{Name: name, Attributes: NewMap[any]()}

	for key, v := range m.All() {
		switch key {
		case keyExtends:
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("extends must be a string, got %T", v)
			}

			entry.Extends = s
		case keyAttributes:
			attrs, err := asMap(v)
			if err != nil {
				return nil, fmt.Errorf("attributes: %w", err)
			}

			entry.Attributes = attrs
		case keyColumns:
			if v == nil {
				continue
			}

			list, ok := v.([]any)
			if !ok {
				return nil, fmt.Errorf("columns must be a list, got %T", v)
			}

			entry.Columns = make([]ColumnConfig, 0, len(list))

			for i, item := range list {
				col, err := decodeColumn(item)
				if err != nil {
					return nil, fmt.Errorf("columns[%d]: %w", i, err)
				}

				if _, dup := entry.Column(col.Name); dup {
					return nil, fmt.Errorf("columns[%d]: duplicate column %q", i, col.Name)
				}

				entry.Columns = append(entry.Columns, col)
			}
		default:
			return nil, fmt.Errorf("unknown key %q", key)
		}
	}

	return entry, nil
}

func decodeColumn(raw any) (ColumnConfig, error) {
	m, err := asMap(raw)
	if err != nil {
		return ColumnConfig{}, err
	}

	col := ColumnConfig{Attributes: NewMap[any]()}

	for key, v := range m.All() {
		var ok bool

		switch key {
		case keyName:
			col.Name, ok = v.(string)
		case keyType:
			col.Type, ok = v.(string)
		case keyRequired:
			col.Required, ok = v.(bool)
		case keyMultiple:
			col.Multiple, ok = v.(bool)
		case keyAttributes:
			col.Attributes, err = asMap(v)
			ok = err == nil
		default:
			return ColumnConfig{}, fmt.Errorf("unknown key %q", key)
		}

		if !ok {
			return ColumnConfig{}, fmt.Errorf("invalid %s value %v", key, v)
		}
	}

	if col.Name == "" {
		return ColumnConfig{}, errors.New("name is required")
	}

	return col, nil
}

func decodeBags(section Section, raw any) (*Map[*Map[any]], error) {
	out := NewMap[*Map[any]]()

	m, err := asMap(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", section, err)
	}

	for name, v := range m.All() {
		bag, err := asMap(v)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", section, name, err)
		}

		out.Set(name, bag)
	}

	return out, nil
}

func decodePlugins(raw any) (*Map[*PluginConfig], error) {
	out := NewMap[*PluginConfig]()

	m, err := asMap(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", SectionPlugin, err)
	}

	for name, v := range m.All() {
		opts, err := asMap(v)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", SectionPlugin, name, err)
		}

		cfg := &PluginConfig{Options: NewMap[any]()}

		for key, val := range opts.All() {
			if key != keyOutput {
				cfg.Options.Set(key, val)
				continue
			}

			s, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("%s %q: output must be a string, got %T", SectionPlugin, name, val)
			}

			cfg.Output = s
		}

		out.Set(name, cfg)
	}

	return out, nil
}

// asMap accepts a mapping, treating a null value as an empty one.
func asMap(raw any) (*Map[any], error) {
	switch v := raw.(type) {
	case nil:
		return NewMap[any](), nil
	case *Map[any]:
		return v, nil
	default:
		return nil, fmt.Errorf("expected a mapping, got %T", raw)
	}
}

func stringList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))

		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("[%d]: expected a string, got %T", i, item)
			}

			out = append(out, s)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("expected a string or list of strings, got %T", raw)
	}
}
