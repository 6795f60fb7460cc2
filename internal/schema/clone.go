package schema

// CloneValue deep-copies an attribute value. Nested maps and lists are
// copied; scalars are returned as they are.
func CloneValue(v any) any {
	switch v := v.(type) {
	case *Map[any]:
		return CloneAttributes(v)
	case []any:
		if v == nil {
			return v
		}

		out := make([]any, len(v))
		for i, item := range v {
			out[i] = CloneValue(item)
		}

		return out
	case []string:
		if v == nil {
			return v
		}

		return append([]string{}, v...)
	default:
		return v
	}
}

// CloneAttributes deep-copies an attribute map. Clone of nil is nil.
func CloneAttributes(m *Map[any]) *Map[any] {
	if m == nil {
		return nil
	}

	out := m.Clone()
	for k, v := range m.All() {
		out.Set(k, CloneValue(v))
	}

	return out
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}

	out := &Table{
		Model:  cloneEntries(t.Model),
		Type:   cloneEntries(t.Type),
		Enum:   cloneBags(t.Enum),
		Prop:   cloneBags(t.Prop),
		Plugin: nil,
	}

	if t.Use != nil {
		out.Use = append([]string{}, t.Use...)
	}

	if t.Plugin != nil {
		out.Plugin = t.Plugin.Clone()
		for k, v := range t.Plugin.All() {
			out.Plugin.Set(k, v.Clone())
		}
	}

	return out
}

func cloneEntries(m *Map[*TypeConfig]) *Map[*TypeConfig] {
	if m == nil {
		return nil
	}

	out := m.Clone()
	for k, v := range m.All() {
		out.Set(k, v.Clone())
	}

	return out
}

func cloneBags(m *Map[*Map[any]]) *Map[*Map[any]] {
	if m == nil {
		return nil
	}

	out := m.Clone()
	for k, v := range m.All() {
		out.Set(k, CloneAttributes(v))
	}

	return out
}
