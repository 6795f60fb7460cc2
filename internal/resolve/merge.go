package resolve

import "idea-transformer/internal/schema"

// Merge returns a copy of entry with parent's columns and attributes
// filled in. Neither argument is modified.
//
// Nil entry columns take the parent's columns wholesale. Otherwise parent
// columns are appended in parent order when their name is not present yet.
// Parent attributes are added only for keys the entry does not define.
func Merge(entry, parent *schema.TypeConfig) *schema.TypeConfig {
	out, _ := merge(entry, parent)
	return out
}

// merge is Merge that also reports the parent columns it dropped.
func merge(entry, parent *schema.TypeConfig) (*schema.TypeConfig, []string) {
	out := entry.Clone()
	if parent == nil {
		return out, nil
	}

	var shadowed []string

	if out.Columns == nil {
		out.Columns = parent.Clone().Columns
	} else {
		taken := make(map[string]bool, len(out.Columns)+len(parent.Columns))
		for _, col := range out.Columns {
			taken[col.Name] = true
		}

		for _, col := range parent.Columns {
			if taken[col.Name] {
				shadowed = append(shadowed, col.Name)
				continue
			}

			taken[col.Name] = true
			out.Columns = append(out.Columns, col.Clone())
		}
	}

	if parent.Attributes.Len() > 0 && out.Attributes == nil {
		out.Attributes = schema.NewMap[any]()
	}

	for key, value := range parent.Attributes.All() {
		if !out.Attributes.Has(key) {
			out.Attributes.Set(key, schema.CloneValue(value))
		}
	}

	return out, shadowed
}
