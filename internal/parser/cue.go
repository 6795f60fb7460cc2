package parser

import (
	"context"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"idea-transformer/internal/schema"
)

// CUE parses CUE schema sources. The source must evaluate to concrete
// values; struct field order is kept.
type CUE struct{}

// Parse implements Parser.
func (CUE) Parse(_ context.Context, path string, data []byte) (*schema.Table, error) {
	doc, err := ParseCUEDocument(path, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema CUE %s: %w", path, err)
	}

	table, err := schema.Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", path, err)
	}

	return table, nil
}

// ParseCUEDocument compiles data and converts the result into an ordered
// document.
func ParseCUEDocument(path string, data []byte) (*schema.Map[any], error) {
	v := cuecontext.New().CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, err
	}

	out, err := fromValue(v)
	if err != nil {
		return nil, err
	}

	doc, ok := out.(*schema.Map[any])
	if !ok {
		return nil, fmt.Errorf("top level must be a struct, got %T", out)
	}

	return doc, nil
}

func fromValue(v cue.Value) (any, error) {
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, err
	}

	switch k := v.Kind(); k {
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, err
		}

		m := schema.NewMap[any]()

		for iter.Next() {
			item, err := fromValue(iter.Value())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", iter.Selector(), err)
			}

			m.Set(iter.Selector().Unquoted(), item)
		}

		return m, nil

	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, err
		}

		list := []any{}

		for iter.Next() {
			item, err := fromValue(iter.Value())
			if err != nil {
				return nil, err
			}

			list = append(list, item)
		}

		return list, nil

	case cue.NullKind:
		return nil, nil

	case cue.BoolKind:
		return v.Bool()

	case cue.IntKind:
		n, err := v.Int64()
		return int(n), err

	case cue.FloatKind:
		return v.Float64()

	case cue.StringKind:
		return v.String()

	case cue.BytesKind:
		b, err := v.Bytes()
		return string(b), err

	default:
		return nil, fmt.Errorf("unsupported CUE value of kind %v", k)
	}
}
