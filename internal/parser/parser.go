package parser

import (
	"context"
	"path/filepath"
	"strings"

	"idea-transformer/internal/schema"
)

// Parser parses the source of one schema file. path is used for error
// messages and by front-ends that report positions.
type Parser interface {
	Parse(ctx context.Context, path string, data []byte) (*schema.Table, error)
}

// Func adapts a function to the Parser interface.
type Func func(ctx context.Context, path string, data []byte) (*schema.Table, error)

// Parse implements Parser.
func (f Func) Parse(ctx context.Context, path string, data []byte) (*schema.Table, error) {
	return f(ctx, path, data)
}

// ForPath picks a front-end by file extension. Anything that is not a .cue
// file is read as YAML.
func ForPath(path string) Parser {
	if strings.EqualFold(filepath.Ext(path), ".cue") {
		return CUE{}
	}

	return YAML{}
}
