// Package loader reads a schema file and the files it imports into one raw
// schema.Table.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"idea-transformer/internal/diagnostic"
	"idea-transformer/internal/parser"
	"idea-transformer/internal/schema"
)

// Loader produces the raw table for the schema at path.
type Loader interface {
	Load(ctx context.Context, path string) (*schema.Table, error)
}

// MissingInputFileError reports a schema path that does not exist on the
// backing filesystem. Path is absolute.
type MissingInputFileError struct {
	Path string
}

func (e *MissingInputFileError) Error() string {
	return fmt.Sprintf("input file %s does not exist", e.Path)
}

// Code implements diagnostic.Coder.
func (e *MissingInputFileError) Code() string { return diagnostic.CodeMissingInputFile }

// Unwrap lets errors.Is match fs.ErrNotExist.
func (e *MissingInputFileError) Unwrap() error { return fs.ErrNotExist }

// Config configures a FileLoader. Every field is optional.
type Config struct {
	// FS is the backing filesystem. Defaults to the host filesystem.
	FS billy.Filesystem
	// Cwd resolves relative input paths. Defaults to the process working
	// directory.
	Cwd string
	// Parser parses every file. Defaults to parser.ForPath per file.
	Parser parser.Parser
	// Logger receives debug records for each file read.
	Logger *slog.Logger
}

// FileLoader loads schema files from a billy filesystem and merges their
// `use` imports.
type FileLoader struct {
	fs     billy.Filesystem
	cwd    string
	parser parser.Parser
	logger *slog.Logger
}

// New creates a FileLoader, filling in defaults for unset Config fields.
func New(cfg Config) *FileLoader {
	l := &FileLoader{
		fs:     cfg.FS,
		cwd:    cfg.Cwd,
		parser: cfg.Parser,
		logger: cfg.Logger,
	}

	if l.fs == nil {
		l.fs = osfs.New(string(filepath.Separator))
	}

	if l.cwd == "" {
		l.cwd = DefaultCwd()
	}

	if l.logger == nil {
		l.logger = slog.New(slog.DiscardHandler)
	}

	return l
}

// DefaultCwd returns the process working directory, or the filesystem root
// when it cannot be determined.
func DefaultCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return string(filepath.Separator)
	}

	return cwd
}

// Abs resolves path against the loader's working directory.
func (l *FileLoader) Abs(path string) string {
	return Abs(l.cwd, path)
}

// Abs resolves path against cwd. Absolute paths are only cleaned.
func Abs(cwd, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(cwd, path)
}

// Load implements Loader. Imports are merged in declared order: entries of
// the importing file win, then earlier imports win over later ones. A file
// is read at most once per call, so import cycles terminate.
func (l *FileLoader) Load(ctx context.Context, path string) (*schema.Table, error) {
	return l.load(ctx, l.Abs(path), make(map[string]bool))
}

func (l *FileLoader) load(ctx context.Context, abs string, seen map[string]bool) (*schema.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seen[abs] = true

	data, err := l.read(abs)
	if err != nil {
		return nil, err
	}

	l.logger.DebugContext(ctx, "parsing schema file", "path", abs, "bytes", len(data))

	p := l.parser
	if p == nil {
		p = parser.ForPath(abs)
	}

	table, err := p.Parse(ctx, abs, data)
	if err != nil {
		return nil, &ParseError{Path: abs, Err: err}
	}

	dir := filepath.Dir(abs)

	for _, use := range table.Use {
		child := Abs(dir, use)
		if seen[child] {
			l.logger.DebugContext(ctx, "skipping schema file already loaded", "path", child, "from", abs)
			continue
		}

		imported, err := l.load(ctx, child, seen)
		if err != nil {
			return nil, err
		}

		table.Import(imported)
	}

	return table, nil
}

func (l *FileLoader) read(abs string) ([]byte, error) {
	info, err := l.fs.Stat(abs)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, &MissingInputFileError{Path: abs}
	case err != nil:
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	case info.IsDir():
		return nil, fmt.Errorf("input %s is a directory", abs)
	}

	data, err := util.ReadFile(l.fs, abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", abs, err)
	}

	return data, nil
}

// ParseError wraps a parser failure with the file it happened in.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	msg := e.Err.Error()
	if strings.Contains(msg, e.Path) {
		return msg
	}

	return e.Path + ": " + msg
}

// Code implements diagnostic.Coder.
func (e *ParseError) Code() string { return diagnostic.CodeParseFailed }

func (e *ParseError) Unwrap() error { return e.Err }
