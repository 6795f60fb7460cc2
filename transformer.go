// Package transformer loads an idea schema, resolves model and type
// inheritance, and runs the schema's plugins against the result.
//
//	t := transformer.New("schema.idea")
//	if err := t.Transform(ctx); err != nil {
//		...
//	}
package transformer

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"idea-transformer/internal/diagnostic"
	"idea-transformer/internal/gen"
	"idea-transformer/internal/loader"
	"idea-transformer/internal/parser"
	"idea-transformer/internal/plugin"
	"idea-transformer/internal/plugin/luahost"
	"idea-transformer/internal/resolve"
	"idea-transformer/internal/schema"
)

// Errors returned by Schema and Transform.
type (
	MissingInputFileError  = loader.MissingInputFileError
	ParseError             = loader.ParseError
	UnresolvedParentError  = resolve.UnresolvedParentError
	PluginLoadFailureError = plugin.PluginLoadFailureError
)

// ErrNoPluginsDefined is returned by Transform when the schema has no
// plugin entries.
var ErrNoPluginsDefined = plugin.ErrNoPluginsDefined

// Transformer drives one schema file. The resolved schema is computed once
// and shared by every later call. A Transformer is safe for concurrent use.
type Transformer struct {
	input    string
	cwd      string
	fs       billy.Filesystem
	parser   parser.Parser
	loader   loader.Loader
	plugins  plugin.Loader
	registry *plugin.Registry
	logger   *slog.Logger

	mu     sync.Mutex
	schema *schema.Table
	diags  diagnostic.Diagnostics
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithCwd sets the directory relative input paths resolve against.
// Defaults to the process working directory.
func WithCwd(cwd string) Option {
	return func(t *Transformer) { t.cwd = cwd }
}

// WithFS sets the filesystem schemas and plugin scripts are read from and
// plugin output is written to. Defaults to the host filesystem.
func WithFS(fsys billy.Filesystem) Option {
	return func(t *Transformer) { t.fs = fsys }
}

// WithParser forces one parser for every schema file instead of choosing
// by extension.
func WithParser(p parser.Parser) Option {
	return func(t *Transformer) { t.parser = p }
}

// WithLoader replaces the schema loader. WithFS and WithParser no longer
// apply to loading.
func WithLoader(l loader.Loader) Option {
	return func(t *Transformer) { t.loader = l }
}

// WithPluginLoader replaces how plugin specifiers become plugins.
func WithPluginLoader(l plugin.Loader) Option {
	return func(t *Transformer) { t.plugins = l }
}

// WithRegistry sets the registry bare plugin specifiers are looked up in.
// Defaults to the built-in plugins.
func WithRegistry(reg *plugin.Registry) Option {
	return func(t *Transformer) { t.registry = reg }
}

// WithLogger sets the logger. Defaults to discarding.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transformer) { t.logger = logger }
}

// New creates a Transformer for the schema file at input. Nothing is read
// until Schema or Transform is called.
func New(input string, opts ...Option) *Transformer {
	t := &Transformer{}

	for _, opt := range opts {
		opt(t)
	}

	if t.cwd == "" {
		t.cwd = loader.DefaultCwd()
	}

	if t.fs == nil {
		t.fs = osfs.New(string(filepath.Separator))
	}

	if t.logger == nil {
		t.logger = slog.New(slog.DiscardHandler)
	}

	if t.loader == nil {
		t.loader = loader.New(loader.Config{FS: t.fs, Cwd: t.cwd, Parser: t.parser, Logger: t.logger})
	}

	if t.registry == nil {
		t.registry = gen.NewRegistry()
	}

	if t.plugins == nil {
		t.plugins = &plugin.DefaultLoader{Registry: t.registry, FS: t.fs, Host: luahost.NewHost()}
	}

	t.input = loader.Abs(t.cwd, input)

	return t
}

// Input returns the absolute path of the schema file.
func (t *Transformer) Input() string {
	return t.input
}

// Cwd returns the working directory.
func (t *Transformer) Cwd() string {
	return t.cwd
}

// Schema returns the resolved schema, loading and resolving it on first
// use. Later calls return the same table. Failures are not remembered: the
// next call tries again.
func (t *Transformer) Schema(ctx context.Context) (*schema.Table, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.schema != nil {
		return t.schema, nil
	}

	raw, err := t.loader.Load(ctx, t.input)
	if err != nil {
		return nil, err
	}

	r := resolve.NewResolver(raw, t.logger)

	resolved, err := r.Resolve()
	t.diags = r.Diagnostics()

	if err != nil {
		return nil, err
	}

	t.logger.DebugContext(ctx, "schema resolved",
		"input", t.input,
		"models", resolved.Model.Len(),
		"types", resolved.Type.Len(),
		"plugins", resolved.Plugin.Len())

	t.schema = resolved

	return resolved, nil
}

// Diagnostics returns the findings of the last resolution, such as
// inheritance cycles.
func (t *Transformer) Diagnostics() diagnostic.Diagnostics {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.diags
}

// Transform runs every plugin in the resolved schema, in declared order,
// stopping at the first failure. Relative plugin specifiers and output
// paths are resolved against the schema file's directory.
func (t *Transformer) Transform(ctx context.Context) error {
	s, err := t.Schema(ctx)
	if err != nil {
		return err
	}

	runner := plugin.NewRunner(t.plugins, t.logger)

	return runner.Run(ctx, s, s.Plugin, plugin.Context{
		Cwd:       t.cwd,
		SchemaDir: filepath.Dir(t.input),
		FS:        t.fs,
	})
}

// Invalidate drops the cached schema so the next Schema call reloads it.
func (t *Transformer) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.schema = nil
	t.diags = diagnostic.Diagnostics{}
}

// SetSchemaForTesting replaces the cached schema.
func (t *Transformer) SetSchemaForTesting(s *schema.Table) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.schema = s
}
