package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"idea-transformer/internal/schema"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Plugin is a code-generation unit.
type Plugin interface {
	Run(ctx context.Context, s *schema.Table, cfg *schema.PluginConfig, pc *Context) error
}

// Func adapts a function to the Plugin interface.
type Func func(ctx context.Context, s *schema.Table, cfg *schema.PluginConfig, pc *Context) error

// Run implements Plugin.
func (f Func) Run(ctx context.Context, s *schema.Table, cfg *schema.PluginConfig, pc *Context) error {
	return f(ctx, s, cfg, pc)
}

// Context is the execution context handed to every plugin.
type Context struct {
	// Cwd is the working directory of the transform.
	Cwd string
	// SchemaDir is the directory of the root schema file. Relative output
	// paths are resolved against it.
	SchemaDir string
	// FS is where plugins write their output.
	FS billy.Filesystem
	// Logger is scoped to the running plugin.
	Logger *slog.Logger
}

// Resolve returns path resolved against the schema directory.
func (c *Context) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(c.SchemaDir, path)
}

// WriteFile writes data to path, resolved against the schema directory,
// creating parent directories as needed. It returns the resolved path.
func (c *Context) WriteFile(path string, data []byte) (string, error) {
	full := c.Resolve(path)

	err := c.FS.MkdirAll(filepath.Dir(full), dirPerm)
	if err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	err = util.WriteFile(c.FS, full, data, os.FileMode(filePerm))
	if err != nil {
		return "", fmt.Errorf("writing file %s: %w", full, err)
	}

	c.logger().Debug("wrote file", "path", full, "bytes", len(data))

	return full, nil
}

func (c *Context) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return c.Logger
}
