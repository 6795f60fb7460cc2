package plugin

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"idea-transformer/internal/diagnostic"
	"idea-transformer/internal/match"
)

// ScriptExt is appended to project-relative specifiers that do not name a
// file as given.
const ScriptExt = ".lua"

// Loader turns a plugin specifier into a Plugin. baseDir is the schema
// directory.
type Loader interface {
	Load(ctx context.Context, specifier, baseDir string) (Plugin, error)
}

// ScriptHost compiles a plugin script found on disk.
type ScriptHost interface {
	Compile(ctx context.Context, path string, source []byte) (Plugin, error)
}

// PluginLoadFailureError reports a specifier that could not be resolved or
// loaded.
type PluginLoadFailureError struct {
	Specifier string
	Err       error
}

func (e *PluginLoadFailureError) Error() string {
	return fmt.Sprintf("failed to load plugin %q: %v", e.Specifier, e.Err)
}

// Code implements diagnostic.Coder.
func (e *PluginLoadFailureError) Code() string { return diagnostic.CodePluginLoadFailure }

func (e *PluginLoadFailureError) Unwrap() error { return e.Err }

// ErrPluginNotFound is wrapped by load failures for unknown specifiers.
var ErrPluginNotFound = errors.New("plugin not found")

// IsProjectRelative reports whether specifier names a path rather than a
// registered plugin.
func IsProjectRelative(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") ||
		filepath.IsAbs(specifier)
}

// DefaultLoader resolves project-relative specifiers to scripts and bare
// specifiers through a Registry.
type DefaultLoader struct {
	Registry *Registry
	FS       billy.Filesystem
	Host     ScriptHost
}

// Load implements Loader.
func (l *DefaultLoader) Load(ctx context.Context, specifier, baseDir string) (Plugin, error) {
	if !IsProjectRelative(specifier) {
		p, ok := l.Registry.Lookup(specifier)
		if !ok {
			err := ErrPluginNotFound
			if s := match.Suggest(specifier, l.Registry.Names()); s != "" {
				err = fmt.Errorf("%w (did you mean %q?)", ErrPluginNotFound, s)
			}

			return nil, &PluginLoadFailureError{Specifier: specifier, Err: err}
		}

		return p, nil
	}

	if l.Host == nil {
		return nil, &PluginLoadFailureError{Specifier: specifier, Err: errors.New("no script host configured")}
	}

	path, err := l.locate(specifier, baseDir)
	if err != nil {
		return nil, &PluginLoadFailureError{Specifier: specifier, Err: err}
	}

	source, err := util.ReadFile(l.FS, path)
	if err != nil {
		return nil, &PluginLoadFailureError{Specifier: specifier, Err: err}
	}

	p, err := l.Host.Compile(ctx, path, source)
	if err != nil {
		return nil, &PluginLoadFailureError{Specifier: specifier, Err: err}
	}

	return p, nil
}

// locate finds the script for specifier: the path as given, then with
// ScriptExt appended.
func (l *DefaultLoader) locate(specifier, baseDir string) (string, error) {
	base := specifier
	if !filepath.IsAbs(base) {
		base = filepath.Join(baseDir, specifier)
	}

	candidates := []string{base}
	if filepath.Ext(base) != ScriptExt {
		candidates = append(candidates, base+ScriptExt)
	}

	for _, candidate := range candidates {
		info, err := l.FS.Stat(candidate)

		switch {
		case errors.Is(err, fs.ErrNotExist):
			continue
		case err != nil:
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		case info.IsDir():
			continue
		}

		return candidate, nil
	}

	return "", fmt.Errorf("%w: tried %s", ErrPluginNotFound, strings.Join(candidates, ", "))
}
