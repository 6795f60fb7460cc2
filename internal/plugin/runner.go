package plugin

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"idea-transformer/internal/diagnostic"
	"idea-transformer/internal/schema"
)

// ErrNoPluginsDefined is returned when a transform has no plugin entries.
var ErrNoPluginsDefined error = noPluginsError{}

type noPluginsError struct{}

func (noPluginsError) Error() string { return "no plugins defined in schema" }
func (noPluginsError) Code() string  { return diagnostic.CodeNoPluginsDefined }

// Runner executes plugin entries in declared order.
type Runner struct {
	loader Loader
	logger *slog.Logger
}

// NewRunner creates a Runner. A nil logger discards output.
func NewRunner(loader Loader, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Runner{loader: loader, logger: logger}
}

// Run loads and invokes every plugin in plugins, one after the other. It
// stops at the first error: load failures come back as
// *PluginLoadFailureError, plugin errors are returned as the plugin raised
// them.
func (r *Runner) Run(ctx context.Context, s *schema.Table, plugins *schema.Map[*schema.PluginConfig], pc Context) error {
	if plugins.Len() == 0 {
		return ErrNoPluginsDefined
	}

	for specifier, cfg := range plugins.All() {
		if err := ctx.Err(); err != nil {
			return err
		}

		p, err := r.loader.Load(ctx, specifier, pc.SchemaDir)
		if err != nil {
			var loadErr *PluginLoadFailureError
			if !errors.As(err, &loadErr) {
				err = &PluginLoadFailureError{Specifier: specifier, Err: err}
			}

			return err
		}

		if cfg == nil {
			cfg = &schema.PluginConfig{Options: schema.NewMap[any]()}
		}

		scoped := pc
		scoped.Logger = r.logger.With("plugin", specifier)

		r.logger.InfoContext(ctx, "running plugin", "plugin", specifier, "output", cfg.Output)

		err = run(ctx, p, s, cfg, &scoped)
		if err != nil {
			return err
		}
	}

	return nil
}

func run(ctx context.Context, p Plugin, s *schema.Table, cfg *schema.PluginConfig, pc *Context) error {
	if c, ok := p.(io.Closer); ok {
		defer c.Close()
	}

	return p.Run(ctx, s, cfg, pc)
}
