// Package main provides the CLI entrypoint for idea-transformer.
//
// idea-transformer loads an idea schema, flattens model and type
// inheritance, and runs the plugins the schema declares:
//   - transform: run every plugin in declared order
//   - schema: print the resolved schema
//   - plugins: list the built-in plugins
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	transformer "idea-transformer"
	"idea-transformer/internal/diagnostic"
	"idea-transformer/internal/gen"
)

type options struct {
	cwd     string
	verbose bool
	format  string
}

func main() {
	cmd := newRootCmd()

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if code := diagnostic.CodeOf(err); code != "" {
			fmt.Fprintf(os.Stderr, "error [%s]: %v\n", code, err)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}

		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "idea-transformer",
		Short:         "Resolve idea schemas and run their plugins",
		Long:          `idea-transformer loads a schema file, resolves extends inheritance across models and types, and drives the code-generation plugins listed in its plugin section.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.cwd, "cwd", "", "Working directory for relative paths (default: current directory)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")

	root.AddCommand(newTransformCmd(opts), newSchemaCmd(opts), newPluginsCmd())

	return root
}

func newTransformCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "transform <schema>",
		Short: "Run every plugin declared in the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := opts.transformer(args[0], cmd.ErrOrStderr())

			err := t.Transform(cmd.Context())

			printDiagnostics(cmd.ErrOrStderr(), t.Diagnostics())

			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "transformed %s\n", t.Input())

			return nil
		},
	}
}

func newSchemaCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema <schema>",
		Short: "Print the resolved schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := opts.transformer(args[0], cmd.ErrOrStderr())

			s, err := t.Schema(cmd.Context())

			printDiagnostics(cmd.ErrOrStderr(), t.Diagnostics())

			if err != nil {
				return err
			}

			if opts.format == "dump" {
				spew.Fdump(cmd.OutOrStdout(), s)
				return nil
			}

			data, err := gen.MarshalSchema(s, opts.format)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "yaml", "Output format: yaml, json or dump")

	return cmd
}

func newPluginsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List the built-in plugins",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range gen.NewRegistry().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func (o *options) transformer(input string, stderr io.Writer) *transformer.Transformer {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	return transformer.New(input, transformer.WithCwd(o.cwd), transformer.WithLogger(logger))
}

// printDiagnostics writes warnings. Errors are returned by the command.
func printDiagnostics(w io.Writer, diags diagnostic.Diagnostics) {
	for _, d := range diags.Warnings {
		fmt.Fprintf(w, "%s: %s\n", d.Severity, d)
	}
}
