package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/splicelang/splice/runtime"
	"github.com/splicelang/splice/runtime/notices"
)

func newGenCommand() *cobra.Command {
	var (
		output  string
		raw     bool
		force   bool
		watch   bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "gen [template...]",
		Short: "Generate Go sources from splice templates",
		Long: `Generate processes splice templates into Go source files.

Templates named *.splice generate the file without the suffix
(server.go.splice writes server.go); anything else gets a .gen.go
suffix. Without arguments the inputs come from the config file's
"inputs" globs. A single "-" reads the template from stdin and writes
the generated code to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, noColor := rootFlags(cmd)
			useColor := shouldUseColor(noColor)

			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}

			if len(args) == 1 && args[0] == "-" {
				if watch {
					return fmt.Errorf("cannot watch stdin")
				}
				return genStdin(cmd, cfg, raw, useColor)
			}

			inputs := args
			if len(inputs) == 0 {
				inputs, err = expandGlobs(cfg.Inputs)
				if err != nil {
					return err
				}
				if len(inputs) == 0 {
					return fmt.Errorf("no templates: pass paths or set inputs in %s", DefaultConfigFile)
				}
			}

			var manifest *Manifest
			manifestPath := ""
			if !noCache {
				manifestPath = DefaultCacheFile
				manifest = LoadManifest(manifestPath)
			}

			generator := &Generator{
				OutputDir: firstNonEmpty(output, cfg.Output),
				Raw:       raw || !cfg.FormatEnabled(),
				Force:     force,
				Manifest:  manifest,
			}

			if watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				watcher := &Watcher{
					Generator:    generator,
					Inputs:       inputs,
					Out:          cmd.ErrOrStderr(),
					UseColor:     useColor,
					ManifestPath: manifestPath,
				}
				return watcher.Watch(ctx)
			}

			for _, input := range inputs {
				result, err := generator.Generate(input)
				if err != nil {
					data, _ := os.ReadFile(input)
					formatError(cmd.ErrOrStderr(), err, input, data, useColor)
					return errReported
				}
				if result.Skipped {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "unchanged %s\n", result.Output)
				} else {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", result.Output)
				}
			}

			if manifest != nil {
				if err := manifest.Save(manifestPath); err != nil {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Directory generated files are written to")
	cmd.Flags().BoolVar(&raw, "raw", false, "Skip gofmt on generated output")
	cmd.Flags().BoolVar(&force, "force", false, "Regenerate even when the cache says unchanged")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Watch templates and regenerate on change")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Do not read or write the cache manifest")
	return cmd
}

// genStdin processes one template from stdin to stdout.
func genStdin(cmd *cobra.Command, cfg *Config, raw bool, useColor bool) error {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	out, err := runtime.Process(data, runtime.Options{
		Name:     "stdin",
		Reporter: notices.NewReporter(),
		Raw:      raw || !cfg.FormatEnabled(),
	})
	if err != nil {
		formatError(cmd.ErrOrStderr(), err, "stdin", data, useColor)
		return errReported
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// expandGlobs resolves the config's input patterns to file paths,
// keeping pattern order and file order within each pattern.
func expandGlobs(patterns []string) ([]string, error) {
	var inputs []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad input pattern %q: %w", pattern, err)
		}
		inputs = append(inputs, matches...)
	}
	return inputs, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
