package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/codespawn/internal/codegen"
	"github.com/roach88/codespawn/internal/ir"
	"github.com/roach88/codespawn/internal/loader"
)

// dirPerm is the mode of created output directories.
const dirPerm = 0o755

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Langs    []string      // target languages; empty means all
	OutDir   string        // write files here instead of stdout
	Basename string        // output file name without extension
	Watch    bool          // regenerate whenever the document changes
	Debounce time.Duration // quiet period before a watched change is rendered
}

// GeneratedOutput describes the result for one language.
type GeneratedOutput struct {
	Lang string `json:"lang"`
	Path string `json:"path,omitempty"`
	Text string `json:"text,omitempty"`
}

// GenerateResult is the JSON payload of the generate command.
type GenerateResult struct {
	Outputs []GeneratedOutput `json:"outputs"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <document>",
		Short: "Generate source code for one or more target languages",
		Long: `Load a JSON, YAML, TOML or CUE document, apply each language's
configuration and render the items for every requested target.

Without --out-dir the generated code is written to stdout.

With --watch (which needs --out-dir) the files are regenerated every time the
document changes, until the command is interrupted. A change that fails to
load or render is logged and the previous files are kept.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Langs, "lang", "l", nil, "target language (rust|cpp), repeatable; default all")
	cmd.Flags().StringVarP(&opts.OutDir, "out-dir", "o", "", "output directory")
	cmd.Flags().StringVar(&opts.Basename, "basename", "", "output file name without extension (default: document name)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "regenerate when the document changes (requires --out-dir)")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", defaultDebounce, "quiet period before a watched change is regenerated")

	return cmd
}

func runGenerate(opts *GenerateOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	if opts.Watch && opts.OutDir == "" {
		return outputCommandError(formatter, errors.New("--watch requires --out-dir"))
	}

	langs, err := resolveLangs(opts.Langs)
	if err != nil {
		return outputCommandError(formatter, err)
	}

	result, err := generateOnce(opts, path, langs, formatter, logger)
	if err != nil {
		return outputCommandError(formatter, err)
	}
	if err := outputGenerateSuccess(formatter, result); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}

	return watchDocument(cmd.Context(), path, opts.Debounce, logger, func() error {
		result, err := generateOnce(opts, path, langs, formatter, logger)
		if err != nil {
			return err
		}
		return outputGenerateSuccess(formatter, result)
	})
}

// generateOnce loads the document and renders every language.
func generateOnce(opts *GenerateOptions, path string, langs []ir.Lang, formatter *OutputFormatter, logger *slog.Logger) (GenerateResult, error) {
	doc, err := loader.Load(path)
	if err != nil {
		return GenerateResult{}, err
	}
	formatter.VerboseLog("Loaded %d item(s), %d config(s) from %s", len(doc.Items), len(doc.Configs), path)

	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, dirPerm); err != nil {
			return GenerateResult{}, &codegen.IOError{Op: "create", Path: opts.OutDir, Err: err}
		}
	}

	basename := opts.Basename
	if basename == "" {
		basename = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	result := GenerateResult{}
	for _, lang := range langs {
		job, err := codegen.NewJob(lang, doc.Config(lang), doc.Items, codegen.WithLogger(logger))
		if err != nil {
			return GenerateResult{}, err
		}
		formatter.VerboseLog("Rendering %s", lang)

		out := GeneratedOutput{Lang: string(lang)}
		if opts.OutDir != "" {
			out.Path = filepath.Join(opts.OutDir, basename+job.Ext())
			if err := job.WriteFile(out.Path); err != nil {
				return GenerateResult{}, err
			}
		} else {
			out.Text, err = job.Text()
			if err != nil {
				return GenerateResult{}, err
			}
		}
		result.Outputs = append(result.Outputs, out)
	}
	return result, nil
}

// outputGenerateSuccess outputs the generated code or the written paths.
func outputGenerateSuccess(formatter *OutputFormatter, result GenerateResult) error {
	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	wrote := 0
	for _, out := range result.Outputs {
		if out.Path == "" {
			if err := formatter.Raw(out.Text); err != nil {
				return err
			}
			continue
		}
		wrote++
	}
	if wrote == 0 {
		return nil
	}

	fmt.Fprintf(formatter.Writer, "✓ Generated %d file(s)\n", wrote)
	for _, out := range result.Outputs {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", ir.Lang(out.Lang), out.Path)
	}
	return nil
}
