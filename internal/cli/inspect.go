package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/codespawn/internal/codegen"
	"github.com/roach88/codespawn/internal/ir"
	"github.com/roach88/codespawn/internal/loader"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Lang string // show the tree as substituted for this language
}

// InspectResult is the JSON payload of the inspect command.
type InspectResult struct {
	Lang  string     `json:"lang,omitempty"`
	Items []*ir.Node `json:"items"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect <document>",
		Short: "Print the loaded tree",
		Long: `Print the structure of a document's tree. With --lang, print the tree
after that language's type and name substitution.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Lang, "lang", "l", "", "target language whose configuration is applied")

	return cmd
}

func runInspect(opts *InspectOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	doc, err := loader.Load(path)
	if err != nil {
		return outputCommandError(formatter, err)
	}

	if opts.Lang == "" {
		if formatter.IsJSON() {
			return formatter.Success(InspectResult{Items: doc.Items})
		}
		fmt.Fprintln(formatter.Writer, "*")
		if err := ir.Fprint(formatter.Writer, doc.Items); err != nil {
			return err
		}
		fmt.Fprintln(formatter.Writer, "*")
		for _, lang := range sortedLangs(doc.Configs) {
			cfg := doc.Configs[lang]
			fmt.Fprintf(formatter.Writer, "Config %s: %d type(s), %d name(s), %d option(s)\n",
				lang, len(cfg.Types), len(cfg.Names), len(cfg.Global))
		}
		return nil
	}

	langs, err := resolveLangs([]string{opts.Lang})
	if err != nil {
		return outputCommandError(formatter, err)
	}
	job, err := codegen.NewJob(langs[0], doc.Config(langs[0]), doc.Items, codegen.WithLogger(opts.logger(cmd.ErrOrStderr())))
	if err != nil {
		return outputCommandError(formatter, err)
	}

	if formatter.IsJSON() {
		return formatter.Success(InspectResult{Lang: string(job.Lang()), Items: job.Tree()})
	}
	return formatter.Raw(job.String())
}
