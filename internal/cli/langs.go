package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/codespawn/internal/ir"
	"github.com/roach88/codespawn/internal/render"
)

// LangInfo describes a supported target.
type LangInfo struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
	Ext  string `json:"ext"`
}

// NewLangsCommand creates the langs command.
func NewLangsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "langs",
		Short:         "List supported target languages",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			infos := make([]LangInfo, 0, len(ir.Langs))
			for _, lang := range ir.Langs {
				syn, err := render.SyntaxFor(lang)
				if err != nil {
					return outputCommandError(formatter, err)
				}
				infos = append(infos, LangInfo{Tag: string(lang), Name: lang.String(), Ext: syn.Ext()})
			}
			if formatter.IsJSON() {
				return formatter.Success(infos)
			}
			for _, info := range infos {
				fmt.Fprintf(formatter.Writer, "%-6s %-6s %s\n", info.Tag, info.Name, info.Ext)
			}
			return nil
		},
	}
}
