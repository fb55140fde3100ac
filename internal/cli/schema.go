package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/roach88/codespawn/internal/loader"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of generator documents",
		Long: `Print the JSON Schema (draft 2020-12) that "codespawn validate" checks
documents against. YAML, TOML and CUE documents are converted to JSON
before they are checked.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			if formatter.IsJSON() {
				return formatter.Success(json.RawMessage(loader.Schema()))
			}
			return formatter.Raw(string(loader.Schema()))
		},
	}
}
