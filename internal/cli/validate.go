package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/codespawn/internal/config"
	"github.com/roach88/codespawn/internal/ir"
	"github.com/roach88/codespawn/internal/loader"
)

// ValidationIssue is one problem found in a document.
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Lang    string `json:"lang,omitempty"` // set for configuration issues
	Path    string `json:"path,omitempty"` // set for tree issues
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool              `json:"valid"`
	Items   int               `json:"items"`
	Configs int               `json:"configs"`
	Errors  []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <document>",
		Short: "Validate a document without generating code",
		Long: `Load a document and check it against the document schema, the tree
structure (allowed child kinds) and the global options of every language
configuration.

Use "codespawn schema" to print the schema.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	doc, err := loader.Load(path)
	if err != nil {
		return outputCommandError(formatter, err)
	}
	formatter.VerboseLog("Loaded %d item(s), %d config(s) from %s", len(doc.Items), len(doc.Configs), path)

	result := ValidationResult{Items: len(doc.Items), Configs: len(doc.Configs)}
	schemaIssues, err := loader.CheckSchema(path)
	if err != nil {
		return outputCommandError(formatter, err)
	}
	for _, issue := range schemaIssues {
		result.Errors = append(result.Errors, ValidationIssue{Code: ErrCodeSchema, Message: issue.String(), Path: issue.Path})
	}
	result.Errors = append(result.Errors, validateDocument(doc, formatter)...)
	result.Valid = len(result.Errors) == 0

	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}
	return outputValidateSuccess(formatter, result)
}

// validateDocument checks the tree and every configuration.
func validateDocument(doc *loader.Result, formatter *OutputFormatter) []ValidationIssue {
	var issues []ValidationIssue

	formatter.VerboseLog("Validating tree")
	if err := ir.Validate(doc.Items); err != nil {
		issue := ValidationIssue{Code: ErrCodeInvalidIR, Message: err.Error()}
		var irErr *ir.InvalidIRError
		if errors.As(err, &irErr) {
			issue.Path = irErr.Path
		}
		issues = append(issues, issue)
	}

	for _, lang := range sortedLangs(doc.Configs) {
		formatter.VerboseLog("Validating %s config", lang)
		if _, err := doc.Configs[lang].Format(); err != nil {
			code := ErrCodeGeneric
			if config.IsInvalidConfig(err) {
				code = ErrCodeInvalidConfig
			}
			issues = append(issues, ValidationIssue{Code: code, Message: err.Error(), Lang: string(lang)})
		}
	}

	return issues
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Document valid: %d item(s), %d config(s)\n", result.Items, result.Configs)
	return nil
}

// outputValidationErrors outputs all validation issues.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.IsJSON() {
		_ = formatter.Error(result.Errors[0].Code, result.Errors[0].Message, result)
	} else {
		fmt.Fprintln(formatter.Writer, "✗ Validation failed")
		fmt.Fprintln(formatter.Writer)
		for _, issue := range result.Errors {
			fmt.Fprintf(formatter.Writer, "  %s: %s\n", issue.Code, issue.Message)
		}
	}

	// Validation failures are exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
}
