package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/roach88/codespawn/internal/codegen"
	"github.com/roach88/codespawn/internal/config"
	"github.com/roach88/codespawn/internal/ir"
	"github.com/roach88/codespawn/internal/loader"
	"github.com/roach88/codespawn/internal/render"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric       = "E001"                    // Generic/unknown error
	ErrCodeUnsupported   = loader.ErrCodeUnsupported // Unsupported document extension
	ErrCodeParseFailed   = loader.ErrCodeParseFailed // Document could not be decoded
	ErrCodeNotFound      = loader.ErrCodeNotFound    // Path not found
	ErrCodeWriteFailed   = "E007"                    // File write error
	ErrCodeInvalidIR     = "E201"                    // Illegal child kind in the tree
	ErrCodeInvalidConfig = "E202"                    // Malformed global option
	ErrCodeUnknownLang   = loader.ErrCodeUnknownLang // Unknown target language
	ErrCodeSchema        = loader.ErrCodeSchema      // Document breaks the schema
	ErrCodeTestFailed    = "E301"                    // One or more scenarios failed
)

// classifyError maps an error to its code and message.
func classifyError(err error) (string, string) {
	var loadErr *loader.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Error()
	}
	var irErr *ir.InvalidIRError
	if errors.As(err, &irErr) {
		return ErrCodeInvalidIR, err.Error()
	}
	var cfgErr *config.InvalidConfigError
	if errors.As(err, &cfgErr) {
		return ErrCodeInvalidConfig, err.Error()
	}
	var ioErr *codegen.IOError
	if errors.As(err, &ioErr) {
		return ErrCodeWriteFailed, err.Error()
	}
	if errors.Is(err, render.ErrUnknownLang) {
		return ErrCodeUnknownLang, err.Error()
	}
	return ErrCodeGeneric, err.Error()
}

// outputCommandError writes err through the formatter and returns the
// matching ExitError (exit code 2).
func outputCommandError(formatter *OutputFormatter, err error) error {
	code, message := classifyError(err)
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitCommandError, code, err)
}

// resolveLangs parses --lang values. No values selects every target.
func resolveLangs(tags []string) ([]ir.Lang, error) {
	if len(tags) == 0 {
		return append([]ir.Lang(nil), ir.Langs...), nil
	}
	seen := make(map[ir.Lang]bool, len(tags))
	var langs []ir.Lang
	for _, tag := range tags {
		lang, ok := ir.ParseLang(tag)
		if !ok {
			return nil, fmt.Errorf("%w: %q", render.ErrUnknownLang, tag)
		}
		if !seen[lang] {
			seen[lang] = true
			langs = append(langs, lang)
		}
	}
	return langs, nil
}

// sortedLangs returns the keys of a config map in a stable order.
func sortedLangs(configs map[ir.Lang]*config.Config) []ir.Lang {
	langs := make([]ir.Lang, 0, len(configs))
	for l := range configs {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}
