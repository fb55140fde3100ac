package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/codespawn/internal/ir"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Document is the path of the input document. Relative paths are
	// resolved against the scenario file's directory.
	Document string `yaml:"document"`

	// Langs lists the targets to render. Empty means every target.
	Langs []string `yaml:"langs,omitempty"`

	// Assertions validate the generated output.
	Assertions []Assertion `yaml:"assertions"`

	// file is the path the scenario was loaded from.
	file string
}

// Assertion validates generated output or the failure of a run.
type Assertion struct {
	// Type specifies the assertion type:
	// - "output_contains": Text appears in the output of Lang
	// - "output_excludes": Text does not appear in the output of Lang
	// - "output_order": Lines appear in the output of Lang in this order
	// - "error": the run fails with Code
	Type string `yaml:"type"`

	// Lang is the target whose output is checked.
	Lang string `yaml:"lang,omitempty"`

	// Text is the expected substring (output_contains, output_excludes).
	Text string `yaml:"text,omitempty"`

	// Lines are the expected substrings, in order (output_order).
	Lines []string `yaml:"lines,omitempty"`

	// Code is the expected failure (error).
	Code string `yaml:"code,omitempty"`
}

// Assertion type constants.
const (
	AssertOutputContains = "output_contains"
	AssertOutputExcludes = "output_excludes"
	AssertOutputOrder    = "output_order"
	AssertError          = "error"
)

// Failure codes used by error assertions.
const (
	CodeLoad          = "load"
	CodeInvalidIR     = "invalid_ir"
	CodeInvalidConfig = "invalid_config"
	CodeUnknownLang   = "unknown_lang"
)

var failureCodes = []string{CodeLoad, CodeInvalidIR, CodeInvalidConfig, CodeUnknownLang}

// File returns the path the scenario was loaded from, if any.
func (s *Scenario) File() string {
	return s.file
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	scenario.file = path

	// Resolve the document path relative to the scenario BEFORE validation
	if scenario.Document != "" && !filepath.IsAbs(scenario.Document) {
		scenario.Document = filepath.Join(filepath.Dir(path), scenario.Document)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Document == "" {
		return fmt.Errorf("document is required")
	}
	if _, err := os.Stat(s.Document); os.IsNotExist(err) {
		return fmt.Errorf("document not found: %s", s.Document)
	}

	for i, tag := range s.Langs {
		if _, ok := ir.ParseLang(tag); !ok {
			return fmt.Errorf("langs[%d]: unknown language %q", i, tag)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertOutputContains, AssertOutputExcludes:
		if err := validateAssertionLang(index, a); err != nil {
			return err
		}
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	case AssertOutputOrder:
		if err := validateAssertionLang(index, a); err != nil {
			return err
		}
		if len(a.Lines) == 0 {
			return fmt.Errorf("assertions[%d]: lines list is required for output_order", index)
		}
	case AssertError:
		if !isFailureCode(a.Code) {
			return fmt.Errorf("assertions[%d]: code must be one of %s", index, strings.Join(failureCodes, ", "))
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

func validateAssertionLang(index int, a *Assertion) error {
	if a.Lang == "" {
		return fmt.Errorf("assertions[%d]: lang is required for %s", index, a.Type)
	}
	if _, ok := ir.ParseLang(a.Lang); !ok {
		return fmt.Errorf("assertions[%d]: unknown language %q", index, a.Lang)
	}
	return nil
}

func isFailureCode(code string) bool {
	for _, c := range failureCodes {
		if c == code {
			return true
		}
	}
	return false
}
