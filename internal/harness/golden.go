package harness

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/codespawn/internal/ir"
)

// goldenDir is the directory of a scenario's golden files.
func goldenDir(s *Scenario) string {
	return filepath.Join(filepath.Dir(s.file), "golden")
}

// goldenName is the golden file name of one target, without suffix.
func goldenName(s *Scenario, lang ir.Lang) string {
	base := s.Name
	if s.file != "" {
		base = strings.TrimSuffix(filepath.Base(s.file), filepath.Ext(s.file))
	}
	return base + "." + string(lang)
}

// GoldenPath returns the golden file of a scenario for lang.
func GoldenPath(s *Scenario, lang ir.Lang) string {
	return filepath.Join(goldenDir(s), goldenName(s, lang)+".golden")
}

// CompareGolden compares each output with its golden file and returns the
// targets whose output differs. Targets without a golden file are skipped.
func CompareGolden(s *Scenario, result *Result) ([]ir.Lang, error) {
	var mismatched []ir.Lang
	for _, out := range result.Outputs {
		data, err := os.ReadFile(GoldenPath(s, out.Lang))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read golden file: %w", err)
		}
		if string(data) != out.Text {
			mismatched = append(mismatched, out.Lang)
		}
	}
	return mismatched, nil
}

// UpdateGolden writes every output as the scenario's golden files.
func UpdateGolden(s *Scenario, result *Result) error {
	if err := os.MkdirAll(goldenDir(s), 0o755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	for _, out := range result.Outputs {
		if err := os.WriteFile(GoldenPath(s, out.Lang), []byte(out.Text), 0o644); err != nil {
			return fmt.Errorf("failed to write golden file: %w", err)
		}
	}
	return nil
}

// RunWithGolden executes a scenario and compares each output against its
// golden file.
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if an output doesn't match its golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	AssertGolden(t, scenario, result)
	return nil
}

// AssertGolden compares the outputs of an existing result against the
// scenario's golden files without re-running it.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir(goldenDir(scenario)),
		goldie.WithNameSuffix(".golden"),
	)
	for _, out := range result.Outputs {
		g.Assert(t, goldenName(scenario, out.Lang), []byte(out.Text))
	}
}
