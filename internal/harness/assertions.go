package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/codespawn/internal/ir"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Lang     string // Target whose output was checked
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s", e.Type)
	if e.Lang != "" {
		fmt.Fprintf(&buf, " (%s)", e.Lang)
	}
	fmt.Fprintf(&buf, "\n  Expected: %s\n  Actual: %s", e.Expected, e.Actual)
	return buf.String()
}

// evaluateAssertion checks one output assertion against a result.
func evaluateAssertion(result *Result, a Assertion) error {
	lang, _ := ir.ParseLang(a.Lang)
	out, ok := result.Output(lang)
	if !ok {
		return &AssertionError{
			Type:     a.Type,
			Lang:     a.Lang,
			Expected: fmt.Sprintf("output for %s", a.Lang),
			Actual:   "language not rendered (missing from langs?)",
		}
	}

	switch a.Type {
	case AssertOutputContains:
		return assertOutputContains(out, a)
	case AssertOutputExcludes:
		return assertOutputExcludes(out, a)
	case AssertOutputOrder:
		return assertOutputOrder(out, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertOutputContains checks that the output contains the text.
func assertOutputContains(out string, a Assertion) error {
	if strings.Contains(out, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutputContains,
		Lang:     a.Lang,
		Expected: fmt.Sprintf("output containing %q", a.Text),
		Actual:   "not found in output",
	}
}

// assertOutputExcludes checks that the output does not contain the text.
func assertOutputExcludes(out string, a Assertion) error {
	if !strings.Contains(out, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutputExcludes,
		Lang:     a.Lang,
		Expected: fmt.Sprintf("output without %q", a.Text),
		Actual:   fmt.Sprintf("found at line %d", lineOf(out, strings.Index(out, a.Text))),
	}
}

// assertOutputOrder checks that the lines appear in the specified order.
// Other text may appear between them.
func assertOutputOrder(out string, a Assertion) error {
	offset := 0
	for i, line := range a.Lines {
		idx := strings.Index(out[offset:], line)
		if idx < 0 {
			actual := "not found in output"
			if strings.Contains(out, line) {
				actual = fmt.Sprintf("%q appears before %q", line, a.Lines[i-1])
			}
			return &AssertionError{
				Type:     AssertOutputOrder,
				Lang:     a.Lang,
				Expected: fmt.Sprintf("lines in order: %q", a.Lines),
				Actual:   actual,
			}
		}
		offset += idx + len(line)
	}
	return nil
}

// lineOf returns the 1-based line number of byte offset pos.
func lineOf(s string, pos int) int {
	return strings.Count(s[:pos], "\n") + 1
}
