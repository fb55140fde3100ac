package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/codespawn/internal/codegen"
	"github.com/roach88/codespawn/internal/config"
	"github.com/roach88/codespawn/internal/ir"
	"github.com/roach88/codespawn/internal/loader"
	"github.com/roach88/codespawn/internal/render"
)

// Harness is the scenario execution engine.
type Harness struct {
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger handed to every rendering job.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		if l != nil {
			h.logger = l
		}
	}
}

// New creates a Harness. Job logs are discarded unless WithLogger is given.
func New(opts ...Option) *Harness {
	h := &Harness{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default Harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(scenario)
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Load the document
// 2. Build and render one job per target language
// 3. Evaluate the assertions against the outputs
//
// A failure in step 1 or 2 is returned as an error unless the scenario
// has an error assertion, in which case it is recorded in the result.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	langs, err := scenarioLangs(scenario)
	if err != nil {
		return h.failed(scenario, CodeUnknownLang, err)
	}

	doc, err := loader.Load(scenario.Document)
	if err != nil {
		return h.failed(scenario, CodeLoad, err)
	}

	result := NewResult()
	for _, lang := range langs {
		job, err := codegen.NewJob(lang, doc.Config(lang), doc.Items, codegen.WithLogger(h.logger))
		if err != nil {
			return h.failed(scenario, failureCode(err), err)
		}
		text, err := job.Text()
		if err != nil {
			return h.failed(scenario, failureCode(err), err)
		}
		result.Outputs = append(result.Outputs, Output{Lang: lang, Text: text})
	}

	for i, assertion := range scenario.Assertions {
		if assertion.Type == AssertError {
			result.AddError(fmt.Sprintf("assertions[%d]: expected failure %q, but the run succeeded", i, assertion.Code))
			continue
		}
		if err := evaluateAssertion(result, assertion); err != nil {
			result.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}

	return result, nil
}

// failed records an expected failure, or returns err when the scenario did
// not expect one.
func (h *Harness) failed(scenario *Scenario, code string, err error) (*Result, error) {
	if !expectsFailure(scenario) {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	h.logger.Debug("scenario failed as expected", "scenario", scenario.Name, "code", code, "error", err)

	result := NewResult()
	result.ErrorCode = code
	for i, assertion := range scenario.Assertions {
		switch {
		case assertion.Type != AssertError:
			result.AddError(fmt.Sprintf("assertions[%d]: %s not checked, the run failed: %v", i, assertion.Type, err))
		case assertion.Code != code:
			result.AddError(fmt.Sprintf("assertions[%d]: expected failure %q, got %q: %v", i, assertion.Code, code, err))
		}
	}
	return result, nil
}

func expectsFailure(scenario *Scenario) bool {
	for _, a := range scenario.Assertions {
		if a.Type == AssertError {
			return true
		}
	}
	return false
}

// failureCode classifies a job error.
func failureCode(err error) string {
	switch {
	case ir.IsInvalidIR(err):
		return CodeInvalidIR
	case config.IsInvalidConfig(err):
		return CodeInvalidConfig
	case errors.Is(err, render.ErrUnknownLang):
		return CodeUnknownLang
	default:
		return CodeLoad
	}
}

func scenarioLangs(scenario *Scenario) ([]ir.Lang, error) {
	if len(scenario.Langs) == 0 {
		return append([]ir.Lang(nil), ir.Langs...), nil
	}
	langs := make([]ir.Lang, 0, len(scenario.Langs))
	for _, tag := range scenario.Langs {
		lang, ok := ir.ParseLang(tag)
		if !ok {
			return nil, fmt.Errorf("%w: %q", render.ErrUnknownLang, tag)
		}
		langs = append(langs, lang)
	}
	return langs, nil
}
