package harness

import "github.com/roach88/codespawn/internal/ir"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	Pass bool `json:"pass"`

	// Outputs holds the generated text per target, in render order.
	Outputs []Output `json:"outputs"`

	// ErrorCode is the failure code of a run that was expected to fail.
	ErrorCode string `json:"error_code,omitempty"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// Output is the generated text of one target.
type Output struct {
	Lang ir.Lang `json:"lang"`
	Text string  `json:"text"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Outputs: []Output{},
		Errors:  []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Output returns the generated text for lang.
func (r *Result) Output(lang ir.Lang) (string, bool) {
	for _, o := range r.Outputs {
		if o.Lang == lang {
			return o.Text, true
		}
	}
	return "", false
}
