package codegen

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/codespawn/internal/config"
	"github.com/roach88/codespawn/internal/ir"
	"github.com/roach88/codespawn/internal/render"
)

// Job is one (language, IR, configuration) rendering request.
type Job struct {
	lang   ir.Lang
	items  []*ir.Node
	format config.Format
	sub    config.Substitution
	engine *render.Engine
	logger *slog.Logger
}

// Option configures a Job.
type Option func(*Job)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(j *Job) {
		if l != nil {
			j.logger = l
		}
	}
}

// WithEngine replaces the built-in engine for the job's language.
func WithEngine(e *render.Engine) Option {
	return func(j *Job) {
		if e != nil {
			j.engine = e
		}
	}
}

// NewJob creates a Job for lang from items and an optional configuration.
//
// The items are deep-copied; later changes by the caller do not affect the
// Job. The tree structure and the configuration options are validated
// here, so an invalid tree fails with *ir.InvalidIRError and an invalid
// option with *config.InvalidConfigError before anything is rendered.
func NewJob(lang ir.Lang, cfg *config.Config, items []*ir.Node, opts ...Option) (*Job, error) {
	j := &Job{
		lang:   lang,
		items:  ir.Clone(items),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(j)
	}

	if j.engine == nil {
		engine, err := render.ForLang(lang)
		if err != nil {
			return nil, err
		}
		j.engine = engine
	}

	format, err := cfg.Format()
	if err != nil {
		return nil, fmt.Errorf("%s config: %w", string(lang), err)
	}
	j.format = format
	j.sub = cfg.Substitution()

	if err := ir.Validate(j.items); err != nil {
		return nil, err
	}

	j.logger.Debug("job created",
		"lang", string(lang),
		"items", len(j.items),
		"indent_width", format.IndentWidth,
		"indent_char", string(format.IndentChar),
		"substitution", !j.sub.IsIdentity(),
	)
	return j, nil
}

// Lang returns the job's target language.
func (j *Job) Lang() ir.Lang {
	return j.lang
}

// Format returns the resolved formatting options.
func (j *Job) Format() config.Format {
	return j.format
}

// Ext returns the file extension of the job's target.
func (j *Job) Ext() string {
	return j.engine.Syntax().Ext()
}

// Text renders the job. It is deterministic and may be called repeatedly.
func (j *Job) Text() (string, error) {
	return j.engine.Render(j.items, j.format, j.sub)
}

// Tree returns the substituted copy of the job's items.
func (j *Job) Tree() []*ir.Node {
	return j.sub.Apply(j.items)
}

// String describes the job: target name followed by the substituted tree.
func (j *Job) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Target: %s\n*\n", j.lang)
	_ = ir.Fprint(&sb, j.Tree())
	sb.WriteString("*\n")
	return sb.String()
}
