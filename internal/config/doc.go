// Package config holds the per-target configuration applied before
// rendering: the type and name substitution dictionaries and the
// formatting options (indent width and character).
//
// A Config is raw loader output. Format validates the option bag once and
// Substitution freezes the dictionaries into a read-only overlay that the
// renderers consult on every attribute read.
package config
