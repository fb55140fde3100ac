package config

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Recognized global option keys. Other keys are ignored.
const (
	KeyIndentWidth = "num_tabs"
	KeyIndentChar  = "tab_char"
)

// Default formatting options.
const (
	DefaultIndentWidth uint8 = 4
	DefaultIndentChar  rune  = ' '
)

// Config is the configuration of one target language.
type Config struct {
	// Types maps an original type spelling to its replacement.
	Types map[string]string `json:"types,omitempty"`

	// Names maps an original identifier spelling to its replacement.
	Names map[string]string `json:"names,omitempty"`

	// Global is the raw option bag (num_tabs, tab_char).
	Global map[string]string `json:"global,omitempty"`
}

// Format is the validated formatting option set.
type Format struct {
	IndentWidth uint8
	IndentChar  rune
}

// DefaultFormat returns width 4, space.
func DefaultFormat() Format {
	return Format{IndentWidth: DefaultIndentWidth, IndentChar: DefaultIndentChar}
}

// InvalidConfigError reports a malformed global option value.
type InvalidConfigError struct {
	Key    string
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s=%q: %s", e.Key, e.Value, e.Reason)
}

// IsInvalidConfig reports whether err is (or wraps) an *InvalidConfigError.
func IsInvalidConfig(err error) bool {
	var ce *InvalidConfigError
	return errors.As(err, &ce)
}

// Format validates the global options. A nil Config yields DefaultFormat.
func (c *Config) Format() (Format, error) {
	f := DefaultFormat()
	if c == nil {
		return f, nil
	}
	if v, ok := c.Global[KeyIndentWidth]; ok {
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return Format{}, &InvalidConfigError{
				Key:    KeyIndentWidth,
				Value:  v,
				Reason: "must be an integer between 0 and 255",
			}
		}
		f.IndentWidth = uint8(n)
	}
	if v, ok := c.Global[KeyIndentChar]; ok {
		r, size := utf8.DecodeRuneInString(v)
		if size == 0 {
			return Format{}, &InvalidConfigError{
				Key:    KeyIndentChar,
				Value:  v,
				Reason: "must not be empty",
			}
		}
		if r == utf8.RuneError {
			return Format{}, &InvalidConfigError{
				Key:    KeyIndentChar,
				Value:  v,
				Reason: "must be valid UTF-8",
			}
		}
		f.IndentChar = r
	}
	return f, nil
}

// Substitution returns the read-only overlay built from the dictionaries.
// A nil Config yields the identity overlay.
func (c *Config) Substitution() Substitution {
	if c == nil {
		return Substitution{}
	}
	return NewSubstitution(c.Types, c.Names)
}
