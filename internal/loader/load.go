package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatCUE  Format = "cue"
)

// Error code constants, shared with the CLI.
const (
	ErrCodeUnsupported = "E003" // Unsupported file extension
	ErrCodeParseFailed = "E004" // Document could not be decoded
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeUnknownLang = "E203" // Unknown language in configs
)

// LoadError represents an error that occurred while loading a document.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	case ".cue":
		return FormatCUE, true
	}
	return "", false
}

// Load reads and decodes the document at path.
func Load(path string) (*Result, error) {
	format, ok := FormatFor(path)
	if !ok {
		return nil, &LoadError{
			Code:    ErrCodeUnsupported,
			Message: fmt.Sprintf("unsupported document extension %q (want .json, .yaml, .yml, .toml or .cue)", filepath.Ext(path)),
		}
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("document not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading document: %v", err)}
	}
	return Decode(format, data, path)
}

// Decode decodes a document held in memory. filename is used in messages
// and CUE positions only.
func Decode(format Format, data []byte, filename string) (*Result, error) {
	var (
		doc document
		err error
	)
	switch format {
	case FormatJSON:
		err = decodeJSON(data, &doc)
	case FormatYAML:
		err = decodeYAML(data, &doc)
	case FormatTOML:
		err = decodeTOML(data, &doc)
	case FormatCUE:
		err = decodeCUE(data, filename, &doc)
	default:
		return nil, &LoadError{Code: ErrCodeUnsupported, Message: fmt.Sprintf("unsupported format %q", format)}
	}
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return nil, loadErr
		}
		return nil, &LoadError{
			Code:    ErrCodeParseFailed,
			Message: fmt.Sprintf("parsing %s: %v", filename, err),
		}
	}
	return doc.convert()
}

func decodeJSON(data []byte, doc *document) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(doc); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

func decodeYAML(data []byte, doc *document) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // Reject unknown fields
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

func decodeTOML(data []byte, doc *document) error {
	md, err := toml.Decode(string(data), doc)
	if err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("failed to parse TOML: unknown fields %s", strings.Join(keys, ", "))
	}
	return nil
}

// decodeCUE evaluates the CUE source, exports it as JSON and decodes that.
func decodeCUE(data []byte, filename string, doc *document) error {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return formatCUEError(err)
	}
	raw, err := v.MarshalJSON()
	if err != nil {
		return formatCUEError(err)
	}
	return decodeJSON(raw, doc)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Report the first error with position info
	first := errs[0]
	le := &LoadError{Code: ErrCodeParseFailed, Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
