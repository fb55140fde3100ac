package loader

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// ErrCodeSchema marks a document that decodes but breaks the schema.
const ErrCodeSchema = "E204"

//go:embed schema.json
var schemaJSON []byte

// Schema returns the JSON Schema every document must satisfy.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

// SchemaIssue is one schema violation.
type SchemaIssue struct {
	Path    string // items[0].kind; empty for the document root
	Message string
}

func (i SchemaIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// CheckSchema reads the document at path and checks it against Schema.
// Load errors are returned as *LoadError; violations are returned as issues.
func CheckSchema(path string) ([]SchemaIssue, error) {
	format, ok := FormatFor(path)
	if !ok {
		return nil, &LoadError{
			Code:    ErrCodeUnsupported,
			Message: fmt.Sprintf("unsupported document extension %q", filepath.Ext(path)),
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading document: %v", err)}
	}
	return CheckSchemaBytes(format, data, path)
}

// CheckSchemaBytes checks a document held in memory against Schema.
func CheckSchemaBytes(format Format, data []byte, filename string) ([]SchemaIssue, error) {
	raw, err := toJSON(format, data, filename)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("parsing %s: %v", filename, err)}
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("parsing %s: %v", filename, err)}
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, err
	}

	p := message.NewPrinter(language.English)
	seen := make(map[SchemaIssue]bool)
	var issues []SchemaIssue
	collectIssues(verr, p, func(issue SchemaIssue) {
		if !seen[issue] {
			seen[issue] = true
			issues = append(issues, issue)
		}
	})
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Message < issues[j].Message
	})
	return issues, nil
}

// collectIssues reports the leaves of a validation error tree.
func collectIssues(verr *jsonschema.ValidationError, p *message.Printer, report func(SchemaIssue)) {
	if len(verr.Causes) == 0 {
		report(SchemaIssue{
			Path:    instancePath(verr.InstanceLocation),
			Message: verr.ErrorKind.LocalizedString(p),
		})
		return
	}
	for _, cause := range verr.Causes {
		collectIssues(cause, p, report)
	}
}

// instancePath renders a JSON pointer as items[0].children[1].kind.
func instancePath(loc []string) string {
	var b strings.Builder
	for _, seg := range loc {
		if _, err := strconv.Atoi(seg); err == nil {
			fmt.Fprintf(&b, "[%s]", seg)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// toJSON re-encodes a document of any format as JSON.
func toJSON(format Format, data []byte, filename string) ([]byte, error) {
	var v any
	switch format {
	case FormatJSON:
		return data, nil
	case FormatYAML:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		if v == nil {
			v = map[string]any{}
		}
	case FormatTOML:
		m := map[string]any{}
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, err
		}
		v = m
	case FormatCUE:
		val := cuecontext.New().CompileBytes(data, cue.Filename(filename))
		if err := val.Err(); err != nil {
			return nil, err
		}
		return val.MarshalJSON()
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return json.Marshal(v)
}
