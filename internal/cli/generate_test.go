package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func writeDoc(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestGenerateStdout(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	out, _, err := execute(NewGenerateCommand(rootOpts), "--lang", "rust", shapesDoc)
	require.NoError(t, err)
	assert.Equal(t, readFile(t, shapesRustGolden), out)
}

func TestGenerateAllLanguages(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	out, _, err := execute(NewGenerateCommand(rootOpts), shapesDoc)
	require.NoError(t, err)
	assert.Equal(t, readFile(t, shapesCppGolden)+readFile(t, shapesRustGolden), out)
}

func TestGenerateOutDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gen")
	rootOpts := &RootOptions{Format: "text"}

	out, errOut, err := execute(NewGenerateCommand(rootOpts), "-o", dir, "--basename", "pixel", shapesDoc)
	require.NoError(t, err)

	rsPath := filepath.Join(dir, "pixel.rs")
	cppPath := filepath.Join(dir, "pixel.cpp")
	assert.Equal(t, "✓ Generated 2 file(s)\n  C/C++: "+cppPath+"\n  Rust: "+rsPath+"\n", out)
	assert.Equal(t, readFile(t, shapesRustGolden), readFile(t, rsPath))
	assert.Equal(t, readFile(t, shapesCppGolden), readFile(t, cppPath))
	assert.Contains(t, errOut, "output written")
}

func TestGenerateDefaultBasename(t *testing.T) {
	dir := t.TempDir()
	rootOpts := &RootOptions{Format: "text"}

	_, _, err := execute(NewGenerateCommand(rootOpts), "-l", "cpp", "-o", dir, shapesDoc)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "shapes.cpp"))
	assert.NoFileExists(t, filepath.Join(dir, "shapes.rs"))
}

func TestGenerateJSON(t *testing.T) {
	rootOpts := &RootOptions{Format: "json"}
	out, _, err := execute(NewGenerateCommand(rootOpts), "--lang", "rs", "--lang", "rust", shapesDoc)
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   GenerateResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Outputs, 1, "duplicate languages are rendered once")
	assert.Equal(t, "rust", resp.Data.Outputs[0].Lang)
	assert.Equal(t, readFile(t, shapesRustGolden), resp.Data.Outputs[0].Text)
}

func TestGenerateErrors(t *testing.T) {
	badTree := writeDoc(t, "tree.json", `{"items": [{"kind": "enum", "children": [{"kind": "func"}]}]}`)
	badConfig := writeDoc(t, "config.yaml", "items: []\nconfigs:\n  cpp:\n    global: {tab_char: \"\"}\n")

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"unknown language", []string{"--lang", "cobol", shapesDoc}, ErrCodeUnknownLang},
		{"missing document", []string{filepath.Join(t.TempDir(), "nope.yaml")}, ErrCodeNotFound},
		{"unsupported extension", []string{writeDoc(t, "doc.xml", "<items/>")}, ErrCodeUnsupported},
		{"parse failure", []string{writeDoc(t, "doc.json", "{")}, ErrCodeParseFailed},
		{"invalid tree", []string{badTree}, ErrCodeInvalidIR},
		{"invalid config", []string{"--lang", "cpp", badConfig}, ErrCodeInvalidConfig},
		{"unwritable output", []string{"-o", writeDoc(t, "file", ""), shapesDoc}, ErrCodeWriteFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootOpts := &RootOptions{Format: "json"}
			out, _, err := execute(NewGenerateCommand(rootOpts), tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestGenerateInvalidConfigNamesLanguageTag(t *testing.T) {
	doc := writeDoc(t, "config.yaml", "items: []\nconfigs:\n  c++:\n    global: {num_tabs: four}\n")
	rootOpts := &RootOptions{Format: "json"}
	out, _, err := execute(NewGenerateCommand(rootOpts), "--lang", "cpp", doc)
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidConfig, resp.Error.Code)
	assert.Equal(t, `cpp config: invalid config: num_tabs="four": must be an integer between 0 and 255`, resp.Error.Message)
}
