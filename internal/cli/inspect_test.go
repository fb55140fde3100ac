package cli

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inspectDoc = `items:
  - kind: struct
    name: Point
    children:
      - {kind: var, name: x, type: Int32}
configs:
  rust:
    types: {Int32: i32}
    global: {num_tabs: 2}
`

func TestInspectRawTree(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	out, _, err := execute(NewInspectCommand(rootOpts), writeDoc(t, "doc.yaml", inspectDoc))
	require.NoError(t, err)
	assert.Equal(t, "*\n"+
		"struct name=\"Point\"\n"+
		"  var name=\"x\" type=\"Int32\"\n"+
		"*\n"+
		"Config Rust: 1 type(s), 0 name(s), 1 option(s)\n", out)
}

func TestInspectLang(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	out, _, err := execute(NewInspectCommand(rootOpts), "--lang", "rust", writeDoc(t, "doc.yaml", inspectDoc))
	require.NoError(t, err)
	assert.Equal(t, "Target: Rust\n*\n"+
		"struct name=\"Point\"\n"+
		"  var name=\"x\" type=\"i32\"\n"+
		"*\n", out)
}

func TestInspectJSON(t *testing.T) {
	rootOpts := &RootOptions{Format: "json"}
	out, _, err := execute(NewInspectCommand(rootOpts), "-l", "rust", writeDoc(t, "doc.yaml", inspectDoc))
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Lang  string `json:"lang"`
			Items []struct {
				Kind     string `json:"kind"`
				Children []struct {
					Attrs []struct {
						Key   string `json:"key"`
						Value string `json:"value"`
					} `json:"attrs"`
				} `json:"children"`
			} `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "rust", resp.Data.Lang)
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, "struct", resp.Data.Items[0].Kind)
	assert.Equal(t, "i32", resp.Data.Items[0].Children[0].Attrs[1].Value)
}

func TestInspectUnknownLang(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	out, _, err := execute(NewInspectCommand(rootOpts), "--lang", "cobol", shapesDoc)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E203]")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestInspectRawTreeWriteError(t *testing.T) {
	cmd := NewInspectCommand(&RootOptions{Format: "text"})
	cmd.SetOut(failingWriter{})
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{writeDoc(t, "doc.yaml", inspectDoc)})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
