package codegen

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/codespawn/internal/config"
	"github.com/roach88/codespawn/internal/ir"
	"github.com/roach88/codespawn/internal/render"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testItems() []*ir.Node {
	return []*ir.Node{
		ir.NewNode(ir.KindStruct, ir.A(ir.AttrName, "Point")).Add(
			ir.NewNode(ir.KindVariable, ir.A(ir.AttrName, "x"), ir.A(ir.AttrType, "Int32")),
		),
	}
}

func newTestJob(t *testing.T, lang ir.Lang, cfg *config.Config, items []*ir.Node) *Job {
	t.Helper()
	j, err := NewJob(lang, cfg, items, WithLogger(discardLogger()))
	require.NoError(t, err)
	return j
}

func TestNewJobDefaults(t *testing.T) {
	j := newTestJob(t, ir.LangRust, nil, testItems())

	assert.Equal(t, ir.LangRust, j.Lang())
	assert.Equal(t, config.DefaultFormat(), j.Format())
	assert.Equal(t, ".rs", j.Ext())
}

func TestJobText(t *testing.T) {
	cfg := &config.Config{
		Types:  map[string]string{"Int32": "i32"},
		Global: map[string]string{config.KeyIndentWidth: "2"},
	}
	j := newTestJob(t, ir.LangRust, cfg, testItems())

	text, err := j.Text()
	require.NoError(t, err)
	assert.Equal(t, "// "+render.BannerHeader+"\n"+
		"\npub struct Point {\n"+
		"  x: i32,\n"+
		"}\n\n"+
		"// "+render.BannerFooter+"\n", text)

	again, err := j.Text()
	require.NoError(t, err)
	assert.Equal(t, text, again)
}

func TestNewJobCopiesItems(t *testing.T) {
	items := testItems()
	j := newTestJob(t, ir.LangRust, nil, items)
	before, err := j.Text()
	require.NoError(t, err)

	items[0].Set(ir.AttrName, "Changed")
	items[0].Children[0].Set(ir.AttrType, "")

	after, err := j.Text()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestJobsAreIndependent(t *testing.T) {
	items := testItems()
	rs := newTestJob(t, ir.LangRust, &config.Config{Types: map[string]string{"Int32": "i32"}}, items)
	cc := newTestJob(t, ir.LangCpp, &config.Config{Types: map[string]string{"Int32": "int32_t"}}, items)

	var wg sync.WaitGroup
	texts := make([]string, 2)
	for i, j := range []*Job{rs, cc} {
		i, j := i, j
		wg.Add(1)
		go func() {
			defer wg.Done()
			texts[i], _ = j.Text()
		}()
	}
	wg.Wait()

	assert.Contains(t, texts[0], "x: i32,")
	assert.Contains(t, texts[1], "int32_t x;")
	assert.Equal(t, "Int32", items[0].Children[0].Get(ir.AttrType))
}

func TestNewJobRejectsInvalidConfig(t *testing.T) {
	cfg := &config.Config{Global: map[string]string{config.KeyIndentWidth: "-1"}}

	_, err := NewJob(ir.LangCpp, cfg, testItems(), WithLogger(discardLogger()))
	require.Error(t, err)
	assert.True(t, config.IsInvalidConfig(err))
	assert.True(t, strings.HasPrefix(err.Error(), "cpp config: "))
}

func TestNewJobRejectsInvalidIR(t *testing.T) {
	items := []*ir.Node{
		ir.NewNode(ir.KindEnum).Add(ir.NewNode(ir.KindFunction)),
	}

	_, err := NewJob(ir.LangRust, nil, items, WithLogger(discardLogger()))
	require.Error(t, err)
	assert.True(t, ir.IsInvalidIR(err))
}

func TestNewJobRejectsUnknownLang(t *testing.T) {
	_, err := NewJob(ir.Lang("cobol"), nil, testItems(), WithLogger(discardLogger()))
	assert.ErrorIs(t, err, render.ErrUnknownLang)
}

// headerSyntax is C/C++ with shell-style comments and a header extension.
type headerSyntax struct{ render.Cpp }

func (headerSyntax) Ext() string { return ".h" }
func (headerSyntax) LineComment() string { return "#" }

func TestWithEngine(t *testing.T) {
	j, err := NewJob(ir.Lang("custom"), nil, testItems(),
		WithLogger(discardLogger()),
		WithEngine(render.New(headerSyntax{})),
	)
	require.NoError(t, err)
	assert.Equal(t, ".h", j.Ext())

	text, err := j.Text()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "# "+render.BannerHeader+"\n"))
	assert.Contains(t, text, "Int32 x;")
	assert.True(t, strings.HasSuffix(text, "# "+render.BannerFooter+"\n"))
}

func TestJobString(t *testing.T) {
	cfg := &config.Config{Types: map[string]string{"Int32": "i32"}}
	j := newTestJob(t, ir.LangRust, cfg, testItems())

	assert.Equal(t, "Target: Rust\n*\n"+
		"struct name=\"Point\"\n"+
		"  var name=\"x\" type=\"i32\"\n"+
		"*\n", j.String())
}

func TestJobTreeIsSubstitutedCopy(t *testing.T) {
	j := newTestJob(t, ir.LangRust, &config.Config{Types: map[string]string{"Int32": "i32"}}, testItems())

	tree := j.Tree()
	assert.Equal(t, "i32", tree[0].Children[0].Get(ir.AttrType))

	tree[0].Children[0].Set(ir.AttrType, "u8")
	assert.Equal(t, "i32", j.Tree()[0].Children[0].Get(ir.AttrType))
}
