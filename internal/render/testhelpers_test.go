package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/codespawn/internal/config"
	"github.com/roach88/codespawn/internal/ir"
)

const (
	header = "// " + BannerHeader + "\n"
	footer = "// " + BannerFooter + "\n"
)

func v(name, typ, value string) *ir.Node {
	n := ir.NewNode(ir.KindVariable)
	if name != "" {
		n.Set(ir.AttrName, name)
	}
	if typ != "" {
		n.Set(ir.AttrType, typ)
	}
	if value != "" {
		n.Set(ir.AttrValue, value)
	}
	return n
}

func renderWith(t *testing.T, s Syntax, sub config.Substitution, items ...*ir.Node) string {
	t.Helper()
	out, err := New(s).Render(items, config.DefaultFormat(), sub)
	require.NoError(t, err)
	return out
}

func rust(t *testing.T, items ...*ir.Node) string {
	t.Helper()
	return renderWith(t, Rust{}, config.Substitution{}, items...)
}

func cpp(t *testing.T, items ...*ir.Node) string {
	t.Helper()
	return renderWith(t, Cpp{}, config.Substitution{}, items...)
}

// sampleItems covers every kind.
func sampleItems() []*ir.Node {
	return []*ir.Node{
		ir.NewNode(ir.KindEnum, ir.A(ir.AttrName, "Color"), ir.A(ir.AttrText, "#[repr(u8)]")).Add(
			ir.NewNode(ir.KindAttribute, ir.A(ir.AttrText, "#[derive(Debug)]")),
			v("Red", "u8", "1"),
			v("Green", "", ""),
		),
		ir.NewNode(ir.KindStruct, ir.A(ir.AttrName, "Point")).Add(
			v("x", "f32", ""),
			v("y", "f32", ""),
			ir.NewNode(ir.KindFunctionPointer, ir.A(ir.AttrName, "on_move"), ir.A(ir.AttrType, "bool")).Add(
				v("dx", "f32", ""),
			),
		),
		v("MAX", "u32", "10"),
		v("items", "u8", "").Set(ir.AttrQualifier, "Vec<"),
		v("count", "usize", "0").Set(ir.AttrQualifier, ""),
		ir.NewNode(ir.KindFunctionPointer, ir.A(ir.AttrName, "callback"), ir.A(ir.AttrType, "i32")).Add(
			v("a", "i32", ""),
			v("b", "i32", ""),
		),
		ir.NewNode(ir.KindBitFlags, ir.A(ir.AttrName, "Flags"), ir.A(ir.AttrType, "u32")).Add(
			v("flagA", "", "1"),
			v("flagB", "u32", "2"),
		),
	}
}

// cppSubstitution maps the sample's Rust spellings to C++ ones.
func cppSubstitution() config.Substitution {
	return config.NewSubstitution(
		map[string]string{
			"u8":    "uint8_t",
			"u32":   "uint32_t",
			"i32":   "int32_t",
			"f32":   "float",
			"usize": "size_t",
		},
		map[string]string{
			"Vec<":             "std::vector<",
			"#[repr(u8)]":      "",
			"#[derive(Debug)]": "",
		},
	)
}
