package render

import "github.com/roach88/codespawn/internal/ir"

// Rust is the Syntax of the Rust backend.
//
// Flag sets use the bitflags crate macro.
type Rust struct{}

// Lang implements Syntax.
func (Rust) Lang() ir.Lang { return ir.LangRust }

// Ext implements Syntax.
func (Rust) Ext() string { return ".rs" }

// LineComment implements Syntax.
func (Rust) LineComment() string { return "//" }

// Visibility implements Syntax.
func (Rust) Visibility() string { return "pub " }

// GenericMarkers implements Syntax.
func (Rust) GenericMarkers() (string, string) { return "<", ">" }

// FieldSeparator implements Syntax.
func (Rust) FieldSeparator() string { return "," }

// Terminator implements Syntax.
func (Rust) Terminator() string { return ";" }

// BlockHeader implements Syntax.
func (Rust) BlockHeader(kind ir.Kind, name string) string {
	kw := "pub struct"
	if kind == ir.KindEnum {
		kw = "pub enum"
	}
	if name != "" {
		kw += " " + name
	}
	return kw + " {"
}

// BlockClose implements Syntax.
func (Rust) BlockClose(ir.Kind) string { return "}" }

// Bind implements Syntax.
func (Rust) Bind(name, typ string) string {
	if name == "" {
		return typ
	}
	return name + ": " + typ
}

// Cast implements Syntax.
func (Rust) Cast(value, typ string) string { return value + " as " + typ }

// FuncType implements Syntax.
func (r Rust) FuncType(sig FuncSig) string {
	s := "fn(" + sig.Params + ")"
	if sig.Qualifier != "" {
		s = sig.Qualifier + " " + s
	}
	if sig.Return != "" {
		s += " -> " + sig.Return
	}
	return r.Bind(sig.Name, s)
}

// PointerQualifier implements Syntax.
func (Rust) PointerQualifier(bool) string { return "extern" }

// FlagsWrapper implements Syntax.
func (Rust) FlagsWrapper() (string, string) { return "bitflags! {", "}" }

// FlagsHeader implements Syntax.
func (Rust) FlagsHeader(name, typ string) string {
	s := "flags"
	if name != "" {
		s += " " + name
	}
	if typ != "" {
		s += ": " + typ
	}
	return s + " {"
}

// FlagsClose implements Syntax.
func (Rust) FlagsClose() string { return "}" }

// FlagsEntryPrefix implements Syntax.
func (Rust) FlagsEntryPrefix() string { return "const " }
