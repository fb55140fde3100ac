package render

import "github.com/roach88/codespawn/internal/ir"

// Cpp is the Syntax of the C/C++ backend.
//
// Functions use the trailing return form so that a name can always be
// spliced into the declarator; flag sets are plain enums with an
// underlying type.
type Cpp struct{}

// Lang implements Syntax.
func (Cpp) Lang() ir.Lang { return ir.LangCpp }

// Ext implements Syntax.
func (Cpp) Ext() string { return ".cpp" }

// LineComment implements Syntax.
func (Cpp) LineComment() string { return "//" }

// Visibility implements Syntax. Namespace-scope declarations carry none.
func (Cpp) Visibility() string { return "" }

// GenericMarkers implements Syntax.
func (Cpp) GenericMarkers() (string, string) { return "<", ">" }

// FieldSeparator implements Syntax.
func (Cpp) FieldSeparator() string { return ";" }

// Terminator implements Syntax.
func (Cpp) Terminator() string { return ";" }

// BlockHeader implements Syntax.
func (Cpp) BlockHeader(kind ir.Kind, name string) string {
	kw := "struct"
	if kind == ir.KindEnum {
		kw = "enum"
	}
	if name != "" {
		kw += " " + name
	}
	return kw + " {"
}

// BlockClose implements Syntax.
func (Cpp) BlockClose(ir.Kind) string { return "};" }

// Bind implements Syntax.
func (Cpp) Bind(name, typ string) string {
	if name == "" {
		return typ
	}
	return typ + " " + name
}

// Cast implements Syntax.
func (Cpp) Cast(value, typ string) string { return "static_cast<" + typ + ">(" + value + ")" }

// FuncType implements Syntax.
func (Cpp) FuncType(sig FuncSig) string {
	var declarator string
	switch {
	case sig.Pointer:
		declarator = "(*" + sig.Name + ")"
	case sig.Name != "":
		declarator = sig.Name
	}
	ret := sig.Return
	if ret == "" {
		ret = "void"
	}
	s := "auto " + declarator + "(" + sig.Params + ") -> " + ret
	if declarator == "" {
		s = "auto(" + sig.Params + ") -> " + ret
	}
	if sig.Qualifier != "" {
		s = sig.Qualifier + " " + s
	}
	return s
}

// PointerQualifier implements Syntax. Only namespace-scope declarations
// carry linkage.
func (Cpp) PointerQualifier(standalone bool) string {
	if standalone {
		return "extern"
	}
	return ""
}

// FlagsWrapper implements Syntax.
func (Cpp) FlagsWrapper() (string, string) { return "", "" }

// FlagsHeader implements Syntax.
func (Cpp) FlagsHeader(name, typ string) string {
	s := "enum"
	if name != "" {
		s += " " + name
	}
	if typ != "" {
		s += " : " + typ
	}
	return s + " {"
}

// FlagsClose implements Syntax.
func (Cpp) FlagsClose() string { return "};" }

// FlagsEntryPrefix implements Syntax.
func (Cpp) FlagsEntryPrefix() string { return "" }
