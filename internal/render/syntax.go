package render

import (
	"errors"
	"fmt"

	"github.com/roach88/codespawn/internal/ir"
)

// ErrUnknownLang is returned when no backend exists for a language.
var ErrUnknownLang = errors.New("unknown target language")

// FuncSig is a function or function-pointer signature whose parts have
// already been resolved and rendered by the Engine.
type FuncSig struct {
	// Name is empty for an unnamed type description.
	Name string

	// Qualifier is the non-generic qualifier, or "" for none.
	Qualifier string

	// Params is the rendered, separator-joined parameter list.
	Params string

	// Return is the return type, or "" for none.
	Return string

	// Pointer is set for function-pointer kinds.
	Pointer bool
}

// Syntax supplies the spellings of one target language.
//
// Methods return fragments without indentation, separators or line breaks;
// the Engine owns layout.
type Syntax interface {
	// Lang identifies the target.
	Lang() ir.Lang

	// Ext is the conventional source file extension, with the dot.
	Ext() string

	// LineComment starts a single-line comment ("//").
	LineComment() string

	// Visibility is prefixed to standalone declarations ("pub ").
	Visibility() string

	// GenericMarkers returns the generic open/close pair ("<", ">").
	GenericMarkers() (open, close string)

	// FieldSeparator ends a struct member.
	FieldSeparator() string

	// Terminator ends a standalone statement.
	Terminator() string

	// BlockHeader opens an enum or struct block, e.g. "pub enum Color {".
	// name may be empty.
	BlockHeader(kind ir.Kind, name string) string

	// BlockClose closes an enum or struct block.
	BlockClose(kind ir.Kind) string

	// Bind joins a name and a type into a binding ("x: i32", "int x").
	// An empty name yields the bare type.
	Bind(name, typ string) string

	// Cast renders an entry value with an explicit underlying type.
	Cast(value, typ string) string

	// FuncType renders a function signature; with an empty Name it is an
	// unnamed type description.
	FuncType(sig FuncSig) string

	// PointerQualifier is the qualifier of a function pointer that has
	// none; standalone is set for top-level declarations only.
	PointerQualifier(standalone bool) string

	// FlagsWrapper returns the lines enclosing a flag set, or two empty
	// strings when the target needs no wrapper.
	FlagsWrapper() (open, close string)

	// FlagsHeader opens a flag-set block. name and typ may be empty.
	FlagsHeader(name, typ string) string

	// FlagsClose closes a flag-set block.
	FlagsClose() string

	// FlagsEntryPrefix is written before each flag constant.
	FlagsEntryPrefix() string
}

// syntaxes is the registry of built-in backends.
var syntaxes = map[ir.Lang]Syntax{
	ir.LangRust: Rust{},
	ir.LangCpp:  Cpp{},
}

// SyntaxFor returns the built-in Syntax for lang.
func SyntaxFor(lang ir.Lang) (Syntax, error) {
	s, ok := syntaxes[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLang, string(lang))
	}
	return s, nil
}
