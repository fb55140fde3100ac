package ir

import (
	"fmt"
	"strings"
)

// Kind identifies what construct a Node describes.
type Kind uint8

const (
	// KindUnknown marks a node whose loader tag was not recognized.
	// It renders as empty text.
	KindUnknown Kind = iota
	KindVariable
	KindFunction
	KindFunctionPointer
	KindEnum
	KindStruct
	KindBitFlags
	KindAttribute
)

// kindTags holds the canonical document tag of every known kind.
var kindTags = map[Kind]string{
	KindVariable:        "var",
	KindFunction:        "func",
	KindFunctionPointer: "fptr",
	KindEnum:            "enum",
	KindStruct:          "struct",
	KindBitFlags:        "bitflags",
	KindAttribute:       "attribute",
}

// kindAliases maps every accepted document spelling to its kind.
var kindAliases = map[string]Kind{
	"var":              KindVariable,
	"variable":         KindVariable,
	"func":             KindFunction,
	"function":         KindFunction,
	"fptr":             KindFunctionPointer,
	"function_pointer": KindFunctionPointer,
	"enum":             KindEnum,
	"struct":           KindStruct,
	"bitflags":         KindBitFlags,
	"attribute":        KindAttribute,
	"attr":             KindAttribute,
}

// ParseKind resolves a document tag (case-insensitive) to a Kind.
// Unrecognized tags return KindUnknown and false.
func ParseKind(tag string) (Kind, bool) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(tag))]
	return k, ok
}

// Tag returns the canonical document tag ("var", "fptr", ...).
func (k Kind) Tag() string {
	if tag, ok := kindTags[k]; ok {
		return tag
	}
	return "unknown"
}

// MarshalText encodes the kind as its document tag.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.Tag()), nil
}

// UnmarshalText decodes a document tag; unrecognized tags become
// KindUnknown.
func (k *Kind) UnmarshalText(b []byte) error {
	*k, _ = ParseKind(string(b))
	return nil
}

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "Variable"
	case KindFunction:
		return "Function"
	case KindFunctionPointer:
		return "FunctionPointer"
	case KindEnum:
		return "Enum"
	case KindStruct:
		return "Struct"
	case KindBitFlags:
		return "BitFlagSet"
	case KindAttribute:
		return "Attribute"
	case KindUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// IsKnown reports whether k is one of the seven renderable kinds.
func (k Kind) IsKnown() bool {
	_, ok := kindTags[k]
	return ok
}

// IsFunc reports whether k is a Function or FunctionPointer.
func (k Kind) IsFunc() bool {
	return k == KindFunction || k == KindFunctionPointer
}
