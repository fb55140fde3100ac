package ir

import "strings"

// Lang identifies a target language backend.
type Lang string

// Supported target languages.
const (
	LangRust Lang = "rust"
	LangCpp  Lang = "cpp"
)

// Langs lists every supported target in a stable order.
var Langs = []Lang{LangCpp, LangRust}

// ParseLang resolves a language tag (case-insensitive).
func ParseLang(tag string) (Lang, bool) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "rust", "rs":
		return LangRust, true
	case "cpp", "c++", "c":
		return LangCpp, true
	}
	return "", false
}

// String returns the display name of the language.
func (l Lang) String() string {
	switch l {
	case LangRust:
		return "Rust"
	case LangCpp:
		return "C/C++"
	default:
		return string(l)
	}
}
