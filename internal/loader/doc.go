// Package loader decodes generator documents into IR items and per-language
// configurations.
//
// A document may be written in JSON, YAML, TOML or CUE; the format is chosen
// from the file extension. All formats share one shape:
//
//	items:
//	  - kind: enum
//	    name: Color
//	    children:
//	      - {kind: var, name: Red, value: "1"}
//	configs:
//	  rust:
//	    types: {int: i32}
//	    global: {num_tabs: 2}
//
// Decoding is strict: unknown fields are rejected. Unknown kind tags are
// kept as ir.KindUnknown (they render as nothing) and logged.
package loader
