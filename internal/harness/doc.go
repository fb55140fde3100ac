// Package harness runs conformance scenarios against the code generator.
//
// A scenario is a YAML file that names a document, the target languages to
// render it for, and assertions over the generated text:
//
//	name: color-enum
//	description: enum entries are cast to their type
//	document: ../documents/color.yaml
//	langs: [rust]
//	assertions:
//	  - type: output_contains
//	    lang: rust
//	    text: "Red = 1 as u8,"
//
// A scenario can also expect the run to fail, for example because the tree
// holds a Function under an Enum:
//
//	assertions:
//	  - type: error
//	    code: invalid_ir
//
// Next to the assertions, the exact output of each language may be pinned
// in a golden file under golden/<scenario>.<lang>.golden beside the
// scenario. CompareGolden and UpdateGolden work on those files; in Go tests
// RunWithGolden compares them through goldie.
package harness
