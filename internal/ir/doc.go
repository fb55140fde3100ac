// Package ir provides the language-agnostic intermediate representation
// consumed by the renderers.
//
// This package contains the tree model and its structural invariants only.
// All other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Kinds form a closed set; KindUnknown stands for an unrecognized tag
//   - Attribute values are plain strings, compared by exact equality
//   - A node is owned by exactly one parent (trees are never shared)
//   - Structural violations surface as *InvalidIRError, never as panics
package ir
