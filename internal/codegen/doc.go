// Package codegen binds a target language, a private copy of an IR tree
// and an optional configuration into a Job, and serializes the Job to text
// or to a file.
//
// A Job is immutable after NewJob returns. Text and WriteFile only read it,
// so several Jobs built from the same items (one per language, say) can be
// rendered independently, concurrently if the caller wishes.
package codegen
