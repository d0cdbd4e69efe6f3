// Package pipeline runs a reconciliation pass over a dataset directory:
// optional extension normalization, renaming of every annotation/image
// pair to a freshly generated name, and optional quarantine of stray
// files, followed by summary reporting.
//
// Single-level runs rename by sweeping the annotation files directly under
// the root; recursive runs drive the same rename step through the
// directory walker together with the quarantine handlers.
package pipeline
