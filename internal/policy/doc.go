// Package policy defines the screening configuration: the bonding
// cutoff policy, the phonon energy threshold, and the numerical bond
// floor.
//
// A Policy is an immutable value handed into every analysis call —
// there is no package-level mutable state, so concurrent batches may
// run under different policies safely.
//
// Policies load from YAML documents that are validated against an
// embedded CUE schema before decoding; a document that violates the
// schema is rejected as a ConfigError before any structure is
// processed.
package policy
