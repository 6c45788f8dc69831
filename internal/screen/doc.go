// Package screen implements the structure screening pipeline: the
// parity invariant K over the periodic bonding graph, the bond
// quantum energy estimate for the representative (shortest) bond, and
// the aggregator combining both into one verdict per structure.
//
// Screening a structure is a pure function of the structure and the
// policy — no shared state, no I/O — so Batch fans structures out to
// independent workers and merges results back into input order.
//
// The verdict itself (pass/fail) is data, never an error. Errors are
// reserved for inputs that cannot be analyzed (geometry defects) and
// for invariant violations inside the analyzer, which indicate a bug
// rather than a bad input.
package screen
