// Package crystal defines the structural value types the screening
// pipeline consumes: atoms, lattices, and periodic structures.
//
// A Structure is an immutable snapshot of one candidate material as
// delivered by an external parser (POSCAR, native YAML, ...). The
// package validates geometry (non-degenerate lattice, finite
// coordinates) but performs no analysis itself; bonding and screening
// live in bondgraph and screen.
//
// Species symbols and free-form site labels arriving from user files
// are normalized to NFC before lookup so that visually identical
// Unicode spellings resolve to the same element table entry.
package crystal
