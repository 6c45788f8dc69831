// Package bondgraph builds the periodic bonding graph of a crystal
// structure.
//
// Atoms are vertices identified by their index in the structure; bonds
// are index pairs plus an integer lattice-translation triple naming
// which periodic image of the second atom participates. The same atom
// pair may bond through several distinct translations — each is its
// own edge and counts toward degree independently. An atom may bond to
// its own periodic image (i == j with a nonzero translation), which
// contributes two units to that atom's degree.
//
// Edges are stored canonically: i <= j, and for self-image bonds only
// the lexicographically positive translation of the (t, -t) pair is
// kept, so no bond is double counted.
package bondgraph
