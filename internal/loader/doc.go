// Package loader is the file-ingestion boundary of the pipeline. It
// turns structure files into crystal.Structure values and nothing
// else; screening never reads files itself.
//
// Two formats are supported: VASP POSCAR/CONTCAR (direct and
// Cartesian coordinates, VASP-5 symbol line) and a native YAML
// structure format. CIF and other crystallographic formats are the
// job of external converters.
//
// Every failure is a ParseError carrying the file path, so batch
// callers can record it against the structure's name and keep going.
package loader
