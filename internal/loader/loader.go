package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/latticelab/kscreen/internal/crystal"
)

// Load reads one structure file, picking the format from the file
// name: POSCAR/CONTCAR (any *.poscar, *.vasp, or a basename starting
// with POSCAR/CONTCAR) or the native YAML format (*.yaml, *.yml).
func Load(path string) (crystal.Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return crystal.Structure{}, &ParseError{Path: path, Message: "read file", Err: err}
	}

	switch {
	case isPOSCARName(path):
		return ParsePOSCAR(path, data)
	case isYAMLName(path):
		return ParseYAML(path, data)
	default:
		return crystal.Structure{}, parseErrorf(path, 0, "unrecognized structure format (want POSCAR/CONTCAR or .yaml)")
	}
}

// Recognized reports whether the file name maps to a supported
// structure format. Used when expanding directories so unrelated
// files are skipped instead of failing the batch.
func Recognized(path string) bool {
	return isPOSCARName(path) || isYAMLName(path)
}

// Name derives the structure name reported in batch output: the file
// basename without its extension.
func Name(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isPOSCARName(path string) bool {
	base := strings.ToUpper(filepath.Base(path))
	if strings.HasPrefix(base, "POSCAR") || strings.HasPrefix(base, "CONTCAR") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".poscar" || ext == ".vasp"
}

func isYAMLName(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
