package crystal

import (
	"fmt"
	"sort"
	"strings"
)

// Formula aggregates the structure's species counts into a stable
// formula string: symbols sorted alphabetically, count suffix omitted
// when 1. Example: {Li, Li, N, H} -> "H Li2 N".
func (s Structure) Formula() string {
	counts := make(map[string]int)
	for _, a := range s.atoms {
		counts[a.Species]++
	}
	syms := make([]string, 0, len(counts))
	for sym := range counts {
		syms = append(syms, sym)
	}
	sort.Strings(syms)

	parts := make([]string, len(syms))
	for i, sym := range syms {
		if counts[sym] == 1 {
			parts[i] = sym
		} else {
			parts[i] = fmt.Sprintf("%s%d", sym, counts[sym])
		}
	}
	return strings.Join(parts, " ")
}

// BondType returns the canonical label for a bond between two species:
// the symbols sorted, joined with "-". Both orders of the same pair
// produce the same label ("Li-N", never "N-Li").
func BondType(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "-" + b
}
