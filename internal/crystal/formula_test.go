package crystal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormula(t *testing.T) {
	s, err := NewStructure(cubic(6), []Site{
		{Species: "Li", Frac: [3]float64{0, 0, 0}},
		{Species: "Li", Frac: [3]float64{0.5, 0, 0}},
		{Species: "N", Frac: [3]float64{0, 0.5, 0}},
		{Species: "H", Frac: [3]float64{0, 0, 0.5}},
	})
	require.NoError(t, err)
	assert.Equal(t, "H Li2 N", s.Formula())
}

func TestBondType_Canonical(t *testing.T) {
	assert.Equal(t, "Li-N", BondType("Li", "N"))
	assert.Equal(t, "Li-N", BondType("N", "Li"))
	assert.Equal(t, "H-H", BondType("H", "H"))
}
