package screen

import (
	"errors"
	"fmt"
)

// ErrNoBonds signals that a graph has zero edges, so no representative
// bond exists. The aggregator converts it into a failing energy verdict
// with reason ReasonNoBondsFound; it never escapes Screen as an error.
var ErrNoBonds = errors.New("no bonds found under the configured cutoff policy")

// ReasonNoBondsFound is the stable reason string reported when a
// structure has zero bonds. External tooling matches on it.
const ReasonNoBondsFound = "no_bonds_found"

// InvariantError reports a violation of a built-in self-check, such as
// an odd count of odd-degree atoms. It indicates a defect in the
// analyzer, not bad input, and is surfaced loudly instead of being
// folded into a verdict.
type InvariantError struct {
	Check   string // which self-check failed
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation [%s]: %s", e.Check, e.Message)
}

// IsInvariantError reports whether err is (or wraps) an InvariantError.
func IsInvariantError(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
