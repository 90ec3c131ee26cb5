package allocation

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/payplan/internal/model"
)

// ErrDivisionUndefined reports that ROI has no value because nothing was
// invested. Compute never returns it; Breakdown.ROIPercent does.
var ErrDivisionUndefined = errors.New("allocation: roi undefined, total invested is zero")

// InvalidTierError is returned for a risk tier outside the lookup table.
type InvalidTierError struct {
	Tier model.RiskTier
}

func (e *InvalidTierError) Error() string {
	return fmt.Sprintf("allocation: invalid risk tier %q", string(e.Tier))
}
