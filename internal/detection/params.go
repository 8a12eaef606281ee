package detection

import (
	"errors"
	"fmt"
)

// ErrInvalidParams indicates a parameter set outside the required bounds.
// Detection refuses to run on such a set rather than silently correcting it.
var ErrInvalidParams = errors.New("invalid detection parameters")

// Params holds the five tunable thresholds shared by both detectors.
//
// A Params value is owned by the caller (typically a counter session) and is
// only read during detection; it may be replaced between frames but must not
// be mutated while a detection call is in flight.
type Params struct {
	// MinRadius and MaxRadius bound the pixel radius band of reported
	// circles. MinRadius must be >= 0 and strictly below MaxRadius.
	MinRadius int
	MaxRadius int

	// MinDistance is the minimum pixel separation the transform detector
	// enforces between accepted circle centers. Must be >= 1.
	MinDistance int

	// Sensitivity1 is the edge-strength threshold used during gradient
	// extraction: pixels whose gradient magnitude falls below it cast no
	// votes. Must be >= 1.
	Sensitivity1 int

	// Sensitivity2 is the accumulator vote threshold a candidate center
	// must exceed to be accepted. Must be >= 1.
	Sensitivity2 int
}

// DefaultParams returns the documented default parameter set. These are tuned
// for bottle tops of roughly 30-120px diameter in a crate shot from above.
func DefaultParams() Params {
	return Params{
		MinRadius:    15,
		MaxRadius:    60,
		MinDistance:  20,
		Sensitivity1: 30,
		Sensitivity2: 30,
	}
}

// Validate checks the bounds every detector requires. It reports the first
// violation found, wrapping ErrInvalidParams.
func (p Params) Validate() error {
	if p.MinRadius < 0 {
		return fmt.Errorf("%w: min radius %d is negative", ErrInvalidParams, p.MinRadius)
	}
	if p.MinRadius >= p.MaxRadius {
		return fmt.Errorf("%w: min radius %d must be below max radius %d",
			ErrInvalidParams, p.MinRadius, p.MaxRadius)
	}
	if p.MinDistance < 1 {
		return fmt.Errorf("%w: min distance %d must be at least 1", ErrInvalidParams, p.MinDistance)
	}
	if p.Sensitivity1 < 1 {
		return fmt.Errorf("%w: sensitivity1 %d must be at least 1", ErrInvalidParams, p.Sensitivity1)
	}
	if p.Sensitivity2 < 1 {
		return fmt.Errorf("%w: sensitivity2 %d must be at least 1", ErrInvalidParams, p.Sensitivity2)
	}
	return nil
}
