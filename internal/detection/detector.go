package detection

import "image"

// Method labels reported alongside a detection result. The overlay renderer
// and the session use these to tell the two strategies apart.
const (
	MethodHough   = "hough"
	MethodContour = "contour"
)

// Circle is the atomic unit of detection output: a detected circle in pixel
// units. Values are immutable once emitted.
type Circle struct {
	X int `json:"x"` // Center, horizontal position (0 = leftmost)
	Y int `json:"y"` // Center, vertical position (0 = topmost)
	R int `json:"r"` // Radius in pixels
}

// Result is an ordered sequence of detected circles plus their count.
//
// Count always equals len(Circles). The order is the discovery order within
// the detector that produced the result and carries no semantic meaning;
// callers must not depend on it.
type Result struct {
	Circles []Circle `json:"circles"`
	Count   int      `json:"count"`
}

// Detector is the capability shared by both detection strategies: a pure
// function of a preprocessed grayscale image and a parameter set.
//
// Implementations hold no state across calls, so running the same detector
// twice on the same inputs yields an identical Result, and distinct detectors
// may run concurrently on the same image.
type Detector interface {
	// Detect analyzes the preprocessed image and returns every circle found.
	// An image with no circles yields an empty Result, not an error; errors
	// are reserved for invalid parameters.
	Detect(gray *image.Gray, p Params) (Result, error)

	// Method returns the detector's method label (MethodHough or MethodContour).
	Method() string
}

func newResult(circles []Circle) Result {
	return Result{Circles: circles, Count: len(circles)}
}
