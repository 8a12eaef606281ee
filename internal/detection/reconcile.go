package detection

// Reconcile picks which detector's result to report: whichever set holds
// strictly more circles wins, and ties go to the contour-based result.
//
// This is a cardinality heuristic, not a fusion: no geometric correspondence
// between the two sets is checked, so a detector that over-counts is
// preferred simply for reporting a higher number. That weakness is a known
// limitation of the policy, kept for behavioral compatibility; callers
// wanting a geometric merge can opt into ReconcileFused instead.
func Reconcile(hough, contour Result) Result {
	res, _ := ReconcileWithMethod(hough, contour)
	return res
}

// ReconcileWithMethod applies the same policy as Reconcile and also reports
// the method label of the winning detector, for callers that surface which
// strategy produced the count.
func ReconcileWithMethod(hough, contour Result) (Result, string) {
	if hough.Count > contour.Count {
		return hough, MethodHough
	}
	return contour, MethodContour
}

// ReconcileFused merges both result sets instead of choosing one: contour
// circles are kept as-is, and hough circles whose centers lie at least
// minDist pixels from every kept circle are added. Opt-in alternative to the
// default cardinality rule.
func ReconcileFused(hough, contour Result, minDist int) Result {
	merged := append([]Circle(nil), contour.Circles...)
	minDist2 := minDist * minDist
	for _, c := range hough.Circles {
		duplicate := false
		for _, m := range merged {
			dx, dy := c.X-m.X, c.Y-m.Y
			if dx*dx+dy*dy < minDist2 {
				duplicate = true
				break
			}
		}
		if !duplicate {
			merged = append(merged, c)
		}
	}
	return newResult(merged)
}
