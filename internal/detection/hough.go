package detection

import (
	"image"
	"math"
	"sort"
)

// TransformDetector finds circles with the gradient variant of the circular
// Hough transform.
//
// # Algorithm
//
//  1. Gradient Extraction: Sobel operators over the preprocessed image.
//     Pixels whose gradient magnitude (|gx| + |gy|) reaches Sensitivity1
//     become edge pixels; weaker pixels cast no votes.
//  2. Center Voting: each edge pixel votes along its gradient line, in both
//     directions, for every center candidate at distance MinRadius through
//     MaxRadius. Votes land in a flat per-pixel accumulator - no per-radius
//     accumulator plane is kept, which is what makes the gradient variant
//     cheap compared to brute-force 3-parameter voting.
//  3. Peak Selection: accumulator cells that exceed Sensitivity2 and are
//     local maxima become candidate centers, ordered strongest first. Vote
//     ties keep scan order, so repeated runs produce identical output.
//  4. Non-Maximum Suppression: candidates closer than MinDistance to an
//     already accepted center collapse into the stronger one.
//  5. Radius Estimation: for each accepted center, a histogram of edge-pixel
//     distances inside [MinRadius, MaxRadius] picks the best-supported radius.
//     Centers whose best radius gathers fewer than Sensitivity2 supporting
//     edge pixels are rejected as accumulator artifacts.
//
// An image with no centers clearing the threshold yields an empty Result.
type TransformDetector struct{}

// Method returns MethodHough.
func (TransformDetector) Method() string { return MethodHough }

// edgePoint is an edge pixel with its unit gradient direction.
type edgePoint struct {
	x, y   int
	dx, dy float64
}

// Detect implements the Detector interface.
func (TransformDetector) Detect(gray *image.Gray, p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return Result{}, nil
	}

	edges := gradientEdges(gray, p.Sensitivity1)
	if len(edges) == 0 {
		return Result{}, nil
	}

	acc := voteCenters(edges, w, h, p)

	// Candidate centers: above the vote threshold and locally maximal in
	// their 4-neighborhood, strongest first. sort.SliceStable keeps tied
	// candidates in scan order so repeated runs agree.
	type candidate struct {
		x, y  int
		votes int32
	}
	var cands []candidate
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			v := acc[y*w+x]
			if int(v) <= p.Sensitivity2 {
				continue
			}
			if v < acc[y*w+x-1] || v < acc[y*w+x+1] ||
				v < acc[(y-1)*w+x] || v < acc[(y+1)*w+x] {
				continue
			}
			cands = append(cands, candidate{x, y, v})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].votes > cands[j].votes })

	minDist2 := p.MinDistance * p.MinDistance
	var accepted []candidate
	var circles []Circle
	for _, c := range cands {
		tooClose := false
		for _, a := range accepted {
			dx, dy := c.x-a.x, c.y-a.y
			if dx*dx+dy*dy < minDist2 {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}

		r, support := bestRadius(edges, c.x, c.y, p)
		if support < p.Sensitivity2 {
			// Accumulator peaks can form where the voting lines of a wide
			// edge ring cross, away from any circle. A real center must also
			// have enough edge pixels agreeing on one radius; drop the
			// candidate without letting it suppress weaker neighbors.
			continue
		}
		accepted = append(accepted, c)
		circles = append(circles, Circle{X: c.x, Y: c.y, R: r})
	}

	return newResult(circles), nil
}

// gradientEdges runs the Sobel operators over gray and returns every pixel
// whose L1 gradient magnitude reaches threshold, with unit gradient
// directions. Border pixels are skipped.
func gradientEdges(gray *image.Gray, threshold int) []edgePoint {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()

	at := func(x, y int) int {
		return int(gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
	}

	var edges []edgePoint
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x-1, y) - at(x-1, y+1)
			gy := at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1)

			mag := gx
			if mag < 0 {
				mag = -mag
			}
			if gy < 0 {
				mag -= gy
			} else {
				mag += gy
			}
			if mag < threshold {
				continue
			}

			norm := math.Hypot(float64(gx), float64(gy))
			edges = append(edges, edgePoint{
				x:  x,
				y:  y,
				dx: float64(gx) / norm,
				dy: float64(gy) / norm,
			})
		}
	}
	return edges
}

// voteCenters casts the pass-1 votes: every edge pixel marks the cells along
// its gradient line at distances MinRadius..MaxRadius, toward and away from
// the gradient, as possible circle centers.
func voteCenters(edges []edgePoint, w, h int, p Params) []int32 {
	acc := make([]int32, w*h)
	minR := p.MinRadius
	if minR < 1 {
		minR = 1
	}
	for _, e := range edges {
		for _, dir := range [2]float64{1, -1} {
			for r := minR; r <= p.MaxRadius; r++ {
				cx := e.x + int(math.Round(dir*float64(r)*e.dx))
				cy := e.y + int(math.Round(dir*float64(r)*e.dy))
				if cx < 0 || cx >= w || cy < 0 || cy >= h {
					// The line leaves the image; larger radii in this
					// direction only go further out.
					break
				}
				acc[cy*w+cx]++
			}
		}
	}
	return acc
}

// bestRadius builds the pass-2 radius histogram for a candidate center and
// returns the best-supported radius in the configured band along with its
// support count. Support 0 means no edge pixel lies inside the band.
func bestRadius(edges []edgePoint, cx, cy int, p Params) (radius, support int) {
	minR2 := p.MinRadius * p.MinRadius
	maxR2 := p.MaxRadius * p.MaxRadius

	hist := make([]int, p.MaxRadius+1)
	for _, e := range edges {
		dx, dy := e.x-cx, e.y-cy
		d2 := dx*dx + dy*dy
		if d2 < minR2 || d2 > maxR2 {
			continue
		}
		r := int(math.Round(math.Sqrt(float64(d2))))
		if r < p.MinRadius {
			r = p.MinRadius
		} else if r > p.MaxRadius {
			r = p.MaxRadius
		}
		hist[r]++
	}

	for r := p.MinRadius; r <= p.MaxRadius; r++ {
		if hist[r] > support {
			support = hist[r]
			radius = r
		}
	}
	return radius, support
}
