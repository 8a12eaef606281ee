package detection

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/histogram"
)

const (
	// minContourArea is the fixed noise floor: boundaries enclosing fewer
	// than this many square pixels are discarded before any shape check.
	minContourArea = 500.0

	// minCircularity rejects boundaries that are not circle-like.
	// Circularity is 4*pi*A/P^2, 1.0 for a perfect circle.
	minCircularity = 0.5
)

// ContourDetector finds circles by binarizing the image and fitting circles
// to the outer boundaries of dark regions.
//
// # Algorithm
//
//  1. Binarization: Otsu threshold over the 256-bin intensity histogram,
//     inverted so regions darker than the background become foreground.
//     Bottle tops are assumed darker than the crate; this is a domain
//     assumption, not a parameter.
//  2. Component Extraction: 8-connected foreground components in scan order.
//     Holes and inner boundaries are ignored.
//  3. Boundary Trace: the outer boundary of each component, as a closed
//     pixel chain (Moore-neighbor tracing).
//  4. Filtering: enclosed area below minContourArea, or circularity below
//     minCircularity, discards the boundary.
//  5. Circle Fit: the minimal enclosing circle of each surviving boundary;
//     kept when its truncated radius lies inside [MinRadius, MaxRadius].
//
// Results come back in component discovery order (scan order). An image with
// no surviving boundaries yields an empty Result.
type ContourDetector struct{}

// Method returns MethodContour.
func (ContourDetector) Method() string { return MethodContour }

// Detect implements the Detector interface.
func (ContourDetector) Detect(gray *image.Gray, p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return Result{}, nil
	}

	threshold := otsuThreshold(gray)

	// Inverted binary mask: darker-than-threshold is foreground.
	fg := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y <= threshold {
				fg[y*w+x] = true
			}
		}
	}

	var circles []Circle
	visited := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !fg[y*w+x] || visited[y*w+x] {
				continue
			}
			// Scan order guarantees (x, y) sits on the component's outer
			// boundary with a background pixel to its west.
			boundary := traceBoundary(fg, w, h, x, y)
			markComponent(fg, visited, w, h, x, y)

			area := polygonArea(boundary)
			if area < minContourArea {
				continue
			}
			perimeter := chainPerimeter(boundary)
			circularity := 0.0
			if perimeter > 0 {
				circularity = 4 * math.Pi * area / (perimeter * perimeter)
			}
			if circularity < minCircularity {
				continue
			}

			c := minEnclosingCircle(boundary)
			r := int(c.r)
			if r < p.MinRadius || r > p.MaxRadius {
				continue
			}
			circles = append(circles, Circle{X: int(c.x), Y: int(c.y), R: r})
		}
	}

	return newResult(circles), nil
}

// otsuThreshold picks the intensity threshold maximizing the between-class
// variance of the image histogram. A uniform image yields threshold 0.
func otsuThreshold(gray *image.Gray) uint8 {
	// A grayscale pixel replicates its intensity into every channel, so the
	// red histogram is the intensity histogram.
	bins := histogram.NewRGBAHistogram(gray).R.Bins

	total := 0
	sum := 0.0
	for i, c := range bins {
		total += c
		sum += float64(i * c)
	}
	if total == 0 {
		return 0
	}

	best := 0
	bestVariance := -1.0
	sumBelow := 0.0
	weightBelow := 0
	for t := 0; t < len(bins); t++ {
		weightBelow += bins[t]
		if weightBelow == 0 {
			continue
		}
		weightAbove := total - weightBelow
		if weightAbove == 0 {
			break
		}
		sumBelow += float64(t * bins[t])

		meanBelow := sumBelow / float64(weightBelow)
		meanAbove := (sum - sumBelow) / float64(weightAbove)
		diff := meanBelow - meanAbove
		variance := float64(weightBelow) * float64(weightAbove) * diff * diff
		if variance > bestVariance {
			bestVariance = variance
			best = t
		}
	}
	return uint8(best)
}

// mooreDirs lists the Moore neighborhood clockwise starting west, in image
// coordinates (y grows downward).
var mooreDirs = [8][2]int{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// traceBoundary follows the outer boundary of the foreground component
// containing (sx, sy), clockwise, using Moore-neighbor tracing. The start
// pixel must have a background (or out-of-image) west neighbor, which the
// scan order of the caller guarantees. Tracing stops when the start pixel is
// re-entered from the original backtrack direction (Jacob's criterion).
func traceBoundary(fg []bool, w, h, sx, sy int) []image.Point {
	inside := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < w && y < h && fg[y*w+x]
	}

	hasNeighbor := false
	for _, d := range mooreDirs {
		if inside(sx+d[0], sy+d[1]) {
			hasNeighbor = true
			break
		}
	}
	if !hasNeighbor {
		return []image.Point{{X: sx, Y: sy}}
	}

	boundary := []image.Point{{X: sx, Y: sy}}
	px, py := sx, sy
	backtrack := 0 // direction from current pixel to its backtrack pixel; west initially

	maxSteps := 4 * w * h
	for step := 0; step < maxSteps; step++ {
		next := -1
		for i := 1; i <= 8; i++ {
			d := (backtrack + i) % 8
			if inside(px+mooreDirs[d][0], py+mooreDirs[d][1]) {
				next = d
				break
			}
		}
		if next < 0 {
			break
		}

		// The neighbor examined just before the hit is background and
		// becomes the new backtrack pixel.
		prev := (next + 7) % 8
		bx := px + mooreDirs[prev][0]
		by := py + mooreDirs[prev][1]

		px += mooreDirs[next][0]
		py += mooreDirs[next][1]
		backtrack = dirIndex(bx-px, by-py)

		if px == sx && py == sy && backtrack == 0 {
			break
		}
		boundary = append(boundary, image.Point{X: px, Y: py})
	}
	return boundary
}

func dirIndex(dx, dy int) int {
	for i, d := range mooreDirs {
		if d[0] == dx && d[1] == dy {
			return i
		}
	}
	return 0
}

// markComponent flood-fills the 8-connected component containing (sx, sy),
// marking every pixel visited. Stack-based to stay safe on large components.
func markComponent(fg, visited []bool, w, h, sx, sy int) {
	stack := []image.Point{{X: sx, Y: sy}}
	for len(stack) > 0 {
		pt := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if pt.X < 0 || pt.X >= w || pt.Y < 0 || pt.Y >= h {
			continue
		}
		idx := pt.Y*w + pt.X
		if visited[idx] || !fg[idx] {
			continue
		}
		visited[idx] = true

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: pt.X + dx, Y: pt.Y + dy})
			}
		}
	}
}

// polygonArea computes the enclosed area of a closed pixel chain via the
// shoelace formula. Degenerate chains (fewer than 3 points) enclose nothing.
func polygonArea(pts []image.Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	sum := 0
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		sum += p.X*q.Y - q.X*p.Y
	}
	if sum < 0 {
		sum = -sum
	}
	return float64(sum) / 2
}

// chainPerimeter sums the step lengths of a closed pixel chain: 1 for axis
// steps, sqrt 2 for diagonals.
func chainPerimeter(pts []image.Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	perimeter := 0.0
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		if p.X != q.X && p.Y != q.Y {
			perimeter += math.Sqrt2
		} else {
			perimeter++
		}
	}
	return perimeter
}
