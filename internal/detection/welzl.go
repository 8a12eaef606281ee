package detection

import (
	"image"
	"math"
)

// enclosingCircle is a circle in continuous pixel coordinates, used while
// fitting before truncation to the integer Circle type.
type enclosingCircle struct {
	x, y, r float64
}

// containsEps absorbs floating point noise when testing membership.
const containsEps = 1e-10

func (c enclosingCircle) contains(p fpoint) bool {
	dx, dy := p.x-c.x, p.y-c.y
	return math.Hypot(dx, dy) <= c.r+containsEps
}

type fpoint struct {
	x, y float64
}

// minEnclosingCircle fits the smallest circle containing every point of a
// boundary, using Welzl's move-to-front construction. The input order is
// processed as-is, keeping the fit deterministic; boundaries are small enough
// that the skipped shuffle does not matter in practice.
func minEnclosingCircle(pts []image.Point) enclosingCircle {
	ps := make([]fpoint, len(pts))
	for i, p := range pts {
		ps[i] = fpoint{float64(p.X), float64(p.Y)}
	}

	switch len(ps) {
	case 0:
		return enclosingCircle{}
	case 1:
		return enclosingCircle{x: ps[0].x, y: ps[0].y}
	}

	c := diameterCircle(ps[0], ps[1])
	for i := 2; i < len(ps); i++ {
		if !c.contains(ps[i]) {
			c = circleWithPoint(ps[:i], ps[i])
		}
	}
	return c
}

// circleWithPoint returns the smallest circle containing ps with p on its
// boundary, assuming p lies outside the best circle for ps alone.
func circleWithPoint(ps []fpoint, p fpoint) enclosingCircle {
	c := enclosingCircle{x: p.x, y: p.y}
	for i, q := range ps {
		if c.contains(q) {
			continue
		}
		if c.r == 0 {
			c = diameterCircle(p, q)
		} else {
			c = circleWithTwoPoints(ps[:i], p, q)
		}
	}
	return c
}

// circleWithTwoPoints returns the smallest circle containing ps with both p
// and q on its boundary.
func circleWithTwoPoints(ps []fpoint, p, q fpoint) enclosingCircle {
	circ := diameterCircle(p, q)
	var left, right enclosingCircle
	hasLeft, hasRight := false, false

	px, py := q.x-p.x, q.y-p.y
	for _, s := range ps {
		if circ.contains(s) {
			continue
		}
		cross := px*(s.y-p.y) - py*(s.x-p.x)
		c := circumscribed(p, q, s)
		if c.r == 0 {
			continue // collinear
		}
		side := px*(c.y-p.y) - py*(c.x-p.x)
		switch {
		case cross > 0 && (!hasLeft || side > px*(left.y-p.y)-py*(left.x-p.x)):
			left, hasLeft = c, true
		case cross < 0 && (!hasRight || side < px*(right.y-p.y)-py*(right.x-p.x)):
			right, hasRight = c, true
		}
	}

	switch {
	case !hasLeft && !hasRight:
		return circ
	case !hasLeft:
		return right
	case !hasRight:
		return left
	case left.r <= right.r:
		return left
	default:
		return right
	}
}

// diameterCircle is the circle with segment ab as its diameter.
func diameterCircle(a, b fpoint) enclosingCircle {
	cx := (a.x + b.x) / 2
	cy := (a.y + b.y) / 2
	r := math.Max(math.Hypot(a.x-cx, a.y-cy), math.Hypot(b.x-cx, b.y-cy))
	return enclosingCircle{x: cx, y: cy, r: r}
}

// circumscribed is the circle through three points, or the zero circle when
// they are collinear. Coordinates are taken relative to a for stability.
func circumscribed(a, b, c fpoint) enclosingCircle {
	bx, by := b.x-a.x, b.y-a.y
	cx, cy := c.x-a.x, c.y-a.y
	d := 2 * (bx*cy - by*cx)
	if d == 0 {
		return enclosingCircle{}
	}
	ux := (cy*(bx*bx+by*by) - by*(cx*cx+cy*cy)) / d
	uy := (bx*(cx*cx+cy*cy) - cx*(bx*bx+by*by)) / d
	x, y := a.x+ux, a.y+uy
	r := math.Max(math.Hypot(x-a.x, y-a.y),
		math.Max(math.Hypot(x-b.x, y-b.y), math.Hypot(x-c.x, y-c.y)))
	return enclosingCircle{x: x, y: y, r: r}
}
