// Package overlay draws detection results onto copies of the original
// frame: circle outlines, center dots, and a count label per method. The
// input frame is never mutated; every renderer works on a clone.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/cratevision/bottle-counter/internal/detection"
)

// Method palette: green for the transform detector, blue for the contour
// detector, red center dots for both.
var (
	methodColors = map[string]color.RGBA{
		detection.MethodHough:   toRGBA(colorful.Color{R: 0, G: 1, B: 0}),
		detection.MethodContour: toRGBA(colorful.Color{R: 0, G: 0, B: 1}),
	}
	centerColor = toRGBA(colorful.Color{R: 1, G: 0, B: 0})
	labelWhite  = toRGBA(colorful.Color{R: 1, G: 1, B: 1})
)

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Render draws the circles of a result onto a copy of frame, with a
// "Bottles (<method>): N" label in the top-left corner, and returns the
// annotated copy.
func Render(frame image.Image, res detection.Result, method string) *image.NRGBA {
	dst := imaging.Clone(frame)

	col, ok := methodColors[method]
	if !ok {
		col = methodColors[detection.MethodContour]
	}
	for _, c := range res.Circles {
		drawCircle(dst, c.X, c.Y, c.R, col)
		drawCircle(dst, c.X, c.Y, c.R-1, col) // 2px outline
		fillDot(dst, c.X, c.Y, 2, centerColor)
	}

	drawLabel(dst, 20, 40, fmt.Sprintf("Bottles (%s): %d", method, res.Count), col)
	return dst
}

// RenderComparison builds a 2x2 analysis panel: the original frame top-left,
// the transform result top-right, the contour result bottom-left, and the
// reconciled result bottom-right.
func RenderComparison(frame image.Image, hough, contour, combined detection.Result, method string) *image.NRGBA {
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()

	panel := image.NewNRGBA(image.Rect(0, 0, 2*w, 2*h))
	draw.Draw(panel, image.Rect(0, 0, w, h), frame, b.Min, draw.Src)
	draw.Draw(panel, image.Rect(w, 0, 2*w, h),
		Render(frame, hough, detection.MethodHough), image.Point{}, draw.Src)
	draw.Draw(panel, image.Rect(0, h, w, 2*h),
		Render(frame, contour, detection.MethodContour), image.Point{}, draw.Src)
	draw.Draw(panel, image.Rect(w, h, 2*w, 2*h),
		Render(frame, combined, method), image.Point{}, draw.Src)

	drawLabel(panel, 20, 20, "Original", labelWhite)
	return panel
}

// drawCircle draws a 1px circle outline using the midpoint algorithm.
// Radii below 1 draw nothing.
func drawCircle(img draw.Image, cx, cy, r int, col color.Color) {
	if r < 1 {
		return
	}
	set := func(x, y int) {
		if image.Pt(x, y).In(img.Bounds()) {
			img.Set(x, y, col)
		}
	}

	x, y, err := r, 0, 0
	for x >= y {
		set(cx+x, cy+y)
		set(cx+y, cy+x)
		set(cx-y, cy+x)
		set(cx-x, cy+y)
		set(cx-x, cy-y)
		set(cx-y, cy-x)
		set(cx+y, cy-x)
		set(cx+x, cy-y)

		if err <= 0 {
			y++
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}
}

// fillDot fills a small disk, used to mark circle centers.
func fillDot(img draw.Image, cx, cy, r int, col color.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			if image.Pt(cx+dx, cy+dy).In(img.Bounds()) {
				img.Set(cx+dx, cy+dy, col)
			}
		}
	}
}

// drawLabel renders text at the given baseline position with the basicfont
// face; small, but enough for count overlays.
func drawLabel(dst draw.Image, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
