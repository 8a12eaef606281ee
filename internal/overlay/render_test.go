package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/cratevision/bottle-counter/internal/detection"
)

func whiteFrame(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func TestRender_DoesNotMutateInput(t *testing.T) {
	frame := whiteFrame(100, 100)
	res := detection.Result{Circles: []detection.Circle{{X: 50, Y: 50, R: 20}}, Count: 1}

	Render(frame, res, detection.MethodHough)

	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if frame.NRGBAAt(x, y) != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
				t.Fatalf("Input frame mutated at (%d, %d)", x, y)
			}
		}
	}
}

func TestRender_DrawsCircleAndCenter(t *testing.T) {
	frame := whiteFrame(100, 100)
	res := detection.Result{Circles: []detection.Circle{{X: 50, Y: 50, R: 20}}, Count: 1}

	out := Render(frame, res, detection.MethodHough)

	// Rightmost ring pixel is green for the hough method
	if got := out.NRGBAAt(70, 50); got != (color.NRGBA{G: 255, A: 255}) {
		t.Errorf("Expected green ring pixel at (70, 50), got %+v", got)
	}
	// Center dot is red
	if got := out.NRGBAAt(50, 50); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("Expected red center at (50, 50), got %+v", got)
	}
}

func TestRender_ContourColor(t *testing.T) {
	frame := whiteFrame(100, 100)
	res := detection.Result{Circles: []detection.Circle{{X: 50, Y: 50, R: 20}}, Count: 1}

	out := Render(frame, res, detection.MethodContour)
	if got := out.NRGBAAt(70, 50); got != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("Expected blue ring pixel for contour method, got %+v", got)
	}
}

func TestRender_DrawsLabel(t *testing.T) {
	frame := whiteFrame(200, 100)

	out := Render(frame, detection.Result{}, detection.MethodContour)

	// Some pixel in the label box must have changed from white
	changed := false
	for y := 28; y <= 44 && !changed; y++ {
		for x := 20; x < 190; x++ {
			if out.NRGBAAt(x, y) != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Error("Expected count label to be drawn")
	}
}

func TestRender_OffImageCircleClipped(t *testing.T) {
	frame := whiteFrame(50, 50)
	res := detection.Result{Circles: []detection.Circle{{X: 2, Y: 2, R: 30}}, Count: 1}

	// Must not panic on circles extending past the frame
	out := Render(frame, res, detection.MethodHough)
	if out.Bounds().Dx() != 50 || out.Bounds().Dy() != 50 {
		t.Errorf("Unexpected output bounds %v", out.Bounds())
	}
}

func TestRenderComparison_PanelLayout(t *testing.T) {
	frame := whiteFrame(80, 60)
	res := detection.Result{Circles: []detection.Circle{{X: 40, Y: 30, R: 10}}, Count: 1}

	panel := RenderComparison(frame, res, res, res, detection.MethodContour)

	b := panel.Bounds()
	if b.Dx() != 160 || b.Dy() != 120 {
		t.Fatalf("Expected 160x120 panel, got %dx%d", b.Dx(), b.Dy())
	}
	// Top-right quadrant carries the green hough ring
	if got := panel.NRGBAAt(80+50, 30); got != (color.NRGBA{G: 255, A: 255}) {
		t.Errorf("Expected hough ring in top-right quadrant, got %+v", got)
	}
	// Bottom-left quadrant carries the blue contour ring
	if got := panel.NRGBAAt(50, 60+30); got != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("Expected contour ring in bottom-left quadrant, got %+v", got)
	}
}
