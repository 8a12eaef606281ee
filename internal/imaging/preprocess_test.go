package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// createColorImage creates a solid color test image
func createColorImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestPreprocess_NilFrame(t *testing.T) {
	_, err := Preprocess(nil)
	if !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("Expected ErrInvalidFrame for nil input, got %v", err)
	}
}

func TestPreprocess_ZeroDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 10))
	_, err := Preprocess(img)
	if !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("Expected ErrInvalidFrame for zero-width input, got %v", err)
	}
}

func TestPreprocess_Dimensions(t *testing.T) {
	img := createColorImage(64, 48, color.White)

	gray, err := Preprocess(img)
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	b := gray.Bounds()
	if b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("Expected 64x48 output, got %dx%d", b.Dx(), b.Dy())
	}
	if b.Min.X != 0 || b.Min.Y != 0 {
		t.Errorf("Expected output origin at (0, 0), got %v", b.Min)
	}
}

func TestPreprocess_UniformStaysUniform(t *testing.T) {
	img := createColorImage(40, 40, color.RGBA{R: 128, G: 128, B: 128, A: 255})

	gray, err := Preprocess(img)
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	want := gray.GrayAt(0, 0).Y
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if got := gray.GrayAt(x, y).Y; got != want {
				t.Fatalf("Blur changed a uniform image at (%d, %d): %d vs %d", x, y, got, want)
			}
		}
	}
	if want != 128 {
		t.Errorf("Expected uniform gray 128, got %d", want)
	}
}

func TestPreprocess_LuminanceWeights(t *testing.T) {
	cases := []struct {
		name string
		c    color.RGBA
		want uint8
	}{
		{"red", color.RGBA{R: 255, A: 255}, 76},
		{"green", color.RGBA{G: 255, A: 255}, 150},
		{"blue", color.RGBA{B: 255, A: 255}, 29},
	}

	for _, tc := range cases {
		gray, err := Preprocess(createColorImage(32, 32, tc.c))
		if err != nil {
			t.Fatalf("%s: Preprocess failed: %v", tc.name, err)
		}
		got := gray.GrayAt(16, 16).Y
		if got < tc.want-1 || got > tc.want+1 {
			t.Errorf("%s: expected luminance near %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestPreprocess_DoesNotMutateInput(t *testing.T) {
	img := createColorImage(20, 20, color.RGBA{R: 200, G: 10, B: 10, A: 255})
	before := img.RGBAAt(10, 10)

	if _, err := Preprocess(img); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if img.RGBAAt(10, 10) != before {
		t.Error("Preprocess wrote to its input frame")
	}
}

func TestPreprocess_SmoothsEdges(t *testing.T) {
	// Hard black/white step; after the blur the step must be gradual
	img := createColorImage(40, 40, color.White)
	for y := 0; y < 40; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.Black)
		}
	}

	gray, err := Preprocess(img)
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	v := gray.GrayAt(19, 20).Y
	if v == 0 || v == 255 {
		t.Errorf("Expected intermediate value at the step, got %d", v)
	}
}
