package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

// ErrInvalidFrame indicates a frame that cannot be processed: nil, zero
// dimensions, or a file that did not decode to a usable image.
var ErrInvalidFrame = errors.New("invalid frame")

// blurSigma and blurRadius define the fixed 9x9 Gaussian window (sigma 2)
// both detectors are tuned against. Not configurable.
const (
	blurSigma  = 2.0
	blurRadius = 4
)

// Preprocess converts a raw frame into the denoised grayscale image both
// detectors share: luminance grayscale (ITU-R BT.601 weights) followed by a
// 9x9 Gaussian blur with sigma 2 to suppress the high-frequency noise that
// would otherwise read as spurious edges.
//
// The input frame is never written to; the returned image is freshly
// allocated with its origin at (0, 0). Rejects nil or zero-dimension frames
// with an error wrapping ErrInvalidFrame.
func Preprocess(frame image.Image) (*image.Gray, error) {
	if frame == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidFrame)
	}
	b := frame.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: %dx%d image", ErrInvalidFrame, b.Dx(), b.Dy())
	}
	return gaussianSmooth(toGray(frame)), nil
}

// toGray converts any image to 8-bit grayscale using ITU-R BT.601 luminance
// weights: Y = 0.299*R + 0.587*G + 0.114*B.
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	gray := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(bl>>8)
			gray.SetGray(x, y, color.Gray{Y: uint8(lum + 0.5)})
		}
	}
	return gray
}

// gaussianKernel builds the normalized 1-D Gaussian used for both separable
// passes of the 9x9 blur.
func gaussianKernel() [2*blurRadius + 1]float64 {
	var k [2*blurRadius + 1]float64
	sum := 0.0
	for i := range k {
		d := float64(i - blurRadius)
		k[i] = math.Exp(-d * d / (2 * blurSigma * blurSigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// gaussianSmooth applies the fixed 9x9 Gaussian as two separable passes.
// Border pixels use clamped (replicated) edge values.
func gaussianSmooth(src *image.Gray) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	k := gaussianKernel()

	horizontal := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for i := -blurRadius; i <= blurRadius; i++ {
				xi := clamp(x+i, 0, w-1)
				sum += float64(src.GrayAt(b.Min.X+xi, b.Min.Y+y).Y) * k[i+blurRadius]
			}
			horizontal[y*w+x] = sum
		}
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for i := -blurRadius; i <= blurRadius; i++ {
				yi := clamp(y+i, 0, h-1)
				sum += horizontal[yi*w+x] * k[i+blurRadius]
			}
			dst.SetGray(x, y, color.Gray{Y: uint8(sum + 0.5)})
		}
	}
	return dst
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
