// Package detection implements the two circle detection strategies at the
// heart of the bottle counter, plus the policy that reconciles their output.
//
// Both detectors consume the same preprocessed grayscale image (see the
// imaging package) and the same five-knob parameter set, and both are pure
// functions: no state survives a call, and neither mutates its inputs.
//
// # Detection Strategies
//
//   - TransformDetector: gradient-based circular Hough voting. Edge pixels
//     vote along their gradient direction into a flat center accumulator;
//     accepted peaks get a best-supported radius from a distance histogram.
//   - ContourDetector: Otsu binarization (inverted, darker regions are
//     foreground), outer boundary extraction per connected component, then
//     area, circularity and radius-band filtering before fitting a minimal
//     enclosing circle.
//
// Reconcile picks between the two result sets by count alone; see its
// documentation for the limitation this carries.
//
// # Parameters
//
// Params bounds the radius band, the minimum center separation enforced by
// the transform detector, and the two sensitivity thresholds. Parameter sets
// persist as plain "key = value" text via LoadParams and SaveParams; a
// malformed file fails wholesale with *ParamsError so the caller can fall
// back to DefaultParams.
//
// # Coordinate System
//
// All coordinates use the standard image convention: origin at the top-left
// corner, X increasing rightward, Y increasing downward. Circle centers and
// radii are integers in pixel units.
//
// # Performance Considerations
//
// Both detectors iterate over every pixel, and the transform detector
// additionally votes once per edge pixel per candidate radius, so cost grows
// with the configured radius band. Validate rejects inverted or negative
// bands before a pathological configuration can turn a frame into a stall.
package detection
