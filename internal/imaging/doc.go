// Package imaging provides the shared preprocessing step and the frame I/O
// collaborators of the bottle counter.
//
// Preprocess is the only operation the detection core depends on: it turns a
// raw color frame into the denoised grayscale image both detectors consume
// (BT.601 luminance conversion followed by a fixed 9x9 Gaussian, sigma 2).
// Everything else in the package - OpenFrame, SaveFrame, the FrameSource
// implementations - is the thin I/O shell that feeds frames in and carries
// annotated frames out.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner,
// X increasing rightward and Y increasing downward. Preprocess re-bases its
// output at (0, 0) regardless of the input's bounds.
//
// # Frames as Video
//
// There is no codec handling here. A video stream is consumed as a directory
// of extracted frame files via DirSource, in name order; whatever extracts
// the frames (ffmpeg, a capture pipeline) is outside this program.
//
// # Error Handling
//
// ErrInvalidFrame wraps every per-frame failure: nil or zero-dimension
// input to Preprocess, and files that are missing or do not decode. Such
// errors are local to one frame; callers processing a stream are expected to
// log and continue.
package imaging
