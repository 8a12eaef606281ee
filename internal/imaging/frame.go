package imaging

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

// OpenFrame loads and validates a single frame from disk.
//
// Decoding goes through disintegration/imaging, which honors EXIF
// orientation, so phone shots of a crate come in the right way up. A file
// that cannot be decoded, or decodes to a zero-dimension image, is reported
// with an error wrapping ErrInvalidFrame so callers can skip the frame and
// move on.
func OpenFrame(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFrame, path, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: %s decodes to %dx%d", ErrInvalidFrame, path, b.Dx(), b.Dy())
	}
	return img, nil
}

// SaveFrame writes an image to disk, choosing the encoder by extension:
// JPEG for .jpg/.jpeg, PNG for everything else.
func SaveFrame(path string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return imgio.Save(path, img, imgio.JPEGEncoder(95))
	default:
		return imgio.Save(path, img, imgio.PNGEncoder())
	}
}

// FrameSource supplies decoded frames one at a time. Next returns io.EOF
// once the source is exhausted; any other error concerns only the current
// frame, and the source advances past it so the caller can keep draining.
type FrameSource interface {
	Next() (image.Image, error)
}

// FileSource yields a single still image, then io.EOF.
type FileSource struct {
	path string
	done bool
}

// NewFileSource returns a source for one image file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Next implements FrameSource.
func (s *FileSource) Next() (image.Image, error) {
	if s.done {
		return nil, io.EOF
	}
	s.done = true
	return OpenFrame(s.path)
}

// frameExtensions lists the file extensions DirSource treats as frames.
var frameExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// DirSource iterates the image files of a directory in name order. It stands
// in for a video stream whose frames were extracted to numbered files; the
// core never deals with codecs or capture devices directly.
type DirSource struct {
	paths []string
	next  int
}

// NewDirSource lists dir and returns a source over its image files. A
// directory without a single frame is an error; an unreadable file inside it
// is not, and surfaces later from Next.
func NewDirSource(dir string) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list frame directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !frameExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frames found in %s", dir)
	}
	sort.Strings(paths)

	return &DirSource{paths: paths}, nil
}

// Len returns the number of frames the source will yield in total.
func (s *DirSource) Len() int { return len(s.paths) }

// Next implements FrameSource.
func (s *DirSource) Next() (image.Image, error) {
	if s.next >= len(s.paths) {
		return nil, io.EOF
	}
	path := s.paths[s.next]
	s.next++
	return OpenFrame(path)
}
