// Package counter ties the pipeline together: preprocess a frame, run both
// detectors, reconcile their counts, and track the maximum over a stream.
package counter

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/cratevision/bottle-counter/internal/detection"
	"github.com/cratevision/bottle-counter/internal/imaging"
)

// FrameReport is the per-frame outcome: both raw detector results, the
// reconciled result, and which method produced it.
type FrameReport struct {
	Frame   image.Image
	Hough   detection.Result
	Contour detection.Result
	Chosen  detection.Result
	Method  string
	Index   int
}

// Session runs the counting pipeline with a fixed parameter set. It is not
// safe for concurrent use; run one session per stream.
type Session struct {
	Params detection.Params

	hough   detection.Detector
	contour detection.Detector
	log     *logrus.Logger
}

// NewSession validates the parameter set and builds a ready session. A nil
// logger gets the logrus standard logger.
func NewSession(p detection.Params, log *logrus.Logger) (*Session, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Session{
		Params:  p,
		hough:   &detection.TransformDetector{},
		contour: &detection.ContourDetector{},
		log:     log,
	}, nil
}

// ProcessFrame runs the full pipeline on one frame: preprocessing, both
// detectors, then count reconciliation.
func (s *Session) ProcessFrame(frame image.Image) (FrameReport, error) {
	gray, err := imaging.Preprocess(frame)
	if err != nil {
		return FrameReport{}, err
	}

	hough, err := s.hough.Detect(gray, s.Params)
	if err != nil {
		return FrameReport{}, fmt.Errorf("%s detection failed: %w", s.hough.Method(), err)
	}
	contour, err := s.contour.Detect(gray, s.Params)
	if err != nil {
		return FrameReport{}, fmt.Errorf("%s detection failed: %w", s.contour.Method(), err)
	}

	chosen, method := detection.ReconcileWithMethod(hough, contour)

	return FrameReport{
		Frame:   frame,
		Hough:   hough,
		Contour: contour,
		Chosen:  chosen,
		Method:  method,
	}, nil
}

// Run drains a frame source, reporting each frame through sink and returning
// the maximum reconciled count seen. A frame that fails to decode or process
// is logged and skipped; only source exhaustion ends the loop. A nil sink
// just counts.
func (s *Session) Run(src imaging.FrameSource, sink func(FrameReport)) (int, error) {
	max := 0
	for i := 0; ; i++ {
		frame, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.log.WithError(err).WithField("frame", i).Warn("skipping unreadable frame")
			continue
		}

		report, err := s.ProcessFrame(frame)
		if err != nil {
			s.log.WithError(err).WithField("frame", i).Warn("skipping frame")
			continue
		}
		report.Index = i

		s.log.WithFields(logrus.Fields{
			"frame":  i,
			"method": report.Method,
			"count":  report.Chosen.Count,
		}).Debug("frame processed")

		if report.Chosen.Count > max {
			max = report.Chosen.Count
		}
		if sink != nil {
			sink(report)
		}
	}
	return max, nil
}
