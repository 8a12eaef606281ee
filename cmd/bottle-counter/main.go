package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/cratevision/bottle-counter/internal/counter"
	"github.com/cratevision/bottle-counter/internal/detection"
	"github.com/cratevision/bottle-counter/internal/imaging"
	"github.com/cratevision/bottle-counter/internal/overlay"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var (
		imagePath  = flag.String("image", "", "single image to analyze")
		framesDir  = flag.String("frames", "", "directory of extracted video frames to analyze")
		paramsPath = flag.String("params", "", "parameter file (key = value); defaults used if absent")
		outputPath = flag.String("output", "", "write annotated frame to this path")
		compare    = flag.Bool("compare", false, "write a 2x2 comparison panel instead of a single overlay")
		verbose    = flag.Bool("verbose", false, "enable debug logging")
		version    = flag.Bool("version", false, "print version information")
	)
	flag.Parse()

	if *version {
		fmt.Printf("bottle-counter %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	params := detection.DefaultParams()
	if *paramsPath != "" {
		loaded, err := detection.LoadParamsFile(*paramsPath)
		if err != nil {
			log.WithError(err).Warn("could not load parameters, using defaults")
		} else {
			params = loaded
		}
	}

	session, err := counter.NewSession(params, log)
	if err != nil {
		log.Fatalf("invalid parameters: %v", err)
	}

	switch {
	case *imagePath != "":
		if err := runSingle(session, *imagePath, *outputPath, *compare); err != nil {
			log.Fatalf("analysis failed: %v", err)
		}
	case *framesDir != "":
		if err := runStream(session, *framesDir); err != nil {
			log.Fatalf("analysis failed: %v", err)
		}
	default:
		fmt.Fprintln(os.Stderr, "usage: bottle-counter -image FILE | -frames DIR [-params FILE] [-output FILE] [-compare] [-verbose]")
		os.Exit(2)
	}
}

// runSingle analyzes one still image and optionally writes an annotated copy.
func runSingle(session *counter.Session, imagePath, outputPath string, compare bool) error {
	frame, err := imaging.OpenFrame(imagePath)
	if err != nil {
		return err
	}

	report, err := session.ProcessFrame(frame)
	if err != nil {
		return err
	}

	fmt.Printf("Detected %d bottles (%s)\n", report.Chosen.Count, report.Method)

	if outputPath == "" {
		return nil
	}
	if compare {
		panel := overlay.RenderComparison(frame, report.Hough, report.Contour, report.Chosen, report.Method)
		return imaging.SaveFrame(outputPath, panel)
	}
	return imaging.SaveFrame(outputPath, overlay.Render(frame, report.Chosen, report.Method))
}

// runStream drains a frame directory and reports the running maximum.
func runStream(session *counter.Session, dir string) error {
	src, err := imaging.NewDirSource(dir)
	if err != nil {
		return err
	}

	max, err := session.Run(src, func(r counter.FrameReport) {
		fmt.Printf("frame %d: %d bottles (%s)\n", r.Index, r.Chosen.Count, r.Method)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Processing complete. Maximum bottles detected: %d\n", max)
	return nil
}
