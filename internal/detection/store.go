package detection

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// paramSeparator is the only separator the parameter file format accepts.
// "min_radius = 15" parses; "min_radius: 15" or "min_radius=15" does not.
const paramSeparator = " = "

// ParamsError reports a parameter source that could not be read or parsed.
// Callers are expected to fall back to DefaultParams rather than abort.
type ParamsError struct {
	Line int    // 1-based line number, 0 when the whole source failed
	Text string // offending line, empty when the whole source failed
	Err  error
}

func (e *ParamsError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parameter file line %d %q: %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("parameter file: %v", e.Err)
}

func (e *ParamsError) Unwrap() error { return e.Err }

// LoadParams reads a parameter set from r in the plain-text format written by
// SaveParams: one "key = integer" pair per line.
//
// Recognized keys are min_radius, max_radius, min_distance, param1 (maps to
// Sensitivity1) and param2 (maps to Sensitivity2). Unknown keys are ignored
// and missing keys keep their defaults. Blank lines are skipped. Any
// malformed line - wrong separator, non-integer value - fails the whole load
// with a *ParamsError.
func LoadParams(r io.Reader) (Params, error) {
	p := DefaultParams()

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		key, value, ok := strings.Cut(text, paramSeparator)
		if !ok || key == "" || strings.ContainsAny(key, " \t") {
			// A key with embedded whitespace means the separator spacing was
			// off, e.g. "min_radius  = 15"; treat it as malformed, not as an
			// unknown key.
			return Params{}, &ParamsError{Line: line, Text: text,
				Err: errors.New(`separator must be exactly " = "`)}
		}

		n, err := strconv.Atoi(value)
		if err != nil {
			return Params{}, &ParamsError{Line: line, Text: text, Err: err}
		}

		switch key {
		case "min_radius":
			p.MinRadius = n
		case "max_radius":
			p.MaxRadius = n
		case "min_distance":
			p.MinDistance = n
		case "param1":
			p.Sensitivity1 = n
		case "param2":
			p.Sensitivity2 = n
		default:
			// unknown keys ignored
		}
	}
	if err := sc.Err(); err != nil {
		return Params{}, &ParamsError{Err: err}
	}
	return p, nil
}

// LoadParamsFile loads a parameter set from a file on disk. An unreadable
// file is reported as a *ParamsError like any parse failure.
func LoadParamsFile(path string) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return Params{}, &ParamsError{Err: err}
	}
	defer f.Close()
	return LoadParams(f)
}

// SaveParams writes p to w in the same layout LoadParams reads, one key per
// line, all five keys always present.
func SaveParams(w io.Writer, p Params) error {
	_, err := fmt.Fprintf(w,
		"min_radius = %d\nmax_radius = %d\nmin_distance = %d\nparam1 = %d\nparam2 = %d\n",
		p.MinRadius, p.MaxRadius, p.MinDistance, p.Sensitivity1, p.Sensitivity2)
	return err
}

// SaveParamsFile writes p to a file, replacing any previous contents.
func SaveParamsFile(path string, p Params) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := SaveParams(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
