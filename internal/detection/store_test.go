package detection

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestParamsRoundTrip(t *testing.T) {
	want := Params{MinRadius: 10, MaxRadius: 80, MinDistance: 25, Sensitivity1: 40, Sensitivity2: 22}

	var buf bytes.Buffer
	if err := SaveParams(&buf, want); err != nil {
		t.Fatalf("SaveParams failed: %v", err)
	}

	got, err := LoadParams(&buf)
	if err != nil {
		t.Fatalf("LoadParams failed: %v", err)
	}
	if got != want {
		t.Errorf("Round trip mismatch: saved %+v, loaded %+v", want, got)
	}
}

func TestLoadParams_MissingKeysKeepDefaults(t *testing.T) {
	in := "min_radius = 12\nmax_radius = 50\n"

	p, err := LoadParams(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadParams failed: %v", err)
	}

	if p.MinRadius != 12 || p.MaxRadius != 50 {
		t.Errorf("Expected radius band [12, 50], got [%d, %d]", p.MinRadius, p.MaxRadius)
	}
	// param2 absent, so the default survives
	if p.Sensitivity2 != 30 {
		t.Errorf("Expected default sensitivity2 30, got %d", p.Sensitivity2)
	}
	if p.MinDistance != 20 {
		t.Errorf("Expected default min distance 20, got %d", p.MinDistance)
	}
}

func TestLoadParams_WrongSeparator(t *testing.T) {
	for _, in := range []string{
		"min_radius : 15\n",
		"min_radius=15\n",
		"min_radius 15\n",
		"min_radius  = 15\n", // double space reads as key "min_radius "
		"min_radius\t= 15\n",
	} {
		_, err := LoadParams(strings.NewReader(in))
		if err == nil {
			t.Errorf("Expected error for %q", in)
			continue
		}
		var perr *ParamsError
		if !errors.As(err, &perr) {
			t.Errorf("Expected *ParamsError for %q, got %T", in, err)
			continue
		}
		if perr.Line != 1 {
			t.Errorf("Expected line 1 for %q, got %d", in, perr.Line)
		}
	}
}

func TestLoadParams_NonIntegerValue(t *testing.T) {
	in := "min_radius = 15\nparam1 = high\n"

	_, err := LoadParams(strings.NewReader(in))
	var perr *ParamsError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected *ParamsError, got %v", err)
	}
	if perr.Line != 2 {
		t.Errorf("Expected failure on line 2, got %d", perr.Line)
	}
}

func TestLoadParams_UnknownKeyIgnored(t *testing.T) {
	in := "brightness = 99\nparam2 = 45\n"

	p, err := LoadParams(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Unknown keys should not fail the load: %v", err)
	}
	if p.Sensitivity2 != 45 {
		t.Errorf("Expected sensitivity2 45, got %d", p.Sensitivity2)
	}
}

func TestLoadParams_EmptyInput(t *testing.T) {
	p, err := LoadParams(strings.NewReader("\n\n  \n"))
	if err != nil {
		t.Fatalf("Blank input should load defaults: %v", err)
	}
	if p != DefaultParams() {
		t.Errorf("Expected defaults, got %+v", p)
	}
}

func TestParamsFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.txt")
	want := DefaultParams()
	want.MinDistance = 35

	if err := SaveParamsFile(path, want); err != nil {
		t.Fatalf("SaveParamsFile failed: %v", err)
	}
	got, err := LoadParamsFile(path)
	if err != nil {
		t.Fatalf("LoadParamsFile failed: %v", err)
	}
	if got != want {
		t.Errorf("File round trip mismatch: saved %+v, loaded %+v", want, got)
	}
}

func TestLoadParamsFile_Missing(t *testing.T) {
	_, err := LoadParamsFile(filepath.Join(t.TempDir(), "absent.txt"))
	var perr *ParamsError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected *ParamsError for missing file, got %v", err)
	}
}
