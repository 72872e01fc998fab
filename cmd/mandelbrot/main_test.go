package main

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mandel "github.com/mtraverso3/mandelbrot"
	"github.com/mtraverso3/mandelbrot/internal/imageio"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options
	}{
		{
			name: "preset with multiplier",
			args: []string{"preset", "--location", "spiral", "--zoom", "2"},
			want: options{
				Output: "output.png", Filter: imageio.Lanczos,
				Width: 4096, Height: 3280, MaxIter: 35000,
				View: mandel.View{CenterX: -1.2494989, CenterY: 0.0303330, Zoom: 2 * 4.437e4, Lit: true},
			},
		},
		{
			name: "custom with globals",
			args: []string{"--output", "x.png", "--resize", "--verbose", "--lighting=false", "--width", "640", "--height", "480",
				"custom", "-x", "-0.5", "-y", "0.1", "-z", "3"},
			want: options{
				Output: "x.png", Resize: true, Verbose: true, Filter: imageio.Lanczos,
				Width: 640, Height: 480, MaxIter: 35000,
				View: mandel.View{CenterX: -0.5, CenterY: 0.1, Zoom: 3},
			},
		},
		{
			name: "preset defaults",
			args: []string{"--filter", "catmullrom", "--workers", "3", "preset"},
			want: options{
				Output: "output.png", Filter: imageio.CatmullRom,
				Width: 4096, Height: 3280, MaxIter: 35000, Workers: 3,
				View: mandel.View{CenterX: -0.75, Zoom: 1, Lit: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args, io.Discard)
			if err != nil {
				t.Fatalf("parseArgs() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("parseArgs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown preset", []string{"preset", "--location", "nope"}, mandel.ErrInvalidPreset},
		{"zero zoom", []string{"custom", "-z", "0"}, mandel.ErrInvalidParameters},
		{"negative multiplier", []string{"preset", "--zoom", "-1"}, mandel.ErrInvalidParameters},
		{"missing command", nil, mandel.ErrInvalidParameters},
		{"unknown command", []string{"julia"}, mandel.ErrInvalidParameters},
		{"zero width", []string{"--width", "0", "custom"}, mandel.ErrInvalidParameters},
		{"too many pixels", []string{"--width", "4000000000", "--height", "4000000000", "custom"}, mandel.ErrInvalidParameters},
		{"just over the pixel limit", []string{"--width", "16385", "--height", "16384", "custom"}, mandel.ErrInvalidParameters},
		{"unknown filter", []string{"--filter", "box", "custom"}, mandel.ErrInvalidParameters},
		{"stray argument", []string{"custom", "-z", "2", "extra"}, mandel.ErrInvalidParameters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseArgs(tt.args, io.Discard); !errors.Is(err, tt.want) {
				t.Errorf("parseArgs(%q) error = %v, want %v", tt.args, err, tt.want)
			}
		})
	}
}

func TestParseArgsHelp(t *testing.T) {
	var out bytes.Buffer
	_, err := parseArgs([]string{"-h"}, &out)
	if !isHelp(err) {
		t.Fatalf("parseArgs(-h) error = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(out.String(), "quad-spiral") {
		t.Errorf("usage does not list the presets:\n%s", out.String())
	}
}

func TestRunWritesImages(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "shot.png")
	var logs bytes.Buffer

	err := run([]string{
		"--output", out, "--resize", "--verbose",
		"--width", "48", "--height", "30", "--max-iter", "300",
		"custom", "-x", "-0.75", "-y", "0", "-z", "1",
	}, &logs)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	checkPNG(t, out, 48, 30)
	checkPNG(t, filepath.Join(dir, "shot_resized.png"), 24, 15)

	for _, want := range []string{"generated", "saved", "overall"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("verbose output lacks %q:\n%s", want, logs.String())
		}
	}
}

func TestRunQuietWithoutVerbose(t *testing.T) {
	var logs bytes.Buffer
	out := filepath.Join(t.TempDir(), "q.png")
	if err := run([]string{"--output", out, "--width", "8", "--height", "8", "--max-iter", "50", "preset"}, &logs); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if logs.Len() != 0 {
		t.Errorf("run() without --verbose logged:\n%s", logs.String())
	}
}

func TestRunReportsIOFailure(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "x.png")
	err := run([]string{"--output", out, "--width", "8", "--height", "8", "--max-iter", "50", "preset"}, io.Discard)
	if !errors.Is(err, mandel.ErrIO) {
		t.Errorf("run() error = %v, want ErrIO", err)
	}
}

func TestRunRejectsInvalidPresetBeforeWriting(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.png")
	err := run([]string{"--output", out, "preset", "--location", "nope"}, io.Discard)
	if !errors.Is(err, mandel.ErrInvalidPreset) {
		t.Fatalf("run() error = %v, want ErrInvalidPreset", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output exists after a rejected preset: %v", err)
	}
}

func checkPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("png.DecodeConfig(%s) error = %v", path, err)
	}
	if cfg.Width != w || cfg.Height != h {
		t.Errorf("%s is %dx%d, want %dx%d", path, cfg.Width, cfg.Height, w, h)
	}
}
