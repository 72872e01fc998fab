// mandelbrot renders one view of the Mandelbrot set to a PNG file,
// optionally with a half size copy.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mtraverso3/mandelbrot/internal/imageio"
	"github.com/mtraverso3/mandelbrot/render"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		slog.Error("run", "err", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if isHelp(err) {
		return nil
	}
	if err != nil {
		return err
	}

	logger := newLogger(stderr, opts.Verbose)
	render.SetLogger(logger)
	defer render.SetLogger(nil)

	cfg := render.DefaultConfig()
	cfg.Width, cfg.Height = opts.Width, opts.Height
	cfg.MaxIterations = opts.MaxIter
	cfg.Workers = opts.Workers
	r, err := render.New(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	buf, err := r.Render(opts.View)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	logger.Info("mandelbrot image generated, saving",
		"width", cfg.Width, "height", cfg.Height,
		"x", opts.View.CenterX, "y", opts.View.CenterY, "zoom", opts.View.Zoom,
		"lit", opts.View.Lit,
		"elapsed", time.Since(start))

	saveStart := time.Now()
	img := render.NewImage(buf, cfg.Width, cfg.Height)
	if err := imageio.SavePNG(opts.Output, img); err != nil {
		return err
	}

	if opts.Resize {
		half, err := imageio.Half(img, opts.Filter)
		if err != nil {
			return err
		}
		if err := imageio.SavePNG(imageio.ResizedPath(opts.Output), half); err != nil {
			return err
		}
	}
	logger.Info("mandelbrot image saved", "path", opts.Output, "resized", opts.Resize, "elapsed", time.Since(saveStart))
	logger.Info("time elapsed overall", "elapsed", time.Since(start))
	return nil
}

// newLogger is quiet unless verbose, which enables timings and render debug records.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
