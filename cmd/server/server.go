// server renders views on request: one-shot PNGs over HTTP and progressive
// row bands over a websocket.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	mandel "github.com/mtraverso3/mandelbrot"
	"github.com/mtraverso3/mandelbrot/internal/wire"
	"github.com/mtraverso3/mandelbrot/render"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("run", "err", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", ":8080", "listen address")
	band := fs.Int("band", 64, "rows per streamed frame")
	maxPixels := fs.Int("max-pixels", 4096*3280, "largest image a request may ask for")
	maxIter := fs.Int("max-iter", render.DefaultConfig().MaxIterations, "iterations before a point counts as inside the set")
	workers := fs.Int("workers", 0, "render goroutines per request, 0 for GOMAXPROCS")
	verbose := fs.Bool("verbose", false, "log every render")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	render.SetLogger(logger)

	cfg := render.DefaultConfig()
	cfg.MaxIterations = *maxIter
	cfg.Workers = *workers

	s, err := newServer(cfg, *band, *maxPixels, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	httpServer := webServer(*addr, s)
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", *addr)
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("httpServer: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// server holds the settings shared by all requests
type server struct {
	base      render.Config
	band      int
	maxPixels int
	log       *slog.Logger
}

// default request size, when a request leaves it out
const defaultWidth, defaultHeight = 1920, 1080

func newServer(base render.Config, band, maxPixels int, logger *slog.Logger) (*server, error) {
	if band <= 0 || maxPixels <= 0 {
		return nil, fmt.Errorf("%w: band %d, max pixels %d", mandel.ErrInvalidParameters, band, maxPixels)
	}
	return &server{base: base, band: band, maxPixels: maxPixels, log: logger}, nil
}

// prepare resolves req into a renderer sized for it and the view to render.
func (s *server) prepare(req wire.Request) (*render.Renderer, mandel.View, error) {
	v, err := req.View()
	if err != nil {
		return nil, mandel.View{}, err
	}

	w, h := req.Width, req.Height
	if w == 0 && h == 0 {
		w, h = defaultWidth, defaultHeight
	}
	if w <= 0 || h <= 0 || w > s.maxPixels/h {
		return nil, mandel.View{}, fmt.Errorf("%w: image size %dx%d, limit %d pixels", mandel.ErrInvalidParameters, w, h, s.maxPixels)
	}

	cfg := s.base
	cfg.Width, cfg.Height = w, h
	r, err := render.New(cfg)
	if err != nil {
		return nil, mandel.View{}, err
	}
	return r, v, nil
}

// isClientError reports whether err was caused by the request.
func isClientError(err error) bool {
	return errors.Is(err, mandel.ErrInvalidParameters) || errors.Is(err, mandel.ErrInvalidPreset)
}
