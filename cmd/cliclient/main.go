// cliclient asks a render server for one view over a websocket, shows the
// progress while row bands arrive and saves the result as a PNG file.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/mtraverso3/mandelbrot/internal/imageio"
	"github.com/mtraverso3/mandelbrot/internal/wire"
	"github.com/mtraverso3/mandelbrot/render"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("FATAL", "err", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var req wire.Request
	fs := flag.NewFlagSet("cliclient", flag.ContinueOnError)
	url := fs.String("server", "ws://localhost:8080/ws", "server websocket `url`")
	output := fs.String("output", "mandel.png", "output file `path`")
	fs.StringVar(&req.Preset, "preset", "", "preset name, overrides -x -y -z")
	fs.Float64Var(&req.Multiplier, "multiplier", 1, "zoom multiplier for -preset")
	fs.Float64Var(&req.X, "x", -0.75, "center real part")
	fs.Float64Var(&req.Y, "y", 0, "center imaginary part")
	fs.Float64Var(&req.Zoom, "z", 1, "zoom")
	fs.BoolVar(&req.Lit, "lighting", true, "shade with the normal map")
	fs.IntVar(&req.Width, "width", 1920, "image width")
	fs.IntVar(&req.Height, "height", 1080, "image height")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// reject locally what the server would reject
	if _, err := req.View(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("requesting image", "server", *url, "request", req)
	canvas, err := fetch(ctx, *url, req, logProgress(slog.Default()))
	if err != nil {
		return err
	}

	if err := imageio.SavePNG(*output, render.NewImage(canvas.Pix, canvas.Width, canvas.Height)); err != nil {
		return err
	}
	slog.Info("fully rendered image saved", "path", *output)
	return nil
}

// logProgress reports every received band with the finished fraction.
func logProgress(l *slog.Logger) func(progress float32) {
	return func(p float32) {
		l.Info("rows received", "finished", p)
	}
}
