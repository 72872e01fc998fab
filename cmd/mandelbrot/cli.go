package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	mandel "github.com/mtraverso3/mandelbrot"
	"github.com/mtraverso3/mandelbrot/internal/imageio"
	"github.com/mtraverso3/mandelbrot/render"
)

type options struct {
	Output  string
	Resize  bool
	Verbose bool
	Filter  imageio.Filter

	Width, Height int
	MaxIter       int
	Workers       int

	View mandel.View
}

// maxPixels bounds --width * --height so the RGB buffer size cannot overflow.
const maxPixels = 1 << 28

const usage = `usage: mandelbrot [global flags] <command> [flags]

commands:
  preset --location <name> --zoom <multiplier>
  custom -x <real> -y <imag> -z <zoom>

presets: %s

global flags:
`

func parseArgs(args []string, out io.Writer) (options, error) {
	def := render.DefaultConfig()
	var (
		opts     options
		lighting bool
		filter   string
	)

	fs := flag.NewFlagSet("mandelbrot", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, usage, strings.Join(mandel.PresetNames(), ", "))
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.Output, "output", "output.png", "output file `path`")
	fs.BoolVar(&opts.Resize, "resize", false, "also write a half size copy suffixed _resized")
	fs.BoolVar(&opts.Verbose, "verbose", false, "print timings")
	fs.BoolVar(&lighting, "lighting", true, "shade with the normal map")
	fs.StringVar(&filter, "filter", string(imageio.Lanczos), "resize filter: lanczos or catmullrom")
	fs.IntVar(&opts.Width, "width", def.Width, "image width in pixels")
	fs.IntVar(&opts.Height, "height", def.Height, "image height in pixels")
	fs.IntVar(&opts.MaxIter, "max-iter", def.MaxIterations, "iterations before a point counts as inside the set")
	fs.IntVar(&opts.Workers, "workers", 0, "render goroutines, 0 for GOMAXPROCS")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	f, err := imageio.ParseFilter(filter)
	if err != nil {
		return options{}, err
	}
	opts.Filter = f
	if opts.Width <= 0 || opts.Height <= 0 || opts.Width > maxPixels/opts.Height {
		return options{}, fmt.Errorf("%w: image size %dx%d, limit %d pixels", mandel.ErrInvalidParameters, opts.Width, opts.Height, maxPixels)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return options{}, fmt.Errorf("%w: missing command", mandel.ErrInvalidParameters)
	}

	switch cmd, cmdArgs := rest[0], rest[1:]; cmd {
	case "preset":
		opts.View, err = parsePreset(cmdArgs, out, lighting)
	case "custom":
		opts.View, err = parseCustom(cmdArgs, out, lighting)
	default:
		fs.Usage()
		return options{}, fmt.Errorf("%w: unknown command %q", mandel.ErrInvalidParameters, cmd)
	}
	if err != nil {
		return options{}, err
	}
	if err := opts.View.Validate(); err != nil {
		return options{}, err
	}
	return opts, nil
}

func parsePreset(args []string, out io.Writer, lit bool) (mandel.View, error) {
	fs := flag.NewFlagSet("preset", flag.ContinueOnError)
	fs.SetOutput(out)
	location := fs.String("location", "mandelbrot", "preset `name`: "+strings.Join(mandel.PresetNames(), ", "))
	zoom := fs.Float64("zoom", 1, "`multiplier` applied to the preset zoom")
	if err := fs.Parse(args); err != nil {
		return mandel.View{}, err
	}
	if err := noExtraArgs(fs); err != nil {
		return mandel.View{}, err
	}

	p, err := mandel.LookupPreset(*location)
	if err != nil {
		return mandel.View{}, err
	}
	return p.View(*zoom, lit), nil
}

func parseCustom(args []string, out io.Writer, lit bool) (mandel.View, error) {
	fs := flag.NewFlagSet("custom", flag.ContinueOnError)
	fs.SetOutput(out)
	x := fs.Float64("x", 0, "center real part")
	y := fs.Float64("y", 0, "center imaginary part")
	z := fs.Float64("z", 1, "zoom")
	if err := fs.Parse(args); err != nil {
		return mandel.View{}, err
	}
	if err := noExtraArgs(fs); err != nil {
		return mandel.View{}, err
	}
	return mandel.View{CenterX: *x, CenterY: *y, Zoom: *z, Lit: lit}, nil
}

func noExtraArgs(fs *flag.FlagSet) error {
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments to %s: %q", mandel.ErrInvalidParameters, fs.Name(), fs.Args())
	}
	return nil
}

// isHelp reports whether err only asked for the usage text.
func isHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
