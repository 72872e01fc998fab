// Package render evaluates the escape-time Mandelbrot map for every pixel of
// an RGB image, colors escaped points through a smoothly interpolated cyclic
// palette and optionally shades them with normal-map lighting.
//
// Rows are independent: a row is a pure function of its index, the view and
// the Config, so any split of the rows over workers produces identical bytes.
package render

import (
	"fmt"
	"runtime"
	"time"

	mandel "github.com/mtraverso3/mandelbrot"
)

// Renderer renders views into RGB buffers of a fixed size.
// It holds no mutable state and is safe for concurrent use.
type Renderer struct {
	cfg     Config
	light   Light
	workers int
}

var _ mandel.RowRenderer = (*Renderer)(nil)

// New returns a Renderer for cfg.
func New(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Renderer{
		cfg:     cfg,
		light:   NewLight(cfg.LightAngle, cfg.HeightFactor, cfg.AmbientLight, cfg.BrightnessBoost),
		workers: workers,
	}, nil
}

// Size implements mandel.RowRenderer.
func (r *Renderer) Size() (width, height int) { return r.cfg.Width, r.cfg.Height }

// Render allocates a width*height*3 buffer and renders v into it.
func (r *Renderer) Render(v mandel.View) ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	buf := make([]byte, r.cfg.Width*r.cfg.Height*3)
	if err := r.RenderRows(buf, v, 0, r.cfg.Height); err != nil {
		return nil, err
	}
	return buf, nil
}

// RenderRows renders rows [y0, y1) of v into dst, which must hold exactly
// (y1-y0)*width*3 bytes. Rows are computed in parallel, every row is written
// by exactly one worker.
func (r *Renderer) RenderRows(dst []byte, v mandel.View, y0, y1 int) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if y0 < 0 || y1 > r.cfg.Height || y0 >= y1 {
		return fmt.Errorf("%w: rows [%d, %d) outside image height %d", mandel.ErrInvalidParameters, y0, y1, r.cfg.Height)
	}
	stride := r.cfg.Width * 3
	if len(dst) != (y1-y0)*stride {
		return fmt.Errorf("%w: buffer holds %d bytes, rows [%d, %d) need %d",
			mandel.ErrInvalidParameters, len(dst), y0, y1, (y1-y0)*stride)
	}

	start := time.Now()
	divisor := r.divisor(v)

	workers := min(r.workers, y1-y0)
	newRowScheduler(y0, y1).run(workers, func(y int) {
		off := (y - y0) * stride
		r.renderRow(dst[off:off+stride], y, v, divisor)
	})

	Logger().Debug("rendered rows",
		"from", y0, "to", y1,
		"width", r.cfg.Width,
		"workers", workers,
		"lit", v.Lit,
		"elapsed", time.Since(start))
	return nil
}

// Pixel returns the color of pixel (x, y) of v.
func (r *Renderer) Pixel(x, y int, v mandel.View) RGB {
	return r.color(r.Coord(x, y, v), v, r.divisor(v))
}

// Coord returns the plane coordinate of pixel (x, y) of v.
func (r *Renderer) Coord(x, y int, v mandel.View) complex128 {
	return MapPixel(x, y, r.cfg.Width, r.cfg.Height, v.CenterX, v.CenterY, v.Zoom, r.cfg.BaseViewWidth)
}

func (r *Renderer) renderRow(row []byte, y int, v mandel.View, divisor float64) {
	for x := 0; x < r.cfg.Width; x++ {
		c := r.color(r.Coord(x, y, v), v, divisor)
		off := x * 3
		row[off] = c.R
		row[off+1] = c.G
		row[off+2] = c.B
	}
}

func (r *Renderer) divisor(v mandel.View) float64 {
	if v.Lit {
		return Divisor(v.Zoom, r.cfg.LitZoomOffset)
	}
	return Divisor(v.Zoom, r.cfg.PlainZoomOffset)
}

func (r *Renderer) color(c complex128, v mandel.View, divisor float64) RGB {
	if !v.Lit {
		o := Iterate(c, r.cfg.MaxIterations, r.cfg.Bailout)
		if !o.Escaped {
			return r.cfg.Interior
		}
		return r.cfg.Palette.At(o.Smooth(divisor))
	}

	o := IterateDeriv(c, r.cfg.MaxIterations, r.cfg.EscapeRadius)
	if !o.Escaped {
		return r.cfg.Interior
	}
	base := r.cfg.Palette.At(o.Smooth(divisor))
	return r.light.Shade(base, r.light.Factor(o.Normal()))
}
