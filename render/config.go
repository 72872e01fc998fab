package render

import (
	"fmt"
	"math"

	mandel "github.com/mtraverso3/mandelbrot"
)

// Config holds every constant of the pipeline. It is passed by value and
// never mutated by the renderer.
type Config struct {
	Width, Height int

	// MaxIterations is the step count after which a point counts as bounded.
	MaxIterations int
	// Bailout is the squared magnitude threshold of the plain variant.
	Bailout float64
	// EscapeRadius is the (unsquared) escape radius of the lit variant.
	EscapeRadius float64
	// BaseViewWidth is the plane width covered by the image at zoom 1.
	BaseViewWidth float64

	// PlainZoomOffset and LitZoomOffset select the smoothing divisor
	// log2(zoom + offset) of each variant.
	PlainZoomOffset float64
	LitZoomOffset   float64

	HeightFactor float64
	// LightAngle is the light direction in degrees.
	LightAngle      float64
	AmbientLight    float64
	BrightnessBoost float64

	Palette Palette
	// Interior is the color of points that never escape.
	Interior RGB

	// Workers is the size of the row worker pool, GOMAXPROCS when <= 0.
	Workers int
}

// DefaultConfig returns the reference constants at 4096x3280.
func DefaultConfig() Config {
	return Config{
		Width:           1024 * 2 * 2,
		Height:          820 * 2 * 2,
		MaxIterations:   35000,
		Bailout:         1e6,
		EscapeRadius:    100,
		BaseViewWidth:   3.0,
		PlainZoomOffset: 0,
		LitZoomOffset:   1,
		HeightFactor:    1.0,
		LightAngle:      45,
		AmbientLight:    0.3,
		BrightnessBoost: 1.3,
		Palette:         DefaultPalette(),
		Interior:        RGB{255, 255, 255},
	}
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", mandel.ErrInvalidParameters, c.Width, c.Height)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations %d", mandel.ErrInvalidParameters, c.MaxIterations)
	}
	if !positive(c.Bailout) || !positive(c.EscapeRadius) || !positive(c.BaseViewWidth) {
		return fmt.Errorf("%w: bailout %v, escape radius %v, view width %v must be positive",
			mandel.ErrInvalidParameters, c.Bailout, c.EscapeRadius, c.BaseViewWidth)
	}
	return nil
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}
