package mandel

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrInvalidPreset is returned for preset names missing from the preset table.
	ErrInvalidPreset = errors.New("invalid preset")
	// ErrInvalidParameters is returned for zoom, center or dimensions that cannot be rendered.
	ErrInvalidParameters = errors.New("invalid parameters")
	// ErrIO wraps image encode and write failures.
	ErrIO = errors.New("io failure")
)

// View selects the part of the complex plane to render
type View struct {
	CenterX, CenterY float64
	Zoom             float64
	// Lit selects the derivative-tracking variant with normal-map lighting
	Lit bool
}

// Validate rejects views that would make the coordinate mapping degenerate.
func (v View) Validate() error {
	if math.IsNaN(v.Zoom) || math.IsInf(v.Zoom, 0) || v.Zoom <= 0 {
		return fmt.Errorf("%w: zoom must be positive and finite, got %v", ErrInvalidParameters, v.Zoom)
	}
	if math.IsNaN(v.CenterX) || math.IsInf(v.CenterX, 0) || math.IsNaN(v.CenterY) || math.IsInf(v.CenterY, 0) {
		return fmt.Errorf("%w: center must be finite, got (%v, %v)", ErrInvalidParameters, v.CenterX, v.CenterY)
	}
	return nil
}

// Preset is a named landmark in the Mandelbrot set
type Preset struct {
	Name    string  `json:"name"`
	CenterX float64 `json:"x"`
	CenterY float64 `json:"y"`
	// Zoom is the base zoom, multiplied by the user supplied zoom multiplier
	Zoom float64 `json:"zoom"`
}

// View returns the view of the preset with its base zoom scaled by multiplier.
func (p Preset) View(multiplier float64, lit bool) View {
	return View{CenterX: p.CenterX, CenterY: p.CenterY, Zoom: p.Zoom * multiplier, Lit: lit}
}

// Classic landmarks
var presets = map[string]Preset{
	// Whole set, main cardioid centered
	"mandelbrot": {Name: "mandelbrot", CenterX: -0.75, CenterY: 0.0, Zoom: 1.0},

	// Minibrot on the western antenna region
	"mini-mandelbrot": {Name: "mini-mandelbrot", CenterX: -1.249559196, CenterY: 0.030466443, Zoom: 1.73e6},

	// Spiral arms next to the same minibrot
	"spiral": {Name: "spiral", CenterX: -1.2494989, CenterY: 0.0303330, Zoom: 4.437e4},

	// Fourfold spiral in the upper-left bulb filaments
	"quad-spiral": {Name: "quad-spiral", CenterX: -4.621603e-1, CenterY: -5.823998e-1, Zoom: 2.633507e7},
}

// LookupPreset returns the preset called name.
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrInvalidPreset, name)
	}
	return p, nil
}

// Presets returns all presets sorted by name.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// PresetNames returns the sorted preset names.
func PresetNames() []string {
	ps := Presets()
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}
