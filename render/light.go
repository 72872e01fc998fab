package render

import (
	"math"
)

// Light is a directional light over the set's implicit height field.
type Light struct {
	Dir          complex128
	HeightFactor float64
	Ambient      float64
	Boost        float64
}

// NewLight returns a light shining from angle degrees.
func NewLight(angle, heightFactor, ambient, boost float64) Light {
	rad := angle * 2 * math.Pi / 360
	return Light{
		Dir:          complex(math.Cos(rad), math.Sin(rad)),
		HeightFactor: heightFactor,
		Ambient:      ambient,
		Boost:        boost,
	}
}

// Factor returns the brightness multiplier in [0, 1] for unit normal u.
// An undefined normal gives 0.
func (l Light) Factor(u complex128) float64 {
	t := real(u)*real(l.Dir) + imag(u)*imag(l.Dir) + l.HeightFactor
	t /= 1 + l.HeightFactor

	f := t*(1-l.Ambient) + l.Ambient
	switch {
	case !(f > 0):
		return 0
	case f > 1:
		return 1
	}
	return f
}

// Shade scales base by factor and the brightness boost, saturating at 255.
func (l Light) Shade(base RGB, factor float64) RGB {
	k := factor * l.Boost
	return RGB{
		R: clampByte(float64(base.R) * k),
		G: clampByte(float64(base.G) * k),
		B: clampByte(float64(base.B) * k),
	}
}
