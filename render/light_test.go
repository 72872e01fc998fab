package render

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestLightFactor(t *testing.T) {
	l := NewLight(45, 1.0, 0.3, 1.3)

	tests := []struct {
		name string
		u    complex128
		want float64
	}{
		{"facing the light", l.Dir, 1},
		{"away from the light", -l.Dir, 0.3},
		{"perpendicular", l.Dir * 1i, 0.65},
		{"undefined normal", cmplx.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Factor(tt.u); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Factor(%v) = %v, want %v", tt.u, got, tt.want)
			}
		})
	}
}

func TestLightFactorClamped(t *testing.T) {
	// no ambient floor and no height offset push the raw value out of [0, 1]
	l := Light{Dir: 1, HeightFactor: 0, Ambient: -0.5, Boost: 1}
	for deg := 0; deg < 360; deg += 15 {
		f := l.Factor(cmplx.Rect(1, float64(deg)*math.Pi/180))
		if f < 0 || f > 1 {
			t.Errorf("Factor at %d degrees = %v, want within [0, 1]", deg, f)
		}
	}
}

func TestLightDirection(t *testing.T) {
	l := NewLight(45, 1, 0.3, 1.3)
	want := complex(math.Sqrt2/2, math.Sqrt2/2)
	if cmplx.Abs(l.Dir-want) > 1e-12 {
		t.Errorf("NewLight(45).Dir = %v, want %v", l.Dir, want)
	}
}

func TestLightShade(t *testing.T) {
	l := NewLight(45, 1.0, 0.3, 1.3)

	tests := []struct {
		name   string
		base   RGB
		factor float64
		want   RGB
	}{
		{"boosted", RGB{100, 0, 10}, 1, RGB{130, 0, 13}},
		{"saturates instead of wrapping", RGB{255, 250, 200}, 1, RGB{255, 255, 255}},
		{"half lit", RGB{200, 100, 0}, 0.5, RGB{130, 65, 0}},
		{"dark", RGB{200, 100, 50}, 0, RGB{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Shade(tt.base, tt.factor); got != tt.want {
				t.Errorf("Shade(%v, %v) = %v, want %v", tt.base, tt.factor, got, tt.want)
			}
		})
	}
}

func TestLightShadeMonotonic(t *testing.T) {
	l := NewLight(45, 1.0, 0.3, 1.3)
	p := DefaultPalette()
	for _, base := range p {
		prev := RGB{}
		for f := 0.0; f <= 1.0; f += 0.05 {
			got := l.Shade(base, f)
			if got.R < prev.R || got.G < prev.G || got.B < prev.B {
				t.Errorf("Shade(%v, %v) = %v, darker than %v at a lower factor", base, f, got, prev)
			}
			prev = got
		}
	}
}
