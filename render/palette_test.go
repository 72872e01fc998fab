package render

import (
	"math"
	"testing"
)

func TestPaletteLookupCyclic(t *testing.T) {
	p := DefaultPalette()
	for k := 0; k < 100; k++ {
		if p.Lookup(k) != p.Lookup(k+16) {
			t.Errorf("Lookup(%d) = %v, Lookup(%d) = %v, want equal", k, p.Lookup(k), k+16, p.Lookup(k+16))
		}
	}
	if got := p.Lookup(-1); got != p[15] {
		t.Errorf("Lookup(-1) = %v, want %v", got, p[15])
	}
}

func TestDefaultPaletteIsACopy(t *testing.T) {
	p := DefaultPalette()
	p[0] = RGB{1, 2, 3}
	if DefaultPalette()[0] == p[0] {
		t.Error("DefaultPalette() shares storage with its callers")
	}
}

func TestLerpBoundaries(t *testing.T) {
	p := DefaultPalette()
	for i := range p {
		c1, c2 := p.Lookup(i), p.Lookup(i+1)
		if got := Lerp(c1, c2, 0); got != c1 {
			t.Errorf("Lerp(%v, %v, 0) = %v, want %v", c1, c2, got, c1)
		}
		got := Lerp(c1, c2, 1)
		if !near(got.R, c2.R) || !near(got.G, c2.G) || !near(got.B, c2.B) {
			t.Errorf("Lerp(%v, %v, 1) = %v, want %v within 1", c1, c2, got, c2)
		}
	}
}

func TestLerpTruncates(t *testing.T) {
	got := Lerp(RGB{25, 7, 26}, RGB{9, 1, 47}, 0.5)
	want := RGB{17, 4, 36}
	if got != want {
		t.Errorf("Lerp(..., 0.5) = %v, want %v", got, want)
	}
}

func TestPaletteAt(t *testing.T) {
	p := DefaultPalette()
	tests := []struct {
		name string
		v    float64
		want RGB
	}{
		{"zero", 0, p[0]},
		{"anchor", 3, p[3]},
		{"halfway", 1.5, RGB{17, 4, 36}},
		{"wraps", 17, p[1]},
		{"last to first", 15.5, Lerp(p[15], p[0], 0.5)},
		{"huge", 16e9 + 2, p[2]},
		// only reachable for near-zero counts, clamped rather than wrapped
		{"negative", -3.7, p[0]},
		{"nan", math.NaN(), p[0]},
		{"inf", math.Inf(1), p[0]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.At(tt.v); got != tt.want {
				t.Errorf("At(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestClampByte(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-5, 0},
		{0, 0},
		{12.9, 12},
		{254.99, 254},
		{255, 255},
		{1000, 255},
		{math.NaN(), 0},
		{math.Inf(1), 255},
	}
	for _, tt := range tests {
		if got := clampByte(tt.in); got != tt.want {
			t.Errorf("clampByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}
