package render

import (
	"math"
	"math/cmplx"
)

// MapPixel returns the plane coordinate of pixel (x, y) in a width x height image.
// Both axes share the scale derived from the width.
func MapPixel(x, y, width, height int, cx, cy, zoom, baseViewWidth float64) complex128 {
	w := float64(width)
	h := float64(height)
	scale := baseViewWidth / zoom / w

	re := cx + (float64(x)-w/2)*scale
	im := cy + (float64(y)-h/2)*scale
	return complex(re, im)
}

// Orbit is the outcome of one escape-time iteration.
type Orbit struct {
	Escaped bool
	// N is the number of completed steps before the escape test fired.
	N int
	// R2 is |z|^2 at escape.
	R2 float64
	// Z is the escaping orbit value, Deriv its derivative with respect to c.
	// Deriv is only tracked by IterateDeriv.
	Z     complex128
	Deriv complex128
}

// Iterate runs z = z^2 + c from z = 0 until |z|^2 > bailout or maxIter steps.
func Iterate(c complex128, maxIter int, bailout float64) Orbit {
	var zr, zi float64
	cr, ci := real(c), imag(c)
	for n := 0; n < maxIter; n++ {
		zr2, zi2 := zr*zr, zi*zi
		if r2 := zr2 + zi2; r2 > bailout {
			return Orbit{Escaped: true, N: n, R2: r2, Z: complex(zr, zi)}
		}
		zi = 2*zr*zi + ci
		zr = zr2 - zi2 + cr
	}
	return Orbit{N: maxIter}
}

// IterateDeriv is Iterate with the derivative d = 2*z*d + 1 tracked from d = 1.
// radius is compared against |z|, not |z|^2.
func IterateDeriv(c complex128, maxIter int, radius float64) Orbit {
	z := complex(0, 0)
	der := complex(1, 0)
	bailout := radius * radius
	for n := 0; n < maxIter; n++ {
		if r2 := abs2(z); r2 > bailout {
			return Orbit{Escaped: true, N: n, R2: r2, Z: z, Deriv: der}
		}
		der = der*2*z + 1
		z = z*z + c
	}
	return Orbit{N: maxIter}
}

// Normal returns the unit surface normal z/dz of an escaped orbit.
func (o Orbit) Normal() complex128 {
	u := o.Z / o.Deriv
	return u / complex(cmplx.Abs(u), 0)
}

// Smooth returns the continuous iteration count of an escaped orbit,
// (n + 1 - log2(log|z| / ln 2)) / divisor.
func (o Orbit) Smooth(divisor float64) float64 {
	logZn := math.Log(o.R2) * 0.5
	nu := math.Log2(logZn / math.Ln2)
	return (float64(o.N) + 1 - nu) / divisor
}

// Divisor is log2(zoom + offset), or 1 when that is zero or not finite.
// A negative divisor is kept; the smooth values it yields clamp to anchor 0.
func Divisor(zoom, offset float64) float64 {
	d := math.Log2(zoom + offset)
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 1
	}
	return d
}

func abs2(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}
