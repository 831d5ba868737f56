// seehuhn.de/go/fractal - fractal generation and rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package escape implements the escape-time iteration z ↦ z² + c used
// for Mandelbrot and Julia sets.
//
// All functions in this package are pure and safe for concurrent use.
package escape

import (
	"math"

	"seehuhn.de/go/fractal"
)

// Iterate applies z ↦ z² + c, starting from z0, until |z| exceeds
// escapeRadius or maxIterations steps have been taken.  It returns the
// number of steps taken and |z|² for the final value of z.
//
// A result of count == maxIterations means that the orbit stayed bounded.
// If |z0| already exceeds the escape radius, count is 0.
func Iterate(c, z0 complex128, maxIterations int, escapeRadius float64) (count int, mag2 float64) {
	r2 := escapeRadius * escapeRadius
	cr, ci := real(c), imag(c)
	zr, zi := real(z0), imag(z0)

	zr2, zi2 := zr*zr, zi*zi
	mag2 = zr2 + zi2
	for count < maxIterations && mag2 <= r2 {
		zi = 2*zr*zi + ci
		zr = zr2 - zi2 + cr
		zr2, zi2 = zr*zr, zi*zi
		mag2 = zr2 + zi2
		count++
	}
	return count, mag2
}

// Smooth returns the fractional iteration count
//
//	count - log₂(log|z| / log R)
//
// for an orbit which escaped after count steps with |z|² = mag2.
// Where the logarithms are undefined, or where the correction would
// raise the value above count (possible for escape radii below 1), the
// discrete count is returned.
func Smooth(count int, mag2, escapeRadius float64) float64 {
	logZ := 0.5 * math.Log(mag2)
	logR := math.Log(escapeRadius)
	if mag2 == 0 || mag2 == 1 || logR == 0 {
		return float64(count)
	}
	nu := float64(count) - math.Log2(logZ/logR)
	if math.IsNaN(nu) || math.IsInf(nu, 0) || nu > float64(count) {
		return float64(count)
	}
	return nu
}

// Value returns the colouring value of the plane point re + i·im:
// the iteration count, refined by [Smooth] if p.Smooth is set.
// Points which do not escape give exactly p.MaxIterations.
//
// For Mandelbrot sets the point is used as c with z0 = 0, for Julia sets
// as z0 with c = p.JuliaC.
func Value(p *fractal.Params, re, im float64) float64 {
	var count int
	var mag2 float64
	if p.Kind == fractal.Julia {
		count, mag2 = Iterate(p.JuliaC, complex(re, im), p.MaxIterations, p.EscapeRadius)
	} else {
		count, mag2 = Iterate(complex(re, im), 0, p.MaxIterations, p.EscapeRadius)
	}
	if count >= p.MaxIterations || !p.Smooth {
		return float64(count)
	}
	return Smooth(count, mag2, p.EscapeRadius)
}
