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

package escape

import (
	"math"
	"math/rand/v2"
	"testing"

	"seehuhn.de/go/fractal"
)

func TestOriginNeverEscapes(t *testing.T) {
	for _, n := range []int{1, 2, 10, 100, 5000} {
		count, mag2 := Iterate(0, 0, n, 2)
		if count != n {
			t.Errorf("maxIterations=%d: count=%d", n, count)
		}
		if mag2 != 0 {
			t.Errorf("maxIterations=%d: |z|²=%g", n, mag2)
		}
	}
}

func TestFastDivergence(t *testing.T) {
	count, mag2 := Iterate(complex(10, 10), 0, 100, 2)
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if mag2 != 200 {
		t.Errorf("|z|² = %g, want 200", mag2)
	}
}

func TestStartOutside(t *testing.T) {
	count, mag2 := Iterate(complex(-0.7, 0.27), complex(3, 0), 100, 2)
	if count != 0 || mag2 != 9 {
		t.Errorf("got (%d, %g), want (0, 9)", count, mag2)
	}
}

func TestKnownOrbits(t *testing.T) {
	cases := []struct {
		c    complex128
		max  int
		want int
	}{
		{-1, 50, 50},              // period 2 cycle 0, -1, 0, ...
		{-2, 50, 50},              // tip of the antenna, z stays at 2
		{complex(0, 1), 50, 50},   // pre-periodic
		{0.25, 1000, 1000},        // cusp of the main cardioid
		{1, 50, 3},                // 1, 2, 5
		{complex(0.5, 0.5), 100, 5},
	}
	for _, c := range cases {
		count, _ := Iterate(c.c, 0, c.max, 2)
		if count != c.want {
			t.Errorf("c=%v: count=%d, want %d", c.c, count, c.want)
		}
	}
}

func TestBounded(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 2000 {
		c := complex(rng.Float64()*4-2.5, rng.Float64()*3-1.5)
		maxIter := 1 + rng.IntN(200)
		count, mag2 := Iterate(c, 0, maxIter, 2)
		if count < 0 || count > maxIter {
			t.Fatalf("c=%v: count %d outside [0, %d]", c, count, maxIter)
		}
		if count < maxIter && !(mag2 > 4) {
			t.Fatalf("c=%v: stopped at %d with |z|²=%g", c, count, mag2)
		}
	}
}

func TestSmooth(t *testing.T) {
	// |z| = R^2 gives log₂(2) = 1
	if got := Smooth(7, 16, 2); math.Abs(got-6) > 1e-12 {
		t.Errorf("Smooth(7, 16, 2) = %g, want 6", got)
	}

	degenerate := []struct {
		mag2, radius float64
	}{
		{0, 2},
		{1, 2},
		{4, 1},
		{math.Inf(1), 2},
		{math.NaN(), 2},
		{0.25, 2},
	}
	for _, d := range degenerate {
		if got := Smooth(5, d.mag2, d.radius); got != 5 {
			t.Errorf("Smooth(5, %g, %g) = %g, want 5", d.mag2, d.radius, got)
		}
	}
}

func TestValue(t *testing.T) {
	p := fractal.DefaultParams(fractal.Mandelbrot)
	if v := Value(&p, 0, 0); v != float64(p.MaxIterations) {
		t.Errorf("origin: %g", v)
	}
	if v := Value(&p, 10, 10); v != 1 {
		t.Errorf("10+10i: %g", v)
	}

	p.Smooth = true
	if v := Value(&p, -0.5, 0); v != float64(p.MaxIterations) {
		t.Errorf("smooth interior: %g", v)
	}
	v := Value(&p, 0.5, 0.5)
	if !(v < 5) || !(v > 3) {
		t.Errorf("smooth value %g not in (3, 5)", v)
	}

	j := fractal.DefaultParams(fractal.Julia)
	j.JuliaC = 0
	// for c = 0 the Julia set is the unit circle
	if v := Value(&j, 0.5, 0.5); v != float64(j.MaxIterations) {
		t.Errorf("inside unit disk: %g", v)
	}
	if v := Value(&j, 1.1, 0); v == float64(j.MaxIterations) {
		t.Error("outside unit disk did not escape")
	}
}

// TestSmallEscapeRadius checks that escaped points never reach the
// interior value when the escape radius is below 1.
func TestSmallEscapeRadius(t *testing.T) {
	p := fractal.DefaultParams(fractal.Mandelbrot)
	p.EscapeRadius = 0.9
	p.Smooth = true

	count, mag2 := Iterate(complex(-0.27, -0.632), 0, p.MaxIterations, p.EscapeRadius)
	if count >= p.MaxIterations || mag2 >= 1 {
		t.Fatalf("count=%d |z|²=%g, want an escape inside the unit disk", count, mag2)
	}
	if v := Value(&p, -0.27, -0.632); v > float64(count) {
		t.Errorf("smooth value %g above escape count %d", v, count)
	}
	if c := fractal.ColorFor(Value(&p, -0.27, -0.632), p.MaxIterations, p.Palette); c == fractal.Interior {
		t.Error("escaped point has the interior colour")
	}

	rng := rand.New(rand.NewPCG(3, 4))
	for _, radius := range []float64{0.3, 0.9, 0.999} {
		for range 2000 {
			re, im := 4*rng.Float64()-2, 4*rng.Float64()-2
			count, mag2 := Iterate(complex(re, im), 0, p.MaxIterations, radius)
			if count >= p.MaxIterations {
				continue
			}
			if v := Smooth(count, mag2, radius); v > float64(count) {
				t.Fatalf("R=%g, c=%g%+gi: Smooth gives %g for count %d", radius, re, im, v, count)
			}
		}
	}
}
