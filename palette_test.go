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

package fractal

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestColorForBoundaries(t *testing.T) {
	for _, name := range PaletteNames() {
		p, err := LookupPalette(name)
		if err != nil {
			t.Fatal(err)
		}
		first := p.Stops()[0].Color
		if got := ColorFor(0, 100, p); got != first {
			t.Errorf("%s: ColorFor(0) = %v, want first stop %v", name, got, first)
		}
		if got := ColorFor(100, 100, p); got != Interior {
			t.Errorf("%s: ColorFor(max) = %v, want interior", name, got)
		}
		if got := ColorFor(250, 100, p); got != Interior {
			t.Errorf("%s: ColorFor(>max) = %v, want interior", name, got)
		}
	}
}

func TestPaletteAt(t *testing.T) {
	p, err := NewPalette("test",
		Stop{0, color.RGBA{R: 0, G: 100, B: 200}},
		Stop{0.5, color.RGBA{R: 100, G: 100, B: 0}},
		Stop{1, color.RGBA{R: 255, G: 0, B: 0}},
	)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		t    float64
		want color.RGBA
	}{
		{-1, color.RGBA{0, 100, 200, 255}},
		{0, color.RGBA{0, 100, 200, 255}},
		{0.25, color.RGBA{50, 100, 100, 255}},
		{0.5, color.RGBA{100, 100, 0, 255}},
		{0.75, color.RGBA{178, 50, 0, 255}},
		{1, color.RGBA{255, 0, 0, 255}},
		{7, color.RGBA{255, 0, 0, 255}},
		{math.NaN(), color.RGBA{0, 100, 200, 255}},
	}
	for _, c := range cases {
		if got := p.At(c.t); got != c.want {
			t.Errorf("At(%g) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestNewPaletteInvalid(t *testing.T) {
	red := color.RGBA{R: 255}
	cases := map[string][]Stop{
		"empty":      nil,
		"single":     {{0, red}},
		"no zero":    {{0.1, red}, {1, red}},
		"no one":     {{0, red}, {0.9, red}},
		"decreasing": {{0, red}, {0.6, red}, {0.4, red}, {1, red}},
		"repeated":   {{0, red}, {0.5, red}, {0.5, red}, {1, red}},
		"nan":        {{0, red}, {math.NaN(), red}, {1, red}},
	}
	for name, stops := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewPalette(name, stops...)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("got %v, want invalid parameter", err)
			}
		})
	}
}

func TestRandomPalette(t *testing.T) {
	a := RandomPalette(42)
	b, err := LookupPalette(a.Name())
	if err != nil {
		t.Fatal(err)
	}
	if a.Name() != "random:42" {
		t.Errorf("name = %q", a.Name())
	}
	if !a.equal(b) {
		t.Error("palette not reproducible from its id")
	}
	if c := RandomPalette(43); a.equal(c) {
		t.Error("different seeds gave the same palette")
	}
	if n := len(a.Stops()); n != randomStops {
		t.Errorf("got %d stops, want %d", n, randomStops)
	}
}

func TestLookupPaletteUnknown(t *testing.T) {
	for _, id := range []string{"", "plaid", "random:", "random:x"} {
		if _, err := LookupPalette(id); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("LookupPalette(%q): got %v", id, err)
		}
	}
}

func TestBandRange(t *testing.T) {
	for _, n := range []int{1, 5, 31, 32, 33, 100, 729, 1 << 12} {
		next := 0
		for band := range CurveBands {
			from, to := BandRange(band, n)
			if from != next {
				t.Fatalf("n=%d band %d starts at %d, want %d", n, band, from, next)
			}
			for i := from; i < to; i++ {
				if b := Band(i, n); b != band {
					t.Errorf("n=%d: primitive %d is in band %d, range says %d", n, i, b, band)
				}
			}
			next = to
		}
		if next != n {
			t.Errorf("n=%d: bands cover %d primitives", n, next)
		}
	}
}
