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
	"image/color"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Stop is one colour stop of a palette.
type Stop struct {
	Pos   float64
	Color color.RGBA
}

// Palette is a piecewise linear colour ramp over [0, 1].
// Palettes are immutable once constructed.
type Palette struct {
	name  string
	stops []Stop
}

// NewPalette returns a palette with the given stops.  The stops must start
// at position 0, end at position 1 and be strictly increasing in between.
// Alpha values of the stop colours are ignored.
func NewPalette(name string, stops ...Stop) (*Palette, error) {
	if len(stops) < 2 {
		return nil, InvalidParameter("palette", len(stops), "needs at least two stops")
	}
	for i, s := range stops {
		if math.IsNaN(s.Pos) {
			return nil, InvalidParameter("palette stop", s.Pos, "position is NaN")
		}
		if i > 0 && !(s.Pos > stops[i-1].Pos) {
			return nil, InvalidParameter("palette stop", s.Pos, "positions must be strictly increasing")
		}
	}
	if stops[0].Pos != 0 {
		return nil, InvalidParameter("palette stop", stops[0].Pos, "first stop must be at 0")
	}
	if last := stops[len(stops)-1].Pos; last != 1 {
		return nil, InvalidParameter("palette stop", last, "last stop must be at 1")
	}

	p := &Palette{name: name, stops: make([]Stop, len(stops))}
	for i, s := range stops {
		s.Color.A = 0xFF
		p.stops[i] = s
	}
	return p, nil
}

func mustPalette(name string, stops ...Stop) *Palette {
	p, err := NewPalette(name, stops...)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the palette id.  Built-in and random palettes can be
// recovered from their id using [LookupPalette].
func (p *Palette) Name() string {
	return p.name
}

// Stops returns a copy of the colour stops.
func (p *Palette) Stops() []Stop {
	res := make([]Stop, len(p.stops))
	copy(res, p.stops)
	return res
}

// At returns the colour at position t.  Values outside [0, 1] are clamped.
func (p *Palette) At(t float64) color.RGBA {
	stops := p.stops
	if !(t > 0) {
		return stops[0].Color
	}
	if t >= 1 {
		return stops[len(stops)-1].Color
	}

	i := 1
	for stops[i].Pos < t {
		i++
	}
	a, b := stops[i-1], stops[i]
	u := (t - a.Pos) / (b.Pos - a.Pos)
	return color.RGBA{
		R: lerp(a.Color.R, b.Color.R, u),
		G: lerp(a.Color.G, b.Color.G, u),
		B: lerp(a.Color.B, b.Color.B, u),
		A: 0xFF,
	}
}

func lerp(a, b uint8, u float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*u
	return uint8(math.Round(v))
}

// Interior is the colour of points which never escape.
var Interior = color.RGBA{A: 0xFF}

// CurveBackground is the canvas colour of curve renders.
var CurveBackground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// ColorFor maps a (possibly fractional) iteration count to a colour.
// Counts of maxIterations or more give [Interior], independent of the
// palette.
func ColorFor(raw float64, maxIterations int, p *Palette) color.RGBA {
	if raw >= float64(maxIterations) {
		return Interior
	}
	return p.At(raw / float64(maxIterations))
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// Built-in palettes.
var (
	// Rainbow runs once around the hue circle at full saturation.
	Rainbow = mustPalette("rainbow",
		Stop{0, rgb(255, 0, 0)},
		Stop{1.0 / 6, rgb(255, 255, 0)},
		Stop{2.0 / 6, rgb(0, 255, 0)},
		Stop{3.0 / 6, rgb(0, 255, 255)},
		Stop{4.0 / 6, rgb(0, 0, 255)},
		Stop{5.0 / 6, rgb(255, 0, 255)},
		Stop{1, rgb(255, 0, 0)},
	)

	// Fire stays dark for slow escapes and then runs through red and
	// yellow to white.
	Fire = mustPalette("fire",
		Stop{0, rgb(0, 0, 0)},
		Stop{0.25, rgb(0, 0, 0)},
		Stop{0.5, rgb(255, 0, 0)},
		Stop{0.75, rgb(255, 255, 0)},
		Stop{1, rgb(255, 255, 255)},
	)

	Ocean = mustPalette("ocean",
		Stop{0, rgb(0, 0, 0)},
		Stop{1, rgb(0, 127, 255)},
	)

	Grayscale = mustPalette("grayscale",
		Stop{0, rgb(0, 0, 0)},
		Stop{1, rgb(255, 255, 255)},
	)
)

var builtin = map[string]*Palette{
	"rainbow":   Rainbow,
	"fire":      Fire,
	"ocean":     Ocean,
	"grayscale": Grayscale,
}

// PaletteNames returns the ids of the built-in palettes.
func PaletteNames() []string {
	return []string{"rainbow", "fire", "ocean", "grayscale"}
}

const (
	randomPrefix = "random:"
	randomStops  = 6
)

// RandomPalette returns a palette with randomly chosen colours.  The same
// seed always gives the same palette, and the seed is recorded in the
// palette id.
func RandomPalette(seed uint64) *Palette {
	rng := rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))
	stops := make([]Stop, randomStops)
	for i := range stops {
		stops[i] = Stop{
			Pos: float64(i) / float64(randomStops-1),
			Color: rgb(
				uint8(rng.IntN(256)),
				uint8(rng.IntN(256)),
				uint8(rng.IntN(256)),
			),
		}
	}
	return mustPalette(randomPrefix+strconv.FormatUint(seed, 10), stops...)
}

// LookupPalette returns the palette with the given id.  Ids are either
// the names of built-in palettes or of the form "random:<seed>".
func LookupPalette(id string) (*Palette, error) {
	if p, ok := builtin[id]; ok {
		return p, nil
	}
	if s, ok := strings.CutPrefix(id, randomPrefix); ok {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err == nil {
			return RandomPalette(seed), nil
		}
	}
	return nil, InvalidParameter("palette", id, "unknown palette id")
}

// CurveBands is the number of colour bands along a curve.
const CurveBands = 32

// Band returns the colour band of primitive i out of n.
func Band(i, n int) int {
	return i * CurveBands / n
}

// BandColor returns the colour of the given band of a curve.
func BandColor(p *Palette, band int) color.RGBA {
	return p.At((float64(band) + 0.5) / CurveBands)
}

// BandRange returns the range [from, to) of primitives out of n which
// make up the given colour band.  The range is empty if n < CurveBands
// and the band has no primitives.
func BandRange(band, n int) (from, to int) {
	from = (band*n + CurveBands - 1) / CurveBands
	to = ((band+1)*n + CurveBands - 1) / CurveBands
	return from, to
}
