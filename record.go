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

import "image/color"

// Record is the serialisable form of [Params], for storing render settings
// outside the engine.  It encodes to JSON.
type Record struct {
	Kind          Kind         `json:"kind"`
	MaxIterations int          `json:"max_iterations,omitempty"`
	EscapeRadius  float64      `json:"escape_radius,omitempty"`
	JuliaC        *Complex     `json:"julia_c,omitempty"`
	Depth         int          `json:"depth,omitempty"`
	Palette       string       `json:"palette,omitempty"`
	Stops         []StopRecord `json:"stops,omitempty"`
	Smooth        bool         `json:"smooth,omitempty"`
	Filled        bool         `json:"filled,omitempty"`
	LineWidth     float64      `json:"line_width,omitempty"`
}

// Complex is a complex number in JSON form.
type Complex struct {
	Real float64 `json:"real"`
	Imag float64 `json:"imag"`
}

// StopRecord is a palette stop in JSON form.
type StopRecord struct {
	Pos float64  `json:"pos"`
	RGB [3]uint8 `json:"rgb"`
}

// customPalette is the palette id used for palettes given by their stops.
const customPalette = "custom"

// Record converts p into its serialisable form.
func (p Params) Record() (Record, error) {
	if err := p.Validate(); err != nil {
		return Record{}, err
	}

	r := Record{
		Kind:   p.Kind,
		Smooth: p.Smooth,
	}
	if p.Kind.IsEscapeTime() {
		r.MaxIterations = p.MaxIterations
		r.EscapeRadius = p.EscapeRadius
		if p.Kind == Julia {
			r.JuliaC = &Complex{Real: real(p.JuliaC), Imag: imag(p.JuliaC)}
		}
	} else {
		r.Depth = p.Depth
		r.LineWidth = p.LineWidth
		r.Filled = p.Filled && p.Kind == Sierpinski
	}

	if q, err := LookupPalette(p.Palette.Name()); err == nil && q.equal(p.Palette) {
		r.Palette = p.Palette.Name()
	} else {
		for _, s := range p.Palette.stops {
			r.Stops = append(r.Stops, StopRecord{
				Pos: s.Pos,
				RGB: [3]uint8{s.Color.R, s.Color.G, s.Color.B},
			})
		}
	}
	return r, nil
}

// Params converts r back into render parameters.  Absent iteration
// settings and palette take their values from [DefaultParams].
func (r Record) Params() (Params, error) {
	p := DefaultParams(r.Kind)
	if r.MaxIterations != 0 {
		p.MaxIterations = r.MaxIterations
	}
	if r.EscapeRadius != 0 {
		p.EscapeRadius = r.EscapeRadius
	}
	if r.JuliaC != nil {
		p.JuliaC = complex(r.JuliaC.Real, r.JuliaC.Imag)
	}
	if r.Kind.IsCurve() {
		p.Depth = r.Depth
	}
	p.Smooth = r.Smooth
	p.Filled = r.Filled
	p.LineWidth = r.LineWidth

	switch {
	case len(r.Stops) > 0:
		stops := make([]Stop, len(r.Stops))
		for i, s := range r.Stops {
			stops[i] = Stop{Pos: s.Pos, Color: color.RGBA{R: s.RGB[0], G: s.RGB[1], B: s.RGB[2], A: 0xFF}}
		}
		pal, err := NewPalette(customPalette, stops...)
		if err != nil {
			return Params{}, err
		}
		p.Palette = pal
	case r.Palette != "":
		pal, err := LookupPalette(r.Palette)
		if err != nil {
			return Params{}, err
		}
		p.Palette = pal
	}

	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func (p *Palette) equal(other *Palette) bool {
	if len(p.stops) != len(other.stops) {
		return false
	}
	for i, s := range p.stops {
		if s != other.stops[i] {
			return false
		}
	}
	return true
}
