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

package presets

import (
	"seehuhn.de/go/fractal"
	"seehuhn.de/go/fractal/curve"
	"seehuhn.de/go/fractal/viewport"
)

func sierpinski(depth int, filled bool) fractal.Params {
	p := fractal.DefaultParams(fractal.Sierpinski)
	p.Depth = depth
	p.Filled = filled
	return p
}

// curveView returns a viewport showing the whole curve, with a margin of
// five percent.
func curveView(kind fractal.Kind, depth int) viewport.Viewport {
	g, err := curve.Generate(kind, depth)
	if err != nil {
		panic(err)
	}
	b := g.Bounds()
	mx := 0.05 * (b.URx - b.LLx)
	my := 0.05 * (b.URy - b.LLy)
	return region(b.LLx-mx, b.URx+mx, b.LLy-my, b.URy+my)
}

var curvePresets = []Preset{
	{
		Name:        "sierpinski",
		Description: "outline of the Sierpinski triangle",
		Viewport:    curveView(fractal.Sierpinski, 1),
		Params:      sierpinski(7, false),
	},
	{
		Name:        "sierpinski_filled",
		Description: "solid Sierpinski triangle",
		Viewport:    curveView(fractal.Sierpinski, 1),
		Params:      sierpinski(6, true),
	},
	{
		Name:        "dragon",
		Description: "Heighway dragon",
		Viewport:    curveView(fractal.Dragon, 12),
		Params:      fractal.DefaultParams(fractal.Dragon),
	},
}
