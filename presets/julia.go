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

import "seehuhn.de/go/fractal"

func julia(c complex128, pal *fractal.Palette) fractal.Params {
	p := fractal.DefaultParams(fractal.Julia)
	p.JuliaC = c
	p.MaxIterations = 300
	p.Smooth = true
	p.Palette = pal
	return p
}

var juliaView = region(-1.6, 1.6, -1.2, 1.2)

var juliaPresets = []Preset{
	{
		Name:        "default",
		Description: "c = -0.7 + 0.27015i",
		Viewport:    juliaView,
		Params:      julia(fractal.DefaultJuliaC, fractal.Rainbow),
	},
	{
		Name:        "dendrite",
		Description: "c = i, a tree without interior",
		Viewport:    juliaView,
		Params:      julia(complex(0, 1), fractal.Grayscale),
	},
	{
		Name:        "rabbit",
		Description: "Douady's rabbit, c = -0.123 + 0.745i",
		Viewport:    juliaView,
		Params:      julia(complex(-0.123, 0.745), fractal.Ocean),
	},
	{
		Name:        "san_marco",
		Description: "c = -0.75",
		Viewport:    region(-1.8, 1.8, -1.1, 1.1),
		Params:      julia(complex(-0.75, 0), fractal.Fire),
	},
}
