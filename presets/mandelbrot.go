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

func mandelbrot(maxIter int) fractal.Params {
	p := fractal.DefaultParams(fractal.Mandelbrot)
	p.MaxIterations = maxIter
	p.Smooth = true
	return p
}

// Classic regions and landmarks in the Mandelbrot set.
var mandelbrotPresets = []Preset{
	{
		Name:        "full",
		Description: "the whole set",
		Viewport:    region(-2.5, 1, -1.2, 1.2),
		Params:      mandelbrot(100),
	},
	{
		Name:        "seahorse_valley",
		Description: "dense filaments and repeating seahorse curls",
		Viewport:    region(-0.8, -0.7, 0.05, 0.15),
		Params:      mandelbrot(500),
	},
	{
		Name:        "elephant_valley",
		Description: "large bulb with trunk-like tendrils",
		Viewport:    region(-1.85, -1.75, -0.10, -0.02),
		Params:      mandelbrot(500),
	},
	{
		Name:        "spiral_minibrot",
		Description: "small copy of the set with tight spiral arms",
		Viewport:    region(-0.7435, -0.7420, 0.1310, 0.1325),
		Params:      mandelbrot(1000),
	},
	{
		Name:        "triple_spiral",
		Description: "threefold symmetric spiral structure",
		Viewport:    region(-0.7480, -0.7450, 0.0950, 0.0980),
		Params:      mandelbrot(1000),
	},
	{
		Name:        "valley_of_the_dragon",
		Description: "deep, highly detailed spiral filaments",
		Viewport:    region(-0.7400, -0.7350, 0.1800, 0.1850),
		Params:      mandelbrot(1000),
	},
	{
		Name:        "minibrot_in_mini_spiral",
		Description: "copy of the set inside a spiral arm",
		Viewport:    region(-1.7390, -1.7375, -0.0235, -0.0220),
		Params:      mandelbrot(1000),
	},
}
