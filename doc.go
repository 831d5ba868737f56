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

// Package fractal holds the shared data model of the fractal engine:
// fractal kinds, render parameters, colour palettes and the mapping from
// iteration counts to colours.
//
// Rendering itself is split over sub-packages:
//   - [seehuhn.de/go/fractal/viewport] maps between pixels and the complex plane,
//   - [seehuhn.de/go/fractal/escape] iterates z² + c for Mandelbrot and Julia sets,
//   - [seehuhn.de/go/fractal/curve] generates Sierpinski and Dragon geometry,
//   - [seehuhn.de/go/fractal/raster] draws curve geometry into pixels,
//   - [seehuhn.de/go/fractal/scheduler] runs tiled, cancellable render jobs,
//   - [seehuhn.de/go/fractal/export] writes finished jobs to image files.
package fractal
