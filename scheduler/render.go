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

package scheduler

import (
	"image"
	"image/color"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/fractal"
	"seehuhn.de/go/fractal/curve"
	"seehuhn.de/go/fractal/escape"
	"seehuhn.de/go/fractal/raster"
	"seehuhn.de/go/fractal/viewport"
)

// renderEscapeTile computes every pixel of img.  Pixel (x, y) shows the
// plane point at integer pixel position (x, y).
func renderEscapeTile(j *job, img *image.RGBA) {
	p := &j.params
	b := img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			re, im := j.vp.ToPlane(float64(x), float64(y))
			v := escape.Value(p, re, im)
			img.SetRGBA(x, y, fractal.ColorFor(v, p.MaxIterations, p.Palette))
		}
	}
}

// deviceBounds returns the pixel space bounding boxes of all primitives
// of g, enlarged to include the stroke.
func deviceBounds(g *curve.Geometry, vp viewport.Viewport, width float64) []rect.Rect {
	m := vp.Matrix()
	margin := width + 1
	n := g.Primitives()
	res := make([]rect.Rect, n)
	for i := range n {
		b := g.PrimitiveBounds(i)
		x0, y0 := m[0]*b.LLx+m[4], m[3]*b.LLy+m[5]
		x1, y1 := m[0]*b.URx+m[4], m[3]*b.URy+m[5]
		res[i] = rect.Rect{
			LLx: min(x0, x1) - margin,
			LLy: min(y0, y1) - margin,
			URx: max(x0, x1) + margin,
			URy: max(y0, y1) + margin,
		}
	}
	return res
}

func overlaps(b rect.Rect, tile image.Rectangle) bool {
	return b.URx > float64(tile.Min.X) && b.LLx < float64(tile.Max.X) &&
		b.URy > float64(tile.Min.Y) && b.LLy < float64(tile.Max.Y)
}

// renderCurveTile draws the part of the job's curve which falls inside
// img.  The curve is split into colour bands along its length, and the
// bands are painted in order over the background.
func renderCurveTile(r *raster.Rasteriser, j *job, img *image.RGBA) {
	bg := fractal.CurveBackground
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = bg.R
		img.Pix[i+1] = bg.G
		img.Pix[i+2] = bg.B
		img.Pix[i+3] = bg.A
	}

	g := j.geom
	n := g.Primitives()
	tile := img.Rect
	clip := rect.Rect{
		LLx: float64(tile.Min.X),
		LLy: float64(tile.Min.Y),
		URx: float64(tile.Max.X),
		URy: float64(tile.Max.Y),
	}
	filled := j.params.Filled && g.Kind == fractal.Sierpinski

	p := &path.Data{}
	i := 0
	for band := range fractal.CurveBands {
		p.Cmds = p.Cmds[:0]
		p.Coords = p.Coords[:0]

		// collect runs of consecutive primitives which touch the tile
		for i < n && fractal.Band(i, n) == band {
			if !overlaps(j.bboxes[i], tile) {
				i++
				continue
			}
			start := i
			for i < n && fractal.Band(i, n) == band && overlaps(j.bboxes[i], tile) {
				i++
			}
			g.AppendPath(p, start, i)
		}
		if len(p.Cmds) == 0 {
			continue
		}

		col := fractal.BandColor(j.params.Palette, band)
		r.Reset(clip)
		r.CTM = j.vp.Matrix()
		r.Width = j.params.StrokeWidth()
		emit := func(y, xMin int, coverage []float32) {
			composite(img, y, xMin, coverage, col)
		}
		if filled {
			r.FillNonZero(p, emit)
		} else {
			r.Stroke(p, emit)
		}
	}
}

// composite paints col over a run of pixels in row y, with the given
// coverage values as opacity.
func composite(img *image.RGBA, y, xMin int, coverage []float32, col color.RGBA) {
	o := img.PixOffset(xMin, y)
	pix := img.Pix[o : o+4*len(coverage)]
	for k, c := range coverage {
		q := pix[4*k : 4*k+4 : 4*k+4]
		q[0] = blend(q[0], col.R, c)
		q[1] = blend(q[1], col.G, c)
		q[2] = blend(q[2], col.B, c)
	}
}

func blend(dst, src uint8, alpha float32) uint8 {
	v := float32(dst) + (float32(src)-float32(dst))*alpha
	return uint8(v + 0.5)
}
