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

// Package raster converts curve geometry into anti-aliased pixel coverage.
//
// Coverage is computed exactly from the signed area of the path within
// each pixel, so that the result does not depend on a sampling pattern.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// edge is a line segment in device coordinates with y0 < y1.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
	dir    float32 // +1 if the original segment pointed down, -1 if up
}

// Rasteriser converts paths to pixel coverage values.
// The caller creates one instance and reuses it for multiple paths.
// Internal buffers grow as needed but never shrink.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps user space to device space.
	CTM matrix.Matrix

	// Clip is the output region in device coordinates.
	// Must have integer-aligned coordinates.
	Clip rect.Rect

	// Width is the stroke width in device pixels.
	Width float64

	cover  []float32 // signed change of winding per pixel; reused as output
	area   []float32 // signed area to the right of the edges, per pixel
	edges  []edge
	active []int

	// bounding box of r.edges
	devXMin, devXMax float64
	devYMin, devYMax float64
}

// NewRasteriser returns a Rasteriser with the given clip rectangle, the
// identity transformation and a stroke width of one pixel.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:   matrix.Identity,
		Clip:  clip,
		Width: 1,
	}
}

// Reset restores the initial state with the given clip rectangle,
// keeping the capacity of the internal buffers.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Width = 1
	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.active = r.active[:0]
}

// EmitFunc receives the coverage of pixels xMin, xMin+1, ... in row y.
// Coverage values are in [0, 1].  The slice is only valid for the
// duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// FillNonZero fills p using the nonzero winding rule.  Open subpaths are
// closed implicitly.  Curved segments are replaced by straight chords.
func (r *Rasteriser) FillNonZero(p *path.Data, emit EmitFunc) {
	r.edges = r.edges[:0]

	var current, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			r.addUserEdge(current, start)
			current = p.Coords[k]
			start = current
			k++
		case path.CmdLineTo:
			r.addUserEdge(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.addUserEdge(current, p.Coords[k+1])
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.addUserEdge(current, p.Coords[k+2])
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			r.addUserEdge(current, start)
			current = start
		}
	}
	r.addUserEdge(current, start)

	r.rasterise(emit)
}

// Stroke strokes every segment of p with a line of r.Width device pixels,
// with square caps at both ends.  Overlapping parts of the stroke are
// painted once.  Curved segments are replaced by straight chords.
func (r *Rasteriser) Stroke(p *path.Data, emit EmitFunc) {
	r.edges = r.edges[:0]

	var current, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			current = p.Coords[k]
			start = current
			k++
		case path.CmdLineTo:
			r.addStrokeSegment(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.addStrokeSegment(current, p.Coords[k+1])
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.addStrokeSegment(current, p.Coords[k+2])
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != start {
				r.addStrokeSegment(current, start)
			}
			current = start
		}
	}

	r.rasterise(emit)
}

func (r *Rasteriser) transform(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*p.X + r.CTM[2]*p.Y + r.CTM[4],
		Y: r.CTM[1]*p.X + r.CTM[3]*p.Y + r.CTM[5],
	}
}

func (r *Rasteriser) addUserEdge(p0, p1 vec.Vec2) {
	if p0 == p1 {
		return
	}
	r.addEdge(r.transform(p0), r.transform(p1))
}

// addStrokeSegment adds the outline of the stroke for the user space
// segment a→b.  The outline is a rectangle extended by half the line
// width beyond both end points.  All outlines have the same orientation,
// so that overlaps do not cancel under the nonzero rule.
func (r *Rasteriser) addStrokeSegment(a, b vec.Vec2) {
	a = r.transform(a)
	b = r.transform(b)
	h := r.Width / 2

	t := vec.Vec2{X: 1, Y: 0}
	d := b.Sub(a)
	if l := d.Length(); l > zeroLengthThreshold {
		t = d.Mul(1 / l)
	}
	tt := t.Mul(h)
	nn := vec.Vec2{X: -tt.Y, Y: tt.X}

	p0 := a.Sub(tt).Add(nn)
	p1 := b.Add(tt).Add(nn)
	p2 := b.Add(tt).Sub(nn)
	p3 := a.Sub(tt).Sub(nn)
	r.addEdge(p0, p1)
	r.addEdge(p1, p2)
	r.addEdge(p2, p3)
	r.addEdge(p3, p0)
}

// addEdge adds an edge in device coordinates.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	dy := p1.Y - p0.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	e := edge{x0: p0.X, y0: p0.Y, x1: p1.X, y1: p1.Y, dir: 1}
	if dy < 0 {
		e = edge{x0: p1.X, y0: p1.Y, x1: p0.X, y1: p0.Y, dir: -1}
	}
	e.dxdy = (e.x1 - e.x0) / (e.y1 - e.y0)

	if len(r.edges) == 0 {
		r.devXMin, r.devXMax = min(e.x0, e.x1), max(e.x0, e.x1)
		r.devYMin, r.devYMax = e.y0, e.y1
	} else {
		r.devXMin = min(r.devXMin, e.x0, e.x1)
		r.devXMax = max(r.devXMax, e.x0, e.x1)
		r.devYMin = min(r.devYMin, e.y0)
		r.devYMax = max(r.devYMax, e.y1)
	}
	r.edges = append(r.edges, e)
}

// Coverage accumulation model:
//
// For each pixel, we track two values:
//   cover: signed vertical extent of the edge pieces inside the pixel
//   area:  cover, weighted by the horizontal distance from the piece
//          to the right edge of the pixel
//
// Integrating from left to right, the coverage of pixel i is
//   area[i] + (cover[0] + ... + cover[i-1]).
// Edge pieces left of the output region act as if they were located at
// the left edge of its first pixel.

// rasterise scans the edges in r.edges row by row and emits coverage.
func (r *Rasteriser) rasterise(emit EmitFunc) {
	if len(r.edges) == 0 {
		return
	}

	xMin := max(int(math.Floor(r.devXMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.devXMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.devYMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.devYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.y0, b.y0)
	})
	r.active = r.active[:0]
	next := 0

	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		for next < len(r.edges) && r.edges[next].y0 < yf+1 {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if e.y1 <= yf {
				r.active[i] = r.active[len(r.active)-1]
				r.active = r.active[:len(r.active)-1]
				continue
			}
			if r.accumulate(e, y, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrateScanlineNonZero(r.cover, r.area)
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// accumulate adds the part of e inside row y to the cover and area
// buffers, which hold pixels xMin, ..., xMax-1.
// It reports whether the edge intersects the row.
func (r *Rasteriser) accumulate(e *edge, y, xMin, xMax int) bool {
	yTop := max(float64(y), e.y0)
	yBot := min(float64(y+1), e.y1)
	if yBot <= yTop {
		return false
	}
	xTop := e.x0 + e.dxdy*(yTop-e.y0)
	xBot := e.x0 + e.dxdy*(yBot-e.y0)

	// Pieces left of the buffer are collected in the first pixel,
	// pieces right of the buffer have no effect.
	lo, hi := float64(xMin), float64(xMax)
	if xTop <= lo && xBot <= lo {
		r.deposit(xMin, yBot-yTop, lo, xMin, xMax, e.dir)
		return true
	}
	if xTop >= hi && xBot >= hi {
		return true
	}
	at := func(x float64) float64 {
		return min(max(e.y0+(x-e.x0)/e.dxdy, yTop), yBot)
	}
	if xTop < lo {
		yl := at(lo)
		r.deposit(xMin, yl-yTop, lo, xMin, xMax, e.dir)
		xTop, yTop = lo, yl
	} else if xBot < lo {
		yl := at(lo)
		r.deposit(xMin, yBot-yl, lo, xMin, xMax, e.dir)
		xBot, yBot = lo, yl
	}
	if xTop > hi {
		yh := at(hi)
		xTop, yTop = hi, yh
	} else if xBot > hi {
		yh := at(hi)
		xBot, yBot = hi, yh
	}

	// walk through the pixel columns in the direction of travel
	col := int(math.Floor(xTop))
	last := int(math.Floor(xBot))
	xPrev, yPrev := xTop, yTop
	for col != last {
		var bx float64
		if last > col {
			bx = float64(col + 1)
		} else {
			bx = float64(col)
		}
		by := at(bx)
		r.deposit(col, by-yPrev, (xPrev+bx)/2, xMin, xMax, e.dir)
		xPrev, yPrev = bx, by
		if last > col {
			col++
		} else {
			col--
		}
	}
	r.deposit(col, yBot-yPrev, (xPrev+xBot)/2, xMin, xMax, e.dir)
	return true
}

// deposit adds an edge piece of height dy at horizontal position x
// to the buffers.
func (r *Rasteriser) deposit(pix int, dy, x float64, xMin, xMax int, dir float32) {
	if dy <= 0 || pix >= xMax {
		return
	}
	v := dir * float32(dy)
	if pix < xMin {
		r.cover[0] += v
		r.area[0] += v
		return
	}
	i := pix - xMin
	r.cover[i] += v
	r.area[i] += v * float32(1-(x-float64(pix)))
}

// integrateScanlineNonZero converts accumulated cover/area to final coverage
// values using the nonzero winding rule. The cover slice is modified in place.
func integrateScanlineNonZero(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]

		cov := raw
		if raw < 0 {
			cov = -raw
		}
		if cov > 1 {
			cov = 1
		}
		cover[i] = cov
	}
}

// trimZeros returns the non-zero portion of coverage and its starting offset.
// Returns nil, 0 if coverage is entirely zero.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// Numerical tolerances for the rasteriser.
const (
	// horizontalEdgeThreshold is the minimum vertical extent for an edge
	// to contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the length below which a stroke segment
	// is treated as a single point.
	zeroLengthThreshold = 1e-10
)
