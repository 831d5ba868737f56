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

// Package curve generates the line segments of recursively defined curves.
//
// Geometry is produced in plane coordinates, independent of any viewport.
// The Sierpinski triangle is inscribed in the unit circle, the Dragon curve
// runs from 0 to 1 on the real axis.
package curve

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/fractal"
)

// Segment is a straight line from A to B in plane coordinates.
type Segment struct {
	A, B vec.Vec2
}

// Geometry is the output of a curve generator.
// It must not be modified after generation.
type Geometry struct {
	Kind  fractal.Kind
	Depth int

	// Stride is the number of consecutive segments which form one drawing
	// primitive: 3 for the triangles of a Sierpinski curve, 1 for the
	// steps of a Dragon curve.
	Stride int

	// Segments lists the segments in drawing order.
	Segments []Segment
}

// Generate returns the geometry of the given curve kind at the given
// recursion depth.  Depths outside [0, fractal.MaxDepth(kind)] are
// rejected.
func Generate(kind fractal.Kind, depth int) (*Geometry, error) {
	switch kind {
	case fractal.Sierpinski:
		return Sierpinski(depth)
	case fractal.Dragon:
		return Dragon(depth)
	default:
		return nil, fractal.InvalidParameter("kind", kind, "not a curve")
	}
}

func checkDepth(kind fractal.Kind, depth int) error {
	if depth < 0 {
		return fractal.InvalidParameter("depth", depth, "must not be negative")
	}
	if depth > fractal.MaxDepth(kind) {
		return fractal.InvalidParameter("depth", depth, "exceeds the ceiling for "+kind.String())
	}
	return nil
}

// Primitives returns the number of drawing primitives in g.
func (g *Geometry) Primitives() int {
	return len(g.Segments) / g.Stride
}

// Primitive returns the segments of the i-th drawing primitive.
func (g *Geometry) Primitive(i int) []Segment {
	return g.Segments[i*g.Stride : (i+1)*g.Stride]
}

// PrimitiveBounds returns the bounding box of the i-th drawing primitive.
func (g *Geometry) PrimitiveBounds(i int) rect.Rect {
	return bounds(g.Primitive(i))
}

// Bounds returns the bounding box of all segments.
func (g *Geometry) Bounds() rect.Rect {
	return bounds(g.Segments)
}

func bounds(segs []Segment) rect.Rect {
	if len(segs) == 0 {
		return rect.Rect{}
	}
	b := rect.Rect{
		LLx: segs[0].A.X, LLy: segs[0].A.Y,
		URx: segs[0].A.X, URy: segs[0].A.Y,
	}
	for _, s := range segs {
		for _, p := range [2]vec.Vec2{s.A, s.B} {
			b.LLx = min(b.LLx, p.X)
			b.LLy = min(b.LLy, p.Y)
			b.URx = max(b.URx, p.X)
			b.URy = max(b.URy, p.Y)
		}
	}
	return b
}

// Path returns the primitives in the range [from, to) as a path in plane
// coordinates.  Runs of segments where each one starts at the end of the
// previous one become a single subpath.  For closed primitives, subpaths
// which return to their starting point are closed.
func (g *Geometry) Path(from, to int) *path.Data {
	return g.AppendPath(&path.Data{}, from, to)
}

// AppendPath appends the primitives in the range [from, to) to p,
// starting a new subpath, and returns p.  See [Geometry.Path].
func (g *Geometry) AppendPath(p *path.Data, from, to int) *path.Data {
	var start, current vec.Vec2
	open := false
	for i := from; i < to; i++ {
		for _, s := range g.Primitive(i) {
			if !open || s.A != current {
				p.MoveTo(s.A)
				start = s.A
				open = true
			}
			p.LineTo(s.B)
			current = s.B
		}
		if g.Stride > 1 && current == start {
			p.Close()
			open = false
		}
	}
	return p
}
