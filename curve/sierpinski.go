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

package curve

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/fractal"
)

// Corners of the outermost Sierpinski triangle.
var (
	sierpinskiTop   = vec.Vec2{X: 0, Y: 1}
	sierpinskiLeft  = vec.Vec2{X: -math.Sqrt(3) / 2, Y: -0.5}
	sierpinskiRight = vec.Vec2{X: math.Sqrt(3) / 2, Y: -0.5}
)

// Sierpinski returns the outlines of the 3^depth triangles of a Sierpinski
// triangle.  Each triangle contributes the three segments top→left,
// left→right and right→top, so that there are 3^(depth+1) segments in
// total.  Sub-triangles are visited in the order top, left, right.
func Sierpinski(depth int) (*Geometry, error) {
	if err := checkDepth(fractal.Sierpinski, depth); err != nil {
		return nil, err
	}
	n := 3
	for range depth {
		n *= 3
	}
	segs := make([]Segment, 0, n)
	segs = sierpinski(segs, sierpinskiTop, sierpinskiLeft, sierpinskiRight, depth)
	return &Geometry{
		Kind:     fractal.Sierpinski,
		Depth:    depth,
		Stride:   3,
		Segments: segs,
	}, nil
}

func sierpinski(segs []Segment, top, left, right vec.Vec2, depth int) []Segment {
	if depth == 0 {
		return append(segs,
			Segment{A: top, B: left},
			Segment{A: left, B: right},
			Segment{A: right, B: top},
		)
	}
	tl := midpoint(top, left)
	lr := midpoint(left, right)
	rt := midpoint(right, top)
	segs = sierpinski(segs, top, tl, rt, depth-1)
	segs = sierpinski(segs, tl, left, lr, depth-1)
	segs = sierpinski(segs, rt, lr, right, depth-1)
	return segs
}

func midpoint(a, b vec.Vec2) vec.Vec2 {
	return a.Add(b).Mul(0.5)
}
