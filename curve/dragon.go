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

// Turn is a change of direction between two consecutive Dragon segments.
type Turn int8

// These are the two turn directions.
const (
	Left  Turn = 1
	Right Turn = -1
)

func (t Turn) String() string {
	if t == Left {
		return "L"
	}
	return "R"
}

// DragonTurns returns the 2^depth - 1 turns of a Dragon curve with 2^depth
// segments.  The sequence for depth k+1 is the sequence for depth k,
// followed by a right turn, followed by the sequence for depth k reversed
// and with all turns flipped.
func DragonTurns(depth int) []Turn {
	if depth <= 0 {
		return nil
	}
	turns := make([]Turn, 0, 1<<depth-1)
	for range depth {
		n := len(turns)
		turns = append(turns, Right)
		for i := n - 1; i >= 0; i-- {
			turns = append(turns, -turns[i])
		}
	}
	return turns
}

// directions[k] is the unit vector at angle k·45°.
var directions = [8]vec.Vec2{
	{X: 1, Y: 0},
	{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2},
	{X: 0, Y: 1},
	{X: -math.Sqrt2 / 2, Y: math.Sqrt2 / 2},
	{X: -1, Y: 0},
	{X: -math.Sqrt2 / 2, Y: -math.Sqrt2 / 2},
	{X: 0, Y: -1},
	{X: math.Sqrt2 / 2, Y: -math.Sqrt2 / 2},
}

// Dragon returns the 2^depth segments of a Heighway Dragon curve from 0
// to 1.  Each segment has length (1/√2)^depth; the first one points in
// direction depth·45°, and the following ones follow [DragonTurns].
func Dragon(depth int) (*Geometry, error) {
	if err := checkDepth(fractal.Dragon, depth); err != nil {
		return nil, err
	}

	step := math.Pow(math.Sqrt2/2, float64(depth))
	v := directions[depth%8].Mul(step)

	turns := DragonTurns(depth)
	segs := make([]Segment, 0, len(turns)+1)
	var p vec.Vec2
	for i := 0; ; i++ {
		q := p.Add(v)
		segs = append(segs, Segment{A: p, B: q})
		if i == len(turns) {
			break
		}
		p = q
		if turns[i] == Left {
			v = vec.Vec2{X: -v.Y, Y: v.X}
		} else {
			v = vec.Vec2{X: v.Y, Y: -v.X}
		}
	}
	return &Geometry{
		Kind:     fractal.Dragon,
		Depth:    depth,
		Stride:   1,
		Segments: segs,
	}, nil
}
