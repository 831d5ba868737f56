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

import "fmt"

// Kind identifies a fractal family.
type Kind int

// These are the supported fractal families.
const (
	Mandelbrot Kind = iota
	Julia
	Sierpinski
	Dragon
)

var kindNames = [...]string{
	Mandelbrot: "mandelbrot",
	Julia:      "julia",
	Sierpinski: "sierpinski",
	Dragon:     "dragon",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsEscapeTime reports whether k is rendered per pixel by iteration.
func (k Kind) IsEscapeTime() bool {
	return k == Mandelbrot || k == Julia
}

// IsCurve reports whether k is rendered from generated line segments.
func (k Kind) IsCurve() bool {
	return k == Sierpinski || k == Dragon
}

func (k Kind) valid() bool {
	return k.IsEscapeTime() || k.IsCurve()
}

// ParseKind returns the Kind with the given lower-case name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, InvalidParameter("kind", name, "unknown fractal kind")
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, InvalidParameter("kind", int(k), "unknown fractal kind")
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Recursion depth ceilings for the curve kinds.  Segment counts grow as
// 3^(depth+1) for Sierpinski and 2^depth for Dragon.
const (
	MaxSierpinskiDepth = 10
	MaxDragonDepth     = 18
)

// MaxDepth returns the largest accepted recursion depth for k,
// or 0 for kinds which do not recurse.
func MaxDepth(k Kind) int {
	switch k {
	case Sierpinski:
		return MaxSierpinskiDepth
	case Dragon:
		return MaxDragonDepth
	default:
		return 0
	}
}
