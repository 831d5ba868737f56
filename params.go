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

import "math"

// Params describes what to render.  A Params value must not be modified
// after it has been submitted for rendering.
type Params struct {
	Kind Kind

	// MaxIterations bounds the escape-time loop.  Escape-time kinds only.
	MaxIterations int

	// EscapeRadius is the divergence threshold |z|.  Escape-time kinds only.
	EscapeRadius float64

	// JuliaC is the fixed parameter c of the Julia iteration.
	JuliaC complex128

	// Depth is the recursion depth of the curve kinds.
	Depth int

	// Palette colours escaped points, or the curve from start to end.
	Palette *Palette

	// Smooth enables fractional iteration counts to reduce banding.
	Smooth bool

	// Filled draws the leaf triangles of a Sierpinski curve as solid
	// areas instead of outlines.  Ignored for other kinds.
	Filled bool

	// LineWidth is the curve stroke width in pixels.  Zero means 1.
	LineWidth float64
}

// Defaults used by [DefaultParams].
const (
	DefaultMaxIterations   = 100
	DefaultEscapeRadius    = 2.0
	DefaultSierpinskiDepth = 7
	DefaultDragonDepth     = 16
	DefaultLineWidth       = 1.0
)

// DefaultJuliaC is the Julia parameter used when none is given.
const DefaultJuliaC = complex(-0.7, 0.27015)

// DefaultParams returns the default parameters for the given kind.
func DefaultParams(kind Kind) Params {
	p := Params{
		Kind:          kind,
		MaxIterations: DefaultMaxIterations,
		EscapeRadius:  DefaultEscapeRadius,
		Palette:       Rainbow,
	}
	switch kind {
	case Julia:
		p.JuliaC = DefaultJuliaC
	case Sierpinski:
		p.Depth = DefaultSierpinskiDepth
	case Dragon:
		p.Depth = DefaultDragonDepth
	}
	return p
}

// Validate checks that p can be rendered.  All errors match
// [ErrInvalidParameter].
func (p Params) Validate() error {
	if !p.Kind.valid() {
		return InvalidParameter("kind", int(p.Kind), "unknown fractal kind")
	}
	if p.Palette == nil {
		return InvalidParameter("palette", nil, "missing palette")
	}
	if p.Kind.IsEscapeTime() {
		if p.MaxIterations <= 0 {
			return InvalidParameter("max iterations", p.MaxIterations, "must be positive")
		}
		if !(p.EscapeRadius > 0) || math.IsInf(p.EscapeRadius, 0) {
			return InvalidParameter("escape radius", p.EscapeRadius, "must be positive and finite")
		}
		if p.Kind == Julia && !(isFinite(real(p.JuliaC)) && isFinite(imag(p.JuliaC))) {
			return InvalidParameter("julia c", p.JuliaC, "must be finite")
		}
		return nil
	}

	if p.Depth < 0 {
		return InvalidParameter("depth", p.Depth, "must not be negative")
	}
	if ceil := MaxDepth(p.Kind); p.Depth > ceil {
		return InvalidParameter("depth", p.Depth, "exceeds the ceiling for "+p.Kind.String())
	}
	if !(p.LineWidth >= 0) || math.IsInf(p.LineWidth, 0) {
		return InvalidParameter("line width", p.LineWidth, "must be finite and not negative")
	}
	return nil
}

// StrokeWidth returns the curve stroke width in pixels.
func (p Params) StrokeWidth() float64 {
	if p.LineWidth == 0 {
		return DefaultLineWidth
	}
	return p.LineWidth
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
