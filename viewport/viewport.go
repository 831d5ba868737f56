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

// Package viewport maps between pixel coordinates and the complex plane.
//
// Pixel coordinates grow to the right and downwards, with (0, 0) at the
// top-left corner of the image.  Plane coordinates grow to the right and
// upwards.  The pixel at (Width/2, Height/2) shows the plane point
// CenterRe + i·CenterIm.
package viewport

import (
	"image"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/fractal"
)

// Size limits of accepted images.  MaxPixels bounds the RGBA buffer of
// a render to 256 MiB.
const (
	MaxSize   = 1 << 15 // largest width or height in pixels
	MaxPixels = 1 << 26 // largest width·height
)

// Viewport describes the part of the complex plane shown in an image.
type Viewport struct {
	CenterRe float64 `json:"center_re"`
	CenterIm float64 `json:"center_im"`

	// Scale is the size of one pixel in plane units.
	Scale float64 `json:"scale"`

	Width  int `json:"width"`
	Height int `json:"height"`
}

// New returns a validated viewport.
func New(centerRe, centerIm, scale float64, width, height int) (Viewport, error) {
	v := Viewport{
		CenterRe: centerRe,
		CenterIm: centerIm,
		Scale:    scale,
		Width:    width,
		Height:   height,
	}
	if err := v.Validate(); err != nil {
		return Viewport{}, err
	}
	return v, nil
}

// Default returns an 800x600 view of the plane around the origin.
func Default() Viewport {
	return Viewport{Scale: 0.005, Width: 800, Height: 600}
}

// FitRegion returns the viewport of the given size which shows the
// rectangle [xMin, xMax] × [yMin, yMax] as large as possible, centred.
func FitRegion(xMin, xMax, yMin, yMax float64, width, height int) (Viewport, error) {
	if !(xMax > xMin) || !(yMax > yMin) {
		return Viewport{}, fractal.InvalidParameter("region",
			[4]float64{xMin, xMax, yMin, yMax}, "must have positive extent")
	}
	if width <= 0 || height <= 0 {
		return Viewport{}, fractal.InvalidParameter("size", image.Pt(width, height), "must be positive")
	}
	scale := max((xMax-xMin)/float64(width), (yMax-yMin)/float64(height))
	return New((xMin+xMax)/2, (yMin+yMax)/2, scale, width, height)
}

// Validate checks that v describes a usable view.
func (v Viewport) Validate() error {
	if !finite(v.CenterRe) || !finite(v.CenterIm) {
		return fractal.InvalidParameter("center", complex(v.CenterRe, v.CenterIm), "must be finite")
	}
	if !(v.Scale > 0) || math.IsInf(v.Scale, 0) {
		return fractal.InvalidParameter("scale", v.Scale, "must be positive and finite")
	}
	if v.Width <= 0 || v.Height <= 0 || v.Width > MaxSize || v.Height > MaxSize {
		return fractal.InvalidParameter("size", image.Pt(v.Width, v.Height), "out of range")
	}
	if v.Width*v.Height > MaxPixels {
		return fractal.InvalidParameter("size", image.Pt(v.Width, v.Height), "too many pixels")
	}
	return nil
}

// ToPlane returns the plane point shown at pixel position (px, py).
func (v Viewport) ToPlane(px, py float64) (re, im float64) {
	re = v.CenterRe + (px-float64(v.Width)/2)*v.Scale
	im = v.CenterIm - (py-float64(v.Height)/2)*v.Scale
	return re, im
}

// ToPixel returns the pixel position showing the plane point re + i·im.
// This is the inverse of [Viewport.ToPlane].
func (v Viewport) ToPixel(re, im float64) (px, py float64) {
	px = (re-v.CenterRe)/v.Scale + float64(v.Width)/2
	py = float64(v.Height)/2 - (im-v.CenterIm)/v.Scale
	return px, py
}

// Zoom magnifies the view by the given factor, keeping the plane point
// under pixel (ax, ay) in place.  Factors greater than 1 zoom in.
// If the factor is rejected, v is left unchanged.
func (v *Viewport) Zoom(factor, ax, ay float64) error {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return fractal.InvalidParameter("zoom factor", factor, "must be positive and finite")
	}
	if !finite(ax) || !finite(ay) {
		return fractal.InvalidParameter("zoom anchor", [2]float64{ax, ay}, "must be finite")
	}
	scale := v.Scale / factor
	if !(scale > 0) || math.IsInf(scale, 0) {
		return fractal.InvalidParameter("zoom factor", factor, "scale out of range")
	}

	re, im := v.ToPlane(ax, ay)
	v.CenterRe = re - (ax-float64(v.Width)/2)*scale
	v.CenterIm = im + (ay-float64(v.Height)/2)*scale
	v.Scale = scale
	return nil
}

// Pan moves the view by (dx, dy) pixels: afterwards the image is centred
// on the plane point previously shown at (Width/2+dx, Height/2+dy).
func (v *Viewport) Pan(dx, dy float64) error {
	if !finite(dx) || !finite(dy) {
		return fractal.InvalidParameter("pan offset", [2]float64{dx, dy}, "must be finite")
	}
	v.CenterRe += dx * v.Scale
	v.CenterIm -= dy * v.Scale
	return nil
}

// Bounds returns the pixel rectangle of the image.
func (v Viewport) Bounds() image.Rectangle {
	return image.Rect(0, 0, v.Width, v.Height)
}

// PlaneBounds returns the rectangle of the plane covered by the image.
func (v Viewport) PlaneBounds() rect.Rect {
	hw := float64(v.Width) / 2 * v.Scale
	hh := float64(v.Height) / 2 * v.Scale
	return rect.Rect{
		LLx: v.CenterRe - hw,
		LLy: v.CenterIm - hh,
		URx: v.CenterRe + hw,
		URy: v.CenterIm + hh,
	}
}

// Matrix returns the affine map from plane coordinates to pixel
// coordinates, in the same form as [Viewport.ToPixel].
func (v Viewport) Matrix() matrix.Matrix {
	k := 1 / v.Scale
	return matrix.Matrix{
		k, 0,
		0, -k,
		float64(v.Width)/2 - v.CenterRe*k, float64(v.Height)/2 + v.CenterIm*k,
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
