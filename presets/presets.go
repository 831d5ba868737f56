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

// Package presets provides a catalogue of well-known views of the
// supported fractals.
package presets

import (
	"maps"
	"slices"

	"seehuhn.de/go/fractal"
	"seehuhn.de/go/fractal/viewport"
)

// Preset is a named render request.
type Preset struct {
	Name        string // lowercase a-z and _ only
	Description string
	Viewport    viewport.Viewport
	Params      fractal.Params
}

// All contains all presets, grouped by category.
// Presets are identified by "category_name".
var All = map[string][]Preset{
	"mandelbrot": mandelbrotPresets,
	"julia":      juliaPresets,
	"curve":      curvePresets,
}

// Names returns the identifiers of all presets in sorted order.
func Names() []string {
	var res []string
	for category, list := range All {
		for _, p := range list {
			res = append(res, category+"_"+p.Name)
		}
	}
	slices.Sort(res)
	return res
}

// Categories returns the category names in sorted order.
func Categories() []string {
	return slices.Sorted(maps.Keys(All))
}

// Lookup returns the preset with the given identifier.
func Lookup(id string) (Preset, error) {
	for category, list := range All {
		for _, p := range list {
			if category+"_"+p.Name == id {
				return p, nil
			}
		}
	}
	return Preset{}, fractal.InvalidParameter("preset", id, "unknown preset")
}

// Default image size of the presets.
const (
	width  = 800
	height = 600
)

// region returns the viewport which shows the given rectangle of the
// plane.
func region(xMin, xMax, yMin, yMax float64) viewport.Viewport {
	vp, err := viewport.FitRegion(xMin, xMax, yMin, yMax, width, height)
	if err != nil {
		panic(err)
	}
	return vp
}
