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

// Package export writes rendered fractals to files.
//
// Escape-time renders and rasterised curves are written as PNG, TIFF or
// BMP images by [Raster].  Curves can also be written as resolution
// independent PDF or SVG files by [Vector].  [Snapshot] picks the right
// one for a finished render job.
package export

import (
	"path/filepath"
	"strconv"
	"strings"

	"seehuhn.de/go/fractal"
	"seehuhn.de/go/fractal/scheduler"
)

// Format is an output file format.
type Format int

// These are the supported output formats.  The zero value selects the
// format from the file name extension.
const (
	FromPath Format = iota
	PNG
	TIFF
	BMP
	PDF
	SVG
)

var formatNames = [...]string{
	FromPath: "from-path",
	PNG:      "png",
	TIFF:     "tiff",
	BMP:      "bmp",
	PDF:      "pdf",
	SVG:      "svg",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
	return formatNames[f]
}

// IsVector reports whether f is a vector format.
func (f Format) IsVector() bool {
	return f == PDF || f == SVG
}

// ParseFormat returns the format with the given name.  Names are case
// insensitive, and "tif" is accepted for TIFF.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "png":
		return PNG, nil
	case "tif", "tiff":
		return TIFF, nil
	case "bmp":
		return BMP, nil
	case "pdf":
		return PDF, nil
	case "svg":
		return SVG, nil
	}
	return 0, fractal.InvalidParameter("format", name, "unknown output format")
}

// FormatFromPath returns the format indicated by the file name extension.
func FormatFromPath(filePath string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(filePath), ".")
	if ext == "" {
		return 0, fractal.InvalidParameter("file name", filePath, "no extension to select the format")
	}
	return ParseFormat(ext)
}

// Options control the output.  A nil *Options is valid and selects the
// defaults.
type Options struct {
	// Format is the output format.  If this is [FromPath], the format is
	// chosen from the file name extension.
	Format Format

	// Width and Height give the size of raster output in pixels.  If
	// only one of them is set, the other is chosen to keep the aspect
	// ratio.  If neither is set, the image is written at its own size.
	// Vector output always has the size of the viewport.
	Width, Height int

	// Caption, if set, is written into the bottom left corner of raster
	// output.
	Caption string
}

func (opt *Options) format(filePath string) (Format, error) {
	if opt != nil && opt.Format != FromPath {
		if opt.Format < 0 || int(opt.Format) >= len(formatNames) {
			return 0, fractal.InvalidParameter("format", int(opt.Format), "unknown output format")
		}
		return opt.Format, nil
	}
	return FormatFromPath(filePath)
}

// Snapshot writes the image of a render job.  Curve jobs can be written
// in vector formats, all jobs can be written in raster formats.
func Snapshot(snap scheduler.Snapshot, filePath string, opt *Options) error {
	format, err := opt.format(filePath)
	if err != nil {
		return err
	}
	if format.IsVector() {
		if snap.Geometry == nil {
			return fractal.InvalidParameter("format", format, "vector output needs a curve render")
		}
		return Vector(snap.Geometry, snap.Viewport, snap.Params, filePath, withFormat(opt, format))
	}
	if snap.Image == nil {
		return fractal.InvalidParameter("snapshot", snap.ID, "no image")
	}
	return Raster(snap.Image, filePath, withFormat(opt, format))
}

func withFormat(opt *Options, format Format) *Options {
	res := &Options{}
	if opt != nil {
		*res = *opt
	}
	res.Format = format
	return res
}
