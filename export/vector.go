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

package export

import (
	"image/color"
	"io"
	"math"
	"strconv"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/fractal"
	"seehuhn.de/go/fractal/curve"
	"seehuhn.de/go/fractal/viewport"
)

// Vector writes the curve g as a PDF or SVG file.  The page shows the
// region of the plane covered by vp, and the curve is coloured and
// stroked as described by params, in the same way as the raster
// renderer does.
func Vector(g *curve.Geometry, vp viewport.Viewport, params fractal.Params, filePath string, opt *Options) error {
	format, err := opt.format(filePath)
	if err != nil {
		return err
	}
	if !format.IsVector() {
		return fractal.InvalidParameter("format", format, "not a vector format")
	}
	if g == nil {
		return fractal.InvalidParameter("geometry", nil, "missing curve")
	}
	if err := vp.Validate(); err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}

	filled := params.Filled && g.Kind == fractal.Sierpinski
	if format == PDF {
		return writePDF(g, vp, params, filled, filePath)
	}
	return writeFile(filePath, func(w io.Writer) error {
		return writeSVG(w, g, vp, params, filled)
	})
}

// bandPaths calls yield with the path and colour of every non-empty
// colour band.  The path is reused between calls.
func bandPaths(g *curve.Geometry, pal *fractal.Palette, yield func(p *path.Data, col color.RGBA) error) error {
	n := g.Primitives()
	p := &path.Data{}
	for band := range fractal.CurveBands {
		from, to := fractal.BandRange(band, n)
		if from == to {
			continue
		}
		p.Cmds = p.Cmds[:0]
		p.Coords = p.Coords[:0]
		g.AppendPath(p, from, to)
		if err := yield(p, fractal.BandColor(pal, band)); err != nil {
			return err
		}
	}
	return nil
}

func writePDF(g *curve.Geometry, vp viewport.Viewport, params fractal.Params, filled bool, filePath string) error {
	w, h := float64(vp.Width), float64(vp.Height)
	paper := &pdf.Rectangle{URx: w, URy: h}
	page, err := document.CreateSinglePage(filePath, paper, pdf.V1_7, nil)
	if err != nil {
		return &fractal.IOError{Path: filePath, Err: err}
	}

	page.SetFillColor(deviceRGB(fractal.CurveBackground))
	page.Rectangle(0, 0, w, h)
	page.Fill()

	// PDF user space is the plane, with the imaginary axis pointing up.
	s := vp.Scale
	page.Transform(matrix.Matrix{1 / s, 0, 0, 1 / s, w/2 - vp.CenterRe/s, h/2 - vp.CenterIm/s})
	page.SetLineWidth(params.StrokeWidth() * s)
	page.SetLineCap(graphics.LineCapSquare)
	page.SetLineJoin(graphics.LineJoinMiter)

	err = bandPaths(g, params.Palette, func(p *path.Data, col color.RGBA) error {
		k := 0
		for _, cmd := range p.Cmds {
			switch cmd {
			case path.CmdMoveTo:
				page.MoveTo(p.Coords[k].X, p.Coords[k].Y)
				k++
			case path.CmdLineTo:
				page.LineTo(p.Coords[k].X, p.Coords[k].Y)
				k++
			case path.CmdClose:
				page.ClosePath()
			}
		}
		if filled {
			page.SetFillColor(deviceRGB(col))
			page.Fill()
		} else {
			page.SetStrokeColor(deviceRGB(col))
			page.Stroke()
		}
		return nil
	})
	if cerr := page.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &fractal.IOError{Path: filePath, Err: err}
	}
	return nil
}

func deviceRGB(c color.RGBA) pdfcolor.Color {
	return pdfcolor.DeviceRGB{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

// writeSVG writes an SVG document in pixel coordinates, with one path
// element per colour band.
func writeSVG(w io.Writer, g *curve.Geometry, vp viewport.Viewport, params fractal.Params, filled bool) error {
	width := strconv.Itoa(vp.Width)
	height := strconv.Itoa(vp.Height)
	_, err := io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"+
		`<svg xmlns="http://www.w3.org/2000/svg" width="`+width+`" height="`+height+
		`" viewBox="0 0 `+width+" "+height+`">`+"\n"+
		`<rect width="`+width+`" height="`+height+`" fill="`+hexColor(fractal.CurveBackground)+`"/>`+"\n")
	if err != nil {
		return err
	}

	var style string
	if filled {
		style = `" stroke="none"`
	} else {
		style = `" fill="none" stroke-width="` + svgNumber(params.StrokeWidth()) +
			`" stroke-linecap="square" stroke-linejoin="miter"`
	}

	var buf []byte
	err = bandPaths(g, params.Palette, func(p *path.Data, col color.RGBA) error {
		buf = append(buf[:0], `<path d="`...)
		k := 0
		for i, cmd := range p.Cmds {
			if i > 0 {
				buf = append(buf, ' ')
			}
			switch cmd {
			case path.CmdMoveTo, path.CmdLineTo:
				if cmd == path.CmdMoveTo {
					buf = append(buf, 'M')
				} else {
					buf = append(buf, 'L')
				}
				x, y := vp.ToPixel(p.Coords[k].X, p.Coords[k].Y)
				buf = appendSVGNumber(buf, x)
				buf = append(buf, ' ')
				buf = appendSVGNumber(buf, y)
				k++
			case path.CmdClose:
				buf = append(buf, 'Z')
			}
		}
		buf = append(buf, style...)
		if filled {
			buf = append(buf, ` fill="`...)
		} else {
			buf = append(buf, ` stroke="`...)
		}
		buf = append(buf, hexColor(col)...)
		buf = append(buf, "\"/>\n"...)
		_, err := w.Write(buf)
		return err
	})
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, "</svg>\n")
	return err
}

func hexColor(c color.RGBA) string {
	const digits = "0123456789abcdef"
	return string([]byte{'#',
		digits[c.R>>4], digits[c.R&15],
		digits[c.G>>4], digits[c.G&15],
		digits[c.B>>4], digits[c.B&15],
	})
}

// appendSVGNumber appends x, rounded to three decimals.
func appendSVGNumber(buf []byte, x float64) []byte {
	x = math.Round(x*1000) / 1000
	if x == 0 {
		x = 0 // avoid "-0"
	}
	return strconv.AppendFloat(buf, x, 'f', -1, 64)
}

func svgNumber(x float64) string {
	return string(appendSVGNumber(nil, x))
}
