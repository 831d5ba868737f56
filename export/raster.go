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
	"bufio"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"

	"seehuhn.de/go/fractal"
	"seehuhn.de/go/fractal/viewport"
)

// Raster writes img as a PNG, TIFF or BMP file.
func Raster(img image.Image, filePath string, opt *Options) error {
	format, err := opt.format(filePath)
	if err != nil {
		return err
	}
	if format.IsVector() {
		return fractal.InvalidParameter("format", format, "not a raster format")
	}
	if img == nil || img.Bounds().Empty() {
		return fractal.InvalidParameter("image", nil, "empty image")
	}
	if opt == nil {
		opt = &Options{}
	}

	out, err := prepare(img, opt)
	if err != nil {
		return err
	}

	return writeFile(filePath, func(w io.Writer) error {
		switch format {
		case TIFF:
			return tiff.Encode(w, out, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
		case BMP:
			return bmp.Encode(w, out)
		default:
			return png.Encode(w, out)
		}
	})
}

// prepare resamples img to the requested size and adds the caption.
func prepare(img image.Image, opt *Options) (image.Image, error) {
	b := img.Bounds()
	w, h := opt.Width, opt.Height
	if w < 0 || h < 0 || w > viewport.MaxSize || h > viewport.MaxSize {
		return nil, fractal.InvalidParameter("output size", image.Pt(w, h), "out of range")
	}
	switch {
	case w == 0 && h == 0:
		w, h = b.Dx(), b.Dy()
	case w == 0:
		w = max(1, int(math.Round(float64(h)*float64(b.Dx())/float64(b.Dy()))))
	case h == 0:
		h = max(1, int(math.Round(float64(w)*float64(b.Dy())/float64(b.Dx()))))
	}
	if w > viewport.MaxSize || h > viewport.MaxSize || w*h > viewport.MaxPixels {
		return nil, fractal.InvalidParameter("output size", image.Pt(w, h), "too many pixels")
	}

	resize := w != b.Dx() || h != b.Dy()
	if !resize && opt.Caption == "" {
		return img, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if resize {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	} else {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	}
	if opt.Caption != "" {
		drawCaption(dst, opt.Caption)
	}
	return dst, nil
}

const captionPad = 4

// drawCaption writes white text on a dark box in the bottom left corner
// of img.
func drawCaption(img *image.RGBA, text string) {
	face := basicfont.Face7x13
	m := face.Metrics()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}

	b := img.Bounds()
	width := d.MeasureString(text).Ceil()
	box := image.Rect(
		b.Min.X, b.Max.Y-m.Height.Ceil()-2*captionPad,
		b.Min.X+width+2*captionPad, b.Max.Y,
	).Intersect(b)
	draw.Draw(img, box, image.NewUniform(color.RGBA{A: 0xA0}), image.Point{}, draw.Over)

	d.Dot = fixed.P(b.Min.X+captionPad, b.Max.Y-captionPad-m.Descent.Ceil())
	d.DrawString(text)
}

// writeFile creates filePath and fills it using write.  All failures,
// including the one of closing the file, are reported as
// [*fractal.IOError].
func writeFile(filePath string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(filePath)
	if err != nil {
		return &fractal.IOError{Path: filePath, Err: err}
	}
	defer func() {
		cerr := f.Close()
		if err == nil && cerr != nil {
			err = &fractal.IOError{Path: filePath, Err: cerr}
		}
	}()

	w := bufio.NewWriter(f)
	err = write(w)
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		return &fractal.IOError{Path: filePath, Err: err}
	}
	return nil
}
