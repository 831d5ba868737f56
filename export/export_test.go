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
	"bytes"
	"encoding/xml"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"seehuhn.de/go/fractal"
	"seehuhn.de/go/fractal/curve"
	"seehuhn.de/go/fractal/scheduler"
	"seehuhn.de/go/fractal/viewport"
)

// testImage returns an opaque image with a distinct colour in every pixel.
func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 11), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func decode(t *testing.T, fname string, format Format) image.Image {
	t.Helper()
	f, err := os.Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var img image.Image
	switch format {
	case PNG:
		img, err = png.Decode(f)
	case TIFF:
		img, err = tiff.Decode(f)
	case BMP:
		img, err = bmp.Decode(f)
	}
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func sameRGBA(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1>>8 == r2>>8 && g1>>8 == g2>>8 && b1>>8 == b2>>8 && a1>>8 == a2>>8
}

func TestRasterRoundTrip(t *testing.T) {
	src := testImage(37, 23)
	dir := t.TempDir()
	for _, format := range []Format{PNG, TIFF, BMP} {
		t.Run(format.String(), func(t *testing.T) {
			fname := filepath.Join(dir, "out."+format.String())
			if err := Raster(src, fname, nil); err != nil {
				t.Fatal(err)
			}
			img := decode(t, fname, format)
			if img.Bounds() != src.Bounds() {
				t.Fatalf("bounds %v, want %v", img.Bounds(), src.Bounds())
			}
			for y := range 23 {
				for x := range 37 {
					if !sameRGBA(img.At(x, y), src.At(x, y)) {
						t.Fatalf("pixel (%d,%d): %v, want %v", x, y, img.At(x, y), src.At(x, y))
					}
				}
			}
		})
	}
}

func TestRasterFormatOption(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "image.dat")
	if err := Raster(testImage(8, 8), fname, &Options{Format: TIFF}); err != nil {
		t.Fatal(err)
	}
	decode(t, fname, TIFF)
}

func TestResize(t *testing.T) {
	src := testImage(40, 20)
	dir := t.TempDir()
	cases := []struct {
		w, h int
		want image.Point
	}{
		{80, 0, image.Pt(80, 40)},
		{0, 10, image.Pt(20, 10)},
		{13, 17, image.Pt(13, 17)},
	}
	for _, c := range cases {
		fname := filepath.Join(dir, "resized.png")
		if err := Raster(src, fname, &Options{Width: c.w, Height: c.h}); err != nil {
			t.Fatal(err)
		}
		if size := decode(t, fname, PNG).Bounds().Size(); size != c.want {
			t.Errorf("%dx%d: got size %v, want %v", c.w, c.h, size, c.want)
		}
	}

	// a uniform image stays uniform
	grey := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := range grey.Pix {
		grey.Pix[i] = 0x80
		if i%4 == 3 {
			grey.Pix[i] = 0xFF
		}
	}
	fname := filepath.Join(dir, "grey.png")
	if err := Raster(grey, fname, &Options{Width: 25}); err != nil {
		t.Fatal(err)
	}
	img := decode(t, fname, PNG)
	if c := img.At(12, 12); !sameRGBA(c, color.RGBA{0x80, 0x80, 0x80, 0xFF}) {
		t.Errorf("resampled grey: %v", c)
	}
}

func TestCaption(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for i := range src.Pix {
		src.Pix[i] = 0xFF
	}
	fname := filepath.Join(t.TempDir(), "caption.png")
	if err := Raster(src, fname, &Options{Caption: "z=0.005"}); err != nil {
		t.Fatal(err)
	}
	img := decode(t, fname, PNG)

	white := color.RGBA{255, 255, 255, 255}
	if !sameRGBA(img.At(199, 0), white) || !sameRGBA(img.At(199, 99), white) {
		t.Error("caption drawn outside the bottom left corner")
	}
	if sameRGBA(img.At(1, 98), white) {
		t.Error("no caption box")
	}
	if src.RGBAAt(1, 98) != white {
		t.Error("source image modified")
	}
}

func TestRasterErrors(t *testing.T) {
	dir := t.TempDir()
	img := testImage(4, 4)

	err := Raster(img, filepath.Join(dir, "missing", "out.png"), nil)
	if !errors.Is(err, fractal.ErrIO) {
		t.Errorf("missing directory: %v", err)
	}
	var ioErr *fractal.IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("not an IOError: %T", err)
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		t.Errorf("underlying error lost: %v", err)
	}

	for _, fname := range []string{"out.xyz", "noext", "out.pdf"} {
		err := Raster(img, filepath.Join(dir, fname), nil)
		if !errors.Is(err, fractal.ErrInvalidParameter) {
			t.Errorf("%s: %v", fname, err)
		}
	}
	if err := Raster(nil, filepath.Join(dir, "x.png"), nil); !errors.Is(err, fractal.ErrInvalidParameter) {
		t.Errorf("nil image: %v", err)
	}
	if err := Raster(img, filepath.Join(dir, "x.png"), &Options{Width: -1}); !errors.Is(err, fractal.ErrInvalidParameter) {
		t.Errorf("negative width: %v", err)
	}
	huge := &Options{Width: viewport.MaxSize, Height: viewport.MaxSize}
	if err := Raster(img, filepath.Join(dir, "x.png"), huge); !errors.Is(err, fractal.ErrInvalidParameter) {
		t.Errorf("oversized output: %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"png": PNG, "TIF": TIFF, "tiff": TIFF, "bmp": BMP, "Pdf": PDF, "svg": SVG}
	for name, want := range cases {
		got, err := ParseFormat(name)
		if err != nil || got != want {
			t.Errorf("%q: got %v, %v", name, got, err)
		}
	}
	if _, err := ParseFormat("jpeg"); !errors.Is(err, fractal.ErrInvalidParameter) {
		t.Errorf("jpeg: %v", err)
	}
	if f, err := FormatFromPath("/tmp/a.b/dragon.SVG"); err != nil || f != SVG {
		t.Errorf("got %v, %v", f, err)
	}
}

func dragonScene(t *testing.T, depth int) (*curve.Geometry, viewport.Viewport, fractal.Params) {
	t.Helper()
	g, err := curve.Dragon(depth)
	if err != nil {
		t.Fatal(err)
	}
	b := g.Bounds()
	vp, err := viewport.FitRegion(b.LLx-0.1, b.URx+0.1, b.LLy-0.1, b.URy+0.1, 240, 160)
	if err != nil {
		t.Fatal(err)
	}
	params := fractal.DefaultParams(fractal.Dragon)
	params.Depth = depth
	params.LineWidth = 2
	return g, vp, params
}

type svgDoc struct {
	Width  string    `xml:"width,attr"`
	Height string    `xml:"height,attr"`
	Rect   svgRect   `xml:"rect"`
	Paths  []svgPath `xml:"path"`
}

type svgRect struct {
	Fill string `xml:"fill,attr"`
}

type svgPath struct {
	D      string `xml:"d,attr"`
	Fill   string `xml:"fill,attr"`
	Stroke string `xml:"stroke,attr"`
	Width  string `xml:"stroke-width,attr"`
}

func readSVG(t *testing.T, fname string) *svgDoc {
	t.Helper()
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	doc := &svgDoc{}
	if err := xml.Unmarshal(data, doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestSVG(t *testing.T) {
	g, vp, params := dragonScene(t, 8)
	fname := filepath.Join(t.TempDir(), "dragon.svg")
	if err := Vector(g, vp, params, fname, nil); err != nil {
		t.Fatal(err)
	}
	doc := readSVG(t, fname)

	if doc.Width != "240" || doc.Height != "160" || doc.Rect.Fill != "#ffffff" {
		t.Errorf("header: %s x %s, background %s", doc.Width, doc.Height, doc.Rect.Fill)
	}
	if len(doc.Paths) != fractal.CurveBands {
		t.Fatalf("%d paths, want %d", len(doc.Paths), fractal.CurveBands)
	}
	for band, p := range doc.Paths {
		if want := hexColor(fractal.BandColor(params.Palette, band)); p.Stroke != want {
			t.Errorf("band %d: stroke %s, want %s", band, p.Stroke, want)
		}
		if p.Fill != "none" || p.Width != "2" {
			t.Errorf("band %d: fill %q, width %q", band, p.Fill, p.Width)
		}
		// each band of the dragon is a single connected line
		if strings.Count(p.D, "M") != 1 || strings.Count(p.D, "L") != 8 {
			t.Errorf("band %d: path %q", band, p.D)
		}
	}

	// the curve starts at the origin
	x, y := vp.ToPixel(0, 0)
	want := "M" + svgNumber(x) + " " + svgNumber(y) + " "
	if !strings.HasPrefix(doc.Paths[0].D, want) {
		t.Errorf("path starts with %.20q, want %q", doc.Paths[0].D, want)
	}
}

func TestSVGFilled(t *testing.T) {
	g, err := curve.Sierpinski(1)
	if err != nil {
		t.Fatal(err)
	}
	vp, err := viewport.FitRegion(-1, 1, -0.6, 1.1, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	params := fractal.DefaultParams(fractal.Sierpinski)
	params.Depth = 1
	params.Filled = true

	fname := filepath.Join(t.TempDir(), "triangle.svg")
	if err := Vector(g, vp, params, fname, nil); err != nil {
		t.Fatal(err)
	}
	doc := readSVG(t, fname)

	// three primitives, each in its own band
	if len(doc.Paths) != 3 {
		t.Fatalf("%d paths", len(doc.Paths))
	}
	for i, p := range doc.Paths {
		band := fractal.Band(i, 3)
		if want := hexColor(fractal.BandColor(params.Palette, band)); p.Fill != want {
			t.Errorf("triangle %d: fill %s, want %s", i, p.Fill, want)
		}
		if strings.Count(p.D, "Z") != 1 {
			t.Errorf("triangle %d: path %q", i, p.D)
		}
	}
}

func TestPDF(t *testing.T) {
	g, vp, params := dragonScene(t, 10)
	fname := filepath.Join(t.TempDir(), "dragon.pdf")
	if err := Vector(g, vp, params, fname, nil); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-1.7")) {
		t.Errorf("missing PDF header: %q", data[:min(len(data), 10)])
	}
	if !bytes.Contains(data, []byte("%%EOF")) {
		t.Error("missing end of file marker")
	}
}

// TestPDFStyles writes stroked and filled curves and checks that each
// file is a complete PDF document.
func TestPDFStyles(t *testing.T) {
	dir := t.TempDir()

	g, vp, params := dragonScene(t, 6)
	params.Palette = fractal.RandomPalette(11)
	stroked := filepath.Join(dir, "stroked.pdf")
	if err := Vector(g, vp, params, stroked, &Options{Format: PDF}); err != nil {
		t.Fatal(err)
	}

	tri, err := curve.Sierpinski(3)
	if err != nil {
		t.Fatal(err)
	}
	triVP, err := viewport.FitRegion(-1, 1, -0.6, 1.1, 120, 100)
	if err != nil {
		t.Fatal(err)
	}
	triParams := fractal.DefaultParams(fractal.Sierpinski)
	triParams.Depth = 3
	triParams.Filled = true
	filled := filepath.Join(dir, "filled.pdf")
	if err := Vector(tri, triVP, triParams, filled, nil); err != nil {
		t.Fatal(err)
	}

	for _, fname := range []string{stroked, filled} {
		data, err := os.ReadFile(fname)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF-")) || !bytes.Contains(data, []byte("%%EOF")) {
			t.Errorf("%s is not a complete PDF file", filepath.Base(fname))
		}
	}

	err = Vector(g, vp, params, filepath.Join(dir, "missing", "a.pdf"), nil)
	if !errors.Is(err, fractal.ErrIO) {
		t.Errorf("missing directory: %v", err)
	}
}

func TestVectorErrors(t *testing.T) {
	g, vp, params := dragonScene(t, 3)
	dir := t.TempDir()

	if err := Vector(g, vp, params, filepath.Join(dir, "a.png"), nil); !errors.Is(err, fractal.ErrInvalidParameter) {
		t.Errorf("raster format: %v", err)
	}
	if err := Vector(nil, vp, params, filepath.Join(dir, "a.svg"), nil); !errors.Is(err, fractal.ErrInvalidParameter) {
		t.Errorf("nil geometry: %v", err)
	}
	bad := params
	bad.Palette = nil
	if err := Vector(g, vp, bad, filepath.Join(dir, "a.svg"), nil); !errors.Is(err, fractal.ErrInvalidParameter) {
		t.Errorf("no palette: %v", err)
	}
	err := Vector(g, vp, params, filepath.Join(dir, "missing", "a.svg"), nil)
	var pathErr *fs.PathError
	if !errors.Is(err, fractal.ErrIO) || !errors.As(err, &pathErr) {
		t.Errorf("missing directory: %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	g, vp, params := dragonScene(t, 6)
	dir := t.TempDir()

	curveSnap := scheduler.Snapshot{
		ID:       1,
		Status:   scheduler.Complete,
		Image:    testImage(vp.Width, vp.Height),
		Geometry: g,
		Viewport: vp,
		Params:   params,
	}
	if err := Snapshot(curveSnap, filepath.Join(dir, "curve.svg"), nil); err != nil {
		t.Fatal(err)
	}
	readSVG(t, filepath.Join(dir, "curve.svg"))
	if err := Snapshot(curveSnap, filepath.Join(dir, "curve.png"), nil); err != nil {
		t.Fatal(err)
	}
	if b := decode(t, filepath.Join(dir, "curve.png"), PNG).Bounds(); b != vp.Bounds() {
		t.Errorf("bounds %v", b)
	}

	escapeSnap := scheduler.Snapshot{
		ID:       2,
		Status:   scheduler.Complete,
		Image:    testImage(30, 20),
		Viewport: viewport.Viewport{Scale: 0.1, Width: 30, Height: 20},
		Params:   fractal.DefaultParams(fractal.Mandelbrot),
	}
	err := Snapshot(escapeSnap, filepath.Join(dir, "mandel.pdf"), nil)
	if !errors.Is(err, fractal.ErrInvalidParameter) {
		t.Errorf("vector output of escape-time render: %v", err)
	}
	if err := Snapshot(escapeSnap, filepath.Join(dir, "mandel"), &Options{Format: BMP}); err != nil {
		t.Fatal(err)
	}
	decode(t, filepath.Join(dir, "mandel"), BMP)

	if err := Snapshot(scheduler.Snapshot{}, filepath.Join(dir, "empty.png"), nil); !errors.Is(err, fractal.ErrInvalidParameter) {
		t.Errorf("empty snapshot: %v", err)
	}
}

func TestWriteFileError(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "out.bin")
	boom := errors.New("boom")
	err := writeFile(fname, func(w io.Writer) error {
		return boom
	})
	if !errors.Is(err, boom) || !errors.Is(err, fractal.ErrIO) {
		t.Errorf("got %v", err)
	}
}
