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

// Command fractal renders a single fractal image.
//
// The render request is taken from a preset (-preset), from a JSON file
// in the format written by the presets command (-request), or built from
// the -kind flag.  The remaining flags modify the request.  Defaults are
// read from the FRACTAL_* environment variables.
//
// Example:
//
//	fractal -preset mandelbrot_seahorse_valley -width 1920 -height 1080 -o seahorse.png
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"seehuhn.de/go/fractal"
	"seehuhn.de/go/fractal/config"
	"seehuhn.de/go/fractal/export"
	"seehuhn.de/go/fractal/presets"
	"seehuhn.de/go/fractal/scheduler"
	"seehuhn.de/go/fractal/viewport"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "fractal:", err)
		os.Exit(1)
	}
}

type options struct {
	preset  string
	request string

	kind    string
	iter    int
	radius  float64
	c       string
	depth   int
	palette string
	smooth  bool
	filled  bool
	lineW   float64

	width, height int
	center        string
	scale         float64
	zoom          float64
	fit           string

	caption string
	out     string
	format  string
	timeout time.Duration

	set map[string]bool
}

func parseFlags(args []string, cfg *config.Config) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("fractal", flag.ContinueOnError)
	fs.StringVar(&o.preset, "preset", "", "start from the named preset (see the presets command)")
	fs.StringVar(&o.request, "request", "", "start from the JSON render request in `file`")
	fs.StringVar(&o.kind, "kind", "mandelbrot", "fractal kind: mandelbrot, julia, sierpinski or dragon")
	fs.IntVar(&o.iter, "iter", cfg.MaxIterations, "maximum number of iterations")
	fs.Float64Var(&o.radius, "radius", cfg.EscapeRadius, "escape radius")
	fs.StringVar(&o.c, "c", "", "Julia parameter as `re,im`")
	fs.IntVar(&o.depth, "depth", 0, "recursion depth of curves")
	fs.StringVar(&o.palette, "palette", cfg.Palette, "palette id: "+strings.Join(fractal.PaletteNames(), ", ")+" or random:<seed>")
	fs.BoolVar(&o.smooth, "smooth", false, "use fractional iteration counts")
	fs.BoolVar(&o.filled, "filled", false, "draw the Sierpinski triangle filled")
	fs.Float64Var(&o.lineW, "line-width", cfg.LineWidth, "curve stroke width in pixels")
	fs.IntVar(&o.width, "width", cfg.Width, "image width in pixels")
	fs.IntVar(&o.height, "height", cfg.Height, "image height in pixels")
	fs.StringVar(&o.center, "center", "", "centre of the image as `re,im`")
	fs.Float64Var(&o.scale, "scale", 0, "plane units per pixel")
	fs.Float64Var(&o.zoom, "zoom", 1, "zoom factor around the image centre")
	fs.StringVar(&o.fit, "fit", "", "show the region `xmin,xmax,ymin,ymax` of the plane")
	fs.StringVar(&o.caption, "caption", "", "text to write into the image")
	fs.StringVar(&o.out, "o", "fractal.png", "output file")
	fs.StringVar(&o.format, "format", "", "output format: png, tiff, bmp, pdf or svg (default from the file name)")
	fs.DurationVar(&o.timeout, "timeout", 0, "cancel the render after this time")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		o.set[f.Name] = true
	})
	if o.set["preset"] && o.set["request"] {
		return nil, errors.New("-preset and -request cannot be combined")
	}
	return o, nil
}

// kindDefault names the preset which gives the default view for each kind.
var kindDefault = map[fractal.Kind]string{
	fractal.Mandelbrot: "mandelbrot_full",
	fractal.Julia:      "julia_default",
	fractal.Sierpinski: "curve_sierpinski",
	fractal.Dragon:     "curve_dragon",
}

// buildRequest assembles the viewport and parameters described by o.
func buildRequest(o *options, cfg *config.Config) (viewport.Viewport, fractal.Params, error) {
	var vp viewport.Viewport
	var params fractal.Params
	switch {
	case o.set["preset"]:
		p, err := presets.Lookup(o.preset)
		if err != nil {
			return vp, params, err
		}
		vp, params = p.Viewport, p.Params
	case o.set["request"]:
		data, err := os.ReadFile(o.request)
		if err != nil {
			return vp, params, err
		}
		var req scheduler.Request
		if err := json.Unmarshal(data, &req); err != nil {
			return vp, params, fmt.Errorf("%s: %w", o.request, err)
		}
		params, err = req.Params.Params()
		if err != nil {
			return vp, params, fmt.Errorf("%s: %w", o.request, err)
		}
		vp = req.Viewport
	default:
		kind, err := fractal.ParseKind(o.kind)
		if err != nil {
			return vp, params, err
		}
		params, err = cfg.Params(kind)
		if err != nil {
			return vp, params, err
		}
		p, err := presets.Lookup(kindDefault[kind])
		if err != nil {
			return vp, params, err
		}
		b := p.Viewport.PlaneBounds()
		vp, err = viewport.FitRegion(b.LLx, b.URx, b.LLy, b.URy, o.width, o.height)
		if err != nil {
			return vp, params, err
		}
	}

	if err := applyParams(o, &params); err != nil {
		return vp, params, err
	}
	if err := applyView(o, &vp); err != nil {
		return vp, params, err
	}
	return vp, params, nil
}

func applyParams(o *options, p *fractal.Params) error {
	if o.set["kind"] && (o.set["preset"] || o.set["request"]) {
		kind, err := fractal.ParseKind(o.kind)
		if err != nil {
			return err
		}
		if kind != p.Kind {
			return fmt.Errorf("-kind %s conflicts with the %s request", kind, p.Kind)
		}
	}
	if o.set["iter"] {
		p.MaxIterations = o.iter
	}
	if o.set["radius"] {
		p.EscapeRadius = o.radius
	}
	if o.set["c"] {
		re, im, err := parsePair(o.c)
		if err != nil {
			return fmt.Errorf("-c: %w", err)
		}
		p.JuliaC = complex(re, im)
	}
	if o.set["depth"] {
		p.Depth = o.depth
	}
	if o.set["palette"] {
		pal, err := fractal.LookupPalette(o.palette)
		if err != nil {
			return err
		}
		p.Palette = pal
	}
	if o.set["smooth"] {
		p.Smooth = o.smooth
	}
	if o.set["filled"] {
		p.Filled = o.filled
	}
	if o.set["line-width"] {
		p.LineWidth = o.lineW
	}
	return p.Validate()
}

func applyView(o *options, vp *viewport.Viewport) error {
	if o.set["width"] || o.set["height"] {
		// keep the visible region
		b := vp.PlaneBounds()
		resized, err := viewport.FitRegion(b.LLx, b.URx, b.LLy, b.URy, o.width, o.height)
		if err != nil {
			return err
		}
		*vp = resized
	}
	if o.set["fit"] {
		r, err := parseList(o.fit, 4)
		if err != nil {
			return fmt.Errorf("-fit: %w", err)
		}
		fitted, err := viewport.FitRegion(r[0], r[1], r[2], r[3], vp.Width, vp.Height)
		if err != nil {
			return err
		}
		*vp = fitted
	}
	if o.set["center"] {
		re, im, err := parsePair(o.center)
		if err != nil {
			return fmt.Errorf("-center: %w", err)
		}
		vp.CenterRe, vp.CenterIm = re, im
	}
	if o.set["scale"] {
		vp.Scale = o.scale
	}
	if err := vp.Validate(); err != nil {
		return err
	}
	if o.set["zoom"] {
		return vp.Zoom(o.zoom, float64(vp.Width)/2, float64(vp.Height)/2)
	}
	return nil
}

func parsePair(s string) (float64, float64, error) {
	v, err := parseList(s, 2)
	if err != nil {
		return 0, 0, err
	}
	return v[0], v[1], nil
}

func parseList(s string, n int) ([]float64, error) {
	fields := strings.Split(s, ",")
	if len(fields) != n {
		return nil, fmt.Errorf("%q: expected %d comma-separated numbers", s, n)
	}
	res := make([]float64, n)
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		res[i] = x
	}
	return res, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg := config.Load()
	o, err := parseFlags(args, cfg)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	fractal.SetLogger(logger)
	defer fractal.SetLogger(nil)

	vp, params, err := buildRequest(o, cfg)
	if err != nil {
		return err
	}
	exportOpt := &export.Options{Caption: o.caption}
	if o.format != "" {
		exportOpt.Format, err = export.ParseFormat(o.format)
		if err != nil {
			return err
		}
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	s := scheduler.New(scheduler.WithWorkers(cfg.Workers))
	defer s.Close()

	id, err := s.Submit("cli", vp, params)
	if err != nil {
		return err
	}
	snap, err := s.Wait(ctx, id)
	if err != nil {
		// interrupted or timed out
		if cerr := s.Cancel(id); cerr != nil {
			return cerr
		}
		snap, err = s.Wait(context.Background(), id)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "%s: %s, %d/%d tiles in %s\n",
		snap.ID, snap.Status, snap.TilesDone, snap.TilesTotal, snap.Elapsed.Round(time.Millisecond))
	if snap.Status != scheduler.Complete {
		return fmt.Errorf("render %s", snap.Status)
	}

	if err := export.Snapshot(snap, o.out, exportOpt); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "wrote", o.out)
	return nil
}
