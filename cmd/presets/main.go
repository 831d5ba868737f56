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

// Command presets writes the preset catalogue as JSON render requests.
// The requests can be rendered with "fractal -request".
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"seehuhn.de/go/fractal/presets"
	"seehuhn.de/go/fractal/scheduler"
)

type entry struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	scheduler.Request
}

func main() {
	out := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	if err := run(*out); err != nil {
		fmt.Fprintln(os.Stderr, "presets:", err)
		os.Exit(1)
	}
}

func run(fname string) (err error) {
	if fname == "" {
		return writeCatalogue(os.Stdout)
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return writeCatalogue(f)
}

func writeCatalogue(w io.Writer) error {
	var out struct {
		Presets []entry `json:"presets"`
	}
	for _, name := range presets.Names() {
		p, err := presets.Lookup(name)
		if err != nil {
			return err
		}
		req, err := scheduler.NewRequest(p.Viewport, p.Params)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		out.Presets = append(out.Presets, entry{
			Name:        name,
			Description: p.Description,
			Request:     req,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
