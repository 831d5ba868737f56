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

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/fractal/presets"
)

func TestCatalogue(t *testing.T) {
	var buf bytes.Buffer
	if err := writeCatalogue(&buf); err != nil {
		t.Fatal(err)
	}

	var in struct {
		Presets []entry `json:"presets"`
	}
	if err := json.Unmarshal(buf.Bytes(), &in); err != nil {
		t.Fatal(err)
	}
	names := presets.Names()
	if len(in.Presets) != len(names) {
		t.Fatalf("%d entries, want %d", len(in.Presets), len(names))
	}
	for i, e := range in.Presets {
		if e.Name != names[i] {
			t.Errorf("entry %d: %q, want %q", i, e.Name, names[i])
		}
		p, err := presets.Lookup(e.Name)
		if err != nil {
			t.Fatal(err)
		}
		params, err := e.Params.Params()
		if err != nil {
			t.Errorf("%s: %v", e.Name, err)
			continue
		}
		if e.Viewport != p.Viewport {
			t.Errorf("%s: viewport %+v, want %+v", e.Name, e.Viewport, p.Viewport)
		}
		if params.Kind != p.Params.Kind || params.Depth != p.Params.Depth ||
			params.JuliaC != p.Params.JuliaC || params.Palette != p.Params.Palette {
			t.Errorf("%s: params %+v, want %+v", e.Name, params, p.Params)
		}
	}
}

func TestRunFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "presets.json")
	if err := run(fname); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(data) {
		t.Error("invalid JSON")
	}
}
