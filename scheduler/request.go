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

package scheduler

import (
	"seehuhn.de/go/fractal"
	"seehuhn.de/go/fractal/viewport"
)

// Request is a render request in serialisable form.
type Request struct {
	Params   fractal.Record    `json:"params"`
	Viewport viewport.Viewport `json:"viewport"`
}

// NewRequest returns the serialisable form of a render request.
func NewRequest(vp viewport.Viewport, params fractal.Params) (Request, error) {
	rec, err := params.Record()
	if err != nil {
		return Request{}, err
	}
	return Request{Params: rec, Viewport: vp}, nil
}

// SubmitRequest decodes req and submits it.  See [Scheduler.Submit].
func (s *Scheduler) SubmitRequest(sessionID string, req Request) (JobID, error) {
	params, err := req.Params.Params()
	if err != nil {
		return 0, err
	}
	return s.Submit(sessionID, req.Viewport, params)
}
