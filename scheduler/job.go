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
	"fmt"
	"image"
	"image/draw"
	"sync"
	"sync/atomic"
	"time"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/fractal"
	"seehuhn.de/go/fractal/curve"
	"seehuhn.de/go/fractal/viewport"
)

// JobID identifies a render job.  IDs are never reused within a Scheduler.
type JobID uint64

func (id JobID) String() string {
	return fmt.Sprintf("job-%d", uint64(id))
}

// Status is the life-cycle state of a render job.
type Status int

// A job starts out Pending, becomes Running once its tiles are being
// dispatched, and ends in Complete or Cancelled.  Scheduled jobs never
// enter Failed: invalid requests are rejected by [Scheduler.Submit]
// before a job is created.
const (
	Pending Status = iota
	Running
	Complete
	Cancelled
	Failed
)

var statusNames = [...]string{
	Pending:   "pending",
	Running:   "running",
	Complete:  "complete",
	Cancelled: "cancelled",
	Failed:    "failed",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// Terminal reports whether no further change of state can occur.
func (s Status) Terminal() bool {
	return s == Complete || s == Cancelled || s == Failed
}

// Snapshot is the state of a job at the time of a call to
// [Scheduler.Poll] or [Scheduler.Wait].
type Snapshot struct {
	ID      JobID
	Session string
	Status  Status

	TilesDone  int
	TilesTotal int

	// Image holds the pixels rendered so far.  Tiles which have not been
	// rendered are fully transparent.  For terminal jobs this is the
	// job's own buffer, which must not be modified.  Otherwise it is a
	// copy.
	Image *image.RGBA

	// Geometry is the curve drawn by the job, or nil for escape-time
	// fractals.
	Geometry *curve.Geometry

	Viewport viewport.Viewport
	Params   fractal.Params

	// Elapsed is the time since the job started running, or the total
	// running time for terminal jobs.
	Elapsed time.Duration
}

// job is the state of a single render request.
type job struct {
	id      JobID
	session string
	vp      viewport.Viewport
	params  fractal.Params
	tiles   []image.Rectangle

	// curve jobs only
	geom   *curve.Geometry
	bboxes []rect.Rect // device space bounding box of every primitive

	cancelled atomic.Bool
	inFlight  sync.WaitGroup
	done      chan struct{}

	mu        sync.Mutex
	status    Status
	img       *image.RGBA
	tilesDone int
	started   time.Time
	finished  time.Time
}

func (j *job) setRunning() {
	j.mu.Lock()
	j.status = Running
	j.started = time.Now()
	j.mu.Unlock()
}

// commit copies a finished tile into the job's buffer.
func (j *job) commit(tile *image.RGBA) {
	j.mu.Lock()
	defer j.mu.Unlock()

	draw.Draw(j.img, tile.Rect, tile, tile.Rect.Min, draw.Src)
	j.tilesDone++
}

// finish moves the job into its terminal state.  It must be called once,
// after all tiles have either been committed or skipped.
func (j *job) finish() Status {
	j.mu.Lock()
	if j.tilesDone == len(j.tiles) {
		j.status = Complete
	} else {
		j.status = Cancelled
	}
	j.finished = time.Now()
	status := j.status
	j.mu.Unlock()

	close(j.done)
	return status
}

func (j *job) snapshot() Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()

	img := j.img
	var elapsed time.Duration
	switch {
	case j.status.Terminal():
		elapsed = j.finished.Sub(j.started)
	case j.status == Running:
		elapsed = time.Since(j.started)
	}
	if !j.status.Terminal() {
		img = image.NewRGBA(j.img.Rect)
		copy(img.Pix, j.img.Pix)
	}

	return Snapshot{
		ID:         j.id,
		Session:    j.session,
		Status:     j.status,
		TilesDone:  j.tilesDone,
		TilesTotal: len(j.tiles),
		Image:      img,
		Geometry:   j.geom,
		Viewport:   j.vp,
		Params:     j.params,
		Elapsed:    elapsed,
	}
}

// tileSize is the edge length of the square tiles a job is split into.
const tileSize = 64

// splitRectNoClip splits r into tiles of size tileW × tileH.
// Tiles at the right and bottom edges are smaller if r is not divisible.
func splitRectNoClip(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	w := r.Dx()
	h := r.Dy()

	var tiles []image.Rectangle
	for oy := 0; oy < h; oy += tileH {
		th := min(tileH, h-oy)
		for ox := 0; ox < w; ox += tileW {
			tw := min(tileW, w-ox)
			tiles = append(tiles, image.Rect(
				r.Min.X+ox,
				r.Min.Y+oy,
				r.Min.X+ox+tw,
				r.Min.Y+oy+th,
			))
		}
	}
	return tiles
}
