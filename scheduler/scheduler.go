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

// Package scheduler runs render jobs on a bounded pool of worker
// goroutines.
//
// Each job renders one [viewport.Viewport] with one set of
// [fractal.Params].  The image is split into square tiles, which are
// rendered independently and copied into the job's buffer as a whole, so
// that a tile is either fully present or absent.  Jobs belong to a
// session; submitting a new job cancels the job previously submitted for
// the same session.
package scheduler

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/fractal"
	"seehuhn.de/go/fractal/curve"
	"seehuhn.de/go/fractal/raster"
	"seehuhn.de/go/fractal/viewport"
)

var (
	// ErrUnknownJob is returned for job IDs which were never issued or
	// have been released.
	ErrUnknownJob = errors.New("unknown job")

	// ErrClosed is returned by Submit after Close has been called.
	ErrClosed = errors.New("scheduler closed")
)

// Scheduler renders jobs concurrently.  It is safe for concurrent use.
type Scheduler struct {
	workers  int
	tileSize int
	logger   *slog.Logger

	tasks      chan task
	workerWG   sync.WaitGroup
	dispatchWG sync.WaitGroup

	rasterisers sync.Pool

	mu       sync.Mutex
	nextID   JobID
	jobs     map[JobID]*job
	sessions map[string]*session
	closed   bool
}

// session remembers the latest job of a session, and the job it
// superseded.
type session struct {
	current, previous *job
}

// task is one tile of one job.
type task struct {
	j    *job
	tile image.Rectangle
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithWorkers sets the number of worker goroutines.  Values below 1
// select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(s *Scheduler) {
		s.workers = n
	}
}

// WithLogger sets the logger for job life-cycle events.  By default the
// module logger [fractal.Logger] is used.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

func withTileSize(n int) Option {
	return func(s *Scheduler) {
		s.tileSize = n
	}
}

// New starts a scheduler.  Call Close to stop the workers.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		tileSize: tileSize,
		jobs:     make(map[JobID]*job),
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	s.rasterisers.New = func() any {
		return raster.NewRasteriser(rect.Rect{})
	}

	s.tasks = make(chan task, s.workers)
	s.workerWG.Add(s.workers)
	for range s.workers {
		go s.worker()
	}
	return s
}

func (s *Scheduler) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return fractal.Logger()
}

// Submit validates a render request and starts a job for it.  Any job of
// the same session which is still running is cancelled.  Invalid requests
// fail with an error matching [fractal.ErrInvalidParameter] and do not
// create a job.
func (s *Scheduler) Submit(sessionID string, vp viewport.Viewport, params fractal.Params) (JobID, error) {
	if err := vp.Validate(); err != nil {
		return 0, err
	}
	if err := params.Validate(); err != nil {
		return 0, err
	}

	j := &job{
		session: sessionID,
		vp:      vp,
		params:  params,
		tiles:   splitRectNoClip(vp.Bounds(), s.tileSize, s.tileSize),
		done:    make(chan struct{}),
		status:  Pending,
		img:     image.NewRGBA(vp.Bounds()),
	}
	if params.Kind.IsCurve() {
		g, err := curve.Generate(params.Kind, params.Depth)
		if err != nil {
			return 0, err
		}
		j.geom = g
		j.bboxes = deviceBounds(g, vp, params.StrokeWidth())
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, ErrClosed
	}
	s.nextID++
	j.id = s.nextID
	s.jobs[j.id] = j

	sess := s.sessions[sessionID]
	if sess == nil {
		sess = &session{}
		s.sessions[sessionID] = sess
	}
	var superseded *job
	if sess.previous != nil {
		sess.previous.cancelled.Store(true)
		delete(s.jobs, sess.previous.id)
	}
	if sess.current != nil {
		superseded = sess.current
		superseded.cancelled.Store(true)
	}
	sess.previous, sess.current = sess.current, j

	s.dispatchWG.Add(1)
	s.mu.Unlock()

	if superseded != nil {
		s.log().Debug("job superseded", "job", superseded.id, "by", j.id, "session", sessionID)
	}
	s.log().Debug("job submitted", "job", j.id, "session", sessionID,
		"kind", params.Kind, "width", vp.Width, "height", vp.Height, "tiles", len(j.tiles))

	go s.dispatch(j)
	return j.id, nil
}

// dispatch feeds the tiles of j to the workers and finishes the job once
// all of them are done.
func (s *Scheduler) dispatch(j *job) {
	defer s.dispatchWG.Done()

	j.setRunning()
	for _, tile := range j.tiles {
		if j.cancelled.Load() {
			break
		}
		j.inFlight.Add(1)
		s.tasks <- task{j: j, tile: tile}
	}
	j.inFlight.Wait()

	status := j.finish()
	snap := j.snapshot()
	s.log().Info("job finished", "job", j.id, "status", status,
		"tiles", snap.TilesDone, "total", snap.TilesTotal, "duration", snap.Elapsed)
}

func (s *Scheduler) worker() {
	defer s.workerWG.Done()
	for t := range s.tasks {
		s.run(t)
	}
}

// run renders a single tile.  Tiles of cancelled jobs are skipped, but a
// tile which has been started is always completed.
func (s *Scheduler) run(t task) {
	j := t.j
	defer j.inFlight.Done()
	if j.cancelled.Load() {
		return
	}

	img := image.NewRGBA(t.tile)
	if j.geom != nil {
		r := s.rasterisers.Get().(*raster.Rasteriser)
		renderCurveTile(r, j, img)
		s.rasterisers.Put(r)
	} else {
		renderEscapeTile(j, img)
	}
	j.commit(img)
}

func (s *Scheduler) lookup(id JobID) (*job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, ErrUnknownJob
	}
	return j, nil
}

// Cancel asks a job to stop.  Tiles which are being rendered are
// completed, the remaining ones are skipped; the job then becomes
// Cancelled.  Cancelling a job which has already finished has no effect.
func (s *Scheduler) Cancel(id JobID) error {
	j, err := s.lookup(id)
	if err != nil {
		return err
	}
	select {
	case <-j.done:
		return nil
	default:
	}
	if !j.cancelled.Swap(true) {
		s.log().Debug("job cancelled", "job", id, "session", j.session)
	}
	return nil
}

// Poll returns the current state of a job.
func (s *Scheduler) Poll(id JobID) (Snapshot, error) {
	j, err := s.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	return j.snapshot(), nil
}

// Wait blocks until the job has reached a terminal state, or until ctx
// is done.
func (s *Scheduler) Wait(ctx context.Context, id JobID) (Snapshot, error) {
	j, err := s.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	select {
	case <-j.done:
		return j.snapshot(), nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Release cancels a job if needed and forgets about it.  Snapshots
// obtained earlier stay valid.
func (s *Scheduler) Release(id JobID) error {
	s.mu.Lock()
	j, ok := s.jobs[id]
	if !ok {
		s.mu.Unlock()
		return ErrUnknownJob
	}
	delete(s.jobs, id)
	if sess := s.sessions[j.session]; sess != nil {
		if sess.current == j {
			sess.current = nil
		}
		if sess.previous == j {
			sess.previous = nil
		}
		if sess.current == nil && sess.previous == nil {
			delete(s.sessions, j.session)
		}
	}
	s.mu.Unlock()

	j.cancelled.Store(true)
	return nil
}

// Close cancels all jobs and stops the workers.  It waits until all
// tiles in progress are finished.  After Close, Submit fails with
// [ErrClosed].
func (s *Scheduler) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for _, j := range s.jobs {
		j.cancelled.Store(true)
	}
	s.mu.Unlock()

	start := time.Now()
	s.dispatchWG.Wait()
	close(s.tasks)
	s.workerWG.Wait()
	s.log().Debug("scheduler closed", "duration", time.Since(start))
	return nil
}
