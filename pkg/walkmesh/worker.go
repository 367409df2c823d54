package walkmesh

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Result is the outcome of one rebuild request.
type Result struct {
	Request  Request
	Snapshot *Snapshot // nil when Err is set
	Err      error
	Elapsed  time.Duration
	Recolor  bool // true when only colors were recomputed
}

// Worker runs rebuilds off the render thread. Requests submitted while a
// rebuild is running are coalesced: only the newest one is processed next.
// A request with an empty Path builds the placeholder mesh.
type Worker struct {
	log      *zap.Logger
	requests chan Request
	results  chan Result

	// last successful snapshot; owned by the Run goroutine
	last *Snapshot
}

// NewWorker creates a worker. A nil logger disables logging.
func NewWorker(log *zap.Logger) *Worker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Worker{
		log:      log,
		requests: make(chan Request, 1),
		results:  make(chan Result, 1),
	}
}

// Submit queues req, replacing any request that has not started yet.
// It never blocks.
func (w *Worker) Submit(req Request) {
	for {
		select {
		case w.requests <- req:
			return
		default:
		}
		// Drop the stale pending request and retry
		select {
		case <-w.requests:
		default:
		}
	}
}

// Results returns the channel results are delivered on. Only the worker
// writes to it.
func (w *Worker) Results() <-chan Result {
	return w.results
}

// Run processes requests until ctx is cancelled. It closes the results
// channel on return.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.results)

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-w.requests:
			res := w.process(req)
			select {
			case w.results <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (w *Worker) process(req Request) Result {
	start := time.Now()
	res := Result{Request: req}

	if w.last != nil && sameGeometry(w.last.Request, req) {
		res.Snapshot = Recolor(w.last, req.SlopeAngle)
		res.Recolor = true
	} else if req.Path == "" {
		res.Snapshot, res.Err = BuildDefault(req)
	} else {
		res.Snapshot, res.Err = Build(req)
	}
	res.Elapsed = time.Since(start)

	if res.Err != nil {
		w.log.Error("rebuild failed",
			zap.String("path", req.Path),
			zap.Error(res.Err))
		return res
	}

	w.last = res.Snapshot
	w.log.Info("rebuild complete",
		zap.String("path", req.Path),
		zap.Bool("recolor", res.Recolor),
		zap.Int("tiles", res.Snapshot.TileCount()),
		zap.Int("walkable", res.Snapshot.Slope.Walkable),
		zap.Int("unwalkable", res.Snapshot.Slope.Unwalkable),
		zap.Duration("elapsed", res.Elapsed))
	return res
}

// sameGeometry reports whether two requests differ only in slope angle.
func sameGeometry(a, b Request) bool {
	return !b.Reload && a.Path == b.Path && a.TileSize == b.TileSize
}

// MeshSource tracks which mesh file is on screen. A newly chosen path stays
// pending until a rebuild of it succeeds, so a failed load leaves the
// current path in use for later requests.
type MeshSource struct {
	current string
	pending string
	loading bool
}

// NewMeshSource starts with path pending. An empty path selects the
// placeholder mesh.
func NewMeshSource(path string) MeshSource {
	return MeshSource{pending: path, loading: path != ""}
}

// Current returns the path of the mesh last built successfully.
func (s *MeshSource) Current() string { return s.current }

// Pending returns the path being loaded, if any.
func (s *MeshSource) Pending() (string, bool) { return s.pending, s.loading }

// Load marks path as the next mesh to build.
func (s *MeshSource) Load(path string) {
	s.pending = path
	s.loading = true
}

// Target returns the path the next request should build.
func (s *MeshSource) Target() string {
	if s.loading {
		return s.pending
	}
	return s.current
}

// Commit applies a finished rebuild. Success makes its path current. A
// failure only clears the pending load it belongs to.
func (s *MeshSource) Commit(res Result) {
	if s.loading && res.Request.Path == s.pending {
		s.loading = false
		s.pending = ""
	}
	if res.Err == nil {
		s.current = res.Request.Path
	}
}
