package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/walkview/internal/actors"
	"github.com/Faultbox/walkview/internal/config"
	"github.com/Faultbox/walkview/internal/engine/camera"
	"github.com/Faultbox/walkview/internal/engine/debug"
	"github.com/Faultbox/walkview/internal/engine/framebuffer"
	"github.com/Faultbox/walkview/internal/engine/input"
	"github.com/Faultbox/walkview/internal/engine/ui"
	"github.com/Faultbox/walkview/internal/logger"
	"github.com/Faultbox/walkview/internal/network"
	"github.com/Faultbox/walkview/internal/render"
	"github.com/Faultbox/walkview/internal/render/vertex"
	"github.com/Faultbox/walkview/pkg/walkmesh"
)

// App holds the viewer state. Everything except the worker goroutine and
// the file dialog goroutine runs on the render thread.
type App struct {
	cfg *config.Config
	ui  *ui.Backend
	log *zap.Logger

	// Scene
	camera   *camera.FlyCamera
	fb       *framebuffer.Framebuffer
	tiles    *render.TileRenderer
	markers  *render.MarkerRenderer
	overlay  *render.LineRenderer
	snapshot *walkmesh.Snapshot

	// Overlays and screenshots
	showGrid    bool
	showBounds  bool
	screenshots *debug.ScreenshotCapture
	shotRequest bool
	lastShot    string

	// Rebuild worker
	worker     *walkmesh.Worker
	stopWorker context.CancelFunc
	workerDone chan struct{}
	building   bool

	// Pipeline settings shown in the controls panel
	source     walkmesh.MeshSource
	tileSize   float32
	slopeAngle float32
	lastErr    string
	lastBuild  time.Duration

	// File dialog hands its result back through this channel
	picked     chan string
	dialogOpen bool

	// Actor feed
	feed       *network.Client
	registry   *actors.Registry
	serverAddr string
	feedErr    string

	// Input
	look      input.Drag
	lastFrame time.Time
	cursor    cursorInfo
}

// NewApp creates the window, GL resources and rebuild worker, then queues
// the initial scene.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{
		cfg:        cfg,
		log:        logger.Named("viewer"),
		registry:   actors.NewRegistry(),
		picked:     make(chan string, 1),
		source:     walkmesh.NewMeshSource(cfg.MeshPath),
		tileSize:   cfg.Pipeline.TileSize,
		slopeAngle: cfg.Pipeline.SlopeAngle,
		serverAddr: cfg.Network.ActorServer,
		showGrid:   true,
	}
	app.screenshots = debug.NewScreenshotCapture(filepath.Join(config.ConfigDir(), "screenshots"), "walkview")

	var err error
	app.ui, err = ui.NewBackend(ui.Options{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		return nil, err
	}

	app.camera = newCamera(cfg.Camera)

	app.fb, err = framebuffer.New(int32(cfg.Window.Width), int32(cfg.Window.Height))
	if err != nil {
		return nil, fmt.Errorf("create framebuffer: %w", err)
	}
	app.tiles, err = render.NewTileRenderer()
	if err != nil {
		app.Close()
		return nil, err
	}
	app.markers, err = render.NewMarkerRenderer()
	if err != nil {
		app.Close()
		return nil, err
	}
	app.overlay, err = render.NewLineRenderer()
	if err != nil {
		app.Close()
		return nil, err
	}

	app.worker = walkmesh.NewWorker(logger.Named("worker"))
	ctx, cancel := context.WithCancel(context.Background())
	app.stopWorker = cancel
	app.workerDone = make(chan struct{})
	go func() {
		defer close(app.workerDone)
		app.worker.Run(ctx)
	}()

	app.requestRebuild(true)
	return app, nil
}

func newCamera(c config.CameraConfig) *camera.FlyCamera {
	cam := camera.NewFlyCamera()
	cam.MoveSpeed = c.MoveSpeed
	cam.LookSensitivity = c.LookSensitivity
	cam.FOV = c.FOV
	cam.Near = c.Near
	cam.Far = c.Far
	return cam
}

// Run starts the main loop and blocks until the window closes.
func (app *App) Run() {
	app.lastFrame = time.Now()
	app.ui.Run(app.render)
}

// Close stops the worker and releases network and GL resources.
func (app *App) Close() {
	if app.stopWorker != nil {
		app.stopWorker()
		<-app.workerDone
		app.stopWorker = nil
	}
	app.disconnect()
	if app.overlay != nil {
		app.overlay.Destroy()
		app.overlay = nil
	}
	if app.markers != nil {
		app.markers.Destroy()
		app.markers = nil
	}
	if app.tiles != nil {
		app.tiles.Destroy()
		app.tiles = nil
	}
	if app.fb != nil {
		app.fb.Destroy()
		app.fb = nil
	}
}

// requestRebuild submits the current settings to the worker. reload forces
// a full rebuild even if only the angle changed.
func (app *App) requestRebuild(reload bool) {
	app.worker.Submit(walkmesh.Request{
		Path:       app.source.Target(),
		TileSize:   app.tileSize,
		SlopeAngle: app.slopeAngle,
		Reload:     reload,
	})
	app.building = true
}

// collectResults installs any finished rebuild. A failed rebuild keeps the
// previous snapshot and mesh path.
func (app *App) collectResults() {
	for {
		select {
		case res, ok := <-app.worker.Results():
			if !ok {
				return
			}
			app.installResult(res)
		default:
			return
		}
	}
}

func (app *App) installResult(res walkmesh.Result) {
	app.building = false
	app.lastBuild = res.Elapsed
	app.source.Commit(res)

	if res.Err != nil {
		app.lastErr = res.Err.Error()
		return
	}
	app.lastErr = ""

	firstLoad := app.snapshot == nil || app.snapshot.Request.Path != res.Request.Path
	app.snapshot = res.Snapshot
	app.tiles.Swap(res.Snapshot)
	app.updateOverlay()

	if firstLoad {
		app.camera.Focus(res.Snapshot.Mesh.Centroid())
		if res.Request.Path != "" {
			app.ui.SetSubtitle(filepath.Base(res.Request.Path))
		} else {
			app.ui.SetSubtitle("")
		}
	}
}

// updateOverlay rebuilds the debug lines for the current snapshot.
func (app *App) updateOverlay() {
	var lines []vertex.Point
	if app.snapshot != nil {
		if app.showGrid {
			lines = append(lines, debug.SnapshotOutlines(app.snapshot)...)
		}
		if app.showBounds {
			lines = append(lines, debug.BoundsWireframe(app.snapshot.Mesh.Bounds, 1, debug.BoundsColor)...)
		}
	}
	app.overlay.Update(lines)
}

// captureScreenshot saves the last rendered view.
func (app *App) captureScreenshot() {
	w, h := app.fb.Size()
	path, err := app.screenshots.CaptureFromPixels(app.fb.ReadPixels(), int(w), int(h))
	if err != nil {
		app.lastShot = "Screenshot failed: " + err.Error()
		app.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	app.lastShot = "Saved " + path
	app.log.Info("screenshot saved", zap.String("path", path))
}

// openFileDialog shows the native picker without blocking the render loop.
func (app *App) openFileDialog() {
	if app.dialogOpen {
		return
	}
	app.dialogOpen = true

	go func() {
		filename, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Filter("All Files", "*").
			Title("Open Mesh").
			Load()

		if err != nil && err != dialog.ErrCancelled {
			app.log.Warn("file dialog failed", zap.Error(err))
		}
		// An empty name reports a cancelled dialog
		app.picked <- filename
	}()
}

// collectPickedFile loads the path chosen in the file dialog, if any.
func (app *App) collectPickedFile() {
	select {
	case path := <-app.picked:
		app.dialogOpen = false
		if path == "" {
			return
		}
		app.log.Info("loading mesh", zap.String("path", path))
		app.source.Load(path)
		app.requestRebuild(true)
	default:
	}
}

// connect dials the actor server.
func (app *App) connect() {
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.Network.ConnectTimeout)
	defer cancel()

	client, err := network.Dial(ctx, app.serverAddr)
	if err != nil {
		app.feedErr = err.Error()
		app.log.Warn("actor server connect failed",
			zap.String("addr", app.serverAddr),
			zap.Error(err))
		return
	}
	app.feed = client
	app.feedErr = ""
	app.registry.Clear()
}

// disconnect closes the feed and forgets every actor.
func (app *App) disconnect() {
	if app.feed == nil {
		return
	}
	if err := app.feed.Close(); err != nil {
		app.log.Debug("close actor feed", zap.Error(err))
	}
	app.feed = nil
	app.registry.Clear()
	if app.markers != nil {
		app.markers.Update(nil)
	}
}

// pollActors drains the feed into the registry and refreshes the markers.
func (app *App) pollActors() {
	if app.feed == nil {
		return
	}

	msgs, err := app.feed.Poll()
	app.registry.ApplyAll(msgs)
	if err != nil {
		app.feedErr = err.Error()
		if !app.feed.Connected() {
			app.log.Warn("actor feed closed", zap.Error(err))
			app.feed = nil
		}
	}

	if len(msgs) > 0 || app.feed == nil {
		app.markers.Update(actorMarkers(app.registry.Snapshot()))
	}
}

func actorMarkers(list []actors.Actor) []vertex.Marker {
	out := make([]vertex.Marker, len(list))
	for i, a := range list {
		out[i] = vertex.Marker{Position: a.Position, Moving: a.Moving}
	}
	return out
}
