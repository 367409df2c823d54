package main

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/walkview/internal/engine/ui"
)

const (
	sidePanelWidth = float32(340)
	maxSlopeAngle  = float32(90)
	minTileSize    = float32(50)
	maxTileSize    = float32(10000)
)

var (
	colorError = imgui.NewVec4(1, 0.4, 0.4, 1)
	colorOK    = imgui.NewVec4(0.4, 0.8, 0.4, 1)
	colorMuted = imgui.NewVec4(0.7, 0.7, 0.7, 1)
)

// render is called each frame by the backend.
func (app *App) render() {
	now := time.Now()
	dt := float32(now.Sub(app.lastFrame).Seconds())
	app.lastFrame = now

	app.collectPickedFile()
	app.collectResults()
	app.pollActors()
	app.handleKeys(dt)

	posX, posY, width, height := ui.GetViewport()
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	controlsHeight := height * 0.5
	coordsHeight := height * 0.2
	actorsHeight := height - controlsHeight - coordsHeight

	imgui.SetNextWindowPos(imgui.NewVec2(posX, posY))
	imgui.SetNextWindowSize(imgui.NewVec2(sidePanelWidth, controlsHeight))
	if imgui.BeginV("Mesh Viewer Controls", nil, flags) {
		app.renderControls()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(posX, posY+controlsHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(sidePanelWidth, coordsHeight))
	if imgui.BeginV("Coordinates", nil, flags) {
		app.renderCoordinates()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(posX, posY+controlsHeight+coordsHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(sidePanelWidth, actorsHeight))
	if imgui.BeginV("Actors", nil, flags) {
		app.renderActors()
	}
	imgui.End()

	viewFlags := flags | imgui.WindowFlagsNoScrollbar | imgui.WindowFlagsNoScrollWithMouse
	imgui.SetNextWindowPos(imgui.NewVec2(posX+sidePanelWidth, posY))
	imgui.SetNextWindowSize(imgui.NewVec2(width-sidePanelWidth, height))
	if imgui.BeginV("Viewport", nil, viewFlags) {
		app.renderViewport()
	}
	imgui.End()
}

func (app *App) renderControls() {
	if imgui.Button("Load OBJ") {
		app.openFileDialog()
	}
	imgui.SameLine()
	if imgui.Button("Reload") {
		app.requestRebuild(true)
	}
	imgui.SameLine()
	if imgui.Button("Screenshot") {
		app.shotRequest = true
	}

	imgui.Checkbox("Wireframe", &app.tiles.Wireframe)
	imgui.SameLine()
	if imgui.Checkbox("Tile Grid", &app.showGrid) {
		app.updateOverlay()
	}
	imgui.SameLine()
	if imgui.Checkbox("Bounds", &app.showBounds) {
		app.updateOverlay()
	}

	if path := app.source.Current(); path != "" {
		imgui.TextWrapped(path)
	} else {
		imgui.TextDisabled("(placeholder quad)")
	}
	if path, loading := app.source.Pending(); loading {
		imgui.TextDisabled("Loading " + path)
	}

	imgui.Separator()

	if imgui.SliderFloatV("Walkable Slope Angle", &app.slopeAngle, 0, maxSlopeAngle, "%.1f", imgui.SliderFlagsNone) {
		app.requestRebuild(false)
	}
	if imgui.SliderFloatV("Tile Size", &app.tileSize, minTileSize, maxTileSize, "%.0f", imgui.SliderFlagsLogarithmic) {
		app.requestRebuild(false)
	}

	imgui.Separator()

	if snap := app.snapshot; snap != nil {
		imgui.Text(fmt.Sprintf("Vertices: %d", snap.Source.Vertices))
		imgui.Text(fmt.Sprintf("Faces: %d  Triangles: %d", snap.Source.Faces, snap.Source.Triangles))
		imgui.Text(fmt.Sprintf("Tiles: %d (size %.0f)", snap.TileCount(), snap.Request.TileSize))
		imgui.TextColored(colorOK, fmt.Sprintf("Walkable: %d", snap.Slope.Walkable))
		imgui.SameLine()
		imgui.TextColored(colorError, fmt.Sprintf("Unwalkable: %d", snap.Slope.Unwalkable))
		size := snap.Mesh.Bounds.Size()
		imgui.Text(fmt.Sprintf("Extent: %.0f x %.0f x %.0f", size.X(), size.Y(), size.Z()))
	}

	if app.building {
		imgui.TextDisabled("Building...")
	} else if app.lastBuild > 0 {
		imgui.TextDisabled(fmt.Sprintf("Last build: %s", app.lastBuild.Round(time.Microsecond)))
	}
	if app.lastErr != "" {
		imgui.TextColored(colorError, "Error:")
		imgui.TextWrapped(app.lastErr)
	}
	if app.lastShot != "" {
		imgui.TextWrapped(app.lastShot)
	}

	imgui.Separator()
	imgui.TextColored(colorMuted, "W/S: forward/back   A/D: strafe")
	imgui.TextColored(colorMuted, "E/Q: up/down   Right-drag: look")
	imgui.TextColored(colorMuted, "F: focus mesh   R: reload")
	imgui.TextColored(colorMuted, "F12: screenshot")
}

func (app *App) renderCoordinates() {
	pos := app.camera.Position
	imgui.Text(fmt.Sprintf("Camera: %.1f, %.1f, %.1f", pos.X(), pos.Y(), pos.Z()))
	imgui.Text(fmt.Sprintf("Yaw: %.1f  Pitch: %.1f", app.camera.YawDegrees(), app.camera.PitchDegrees()))

	imgui.Separator()

	if !app.cursor.inView {
		imgui.TextDisabled("Cursor outside view")
		return
	}
	imgui.Text(fmt.Sprintf("Screen: %.0f, %.0f", app.cursor.screen.X(), app.cursor.screen.Y()))
	if app.cursor.worldHit {
		w := app.cursor.world
		imgui.Text(fmt.Sprintf("World: %.1f, %.1f, %.1f", w.X(), w.Y(), w.Z()))
	} else {
		imgui.TextDisabled("World: (no ground hit)")
	}
}

func (app *App) renderActors() {
	if app.feed == nil {
		imgui.InputTextWithHint("##server", "host:port", &app.serverAddr, 0, nil)
		imgui.SameLine()
		if imgui.Button("Connect") {
			app.connect()
		}
	} else {
		imgui.TextColored(colorOK, "Connected: "+app.serverAddr)
		imgui.SameLine()
		if imgui.Button("Disconnect") {
			app.disconnect()
		}
	}
	if app.feedErr != "" {
		imgui.TextColored(colorError, app.feedErr)
	}

	imgui.Separator()

	list := app.registry.Snapshot()
	imgui.Text(fmt.Sprintf("Actors: %d", len(list)))

	if imgui.BeginTable("actorTable", 3) {
		for _, a := range list {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(a.ID)
			imgui.TableNextColumn()
			imgui.Text(a.Type)
			imgui.TableNextColumn()
			if a.Moving {
				d := a.Destination
				imgui.Text(fmt.Sprintf("-> %.0f, %.0f, %.0f", d.X(), d.Y(), d.Z()))
			} else {
				p := a.Position
				imgui.Text(fmt.Sprintf("%.0f, %.0f, %.0f", p.X(), p.Y(), p.Z()))
			}
		}
		imgui.EndTable()
	}
}
