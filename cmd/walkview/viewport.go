package main

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/walkview/internal/engine/input"
	"github.com/Faultbox/walkview/internal/engine/picking"
	"github.com/Faultbox/walkview/internal/engine/ui"
)

// keyBindings maps camera actions to keys.
var keyBindings = map[input.Action]imgui.Key{
	input.ActionForward: imgui.KeyW,
	input.ActionBack:    imgui.KeyS,
	input.ActionLeft:    imgui.KeyA,
	input.ActionRight:   imgui.KeyD,
	input.ActionUp:      imgui.KeyE,
	input.ActionDown:    imgui.KeyQ,
}

// cursorInfo is what the Coordinates panel shows about the mouse.
type cursorInfo struct {
	inView   bool
	screen   mgl32.Vec2
	world    mgl32.Vec3
	worldHit bool
}

// handleKeys moves the camera and handles shortcuts. Keys are ignored
// while a widget is being edited.
func (app *App) handleKeys(dt float32) {
	if ui.WidgetActive() {
		return
	}

	forward, right, up := input.Axes(func(a input.Action) bool {
		return ui.IsKeyDown(keyBindings[a])
	})
	if forward != 0 || right != 0 || up != 0 {
		app.camera.Move(forward, right, up, dt)
	}

	if ui.IsKeyPressed(imgui.KeyF) && app.snapshot != nil {
		app.camera.Focus(app.snapshot.Mesh.Centroid())
	}
	if ui.IsKeyPressed(imgui.KeyR) {
		app.requestRebuild(true)
	}
	if ui.IsKeyPressed(imgui.KeyF12) {
		app.shotRequest = true
	}
}

// renderViewport draws the scene into the framebuffer and shows it filling
// the current window.
func (app *App) renderViewport() {
	avail := imgui.ContentRegionAvail()
	app.fb.Resize(int32(avail.X), int32(avail.Y))

	viewProj := app.camera.ViewProjection(app.fb.Aspect())
	app.drawScene(viewProj)
	if app.shotRequest {
		app.shotRequest = false
		app.captureScreenshot()
	}

	origin := imgui.CursorScreenPos()
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(app.fb.ColorTexture()))
	imgui.ImageWithBgV(
		*texRef,
		avail,
		imgui.NewVec2(0, 1), // GL textures are bottom-up
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0.15, 0.15, 0.15, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)

	app.handleMouse(origin, avail, imgui.IsItemHovered(), viewProj)
}

func (app *App) drawScene(viewProj mgl32.Mat4) {
	app.fb.Bind()
	app.fb.Clear(0.08, 0.08, 0.1, 1)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	app.tiles.Render(viewProj)
	app.overlay.Render(viewProj)
	app.markers.Render(viewProj)
	gl.Disable(gl.DEPTH_TEST)

	app.fb.Unbind()
}

// handleMouse drives right-drag look and tracks the cursor over the
// ground plane.
func (app *App) handleMouse(origin, size imgui.Vec2, hovered bool, viewProj mgl32.Mat4) {
	mouse := imgui.MousePos()

	// A drag that started in the view keeps looking even if the cursor
	// leaves it
	rightDown := imgui.IsMouseDown(imgui.MouseButtonRight)
	if hovered || app.look.Active() {
		dx, dy := app.look.Update(mouse.X, mouse.Y, rightDown)
		if dx != 0 || dy != 0 {
			app.camera.Look(dx, dy)
		}
	}

	app.cursor = cursorInfo{}
	if !hovered || size.X <= 0 || size.Y <= 0 {
		return
	}

	local := mgl32.Vec2{mouse.X - origin.X, mouse.Y - origin.Y}
	app.cursor.inView = true
	app.cursor.screen = local

	ray := picking.ScreenToRay(local.X(), local.Y(), size.X, size.Y, viewProj.Inv())
	app.cursor.world, app.cursor.worldHit = ray.IntersectPlaneY(0)
}
