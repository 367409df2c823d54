// Package ui wraps the cimgui-go SDL backend that hosts the viewer window.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// cappedFPS is the frame limit applied when vsync is requested.
const cappedFPS = 60

// Backend owns the SDL window, the ImGui context and the GL context.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	title   string
}

// Options configures the window created by NewBackend.
type Options struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

// NewBackend creates the window and loads the OpenGL function pointers.
// It must be called from the locked main thread.
func NewBackend(opts Options) (*Backend, error) {
	b := &Backend{title: opts.Title}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(opts.Title, opts.Width, opts.Height)
	if opts.VSync {
		b.backend.SetTargetFPS(cappedFPS)
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	return b, nil
}

// Run starts the main render loop. It returns when the window closes.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// SetSubtitle shows "<title> - <sub>", or the bare title for an empty sub.
func (b *Backend) SetSubtitle(sub string) {
	if sub == "" {
		b.SetWindowTitle(b.title)
		return
	}
	b.SetWindowTitle(fmt.Sprintf("%s - %s", b.title, sub))
}

// GetViewport returns the main viewport work area.
func GetViewport() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// IsKeyDown checks if a key is currently held down.
func IsKeyDown(key imgui.Key) bool {
	return imgui.IsKeyDown(key)
}

// WidgetActive reports whether an ImGui widget is being edited, in which
// case camera keys are ignored.
func WidgetActive() bool {
	return imgui.IsAnyItemActive()
}
