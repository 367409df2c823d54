package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/walkview/internal/engine/shader"
	"github.com/Faultbox/walkview/internal/render/shaders"
	"github.com/Faultbox/walkview/internal/render/vertex"
)

// MarkerRenderer draws actors as screen-space discs.
type MarkerRenderer struct {
	program      *shader.Program
	locViewProj  int32
	locPointSize int32
	buf          *pointBuffer

	// PointSize is the disc diameter in pixels.
	PointSize float32
	// Lift raises markers above the ground they stand on.
	Lift float32
}

// NewMarkerRenderer compiles the marker shader and creates its buffer.
func NewMarkerRenderer() (*MarkerRenderer, error) {
	program, err := shader.Compile(shaders.MarkerVertexShader, shaders.MarkerFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("marker shader: %w", err)
	}

	return &MarkerRenderer{
		program:      program,
		locViewProj:  program.Uniform("uViewProj"),
		locPointSize: program.Uniform("uPointSize"),
		buf:          newPointBuffer(),
		PointSize:    12,
		Lift:         20,
	}, nil
}

// Update replaces the markers to draw.
func (r *MarkerRenderer) Update(markers []vertex.Marker) {
	r.buf.upload(vertex.Points(markers, r.Lift))
}

// Render draws the current markers.
func (r *MarkerRenderer) Render(viewProj mgl32.Mat4) {
	if r.buf.count == 0 {
		return
	}

	r.program.Use()
	gl.UniformMatrix4fv(r.locViewProj, 1, false, &viewProj[0])
	gl.Uniform1f(r.locPointSize, r.PointSize)

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	r.buf.draw(gl.POINTS)
	gl.Disable(gl.PROGRAM_POINT_SIZE)
}

// Destroy releases GPU resources.
func (r *MarkerRenderer) Destroy() {
	r.buf.destroy()
	r.program.Delete()
}
