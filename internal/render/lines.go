package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/walkview/internal/engine/shader"
	"github.com/Faultbox/walkview/internal/render/shaders"
	"github.com/Faultbox/walkview/internal/render/vertex"
)

// LineRenderer draws colored line segments, two points per segment. The
// viewer uses it for the tile grid and bounds overlays.
type LineRenderer struct {
	program     *shader.Program
	locViewProj int32
	buf         *pointBuffer
}

// NewLineRenderer compiles the line shader and creates its buffer.
func NewLineRenderer() (*LineRenderer, error) {
	program, err := shader.Compile(shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}
	return &LineRenderer{
		program:     program,
		locViewProj: program.Uniform("uViewProj"),
		buf:         newPointBuffer(),
	}, nil
}

// Update replaces the segments to draw.
func (r *LineRenderer) Update(points []vertex.Point) {
	r.buf.upload(points)
}

// Render draws the current segments.
func (r *LineRenderer) Render(viewProj mgl32.Mat4) {
	if r.buf.count == 0 {
		return
	}
	r.program.Use()
	gl.UniformMatrix4fv(r.locViewProj, 1, false, &viewProj[0])
	r.buf.draw(gl.LINES)
}

// Destroy releases GPU resources.
func (r *LineRenderer) Destroy() {
	r.buf.destroy()
	r.program.Delete()
}
