package render

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/walkview/internal/render/vertex"
)

// pointBuffer is a growable VAO/VBO of vertex.Point, re-uploaded whole on
// every update.
type pointBuffer struct {
	vao      uint32
	vbo      uint32
	capacity int
	count    int32
}

func newPointBuffer() *pointBuffer {
	b := &pointBuffer{}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	stride := int32(unsafe.Sizeof(vertex.Point{}))
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	return b
}

// upload replaces the buffer contents. The GL buffer only grows.
func (b *pointBuffer) upload(points []vertex.Point) {
	b.count = int32(len(points))
	if len(points) == 0 {
		return
	}

	size := len(points) * int(unsafe.Sizeof(vertex.Point{}))
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(points) > b.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&points[0]), gl.DYNAMIC_DRAW)
		b.capacity = len(points)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&points[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *pointBuffer) draw(mode uint32) {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(mode, 0, b.count)
	gl.BindVertexArray(0)
}

func (b *pointBuffer) destroy() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
}
