// Package render draws walkability tiles and actor markers with OpenGL.
// Everything here must run on the thread that owns the GL context.
package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/walkview/internal/engine/shader"
	"github.com/Faultbox/walkview/internal/render/shaders"
	"github.com/Faultbox/walkview/internal/render/vertex"
	"github.com/Faultbox/walkview/pkg/walkmesh"
)

// TileMesh is one tile uploaded to the GPU.
type TileMesh struct {
	Coord      walkmesh.TileCoord
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// TileRenderer owns the GPU copies of the current snapshot's tiles.
type TileRenderer struct {
	program     *shader.Program
	locViewProj int32
	locTint     int32

	tiles []*TileMesh

	// Wireframe draws triangle edges instead of filled faces.
	Wireframe bool
}

// NewTileRenderer compiles the tile shader.
func NewTileRenderer() (*TileRenderer, error) {
	program, err := shader.Compile(shaders.TileVertexShader, shaders.TileFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("tile shader: %w", err)
	}
	return &TileRenderer{
		program:     program,
		locViewProj: program.Uniform("uViewProj"),
		locTint:     program.Uniform("uTint"),
	}, nil
}

// Swap replaces the drawn tiles with those of snap. The new tiles are
// uploaded before the old ones are released, so there is never a frame
// with nothing to draw. A nil snapshot clears the renderer.
func (r *TileRenderer) Swap(snap *walkmesh.Snapshot) {
	var next []*TileMesh
	if snap != nil {
		next = make([]*TileMesh, 0, len(snap.Tiles))
		for i := range snap.Tiles {
			if tm := uploadTile(&snap.Tiles[i]); tm != nil {
				next = append(next, tm)
			}
		}
	}

	old := r.tiles
	r.tiles = next
	for _, tm := range old {
		tm.destroy()
	}
}

// TileCount returns the number of tiles on the GPU.
func (r *TileRenderer) TileCount() int {
	return len(r.tiles)
}

// Render draws every tile.
func (r *TileRenderer) Render(viewProj mgl32.Mat4) {
	if len(r.tiles) == 0 {
		return
	}

	r.program.Use()
	gl.UniformMatrix4fv(r.locViewProj, 1, false, &viewProj[0])
	gl.Uniform4f(r.locTint, 1, 1, 1, 1)

	if r.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	for _, tm := range r.tiles {
		gl.BindVertexArray(tm.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, tm.indexCount, gl.UNSIGNED_INT, 0)
	}
	gl.BindVertexArray(0)
}

// Destroy releases all tiles and the shader.
func (r *TileRenderer) Destroy() {
	r.Swap(nil)
	r.program.Delete()
}

func uploadTile(t *walkmesh.ColoredTile) *TileMesh {
	vertices := vertex.Interleave(t)
	if len(vertices) == 0 || len(t.Indices) == 0 {
		return nil
	}

	tm := &TileMesh{Coord: t.Coord, indexCount: int32(len(t.Indices))}

	gl.GenVertexArrays(1, &tm.vao)
	gl.BindVertexArray(tm.vao)

	gl.GenBuffers(1, &tm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tm.vbo)
	vertexSize := int(unsafe.Sizeof(vertex.Tile{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	// Color (location 2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &tm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(t.Indices)*4, unsafe.Pointer(&t.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return tm
}

func (tm *TileMesh) destroy() {
	gl.DeleteVertexArrays(1, &tm.vao)
	gl.DeleteBuffers(1, &tm.vbo)
	gl.DeleteBuffers(1, &tm.ebo)
}
