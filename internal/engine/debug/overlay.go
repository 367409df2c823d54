// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/walkview/internal/render/vertex"
	"github.com/Faultbox/walkview/pkg/walkmesh"
)

// Overlay colors.
var (
	GridColor   = mgl32.Vec4{0.5, 0.5, 0.5, 1}
	BoundsColor = mgl32.Vec4{1, 0.85, 0.2, 1}
)

// TileOutlineVertexCount is the number of line vertices per tile outline
// (4 edges x 2).
const TileOutlineVertexCount = 8

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe
// (12 edges x 2).
const BBoxWireframeVertexCount = 24

// TileOutlines returns line segments tracing the square of every tile at
// the given height.
func TileOutlines(coords []walkmesh.TileCoord, tileSize, height float32, color mgl32.Vec4) []vertex.Point {
	out := make([]vertex.Point, 0, len(coords)*TileOutlineVertexCount)
	for _, c := range coords {
		x0 := float32(c.X) * tileSize
		z0 := float32(c.Z) * tileSize
		x1 := x0 + tileSize
		z1 := z0 + tileSize

		corners := [4]mgl32.Vec3{
			{x0, height, z0},
			{x1, height, z0},
			{x1, height, z1},
			{x0, height, z1},
		}
		for i := range corners {
			out = append(out,
				vertex.Point{Position: corners[i], Color: color},
				vertex.Point{Position: corners[(i+1)%4], Color: color},
			)
		}
	}
	return out
}

// SnapshotOutlines outlines every tile of a snapshot just above the lowest
// point of the mesh.
func SnapshotOutlines(s *walkmesh.Snapshot) []vertex.Point {
	if s == nil || len(s.Tiles) == 0 {
		return nil
	}
	coords := make([]walkmesh.TileCoord, len(s.Tiles))
	for i := range s.Tiles {
		coords[i] = s.Tiles[i].Coord
	}
	return TileOutlines(coords, s.Request.TileSize, s.Mesh.Bounds.Min.Y(), GridColor)
}

// BoundsWireframe returns the 12 edges of a box grown by padding on every
// side. An empty box yields nothing.
func BoundsWireframe(b walkmesh.Bounds, padding float32, color mgl32.Vec4) []vertex.Point {
	if b.Empty() {
		return nil
	}

	pad := mgl32.Vec3{padding, padding, padding}
	lo, hi := b.Min.Sub(pad), b.Max.Add(pad)
	corner := func(x, y, z bool) vertex.Point {
		p := lo
		if x {
			p[0] = hi[0]
		}
		if y {
			p[1] = hi[1]
		}
		if z {
			p[2] = hi[2]
		}
		return vertex.Point{Position: p, Color: color}
	}

	return []vertex.Point{
		// Bottom face
		corner(false, false, false), corner(true, false, false),
		corner(true, false, false), corner(true, false, true),
		corner(true, false, true), corner(false, false, true),
		corner(false, false, true), corner(false, false, false),
		// Top face
		corner(false, true, false), corner(true, true, false),
		corner(true, true, false), corner(true, true, true),
		corner(true, true, true), corner(false, true, true),
		corner(false, true, true), corner(false, true, false),
		// Vertical edges
		corner(false, false, false), corner(false, true, false),
		corner(true, false, false), corner(true, true, false),
		corner(true, false, true), corner(true, true, true),
		corner(false, false, true), corner(false, true, true),
	}
}
