// Package vertex defines the GPU vertex layouts used by the renderer and
// converts pipeline output into them. It does not touch OpenGL.
package vertex

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/walkview/pkg/walkmesh"
)

// Tile is the interleaved GPU layout of one tile vertex.
type Tile struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
}

// Point is the GPU layout of one actor marker.
type Point struct {
	Position [3]float32
	Color    [4]float32
}

// Interleave packs a colored tile into GPU vertices. A tile with
// mismatched attribute lengths is truncated to the shortest.
func Interleave(t *walkmesh.ColoredTile) []Tile {
	n := min(len(t.Vertices), len(t.Normals), len(t.Colors))
	out := make([]Tile, n)
	for i := 0; i < n; i++ {
		out[i] = Tile{
			Position: t.Vertices[i],
			Normal:   t.Normals[i],
			Color:    t.Colors[i],
		}
	}
	return out
}

// Marker colors.
var (
	MarkerIdle   = mgl32.Vec4{0.2, 0.6, 1, 1}
	MarkerMoving = mgl32.Vec4{1, 0.3, 0.3, 1}
)

// Marker is an actor to draw.
type Marker struct {
	Position mgl32.Vec3
	Moving   bool
}

// Points converts markers to GPU vertices. lift raises every marker
// so it is not hidden inside the terrain.
func Points(markers []Marker, lift float32) []Point {
	out := make([]Point, len(markers))
	for i, m := range markers {
		c := MarkerIdle
		if m.Moving {
			c = MarkerMoving
		}
		out[i] = Point{
			Position: m.Position.Add(mgl32.Vec3{0, lift, 0}),
			Color:    c,
		}
	}
	return out
}
