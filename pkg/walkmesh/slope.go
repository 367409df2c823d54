package walkmesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Slope coloring constants.
var (
	// UnwalkableTint is blended into the grey of steep triangles.
	UnwalkableTint = mgl32.Vec4{192.0 / 255.0, 128.0 / 255.0, 0, 1}

	// unclassifiedColor is left on vertices no triangle references.
	unclassifiedColor = mgl32.Vec4{1, 1, 1, 1}
)

// unwalkableBlend is the per-channel weight of UnwalkableTint.
const unwalkableBlend = 64.0 / 255.0

// SlopeThreshold returns the minimum normal Y for a walkable surface at the
// given maximum slope angle in degrees.
func SlopeThreshold(angleDeg float32) float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(angleDeg))))
}

// Walkable reports whether a surface with the given normal is walkable at
// the given maximum slope angle.
func Walkable(normal mgl32.Vec3, angleDeg float32) bool {
	return normal.Y() >= SlopeThreshold(angleDeg)
}

// SlopeColor returns the display color of a triangle whose representative
// normal is n. Brightness is deliberately left unclamped, so normals with
// large X+Y push it past 1.
func SlopeColor(n mgl32.Vec3, threshold float32) mgl32.Vec4 {
	brightness := (220 * (2 + n.X() + n.Y()) / 4) / 255
	grey := mgl32.Vec4{brightness, brightness, brightness, 1}

	if n.Y() < threshold {
		c := grey.Mul(1 - unwalkableBlend).Add(UnwalkableTint.Mul(unwalkableBlend))
		c[3] = 1
		return c
	}
	return grey
}

// Classify assigns an RGBA color to every vertex of a tile.
//
// Each triangle is colored from the normal stored at its first vertex only,
// and the color is written to all three of its vertices. When vertices are
// shared between triangles the last triangle to touch a vertex wins; tiles
// never share vertices, so this only matters for untiled meshes.
func Classify(vertices []mgl32.Vec3, indices []uint32, normals []mgl32.Vec3, angleDeg float32) []mgl32.Vec4 {
	colors := make([]mgl32.Vec4, len(vertices))
	for i := range colors {
		colors[i] = unclassifiedColor
	}

	threshold := SlopeThreshold(angleDeg)
	for i := 0; i+2 < len(indices); i += 3 {
		color := SlopeColor(normals[indices[i]], threshold)
		colors[indices[i]] = color
		colors[indices[i+1]] = color
		colors[indices[i+2]] = color
	}
	return colors
}

// SlopeStats counts triangles on each side of the slope threshold.
type SlopeStats struct {
	Walkable   int
	Unwalkable int
}

// Total returns the number of classified triangles.
func (s SlopeStats) Total() int {
	return s.Walkable + s.Unwalkable
}

// Add returns the sum of two counts.
func (s SlopeStats) Add(o SlopeStats) SlopeStats {
	return SlopeStats{
		Walkable:   s.Walkable + o.Walkable,
		Unwalkable: s.Unwalkable + o.Unwalkable,
	}
}

// ClassifyStats counts walkable and unwalkable triangles using the same
// first-vertex rule as Classify.
func ClassifyStats(indices []uint32, normals []mgl32.Vec3, angleDeg float32) SlopeStats {
	threshold := SlopeThreshold(angleDeg)

	var s SlopeStats
	for i := 0; i+2 < len(indices); i += 3 {
		if normals[indices[i]].Y() < threshold {
			s.Unwalkable++
		} else {
			s.Walkable++
		}
	}
	return s
}
