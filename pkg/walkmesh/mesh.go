// Package walkmesh turns parsed terrain meshes into independently renderable
// tiles colored by walkability.
//
// The pipeline is a pure function of (bytes, tile size, slope angle). Every
// value it returns is treated as immutable: a new file or a new angle
// produces a new Snapshot rather than mutating an existing one.
package walkmesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/walkview/pkg/formats"
)

// Mesh is a triangulated mesh with one smoothed normal per vertex.
type Mesh struct {
	Vertices []mgl32.Vec3
	Indices  []uint32 // flat, 3 per triangle, 0-based
	Normals  []mgl32.Vec3
	Bounds   Bounds
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Empty reports whether the box contains no points.
func (b Bounds) Empty() bool {
	return b.Min.X() > b.Max.X()
}

// NewMesh triangulates a parsed OBJ, rebases its indices to 0, and computes
// per-vertex normals. The reserved slot 0 of the OBJ is dropped.
func NewMesh(obj *formats.OBJ) *Mesh {
	var vertices []mgl32.Vec3
	if len(obj.Vertices) > 1 {
		vertices = make([]mgl32.Vec3, len(obj.Vertices)-1)
		copy(vertices, obj.Vertices[1:])
	}

	indices := formats.Triangulate(obj.Faces)
	for i := range indices {
		indices[i]--
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Normals:  AverageNormals(vertices, indices),
		Bounds:   ComputeBounds(vertices),
	}
}

// DefaultMesh returns the placeholder shown before any file is loaded: one
// 986-unit quad inset by one unit into tile (0,0).
func DefaultMesh() *Mesh {
	vertices := []mgl32.Vec3{
		{1, 0, 1},
		{987, 0, 1},
		{987, 0, 987},
		{1, 0, 987},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Normals:  AverageNormals(vertices, indices),
		Bounds:   ComputeBounds(vertices),
	}
}

// Centroid returns the mean of the mesh vertices, or the origin for an
// empty mesh.
func (m *Mesh) Centroid() mgl32.Vec3 {
	if len(m.Vertices) == 0 {
		return mgl32.Vec3{}
	}
	var sum mgl32.Vec3
	for _, v := range m.Vertices {
		sum = sum.Add(v)
	}
	return sum.Mul(1 / float32(len(m.Vertices)))
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// ComputeBounds returns the bounding box of vertices. An empty input
// yields an inverted box for which Empty reports true.
func ComputeBounds(vertices []mgl32.Vec3) Bounds {
	b := Bounds{
		Min: mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
	for _, v := range vertices {
		for i := 0; i < 3; i++ {
			if v[i] < b.Min[i] {
				b.Min[i] = v[i]
			}
			if v[i] > b.Max[i] {
				b.Max[i] = v[i]
			}
		}
	}
	return b
}

// normalize returns v scaled to unit length, or the zero vector when v has
// no length. mgl32's Normalize divides by zero in that case.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 || math.IsNaN(float64(l)) {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}
