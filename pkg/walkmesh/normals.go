package walkmesh

import "github.com/go-gl/mathgl/mgl32"

// AverageNormals computes one smoothed normal per vertex.
//
// Each triangle's unit face normal, (v1-v0) x (v2-v0), is summed into its
// three vertices. The result for a vertex is normalize(sum / count).
// Vertices not referenced by any triangle keep the zero vector, as do
// vertices whose contributions are all degenerate.
func AverageNormals(vertices []mgl32.Vec3, indices []uint32) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(vertices))
	counts := make([]int, len(vertices))

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0, v1, v2 := vertices[i0], vertices[i1], vertices[i2]

		n := normalize(v1.Sub(v0).Cross(v2.Sub(v0)))

		for _, idx := range [3]uint32{i0, i1, i2} {
			normals[idx] = normals[idx].Add(n)
			counts[idx]++
		}
	}

	for i, c := range counts {
		if c > 0 {
			normals[i] = normalize(normals[i].Mul(1 / float32(c)))
		}
	}
	return normals
}
