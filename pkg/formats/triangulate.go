package formats

// Triangulate fan-splits every face into triangles anchored at the face's
// first vertex: triangle i is (f[0], f[i-1], f[i]). Winding is preserved.
// Faces with fewer than 3 indices are dropped. Concave faces are not handled
// correctly; terrain exports are expected to be convex.
//
// The result is a flat index list in the same index space as the faces.
func Triangulate(faces [][]uint32) []uint32 {
	indices := make([]uint32, 0, TriangleCount(faces)*3)
	for _, face := range faces {
		if len(face) < 3 {
			continue
		}
		for i := 2; i < len(face); i++ {
			indices = append(indices, face[0], face[i-1], face[i])
		}
	}
	return indices
}

// TriangleCount returns how many triangles Triangulate produces for faces.
func TriangleCount(faces [][]uint32) int {
	count := 0
	for _, face := range faces {
		if len(face) >= 3 {
			count += len(face) - 2
		}
	}
	return count
}
