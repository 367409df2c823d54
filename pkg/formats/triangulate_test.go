package formats

import "testing"

func TestTriangulate_FanCounts(t *testing.T) {
	for n := 3; n <= 8; n++ {
		face := make([]uint32, n)
		for i := range face {
			face[i] = uint32(i + 10)
		}

		indices := Triangulate([][]uint32{face})
		if len(indices) != (n-2)*3 {
			t.Fatalf("n=%d: expected %d indices, got %d", n, (n-2)*3, len(indices))
		}

		for tri := 0; tri < len(indices)/3; tri++ {
			if indices[tri*3] != face[0] {
				t.Errorf("n=%d: triangle %d does not start at the anchor vertex", n, tri)
			}
		}
	}
}

func TestTriangulate_Winding(t *testing.T) {
	indices := Triangulate([][]uint32{{1, 2, 3, 4, 5}})
	want := []uint32{
		1, 2, 3,
		1, 3, 4,
		1, 4, 5,
	}
	if len(indices) != len(want) {
		t.Fatalf("expected %d indices, got %d", len(want), len(indices))
	}
	for i := range want {
		if indices[i] != want[i] {
			t.Errorf("index %d: expected %d, got %d", i, want[i], indices[i])
		}
	}
}

func TestTriangulate_DropsShortFaces(t *testing.T) {
	faces := [][]uint32{
		{1, 2},
		{},
		{1, 2, 3},
		{4},
	}
	indices := Triangulate(faces)
	if len(indices) != 3 {
		t.Errorf("expected a single triangle, got %d indices", len(indices))
	}
	if TriangleCount(faces) != 1 {
		t.Errorf("expected TriangleCount 1, got %d", TriangleCount(faces))
	}
}

func TestTriangulate_Empty(t *testing.T) {
	if got := Triangulate(nil); len(got) != 0 {
		t.Errorf("expected no indices, got %v", got)
	}
}
