package vertex

import (
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/walkview/pkg/walkmesh"
)

func TestVertexLayout(t *testing.T) {
	// Attribute offsets in the upload code assume tightly packed floats
	if s := unsafe.Sizeof(Tile{}); s != 10*4 {
		t.Errorf("expected Tile to be 40 bytes, got %d", s)
	}
	if s := unsafe.Sizeof(Point{}); s != 7*4 {
		t.Errorf("expected Point to be 28 bytes, got %d", s)
	}
}

func TestInterleave(t *testing.T) {
	tile := walkmesh.ColoredTile{
		Tile: walkmesh.Tile{
			Vertices: []mgl32.Vec3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
			Normals:  []mgl32.Vec3{{0, 1, 0}, {0, 1, 0}, {1, 0, 0}},
			Indices:  []uint32{0, 1, 2},
		},
		Colors: []mgl32.Vec4{{1, 0, 0, 1}, {0, 1, 0, 1}, {0, 0, 1, 1}},
	}

	got := Interleave(&tile)
	if len(got) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(got))
	}
	want := Tile{
		Position: [3]float32{7, 8, 9},
		Normal:   [3]float32{1, 0, 0},
		Color:    [4]float32{0, 0, 1, 1},
	}
	if got[2] != want {
		t.Errorf("expected %+v, got %+v", want, got[2])
	}
}

func TestInterleave_Mismatched(t *testing.T) {
	tile := walkmesh.ColoredTile{
		Tile: walkmesh.Tile{
			Vertices: make([]mgl32.Vec3, 3),
			Normals:  make([]mgl32.Vec3, 3),
		},
		Colors: make([]mgl32.Vec4, 2),
	}
	if got := Interleave(&tile); len(got) != 2 {
		t.Errorf("expected truncation to 2, got %d", len(got))
	}
}

func TestInterleave_FromPipeline(t *testing.T) {
	snap, err := walkmesh.BuildDefault(walkmesh.Request{
		TileSize:   walkmesh.DefaultTileSize,
		SlopeAngle: walkmesh.DefaultSlopeAngle,
	})
	if err != nil {
		t.Fatalf("BuildDefault failed: %v", err)
	}

	got := Interleave(&snap.Tiles[0])
	if len(got) != len(snap.Tiles[0].Vertices) {
		t.Errorf("expected %d vertices, got %d", len(snap.Tiles[0].Vertices), len(got))
	}
	for i, v := range got {
		if v.Color[3] != 1 {
			t.Errorf("vertex %d: expected opaque color, got %v", i, v.Color)
		}
	}
}

func TestPoints(t *testing.T) {
	got := Points([]Marker{
		{Position: mgl32.Vec3{1, 0, 1}},
		{Position: mgl32.Vec3{2, 5, 2}, Moving: true},
	}, 20)

	if len(got) != 2 {
		t.Fatalf("expected 2 vertices, got %d", len(got))
	}
	if got[0].Position != [3]float32{1, 20, 1} || got[0].Color != [4]float32(MarkerIdle) {
		t.Errorf("unexpected idle marker %+v", got[0])
	}
	if got[1].Position != [3]float32{2, 25, 2} || got[1].Color != [4]float32(MarkerMoving) {
		t.Errorf("unexpected moving marker %+v", got[1])
	}
}
