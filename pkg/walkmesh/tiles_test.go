package walkmesh

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTileCoordOf(t *testing.T) {
	tests := []struct {
		p    mgl32.Vec3
		size float32
		want TileCoord
	}{
		{mgl32.Vec3{0, 0, 0}, 10, TileCoord{0, 0}},
		{mgl32.Vec3{9.99, 100, 9.99}, 10, TileCoord{0, 0}},
		{mgl32.Vec3{10, 0, 25}, 10, TileCoord{1, 2}},
		{mgl32.Vec3{-0.5, 0, -10}, 10, TileCoord{-1, -1}},
		{mgl32.Vec3{-10.5, 0, 0}, 10, TileCoord{-2, 0}},
		{mgl32.Vec3{1976, 0, 987}, 988, TileCoord{2, 0}},
		{mgl32.Vec3{1e30, 0, 3e12}, 988, TileCoord{math.MaxInt32, math.MaxInt32}},
		{mgl32.Vec3{-1e30, 0, 0}, 988, TileCoord{math.MinInt32, 0}},
		{mgl32.Vec3{float32(math.NaN()), 0, float32(math.Inf(-1))}, 988, TileCoord{0, math.MinInt32}},
	}

	for _, tt := range tests {
		if got := TileCoordOf(tt.p, tt.size); got != tt.want {
			t.Errorf("TileCoordOf(%v, %v) = %v, want %v", tt.p, tt.size, got, tt.want)
		}
	}
}

func TestSplitIntoTiles_SingleTile(t *testing.T) {
	vertices := []mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {1, 0, 1}, {1, 0, 0}}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	normals := AverageNormals(vertices, indices)

	tiles, err := SplitIntoTiles(vertices, indices, normals, 10)
	if err != nil {
		t.Fatalf("SplitIntoTiles failed: %v", err)
	}
	if len(tiles) != 1 {
		t.Fatalf("expected 1 tile, got %d", len(tiles))
	}

	tile := tiles[0]
	if tile.Coord != (TileCoord{0, 0}) {
		t.Errorf("expected tile (0,0), got %v", tile.Coord)
	}
	if tile.TriangleCount() != 2 {
		t.Fatalf("expected 2 triangles, got %d", tile.TriangleCount())
	}
	if len(tile.Vertices) != 6 || len(tile.Normals) != 6 {
		t.Errorf("expected 6 unshared vertices and normals, got %d/%d", len(tile.Vertices), len(tile.Normals))
	}

	// Every source triangle appears exactly once, in order, re-indexed
	for tri := 0; tri < 2; tri++ {
		for k := 0; k < 3; k++ {
			local := tile.Indices[tri*3+k]
			if local != uint32(tri*3+k) {
				t.Errorf("triangle %d corner %d: expected local index %d, got %d", tri, k, tri*3+k, local)
			}
			src := indices[tri*3+k]
			if tile.Vertices[local] != vertices[src] {
				t.Errorf("triangle %d corner %d: vertex mismatch", tri, k)
			}
			if tile.Normals[local] != normals[src] {
				t.Errorf("triangle %d corner %d: normal mismatch", tri, k)
			}
		}
	}
}

func TestSplitIntoTiles_BoundingRectangle(t *testing.T) {
	// Corners land in (0,0), (2,0), (0,2)
	vertices := []mgl32.Vec3{{0.5, 0, 0.5}, {2.5, 0, 0.5}, {0.5, 0, 2.5}}
	indices := []uint32{0, 2, 1}
	normals := AverageNormals(vertices, indices)

	tiles, err := SplitIntoTiles(vertices, indices, normals, 1)
	if err != nil {
		t.Fatalf("SplitIntoTiles failed: %v", err)
	}
	if len(tiles) != 9 {
		t.Fatalf("expected 9 tiles in the 3x3 rectangle, got %d", len(tiles))
	}

	byCoord := TileMap(tiles)
	for x := int32(0); x <= 2; x++ {
		for z := int32(0); z <= 2; z++ {
			tile, ok := byCoord[TileCoord{x, z}]
			if !ok {
				t.Errorf("missing tile (%d,%d)", x, z)
				continue
			}
			if tile.TriangleCount() != 1 {
				t.Errorf("tile (%d,%d): expected 1 triangle, got %d", x, z, tile.TriangleCount())
			}
			if tile.Vertices[1] != vertices[2] {
				t.Errorf("tile (%d,%d): winding not preserved", x, z)
			}
		}
	}
}

func TestSplitIntoTiles_NoSharedStorage(t *testing.T) {
	vertices := []mgl32.Vec3{{0.5, 0, 0.5}, {1.5, 0, 0.5}, {0.5, 0, 1.5}}
	indices := []uint32{0, 2, 1}
	normals := AverageNormals(vertices, indices)

	tiles, err := SplitIntoTiles(vertices, indices, normals, 1)
	if err != nil {
		t.Fatalf("SplitIntoTiles failed: %v", err)
	}
	if len(tiles) != 4 {
		t.Fatalf("expected 4 tiles, got %d", len(tiles))
	}

	tiles[0].Vertices[0] = mgl32.Vec3{99, 99, 99}
	for _, other := range tiles[1:] {
		if other.Vertices[0] == tiles[0].Vertices[0] {
			t.Errorf("tile %v shares vertex storage with %v", other.Coord, tiles[0].Coord)
		}
	}
	if vertices[0] == tiles[0].Vertices[0] {
		t.Error("tile shares vertex storage with the source mesh")
	}
}

func TestSplitIntoTiles_SortedOutput(t *testing.T) {
	vertices := []mgl32.Vec3{
		{5.5, 0, 0.5}, {5.6, 0, 0.5}, {5.5, 0, 0.6},
		{-3.5, 0, 2.5}, {-3.4, 0, 2.5}, {-3.5, 0, 2.6},
		{0.5, 0, -1.5}, {0.6, 0, -1.5}, {0.5, 0, -1.4},
		{-3.5, 0, -7.5}, {-3.4, 0, -7.5}, {-3.5, 0, -7.4},
	}
	indices := []uint32{0, 2, 1, 3, 5, 4, 6, 8, 7, 9, 11, 10}
	normals := AverageNormals(vertices, indices)

	tiles, err := SplitIntoTiles(vertices, indices, normals, 1)
	if err != nil {
		t.Fatalf("SplitIntoTiles failed: %v", err)
	}

	want := []TileCoord{{-4, -8}, {-4, 2}, {0, -2}, {5, 0}}
	if len(tiles) != len(want) {
		t.Fatalf("expected %d tiles, got %d", len(want), len(tiles))
	}
	for i, c := range want {
		if tiles[i].Coord != c {
			t.Errorf("tile %d: expected %v, got %v", i, c, tiles[i].Coord)
		}
	}
}

func TestSplitIntoTiles_InvalidSize(t *testing.T) {
	sizes := []float32{0, -1, float32(math.NaN()), float32(math.Inf(1))}
	for _, size := range sizes {
		_, err := SplitIntoTiles(nil, nil, nil, size)
		if !errors.Is(err, ErrInvalidTileSize) {
			t.Errorf("size %v: expected ErrInvalidTileSize, got %v", size, err)
		}
	}
}

func TestSplitIntoTiles_Empty(t *testing.T) {
	tiles, err := SplitIntoTiles(nil, nil, nil, 988)
	if err != nil {
		t.Fatalf("SplitIntoTiles failed: %v", err)
	}
	if len(tiles) != 0 {
		t.Errorf("expected no tiles, got %d", len(tiles))
	}
}

func TestSplitIntoTiles_SaturatedRectangle(t *testing.T) {
	// 2147483520 is the largest float32 below 2^31, so the rectangle runs
	// 128 columns up to the saturated edge at MaxInt32
	vertices := []mgl32.Vec3{
		{2147483520, 0, 0},
		{1e30, 0, 0},
		{2147483520, 0, 0.5},
	}
	normals := []mgl32.Vec3{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}}

	tiles, err := SplitIntoTiles(vertices, []uint32{0, 1, 2}, normals, 1)
	if err != nil {
		t.Fatalf("SplitIntoTiles failed: %v", err)
	}
	if len(tiles) != 128 {
		t.Fatalf("expected 128 tiles, got %d", len(tiles))
	}
	if first := tiles[0].Coord; first != (TileCoord{2147483520, 0}) {
		t.Errorf("first tile = %v, want (2147483520,0)", first)
	}
	if last := tiles[len(tiles)-1].Coord; last != (TileCoord{math.MaxInt32, 0}) {
		t.Errorf("last tile = %v, want (%d,0)", last, int32(math.MaxInt32))
	}
}

func TestSplitIntoTiles_FarTriangleKeepsSign(t *testing.T) {
	vertices := []mgl32.Vec3{{1e30, 0, 1e30}, {1e30, 0, 1e30}, {1e30, 0, 1e30}}
	normals := []mgl32.Vec3{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}}

	tiles, err := SplitIntoTiles(vertices, []uint32{0, 1, 2}, normals, 988)
	if err != nil {
		t.Fatalf("SplitIntoTiles failed: %v", err)
	}
	if len(tiles) != 1 {
		t.Fatalf("expected 1 tile, got %d", len(tiles))
	}
	if got := tiles[0].Coord; got != (TileCoord{math.MaxInt32, math.MaxInt32}) {
		t.Errorf("coord = %v, want saturated positive corner", got)
	}
}
