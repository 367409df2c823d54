package walkmesh

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidTileSize is returned for a tile size that is not positive and finite.
var ErrInvalidTileSize = errors.New("tile size must be positive")

// TileCoord identifies a grid cell on the XZ plane.
type TileCoord struct {
	X, Z int32
}

// String returns the coordinate as "(x,z)".
func (c TileCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

// Tile is a self-contained sub-mesh. It shares no storage with other tiles
// and triangles inside it share no vertices: vertex 3k..3k+2 belong to
// triangle k.
type Tile struct {
	Coord    TileCoord
	Vertices []mgl32.Vec3
	Indices  []uint32
	Normals  []mgl32.Vec3
}

// TriangleCount returns the number of triangles in the tile.
func (t *Tile) TriangleCount() int {
	return len(t.Indices) / 3
}

// TileCoordOf returns the grid cell containing p. Cells beyond the int32
// range saturate at its ends and a NaN coordinate maps to cell 0.
func TileCoordOf(p mgl32.Vec3, tileSize float32) TileCoord {
	return TileCoord{
		X: tileIndex(p.X() / tileSize),
		Z: tileIndex(p.Z() / tileSize),
	}
}

func tileIndex(v float32) int32 {
	f := math.Floor(float64(v))
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}

// SplitIntoTiles partitions a triangle list into grid tiles of tileSize.
//
// A triangle is copied into every tile within the bounding rectangle of its
// three corner tiles, including tiles inside the rectangle that the triangle
// itself never overlaps. Nothing is welded, so each tile can be uploaded and
// drawn on its own at the cost of duplicated vertices along tile seams.
//
// Tiles are returned sorted by (X, Z).
func SplitIntoTiles(vertices []mgl32.Vec3, indices []uint32, normals []mgl32.Vec3, tileSize float32) ([]Tile, error) {
	if !(tileSize > 0) || math.IsInf(float64(tileSize), 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTileSize, tileSize)
	}

	tiles := make(map[TileCoord]*Tile)

	for i := 0; i+2 < len(indices); i += 3 {
		tri := [3]uint32{indices[i], indices[i+1], indices[i+2]}

		minC := TileCoordOf(vertices[tri[0]], tileSize)
		maxC := minC
		for _, idx := range tri[1:] {
			c := TileCoordOf(vertices[idx], tileSize)
			minC.X = min(minC.X, c.X)
			minC.Z = min(minC.Z, c.Z)
			maxC.X = max(maxC.X, c.X)
			maxC.Z = max(maxC.Z, c.Z)
		}

		// int64 counters so a rectangle ending at MaxInt32 terminates
		for x := int64(minC.X); x <= int64(maxC.X); x++ {
			for z := int64(minC.Z); z <= int64(maxC.Z); z++ {
				coord := TileCoord{X: int32(x), Z: int32(z)}
				tile, ok := tiles[coord]
				if !ok {
					tile = &Tile{Coord: coord}
					tiles[coord] = tile
				}

				base := uint32(len(tile.Vertices))
				for _, idx := range tri {
					tile.Vertices = append(tile.Vertices, vertices[idx])
					tile.Normals = append(tile.Normals, normals[idx])
				}
				tile.Indices = append(tile.Indices, base, base+1, base+2)
			}
		}
	}

	result := make([]Tile, 0, len(tiles))
	for _, tile := range tiles {
		result = append(result, *tile)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Coord.X != result[j].Coord.X {
			return result[i].Coord.X < result[j].Coord.X
		}
		return result[i].Coord.Z < result[j].Coord.Z
	})

	return result, nil
}

// TileMap indexes tiles by coordinate.
func TileMap(tiles []Tile) map[TileCoord]*Tile {
	m := make(map[TileCoord]*Tile, len(tiles))
	for i := range tiles {
		m[tiles[i].Coord] = &tiles[i]
	}
	return m
}
