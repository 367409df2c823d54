package walkmesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/walkview/pkg/formats"
)

// Pipeline defaults.
const (
	DefaultTileSize   float32 = 988
	DefaultSlopeAngle float32 = 45
)

// Request describes one rebuild: which file, how to tile it, and which slope
// angle to color it with.
type Request struct {
	Path       string
	TileSize   float32
	SlopeAngle float32

	// Reload forces the file to be read again even when only the angle
	// differs from the previous request.
	Reload bool
}

// ColoredTile pairs a tile with its per-vertex colors.
type ColoredTile struct {
	Tile
	Colors []mgl32.Vec4
}

// Snapshot is the complete output of one rebuild. It is never modified after
// Build returns; callers swap whole snapshots.
type Snapshot struct {
	Request Request
	Mesh    *Mesh
	Tiles   []ColoredTile
	Source  formats.OBJStats
	Slope   SlopeStats
}

// TileCount returns the number of tiles.
func (s *Snapshot) TileCount() int {
	return len(s.Tiles)
}

// Build reads and parses req.Path and runs the full pipeline.
func Build(req Request) (*Snapshot, error) {
	obj, err := formats.ParseOBJFile(req.Path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", req.Path, err)
	}
	return BuildFromOBJ(obj, req)
}

// BuildFromBytes runs the full pipeline over an in-memory OBJ source.
func BuildFromBytes(data []byte, req Request) (*Snapshot, error) {
	obj, err := formats.ParseOBJ(data)
	if err != nil {
		return nil, err
	}
	return BuildFromOBJ(obj, req)
}

// BuildFromOBJ triangulates, smooths, tiles, and colors an already parsed mesh.
func BuildFromOBJ(obj *formats.OBJ, req Request) (*Snapshot, error) {
	mesh := NewMesh(obj)
	return BuildFromMesh(mesh, obj.Stats(), req)
}

// BuildFromMesh tiles and colors a mesh.
func BuildFromMesh(mesh *Mesh, source formats.OBJStats, req Request) (*Snapshot, error) {
	tiles, err := SplitIntoTiles(mesh.Vertices, mesh.Indices, mesh.Normals, req.TileSize)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		Request: req,
		Mesh:    mesh,
		Tiles:   make([]ColoredTile, len(tiles)),
		Source:  source,
	}
	for i, t := range tiles {
		s.Tiles[i] = colorTile(t, req.SlopeAngle)
		s.Slope = s.Slope.Add(ClassifyStats(t.Indices, t.Normals, req.SlopeAngle))
	}
	return s, nil
}

// BuildDefault runs the placeholder mesh through the pipeline.
func BuildDefault(req Request) (*Snapshot, error) {
	mesh := DefaultMesh()
	return BuildFromMesh(mesh, formats.OBJStats{
		Vertices:  len(mesh.Vertices),
		Faces:     mesh.TriangleCount(),
		Triangles: mesh.TriangleCount(),
	}, req)
}

// Recolor returns a new snapshot with the same tiles colored for angleDeg.
// Tile geometry is shared with s since neither snapshot modifies it.
func Recolor(s *Snapshot, angleDeg float32) *Snapshot {
	out := &Snapshot{
		Request: s.Request,
		Mesh:    s.Mesh,
		Tiles:   make([]ColoredTile, len(s.Tiles)),
		Source:  s.Source,
	}
	out.Request.SlopeAngle = angleDeg

	for i, t := range s.Tiles {
		out.Tiles[i] = colorTile(t.Tile, angleDeg)
		out.Slope = out.Slope.Add(ClassifyStats(t.Indices, t.Normals, angleDeg))
	}
	return out
}

func colorTile(t Tile, angleDeg float32) ColoredTile {
	return ColoredTile{
		Tile:   t,
		Colors: Classify(t.Vertices, t.Indices, t.Normals, angleDeg),
	}
}
