package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// OBJ format errors.
var (
	ErrMeshIO          = errors.New("mesh source unreadable")
	ErrMalformedLine   = errors.New("malformed line")
	ErrIndexOutOfRange = errors.New("face index out of range")
)

// maxLineSize bounds a single line; terrain exports can have very long faces.
const maxLineSize = 1 << 20

// ParseError reports the line that failed to parse.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// OBJ is a parsed Wavefront-style mesh: positions plus polygonal faces.
type OBJ struct {
	// Vertices holds positions in file order. Slot 0 is reserved so
	// that the 1-based face indices address it directly.
	Vertices []mgl32.Vec3

	// Faces holds 1-based vertex indices, one slice per polygon.
	Faces [][]uint32
}

// OBJStats summarizes a parsed mesh.
type OBJStats struct {
	Vertices  int
	Faces     int
	Triangles int
}

// VertexCount returns the number of parsed vertices, excluding slot 0.
func (o *OBJ) VertexCount() int {
	if len(o.Vertices) == 0 {
		return 0
	}
	return len(o.Vertices) - 1
}

// FaceCount returns the number of parsed faces.
func (o *OBJ) FaceCount() int {
	return len(o.Faces)
}

// Stats returns vertex, face, and fan-triangle counts.
func (o *OBJ) Stats() OBJStats {
	return OBJStats{
		Vertices:  o.VertexCount(),
		Faces:     o.FaceCount(),
		Triangles: TriangleCount(o.Faces),
	}
}

// ParseOBJ parses an OBJ mesh from raw bytes.
func ParseOBJ(data []byte) (*OBJ, error) {
	return ParseOBJReader(bytes.NewReader(data))
}

// ParseOBJFile parses an OBJ mesh from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMeshIO, err)
	}
	return ParseOBJ(data)
}

// ParseOBJReader parses an OBJ mesh from r. Only "v" and "f" records are
// interpreted; every other record is skipped. On error no partial mesh is
// returned.
func ParseOBJReader(r io.Reader) (*OBJ, error) {
	obj := &OBJ{
		Vertices: []mgl32.Vec3{{}},
	}
	faceLines := make([]int, 0, 64)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, &ParseError{Line: lineNo, Err: err}
			}
			obj.Vertices = append(obj.Vertices, v)

		case "f":
			face, err := parseFace(fields[1:])
			if err != nil {
				return nil, &ParseError{Line: lineNo, Err: err}
			}
			obj.Faces = append(obj.Faces, face)
			faceLines = append(faceLines, lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMeshIO, err)
	}

	// Indices are checked once the vertex count is final
	count := uint32(obj.VertexCount())
	for i, face := range obj.Faces {
		for _, idx := range face {
			if idx == 0 || idx > count {
				return nil, &ParseError{
					Line: faceLines[i],
					Err:  fmt.Errorf("%w: %d (have %d vertices)", ErrIndexOutOfRange, idx, count),
				}
			}
		}
	}

	return obj, nil
}

// parseVertex parses the coordinates of a "v" record. A trailing w is ignored.
func parseVertex(tokens []string) (mgl32.Vec3, error) {
	if len(tokens) < 3 {
		return mgl32.Vec3{}, fmt.Errorf("%w: vertex needs 3 coordinates, got %d", ErrMalformedLine, len(tokens))
	}

	var v mgl32.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(tokens[i], 32)
		if err != nil {
			return mgl32.Vec3{}, fmt.Errorf("%w: bad coordinate %q", ErrMalformedLine, tokens[i])
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return mgl32.Vec3{}, fmt.Errorf("%w: non-finite coordinate %q", ErrMalformedLine, tokens[i])
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parseFace parses the indices of an "f" record. Tokens may carry texture
// and normal references ("7/1/3", "7//3"); only the position index is kept.
func parseFace(tokens []string) ([]uint32, error) {
	face := make([]uint32, 0, len(tokens))
	for _, tok := range tokens {
		pos, _, _ := strings.Cut(tok, "/")
		n, err := strconv.ParseInt(pos, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad face index %q", ErrMalformedLine, tok)
		}
		if n <= 0 || n > int64(^uint32(0)) {
			return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, n)
		}
		face = append(face, uint32(n))
	}
	return face, nil
}
