package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/walkview/pkg/walkmesh"
)

func TestTileOutlines(t *testing.T) {
	coords := []walkmesh.TileCoord{{X: 0, Z: 0}, {X: -1, Z: 2}}
	lines := TileOutlines(coords, 10, 5, GridColor)

	if len(lines) != 2*TileOutlineVertexCount {
		t.Fatalf("expected %d vertices, got %d", 2*TileOutlineVertexCount, len(lines))
	}

	// Second tile spans x [-10, 0], z [20, 30]
	for _, p := range lines[TileOutlineVertexCount:] {
		x, y, z := p.Position[0], p.Position[1], p.Position[2]
		if y != 5 {
			t.Errorf("line vertex at height %v, want 5", y)
		}
		if x != -10 && x != 0 {
			t.Errorf("x = %v, want tile edge -10 or 0", x)
		}
		if z != 20 && z != 30 {
			t.Errorf("z = %v, want tile edge 20 or 30", z)
		}
		if p.Color != GridColor {
			t.Errorf("color = %v", p.Color)
		}
	}

	// Segments chain around the square
	for i := 0; i < TileOutlineVertexCount; i += 2 {
		next := (i + 2) % TileOutlineVertexCount
		if lines[i+1].Position != lines[next].Position {
			t.Errorf("segment %d does not end where segment %d starts", i/2, next/2)
		}
	}
}

func TestSnapshotOutlines(t *testing.T) {
	if SnapshotOutlines(nil) != nil {
		t.Error("nil snapshot should have no outlines")
	}

	snap, err := walkmesh.BuildDefault(walkmesh.Request{
		TileSize:   walkmesh.DefaultTileSize,
		SlopeAngle: walkmesh.DefaultSlopeAngle,
	})
	if err != nil {
		t.Fatalf("BuildDefault failed: %v", err)
	}
	lines := SnapshotOutlines(snap)
	if len(lines) != TileOutlineVertexCount {
		t.Fatalf("expected one tile outline, got %d vertices", len(lines))
	}
	if lines[3].Position != [3]float32{988, 0, 988} {
		t.Errorf("far corner = %v, want (988, 0, 988)", lines[3].Position)
	}
}

func TestBoundsWireframe(t *testing.T) {
	b := walkmesh.Bounds{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{2, 4, 6}}
	lines := BoundsWireframe(b, 1, BoundsColor)

	if len(lines) != BBoxWireframeVertexCount {
		t.Fatalf("expected %d vertices, got %d", BBoxWireframeVertexCount, len(lines))
	}

	for _, p := range lines {
		for axis, want := range [][2]float32{{-1, 3}, {-1, 5}, {-1, 7}} {
			v := p.Position[axis]
			if v != want[0] && v != want[1] {
				t.Errorf("axis %d coordinate %v not on padded box", axis, v)
			}
		}
	}

	// Each edge changes exactly one axis
	for i := 0; i < len(lines); i += 2 {
		changed := 0
		for axis := 0; axis < 3; axis++ {
			if lines[i].Position[axis] != lines[i+1].Position[axis] {
				changed++
			}
		}
		if changed != 1 {
			t.Errorf("edge %d changes %d axes, want 1", i/2, changed)
		}
	}
}

func TestBoundsWireframe_Empty(t *testing.T) {
	empty := walkmesh.ComputeBounds(nil)
	if lines := BoundsWireframe(empty, 0, BoundsColor); lines != nil {
		t.Errorf("expected no lines for empty bounds, got %d", len(lines))
	}
}

func TestFlipRGBA(t *testing.T) {
	// 1x2 image: bottom row red, top row blue (GL order)
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipRGBA(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FlipRGBA failed: %v", err)
	}

	top := img.RGBAAt(0, 0)
	bottom := img.RGBAAt(0, 1)
	if top.B != 255 || top.R != 0 {
		t.Errorf("top pixel = %v, want blue", top)
	}
	if bottom.R != 255 || bottom.B != 0 {
		t.Errorf("bottom pixel = %v, want red", bottom)
	}
}

func TestFlipRGBA_SizeMismatch(t *testing.T) {
	if _, err := FlipRGBA(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected error for short pixel data")
	}
	if _, err := FlipRGBA(nil, 0, 0); err == nil {
		t.Error("expected error for empty image")
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "walkview")
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	path, err := sc.CaptureFromPixels(make([]byte, 4*3*2), 3, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels failed: %v", err)
	}

	want := filepath.Join(dir, "walkview_2024-05-01_12-30-00.000.png")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open screenshot: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode screenshot: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("image size = %dx%d, want 3x2", b.Dx(), b.Dy())
	}
}
