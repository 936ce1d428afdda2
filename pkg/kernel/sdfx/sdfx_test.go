package sdfx

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestBox(t *testing.T) {
	k := New()
	box := k.Box(1, 0.5, 0.25)
	mesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	triCount := mesh.TriangleCount()
	if triCount == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	// Verify vertex and index array sizes are consistent.
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != triCount*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), triCount*3)
	}
}

func TestBoxMinCornerAtOrigin(t *testing.T) {
	k := New()
	min, max := k.Box(100, 50, 25).BoundingBox()

	const tol = 0.01
	expectMax := [3]float64{100, 50, 25}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]) > tol {
			t.Errorf("min[%d] = %f, expected 0", i, min[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	translated := k.Translate(k.Box(10, 10, 10), 100, 200, 300)

	min, max := translated.BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{100, 200, 300}
	expectMax := [3]float64{110, 210, 310}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestUnion(t *testing.T) {
	k := New()
	box1 := k.Box(50, 50, 50)
	box2 := k.Translate(k.Box(50, 50, 50), 30, 0, 0)
	u := k.Union(box1, box2)

	min, max := u.BoundingBox()
	if math.Abs(min[0]) > 0.01 || math.Abs(max[0]-80) > 0.01 {
		t.Errorf("union x range = [%f, %f], want [0, 80]", min[0], max[0])
	}

	mesh, err := k.ToMesh(u)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("union mesh is empty")
	}
	t.Logf("union triangle count: %d", mesh.TriangleCount())
}

func TestThinPanelMeshes(t *testing.T) {
	// A separator panel is far thinner than it is wide; the adaptive cell
	// count must still resolve it.
	k := New()
	panel := k.Box(0.9, 0.025, 0.7)
	mesh, err := k.ToMesh(panel)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	_, max := mesh.Bounds()
	if max[1] <= 0 {
		t.Errorf("panel mesh has no thickness: max y = %f", max[1])
	}
}

func TestCells(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		min, max [3]float64
		want     int
	}{
		{"cube uses minimum", nil, [3]float64{0, 0, 0}, [3]float64{1, 1, 1}, DefaultMinCells},
		{"thin panel", nil, [3]float64{0, 0, 0}, [3]float64{1, 0.03125, 0.5}, 64},
		{"clamped to maximum", nil, [3]float64{0, 0, 0}, [3]float64{10, 0.001, 10}, DefaultMaxCells},
		{"degenerate box", nil, [3]float64{0, 0, 0}, [3]float64{1, 0, 1}, DefaultMinCells},
		{"feature size", []Option{WithFeatureSize(0.0625)}, [3]float64{0, 0, 0}, [3]float64{1, 1, 1}, 32},
		{"custom range", []Option{WithCells(4, 8)}, [3]float64{0, 0, 0}, [3]float64{1, 0.01, 1}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := New(tt.opts...)
			if got := k.Cells(tt.min, tt.max); got != tt.want {
				t.Errorf("Cells() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUnionOfPanelsKeepsFeature(t *testing.T) {
	// Two 0.025 panels half a unit apart: the union's bounding box alone
	// would ask for the minimum grid, whose cells are wider than a panel.
	k := New()
	floor := k.Box(1, 0.025, 1)
	shelf := k.Translate(k.Box(1, 0.025, 1), 0, 0.5, 0)
	u := k.Union(floor, shelf)

	if got := k.Cells(u.BoundingBox()); got != DefaultMinCells {
		t.Fatalf("Cells(bbox) = %d, want %d", got, DefaultMinCells)
	}
	if got, want := k.SolidCells(u), 80; got != want {
		t.Errorf("SolidCells() = %d, want %d", got, want)
	}

	mesh, err := k.ToMesh(u)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	var low, high bool
	for i := 1; i < len(mesh.Vertices); i += 3 {
		y := mesh.Vertices[i]
		low = low || y < 0.05
		high = high || y > 0.45
	}
	if !low || !high {
		t.Errorf("union mesh covers floor=%v shelf=%v, want both", low, high)
	}
}

func TestNewClampsCellRange(t *testing.T) {
	k := New(WithCells(0, -5))
	if k.minCells != 1 || k.maxCells != 1 {
		t.Errorf("cell range = [%d, %d], want [1, 1]", k.minCells, k.maxCells)
	}
}

func TestWriteSTL(t *testing.T) {
	k := New()
	path := filepath.Join(t.TempDir(), "box.stl")
	if err := k.WriteSTL(path, k.Box(1, 1, 1)); err != nil {
		t.Fatalf("WriteSTL failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	// Binary STL: 80-byte header, 4-byte count, 50 bytes per triangle.
	if info.Size() <= 84 {
		t.Errorf("STL file is %d bytes, expected triangles", info.Size())
	}
}
