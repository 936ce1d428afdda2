package tessellate_test

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/closet/pkg/closet"
	"github.com/chazu/closet/pkg/geom"
	"github.com/chazu/closet/pkg/kernel"
	"github.com/chazu/closet/pkg/kernel/sdfx"
	"github.com/chazu/closet/pkg/tessellate"
)

// newKernel returns a fresh sdfx kernel for testing.
func newKernel() kernel.Kernel {
	return sdfx.New()
}

// buildDemo returns the three-hole closet: a seed, a copy stacked on top
// and a narrow hole to the right reaching down to the seed's floor.
func buildDemo(t *testing.T) *closet.Closet {
	t.Helper()
	cl, err := closet.New(closet.DirectDims(0.9, 0.4, 0.7))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := cl.PushHole(closet.CopyDims(), 0, geom.FaceUp, geom.RUF, 0.025); err != nil {
		t.Fatalf("push up: %v", err)
	}
	dim := closet.Dims(closet.Direct(0.3), closet.Until(0, geom.FaceDown), closet.Copy())
	if _, err := cl.PushHole(dim, 1, geom.FaceRight, geom.RUF, 0.025); err != nil {
		t.Fatalf("push right: %v", err)
	}
	return cl
}

// box is the solid handed out by recordingKernel.
type box struct {
	min, max [3]float64
}

func (b *box) BoundingBox() (min, max [3]float64) { return b.min, b.max }

// recordingKernel builds exact boxes and meshes them as their 8 corners so
// placement can be checked without marching cubes.
type recordingKernel struct {
	unions int
}

func (k *recordingKernel) Box(x, y, z float64) kernel.Solid {
	return &box{max: [3]float64{x, y, z}}
}

func (k *recordingKernel) Union(a, b kernel.Solid) kernel.Solid {
	k.unions++
	amin, amax := a.BoundingBox()
	bmin, bmax := b.BoundingBox()
	u := &box{}
	for i := 0; i < 3; i++ {
		u.min[i] = math.Min(amin[i], bmin[i])
		u.max[i] = math.Max(amax[i], bmax[i])
	}
	return u
}

func (k *recordingKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	min, max := s.BoundingBox()
	d := [3]float64{x, y, z}
	for i := range d {
		min[i] += d[i]
		max[i] += d[i]
	}
	return &box{min: min, max: max}
}

func (k *recordingKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	min, max := s.BoundingBox()
	m := &kernel.Mesh{}
	for i := 0; i < 8; i++ {
		for a := 0; a < 3; a++ {
			v := min[a]
			if i&(4>>a) != 0 {
				v = max[a]
			}
			m.Vertices = append(m.Vertices, float32(v))
			m.Normals = append(m.Normals, 0)
		}
	}
	m.Indices = []uint32{0, 1, 2}
	return m, nil
}

func checkMeshBounds(t *testing.T, m *kernel.Mesh, c geom.Cuboid, tol float64) {
	t.Helper()
	min, max := m.Bounds()
	cmin, cmax := c.Min(), c.Max()
	for _, a := range geom.Axes {
		if math.Abs(float64(min[a])-cmin.Get(a)) > tol || math.Abs(float64(max[a])-cmax.Get(a)) > tol {
			t.Errorf("%s: %s range = [%f, %f], want [%f, %f]",
				m.PartName, a, min[a], max[a], cmin.Get(a), cmax.Get(a))
		}
	}
}

func TestNilCloset(t *testing.T) {
	res, err := tessellate.Tessellate(nil, &recordingKernel{})
	if err != nil {
		t.Fatalf("Tessellate(nil) error: %v", err)
	}
	if len(res.Holes) != 0 || len(res.Parts) != 0 {
		t.Errorf("expected no meshes, got %d holes, %d parts", len(res.Holes), len(res.Parts))
	}
}

func TestMeshPerHoleAndPart(t *testing.T) {
	cl := buildDemo(t)
	res, err := tessellate.Tessellate(cl, &recordingKernel{})
	if err != nil {
		t.Fatalf("Tessellate error: %v", err)
	}
	if len(res.Holes) != 3 {
		t.Fatalf("hole meshes = %d, want 3", len(res.Holes))
	}
	if len(res.Parts) != 18 {
		t.Fatalf("part meshes = %d, want 18", len(res.Parts))
	}

	for _, h := range cl.Holes() {
		m := res.Holes[h.ID]
		if m.PartName != tessellate.HoleName(h.ID) {
			t.Errorf("hole %d mesh named %q", h.ID, m.PartName)
		}
		checkMeshBounds(t, m, h.Cuboid, 1e-6)
	}
	for _, p := range cl.Parts() {
		m := res.Parts[p.ID]
		if !strings.HasPrefix(m.PartName, "separator-") {
			t.Errorf("part %d mesh named %q", p.ID, m.PartName)
		}
		checkMeshBounds(t, m, p.Cuboid, 1e-6)
	}
}

func TestStats(t *testing.T) {
	res, err := tessellate.Tessellate(buildDemo(t), &recordingKernel{})
	if err != nil {
		t.Fatalf("Tessellate error: %v", err)
	}
	st := res.Stats()
	if st.Triangles != 21 || st.Vertices != 21*8 {
		t.Errorf("stats = %d triangles, %d vertices; want 21, 168", st.Triangles, st.Vertices)
	}
	wantMin := [3]float32{-0.475, -0.225, -0.375}
	wantMax := [3]float32{0.8, 0.65, 0.375}
	for a := 0; a < 3; a++ {
		if math.Abs(float64(st.Min[a]-wantMin[a])) > 1e-6 || math.Abs(float64(st.Max[a]-wantMax[a])) > 1e-6 {
			t.Errorf("axis %d bounds = [%f, %f], want [%f, %f]", a, st.Min[a], st.Max[a], wantMin[a], wantMax[a])
		}
	}

	if st := (&tessellate.Meshes{}).Stats(); st != (tessellate.Stats{}) {
		t.Errorf("empty stats = %+v", st)
	}
}

// emptyKernel meshes every solid to nothing.
type emptyKernel struct{ recordingKernel }

func (k *emptyKernel) ToMesh(kernel.Solid) (*kernel.Mesh, error) { return &kernel.Mesh{}, nil }

func TestEmptyMeshIsAnError(t *testing.T) {
	cl, err := closet.New(closet.DirectDims(0.9, 0.4, 0.7))
	if err != nil {
		t.Fatal(err)
	}
	_, err = tessellate.Tessellate(cl, &emptyKernel{})
	if err == nil || !strings.Contains(err.Error(), "hole 0: empty mesh") {
		t.Errorf("Tessellate error = %v, want empty mesh for hole 0", err)
	}
}

func TestPartName(t *testing.T) {
	p := closet.SeparatorPart{ID: 4, Separator: 2}
	if got := tessellate.PartName(p); got != "separator-2/part-4" {
		t.Errorf("PartName = %q", got)
	}
	if got := tessellate.HoleName(7); got != "hole-7" {
		t.Errorf("HoleName = %q", got)
	}
}

func TestPanelsUnion(t *testing.T) {
	cl := buildDemo(t)
	k := &recordingKernel{}
	solid, err := tessellate.Panels(cl, k)
	if err != nil {
		t.Fatalf("Panels error: %v", err)
	}
	if k.unions != cl.NumParts()-1 {
		t.Errorf("unions = %d, want %d", k.unions, cl.NumParts()-1)
	}
	min, max := solid.BoundingBox()
	// Panels wrap the holes: left of the seed to right of hole 2 plus its
	// right panel.
	if math.Abs(min[0]-(-0.475)) > 1e-9 || math.Abs(max[0]-0.8) > 1e-9 {
		t.Errorf("panels x range = [%f, %f], want [-0.475, 0.8]", min[0], max[0])
	}
}

func TestPanelsEmpty(t *testing.T) {
	if _, err := tessellate.Panels(nil, &recordingKernel{}); err == nil {
		t.Error("expected error for nil closet")
	}
}

func TestSdfxSeed(t *testing.T) {
	cl, err := closet.New(closet.DirectDims(0.9, 0.4, 0.7))
	if err != nil {
		t.Fatal(err)
	}
	res, err := tessellate.Tessellate(cl, newKernel())
	if err != nil {
		t.Fatalf("Tessellate error: %v", err)
	}
	if len(res.Holes) != 1 || len(res.Parts) != 6 {
		t.Fatalf("got %d hole meshes, %d part meshes; want 1, 6", len(res.Holes), len(res.Parts))
	}
	for _, m := range append(res.Holes, res.Parts...) {
		if m.IsEmpty() {
			t.Errorf("%s: empty mesh", m.PartName)
		}
	}
	// Marching cubes lands within a cell of the true surface.
	checkMeshBounds(t, res.Holes[0], cl.Holes()[0].Cuboid, 0.06)
}
