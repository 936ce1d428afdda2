// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/closet/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface checks.
var (
	_ kernel.Kernel    = (*SdfxKernel)(nil)
	_ kernel.STLWriter = (*SdfxKernel)(nil)
)

const (
	// DefaultMinCells and DefaultMaxCells bound the marching cubes
	// resolution along the longest axis of a solid.
	DefaultMinCells = 16
	DefaultMaxCells = 200

	// cellsPerFeature is how many cells span the thinnest feature.
	cellsPerFeature = 2
)

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid. feature is the
// smallest extent of any box the solid was built from.
type sdfxSolid struct {
	s       sdf.SDF3
	feature float64
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// Option configures an SdfxKernel.
type Option func(*SdfxKernel)

// WithCells bounds the marching cubes resolution along a solid's longest
// axis.
func WithCells(min, max int) Option {
	return func(k *SdfxKernel) {
		k.minCells, k.maxCells = min, max
	}
}

// WithFeatureSize sets the thinnest feature the mesher must resolve on top
// of the boxes each solid is built from. Zero relies on those boxes alone.
func WithFeatureSize(f float64) Option {
	return func(k *SdfxKernel) { k.featureSize = f }
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	minCells    int
	maxCells    int
	featureSize float64
}

// New returns a new SdfxKernel.
func New(opts ...Option) *SdfxKernel {
	k := &SdfxKernel{minCells: DefaultMinCells, maxCells: DefaultMaxCells}
	for _, opt := range opts {
		opt(k)
	}
	if k.minCells < 1 {
		k.minCells = 1
	}
	if k.maxCells < k.minCells {
		k.maxCells = k.minCells
	}
	return k
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// featureOf returns the thinnest box extent recorded for s.
func featureOf(s kernel.Solid) float64 {
	return s.(*sdfxSolid).feature
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3, feature float64) kernel.Solid {
	return &sdfxSolid{s: s, feature: feature}
}

// Box creates a box with the given dimensions. The resulting solid has its
// minimum corner at the origin (0,0,0), so translating it by a cuboid's
// minimum corner puts it in place.
// sdf.Box3D centers the box at the origin, so we translate by half-dimensions.
func (k *SdfxKernel) Box(x, y, z float64) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	m := sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2})
	return wrap(sdf.Transform3D(s, m), math.Min(x, math.Min(y, z)))
}

// Union returns the union of two solids. The union keeps the thinner of the
// two features, so a union of panels meshes at panel resolution.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)), math.Min(featureOf(a), featureOf(b)))
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m), featureOf(s))
}

// Cells returns the marching cubes resolution used for a solid with the
// given bounding box: enough cells along the longest axis that the
// thinnest feature spans cellsPerFeature cells, clamped to the configured
// range.
func (k *SdfxKernel) Cells(min, max [3]float64) int {
	return k.cells(min, max, 0)
}

// SolidCells returns the marching cubes resolution used for s, resolving
// the thinnest box s was built from even when its bounding box is larger.
func (k *SdfxKernel) SolidCells(s kernel.Solid) int {
	min, max := s.BoundingBox()
	return k.cells(min, max, featureOf(s))
}

// cells sizes the grid for a bounding box and a known feature size (0 when
// unknown).
func (k *SdfxKernel) cells(min, max [3]float64, feature float64) int {
	longest, smallest := 0.0, math.Inf(1)
	for i := range min {
		e := max[i] - min[i]
		longest = math.Max(longest, e)
		smallest = math.Min(smallest, e)
	}
	if k.featureSize > 0 {
		smallest = math.Min(smallest, k.featureSize)
	}
	if feature > 0 {
		smallest = math.Min(smallest, feature)
	}
	if !(smallest > 0) {
		return k.minCells
	}
	cells := int(math.Ceil(cellsPerFeature * longest / smallest))
	if cells < k.minCells {
		return k.minCells
	}
	if cells > k.maxCells {
		return k.maxCells
	}
	return cells
}

func (k *SdfxKernel) renderer(s kernel.Solid) render.Render3 {
	return render.NewMarchingCubesUniform(k.SolidCells(s))
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	triangles := render.ToTriangles(unwrap(s), k.renderer(s))
	if len(triangles) == 0 {
		return nil, fmt.Errorf("sdfx: solid produced no triangles")
	}

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}

// WriteSTL renders a solid with marching cubes and writes it to path as a
// binary STL file.
func (k *SdfxKernel) WriteSTL(path string, s kernel.Solid) error {
	triangles := render.ToTriangles(unwrap(s), k.renderer(s))
	if len(triangles) == 0 {
		return fmt.Errorf("sdfx: solid produced no triangles")
	}
	if err := render.SaveSTL(path, triangles); err != nil {
		return fmt.Errorf("sdfx: write %s: %w", path, err)
	}
	return nil
}
