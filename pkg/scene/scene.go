// Package scene turns a closet into flat vertex arrays a renderer can upload
// directly, and tracks which separator is highlighted.
package scene

import (
	"github.com/chazu/closet/pkg/closet"
	"github.com/chazu/closet/pkg/geom"
)

const (
	// FloatsPerVertex is the stride of a vertex array: x, y, z, nx, ny, nz.
	FloatsPerVertex = 6
	// VerticesPerCuboid is the number of vertices emitted per cuboid (two
	// triangles on each of six faces).
	VerticesPerCuboid = 36
	// FloatsPerCuboid is the length of one cuboid's slice of a vertex array.
	FloatsPerCuboid = FloatsPerVertex * VerticesPerCuboid
)

// cuboidFaces lists, per face, the six vertices of its two triangles wound
// counter-clockwise seen from outside.
var cuboidFaces = []struct {
	face geom.Face
	tris [6]geom.VertexID
}{
	{geom.FaceBack, [6]geom.VertexID{geom.RDB, geom.LDB, geom.RUB, geom.LUB, geom.RUB, geom.LDB}},
	{geom.FaceFront, [6]geom.VertexID{geom.LDF, geom.RDF, geom.RUF, geom.RUF, geom.LUF, geom.LDF}},
	{geom.FaceLeft, [6]geom.VertexID{geom.LUF, geom.LUB, geom.LDB, geom.LDB, geom.LDF, geom.LUF}},
	{geom.FaceRight, [6]geom.VertexID{geom.RUB, geom.RUF, geom.RDB, geom.RDF, geom.RDB, geom.RUF}},
	{geom.FaceDown, [6]geom.VertexID{geom.LDB, geom.RDB, geom.RDF, geom.RDF, geom.LDF, geom.LDB}},
	{geom.FaceUp, [6]geom.VertexID{geom.LUB, geom.RUF, geom.RUB, geom.LUF, geom.RUF, geom.LUB}},
}

// AppendCuboid appends the 36 vertices of c to dst and returns the extended
// slice.
func AppendCuboid(dst []float32, c geom.Cuboid) []float32 {
	for _, f := range cuboidFaces {
		n := f.face.Normal()
		for _, id := range f.tris {
			p := c.V[id]
			dst = append(dst,
				float32(p.X), float32(p.Y), float32(p.Z),
				float32(n.X), float32(n.Y), float32(n.Z))
		}
	}
	return dst
}

// CuboidVertices returns the vertex array of a single cuboid.
func CuboidVertices(c geom.Cuboid) []float32 {
	return AppendCuboid(make([]float32, 0, FloatsPerCuboid), c)
}

// Scene is a snapshot of a closet's geometry. Holes and Parts hold
// FloatsPerCuboid floats per hole and per separator part, in ID order.
// Center and Size describe the closet's outside envelope, where a camera
// should look.
type Scene struct {
	Holes      []float32
	Parts      []float32
	PartColors []closet.Color
	Center     [3]float32
	Size       [3]float32
}

// Build snapshots cl. The scene does not track later changes; rebuild it
// after pushing holes or recoloring separators.
func Build(cl *closet.Closet) *Scene {
	holes := cl.Holes()
	parts := cl.Parts()
	s := &Scene{
		Holes:      make([]float32, 0, len(holes)*FloatsPerCuboid),
		Parts:      make([]float32, 0, len(parts)*FloatsPerCuboid),
		PartColors: make([]closet.Color, 0, len(parts)),
	}
	b := cl.Bounds()
	c, size := b.Center(), b.Size()
	s.Center = [3]float32{float32(c.X), float32(c.Y), float32(c.Z)}
	s.Size = [3]float32{float32(size.X), float32(size.Y), float32(size.Z)}
	for _, h := range holes {
		s.Holes = AppendCuboid(s.Holes, h.Cuboid)
	}
	for _, p := range parts {
		s.Parts = AppendCuboid(s.Parts, p.Cuboid)
		s.PartColors = append(s.PartColors, p.Color)
	}
	return s
}

// NumHoles returns the number of hole cuboids in the scene.
func (s *Scene) NumHoles() int { return len(s.Holes) / FloatsPerCuboid }

// NumParts returns the number of separator part cuboids in the scene.
func (s *Scene) NumParts() int { return len(s.Parts) / FloatsPerCuboid }

// Part returns the vertex slice of part i.
func (s *Scene) Part(i int) []float32 {
	return s.Parts[i*FloatsPerCuboid : (i+1)*FloatsPerCuboid]
}
