// Package tessellate walks a closet and produces triangle meshes using a
// geometry kernel. One mesh is produced per hole and per separator part.
package tessellate

import (
	"fmt"

	"github.com/chazu/closet/pkg/closet"
	"github.com/chazu/closet/pkg/geom"
	"github.com/chazu/closet/pkg/kernel"
)

// Meshes holds the tessellated closet. Holes is indexed by closet.HoleID and
// Parts by closet.PartID.
type Meshes struct {
	Holes []*kernel.Mesh
	Parts []*kernel.Mesh
}

// Stats summarizes a tessellation.
type Stats struct {
	Triangles int
	Vertices  int
	Min, Max  [3]float32 // bounds of every mesh together
}

// Stats totals the triangles and vertices of every mesh and merges their
// bounds.
func (m *Meshes) Stats() Stats {
	var st Stats
	first := true
	for _, list := range [][]*kernel.Mesh{m.Holes, m.Parts} {
		for _, mesh := range list {
			st.Triangles += mesh.TriangleCount()
			st.Vertices += mesh.VertexCount()
			if mesh.IsEmpty() {
				continue
			}
			lo, hi := mesh.Bounds()
			if first {
				st.Min, st.Max, first = lo, hi, false
				continue
			}
			for a := range lo {
				st.Min[a] = min(st.Min[a], lo[a])
				st.Max[a] = max(st.Max[a], hi[a])
			}
		}
	}
	return st
}

// HoleName is the mesh name of hole id.
func HoleName(id closet.HoleID) string {
	return fmt.Sprintf("hole-%d", id)
}

// PartName is the mesh name of a separator part.
func PartName(p closet.SeparatorPart) string {
	return fmt.Sprintf("separator-%d/part-%d", p.Separator, p.ID)
}

// Tessellate produces one triangle mesh per hole and per separator part
// using the provided geometry kernel. The tessellator is read-only and never
// mutates the closet.
func Tessellate(cl *closet.Closet, k kernel.Kernel) (*Meshes, error) {
	if cl == nil {
		return &Meshes{}, nil
	}

	holes := cl.Holes()
	parts := cl.Parts()
	res := &Meshes{
		Holes: make([]*kernel.Mesh, 0, len(holes)),
		Parts: make([]*kernel.Mesh, 0, len(parts)),
	}

	for _, h := range holes {
		m, err := cuboidMesh(k, h.Cuboid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: hole %d: %w", h.ID, err)
		}
		m.PartName = HoleName(h.ID)
		res.Holes = append(res.Holes, m)
	}

	for _, p := range parts {
		m, err := cuboidMesh(k, p.Cuboid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: separator %d part %d: %w", p.Separator, p.ID, err)
		}
		m.PartName = PartName(p)
		res.Parts = append(res.Parts, m)
	}

	return res, nil
}

// Panels returns the union of every separator part as a single solid, the
// physical panels of the closet without the empty holes.
func Panels(cl *closet.Closet, k kernel.Kernel) (kernel.Solid, error) {
	if cl == nil || cl.NumParts() == 0 {
		return nil, fmt.Errorf("tessellate: closet has no separator parts")
	}
	var solid kernel.Solid
	for _, p := range cl.Parts() {
		s := cuboidSolid(k, p.Cuboid)
		if solid == nil {
			solid = s
			continue
		}
		solid = k.Union(solid, s)
	}
	return solid, nil
}

// cuboidSolid builds a kernel box for c. Kernel boxes start at the origin,
// so the box is moved to c's minimum corner.
func cuboidSolid(k kernel.Kernel, c geom.Cuboid) kernel.Solid {
	size := c.Size()
	solid := k.Box(size.X, size.Y, size.Z)

	min := c.Min()
	if min.X != 0 || min.Y != 0 || min.Z != 0 {
		solid = k.Translate(solid, min.X, min.Y, min.Z)
	}
	return solid
}

func cuboidMesh(k kernel.Kernel, c geom.Cuboid) (*kernel.Mesh, error) {
	mesh, err := k.ToMesh(cuboidSolid(k, c))
	if err != nil {
		return nil, fmt.Errorf("ToMesh failed: %w", err)
	}
	if mesh.IsEmpty() {
		return nil, fmt.Errorf("empty mesh for %s box at %s", formatSize(c), c.Min())
	}
	return mesh, nil
}

func formatSize(c geom.Cuboid) string {
	s := c.Size()
	return fmt.Sprintf("%gx%gx%g", s.X, s.Y, s.Z)
}
