package geom

import "math"

// Cuboid is an axis-aligned box stored as its eight vertex positions,
// indexed by VertexID.
type Cuboid struct {
	V [NumVertices]Vec3
}

// unitCube is the cube spanning [-1, 1] on every axis.
var unitCube = func() (c Cuboid) {
	for _, id := range Vertices {
		var p Vec3
		for _, a := range Axes {
			s := -1.0
			if id.Positive(a) {
				s = 1
			}
			p = p.With(a, s)
		}
		c.V[id] = p
	}
	return c
}()

// FromDimensions returns a cuboid centered at the origin whose extent along
// each axis is the matching component of dim.
func FromDimensions(dim Vec3) Cuboid {
	var c Cuboid
	for _, id := range Vertices {
		u := unitCube.V[id]
		c.V[id] = Vec3{X: u.X * dim.X / 2, Y: u.Y * dim.Y / 2, Z: u.Z * dim.Z / 2}
	}
	return c
}

// FromAnchor returns a cuboid of size dim whose vertex anchor sits exactly at
// pos. Every other vertex extends away from the anchor along each axis.
func FromAnchor(dim Vec3, anchor VertexID, pos Vec3) Cuboid {
	var c Cuboid
	for _, id := range Vertices {
		p := pos
		for _, a := range Axes {
			if id.Positive(a) == anchor.Positive(a) {
				continue
			}
			d := dim.Get(a)
			if anchor.Positive(a) {
				d = -d
			}
			p = p.With(a, pos.Get(a)+d)
		}
		c.V[id] = p
	}
	return c
}

// FromBounds returns the cuboid spanning min to max.
func FromBounds(min, max Vec3) Cuboid {
	var c Cuboid
	for _, id := range Vertices {
		var p Vec3
		for _, a := range Axes {
			if id.Positive(a) {
				p = p.With(a, max.Get(a))
			} else {
				p = p.With(a, min.Get(a))
			}
		}
		c.V[id] = p
	}
	return c
}

// Vertex returns the position of vertex id.
func (c Cuboid) Vertex(id VertexID) Vec3 {
	return c.V[id]
}

// FaceCoord returns the coordinate, along f's axis, shared by the four
// vertices on face f.
func (c Cuboid) FaceCoord(f Face) float64 {
	on, _ := FaceVertices(f)
	return c.V[on[0]].Get(f.Axis())
}

// Extent returns the signed distance from the negative to the positive face
// along axis a.
func (c Cuboid) Extent(a Axis) float64 {
	return c.FaceCoord(FaceOn(a, true)) - c.FaceCoord(FaceOn(a, false))
}

// Size returns the extents along X, Y and Z.
func (c Cuboid) Size() Vec3 {
	return Vec3{X: c.Extent(AxisX), Y: c.Extent(AxisY), Z: c.Extent(AxisZ)}
}

// Min returns the component-wise minimum corner.
func (c Cuboid) Min() Vec3 {
	m := c.V[0]
	for _, v := range c.V[1:] {
		m = Vec3{X: math.Min(m.X, v.X), Y: math.Min(m.Y, v.Y), Z: math.Min(m.Z, v.Z)}
	}
	return m
}

// Max returns the component-wise maximum corner.
func (c Cuboid) Max() Vec3 {
	m := c.V[0]
	for _, v := range c.V[1:] {
		m = Vec3{X: math.Max(m.X, v.X), Y: math.Max(m.Y, v.Y), Z: math.Max(m.Z, v.Z)}
	}
	return m
}

// Center returns the midpoint of the cuboid.
func (c Cuboid) Center() Vec3 {
	return c.Min().Add(c.Max()).Scale(0.5)
}

// Valid reports whether the eight vertices describe a single axis-aligned
// box: on every axis a vertex's coordinate is determined by its side alone.
func (c Cuboid) Valid() bool {
	for _, a := range Axes {
		lo := c.FaceCoord(FaceOn(a, false))
		hi := c.FaceCoord(FaceOn(a, true))
		for _, id := range Vertices {
			want := lo
			if id.Positive(a) {
				want = hi
			}
			if c.V[id].Get(a) != want {
				return false
			}
		}
	}
	return true
}

// Overlaps reports whether the interiors of c and o intersect by more than
// eps on every axis. Boxes that only share a face do not overlap.
func (c Cuboid) Overlaps(o Cuboid, eps float64) bool {
	cmin, cmax := c.Min(), c.Max()
	omin, omax := o.Min(), o.Max()
	for _, a := range Axes {
		if cmin.Get(a) >= omax.Get(a)-eps || omin.Get(a) >= cmax.Get(a)-eps {
			return false
		}
	}
	return true
}
