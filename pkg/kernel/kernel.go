// Package kernel defines the abstract geometry kernel interface.
// Implementations provide solid modeling and meshing behind this
// interface, so the closet can be tessellated without depending on a
// particular CAD backend.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Box returns a box of the given size with its minimum corner at the
	// origin.
	Box(x, y, z float64) Solid

	// Union returns the union of a and b.
	Union(a, b Solid) Solid

	// Translate moves a solid by (x, y, z).
	Translate(s Solid, x, y, z float64) Solid

	// ToMesh converts a solid to a triangle mesh.
	ToMesh(s Solid) (*Mesh, error)
}

// STLWriter is implemented by kernels that can write a solid to an STL file.
type STLWriter interface {
	WriteSTL(path string, s Solid) error
}
