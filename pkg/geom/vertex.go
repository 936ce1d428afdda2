package geom

import (
	"fmt"
	"strings"
)

// VertexID names one of the eight cube vertices. The name lists the three
// faces containing the vertex in X, Y, Z order (Left/Right, Down/Up,
// Back/Front). Values are ordered lexicographically on the (X, Y, Z) sides,
// so the ID doubles as an index into Cuboid.V.
type VertexID uint8

const (
	LDB VertexID = iota // left  down back
	LDF                 // left  down front
	LUB                 // left  up   back
	LUF                 // left  up   front
	RDB                 // right down back
	RDF                 // right down front
	RUB                 // right up   back
	RUF                 // right up   front
)

// NumVertices is the number of cube vertices.
const NumVertices = 8

// axisMask maps an axis to the bit of the vertex ID recording the vertex's
// side on that axis (set = positive side).
var axisMask = [3]VertexID{
	AxisX: 0x4,
	AxisY: 0x2,
	AxisZ: 0x1,
}

var vertexNames = [NumVertices]string{"ldb", "ldf", "lub", "luf", "rdb", "rdf", "rub", "ruf"}

// Vertices lists all vertex IDs in index order.
var Vertices = [NumVertices]VertexID{LDB, LDF, LUB, LUF, RDB, RDF, RUB, RUF}

// Valid reports whether v names a cube vertex.
func (v VertexID) Valid() bool {
	return v < NumVertices
}

// Positive reports whether v lies on the positive side of axis a.
func (v VertexID) Positive(a Axis) bool {
	return v&axisMask[a] != 0
}

// WithSide returns the vertex that matches v on every axis except a, where
// it lies on the positive side if positive is true.
func (v VertexID) WithSide(a Axis, positive bool) VertexID {
	if positive {
		return v | axisMask[a]
	}
	return v &^ axisMask[a]
}

// Flip returns the vertex directly across the cube from v along axis a.
func (v VertexID) Flip(a Axis) VertexID {
	return v ^ axisMask[a]
}

// Opposite returns the vertex diagonally opposite v.
func (v VertexID) Opposite() VertexID {
	return v ^ 0x7
}

// Face returns the face on axis a that contains v.
func (v VertexID) Face(a Axis) Face {
	return FaceOn(a, v.Positive(a))
}

// Faces returns the three faces containing v in X, Y, Z order.
func (v VertexID) Faces() [3]Face {
	return [3]Face{v.Face(AxisX), v.Face(AxisY), v.Face(AxisZ)}
}

func (v VertexID) String() string {
	if !v.Valid() {
		return fmt.Sprintf("VertexID(%d)", int(v))
	}
	return strings.ToUpper(vertexNames[v])
}

// ParseVertex converts a vertex name such as "ruf" (case-insensitive) to
// its VertexID.
func ParseVertex(name string) (VertexID, error) {
	n := strings.ToLower(name)
	for i, vn := range vertexNames {
		if vn == n {
			return VertexID(i), nil
		}
	}
	return 0, fmt.Errorf("invalid vertex %q, expected one of %s", name, strings.Join(vertexNames[:], ", "))
}
