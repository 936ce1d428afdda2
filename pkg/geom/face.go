package geom

import (
	"fmt"
	"strings"
)

// Face names one of the six faces of a cuboid. Faces come in pairs on the
// same axis: the positive face has an even value and its opposite is the
// following odd value.
type Face int

const (
	FaceRight Face = iota // +X
	FaceLeft              // -X
	FaceUp                // +Y
	FaceDown              // -Y
	FaceFront             // +Z
	FaceBack              // -Z
)

// NumFaces is the number of cuboid faces.
const NumFaces = 6

// Faces lists all faces in index order.
var Faces = [NumFaces]Face{FaceRight, FaceLeft, FaceUp, FaceDown, FaceFront, FaceBack}

var faceNames = [NumFaces]string{"right", "left", "up", "down", "front", "back"}

// Valid reports whether f names a cuboid face.
func (f Face) Valid() bool {
	return f >= FaceRight && f <= FaceBack
}

// Opposite returns the parallel face on the other side of the cuboid.
func (f Face) Opposite() Face {
	return f ^ 1
}

// Axis returns the axis the face is perpendicular to.
func (f Face) Axis() Axis {
	return Axis(f / 2)
}

// Positive reports whether the face lies on the positive side of its axis.
func (f Face) Positive() bool {
	return f%2 == 0
}

// Sign is +1 for positive faces and -1 for negative ones.
func (f Face) Sign() float64 {
	if f.Positive() {
		return 1
	}
	return -1
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() Vec3 {
	return Vec3{}.With(f.Axis(), f.Sign())
}

// FaceOn returns the face on axis a at the positive or negative side.
func FaceOn(a Axis, positive bool) Face {
	f := Face(a * 2)
	if !positive {
		f++
	}
	return f
}

func (f Face) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Face(%d)", int(f))
	}
	return faceNames[f]
}

// ParseFace converts a face name such as "up" (case-insensitive) to its Face.
// "top" and "bottom" are accepted as aliases of up and down.
func ParseFace(name string) (Face, error) {
	n := strings.ToLower(name)
	switch n {
	case "top":
		return FaceUp, nil
	case "bottom":
		return FaceDown, nil
	}
	for i, fn := range faceNames {
		if fn == n {
			return Face(i), nil
		}
	}
	return 0, fmt.Errorf("invalid face %q, expected right/left/up/down/front/back", name)
}

// faceVertexTable caches FaceVertices for every face.
var faceVertexTable = func() (t [NumFaces][2][4]VertexID) {
	for _, f := range Faces {
		var on, across int
		for _, v := range Vertices {
			if v.Positive(f.Axis()) == f.Positive() {
				t[f][0][on] = v
				on++
			} else {
				t[f][1][across] = v
				across++
			}
		}
	}
	return t
}()

// FaceVertices returns the four vertices lying on f and the four lying on
// the opposite face. Both lists are in corresponding order: on[i] and
// opposite[i] differ only along f's axis.
func FaceVertices(f Face) (on, opposite [4]VertexID) {
	return faceVertexTable[f][0], faceVertexTable[f][1]
}
