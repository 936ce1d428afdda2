package closet

import (
	"errors"
	"fmt"

	"github.com/chazu/closet/pkg/geom"
)

var (
	// ErrCapacity is returned by PushHole when the closet was created with
	// WithMaxHoles and already holds that many holes.
	ErrCapacity = errors.New("closet: hole capacity exhausted")

	// ErrNoHoles is returned when an operation needs a seeded closet.
	ErrNoHoles = errors.New("closet: closet has no holes")

	// ErrInvalidFace is returned for a face outside the six cuboid faces.
	ErrInvalidFace = errors.New("closet: invalid face")

	// ErrInvalidVertex is returned for an anchor outside the eight vertices.
	ErrInvalidVertex = errors.New("closet: invalid vertex")

	// ErrNegativeSeparation is returned when the gap between holes is negative.
	ErrNegativeSeparation = errors.New("closet: negative separation")
)

// HoleRangeError reports a hole ID that does not exist in the closet.
type HoleRangeError struct {
	Role  string // which argument held the ID, e.g. "base" or "relative y"
	ID    HoleID
	Count int
}

func (e *HoleRangeError) Error() string {
	return fmt.Sprintf("closet: %s hole %d out of range (closet has %d holes)", e.Role, e.ID, e.Count)
}

// SeparatorRangeError reports a separator ID that does not exist.
type SeparatorRangeError struct {
	ID    SeparatorID
	Count int
}

func (e *SeparatorRangeError) Error() string {
	return fmt.Sprintf("closet: separator %d out of range (closet has %d separators)", e.ID, e.Count)
}

// SeedDimensionError reports a non-direct dimension passed to New. The seed
// hole has nothing to copy from or reach to.
type SeedDimensionError struct {
	Axis geom.Axis
	Kind DimensionKind
}

func (e *SeedDimensionError) Error() string {
	return fmt.Sprintf("closet: seed hole %s dimension must be direct, got %s", e.Axis, e.Kind)
}

// RelativeFaceError reports a relative dimension whose face is not the one
// the new hole's moving vertex touches on that axis.
type RelativeFaceError struct {
	Axis geom.Axis
	Face geom.Face // face named by the dimension
	Want geom.Face // face of the moving vertex on Axis
}

func (e *RelativeFaceError) Error() string {
	return fmt.Sprintf("closet: relative %s dimension names face %s, but the moving face on that axis is %s",
		e.Axis, e.Face, e.Want)
}

// SizeError reports a resolved extent that is zero, negative or NaN. For a
// relative dimension this means the referenced face lies behind the anchor.
type SizeError struct {
	Axis geom.Axis
	Kind DimensionKind
	Size float64
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("closet: %s dimension on %s resolves to %g, must be positive", e.Kind, e.Axis, e.Size)
}
