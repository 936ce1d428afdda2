package closet

import (
	"fmt"

	"github.com/chazu/closet/pkg/geom"
)

// DimensionKind selects how a new hole's extent on one axis is determined.
type DimensionKind int

const (
	// DimDirect uses a literal value.
	DimDirect DimensionKind = iota
	// DimCopy copies the base hole's extent on the same axis.
	DimCopy
	// DimRelative makes the moving face of the new hole line up with a
	// parallel face of another hole.
	DimRelative
)

func (k DimensionKind) String() string {
	switch k {
	case DimDirect:
		return "direct"
	case DimCopy:
		return "copy"
	case DimRelative:
		return "relative"
	default:
		return fmt.Sprintf("DimensionKind(%d)", int(k))
	}
}

// Dimension is the sizing rule for one axis of a new hole.
type Dimension struct {
	Kind  DimensionKind `json:"kind"`
	Value float64       `json:"value,omitempty"` // DimDirect only
	Hole  HoleID        `json:"hole,omitempty"`  // DimRelative only
	Face  geom.Face     `json:"face,omitempty"`  // DimRelative only
}

// Direct returns a dimension of exactly v.
func Direct(v float64) Dimension {
	return Dimension{Kind: DimDirect, Value: v}
}

// Copy returns a dimension that copies the base hole's extent.
func Copy() Dimension {
	return Dimension{Kind: DimCopy}
}

// Until returns a dimension that extends the new hole up to face f of hole h.
func Until(h HoleID, f geom.Face) Dimension {
	return Dimension{Kind: DimRelative, Hole: h, Face: f}
}

func (d Dimension) String() string {
	switch d.Kind {
	case DimDirect:
		return fmt.Sprintf("%g", d.Value)
	case DimCopy:
		return "copy"
	case DimRelative:
		return fmt.Sprintf("until(%d, %s)", d.Hole, d.Face)
	default:
		return d.Kind.String()
	}
}

// HoleDimensions holds the sizing rule for each axis of a hole.
type HoleDimensions struct {
	X Dimension `json:"x"`
	Y Dimension `json:"y"`
	Z Dimension `json:"z"`
}

// Dims bundles three per-axis dimensions.
func Dims(x, y, z Dimension) HoleDimensions {
	return HoleDimensions{X: x, Y: y, Z: z}
}

// DirectDims returns dimensions with a literal value on every axis.
func DirectDims(x, y, z float64) HoleDimensions {
	return HoleDimensions{X: Direct(x), Y: Direct(y), Z: Direct(z)}
}

// CopyDims returns dimensions that copy the base hole on every axis.
func CopyDims() HoleDimensions {
	return HoleDimensions{X: Copy(), Y: Copy(), Z: Copy()}
}

// Axis returns the dimension for axis a.
func (d HoleDimensions) Axis(a geom.Axis) Dimension {
	switch a {
	case geom.AxisX:
		return d.X
	case geom.AxisY:
		return d.Y
	default:
		return d.Z
	}
}

func (d HoleDimensions) String() string {
	return fmt.Sprintf("(%s, %s, %s)", d.X, d.Y, d.Z)
}
