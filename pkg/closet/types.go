// Package closet builds closet layouts: a root hole subdivided into nested
// rectangular compartments (holes) separated by panels (separators).
//
// The Closet owns three arenas (holes, separators and separator parts) and
// every cross reference between them is an index into one of those arenas.
// A separator can bound faces of several holes; it is made of one part per
// hole face it bounds.
package closet

import (
	"fmt"

	"github.com/chazu/closet/pkg/geom"
)

// HoleID indexes the closet's hole arena.
type HoleID int

// SeparatorID indexes the closet's separator arena.
type SeparatorID int

// PartID indexes the closet's separator part arena.
type PartID int

const (
	// NoHole marks the absent base of the seed hole.
	NoHole HoleID = -1
	// NoSeparator marks a hole face with no separator assigned.
	NoSeparator SeparatorID = -1
)

const (
	// DefaultThickness is the thickness of newly created separators.
	DefaultThickness = 0.025
	// DefaultSeparation is the gap callers usually leave between a base hole
	// and a hole pushed from it, matching DefaultThickness.
	DefaultSeparation = 0.025
)

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

var (
	// DefaultPartColor is the color of a separator part that is not selected.
	DefaultPartColor = Color{R: 1, G: 1, B: 0}
	// DefaultSelectedColor is the color used to highlight a separator.
	DefaultSelectedColor = Color{R: 0.93, G: 0.5, B: 0.1}
)

func (c Color) String() string {
	return fmt.Sprintf("rgb(%g, %g, %g)", c.R, c.G, c.B)
}

// Placement records how a hole was created.
type Placement struct {
	Base       HoleID         `json:"base"` // NoHole for the seed hole
	Face       geom.Face      `json:"face"`
	Anchor     geom.VertexID  `json:"anchor"` // coerced anchor on the base hole
	Dimensions HoleDimensions `json:"dimensions"`
	Separation float64        `json:"separation"`
}

// IsSeed reports whether the placement describes the seed hole.
func (p Placement) IsSeed() bool {
	return p.Base == NoHole
}

// Hole is a compartment of the closet. Separators[f] is the separator
// bounding face f; the hole does not own it.
type Hole struct {
	ID         HoleID                     `json:"id"`
	Cuboid     geom.Cuboid                `json:"cuboid"`
	Separators [geom.NumFaces]SeparatorID `json:"separators"`
	Placement  Placement                  `json:"placement"`
}

// Separator is a physical panel. It is made of one part per hole face it
// bounds; parts are only ever appended.
type Separator struct {
	ID        SeparatorID `json:"id"`
	Thickness float64     `json:"thickness"`
	Parts     []PartID    `json:"parts"`
}

// SeparatorPart is the segment of a separator flush against one hole face.
type SeparatorPart struct {
	ID        PartID      `json:"id"`
	Separator SeparatorID `json:"separator"`
	Hole      HoleID      `json:"hole"`
	Face      geom.Face   `json:"face"`
	Cuboid    geom.Cuboid `json:"cuboid"`
	Color     Color       `json:"color"`
}
