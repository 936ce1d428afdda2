package closet

import (
	"math"

	"github.com/chazu/closet/pkg/geom"
)

// Option configures a Closet created by New.
type Option func(*options)

type options struct {
	thickness float64
	maxHoles  int
	partColor Color
}

func defaultOptions() options {
	return options{
		thickness: DefaultThickness,
		partColor: DefaultPartColor,
	}
}

// WithThickness sets the thickness of every separator the closet creates.
func WithThickness(t float64) Option {
	return func(o *options) { o.thickness = t }
}

// WithMaxHoles caps the number of holes. Zero (the default) means no cap.
func WithMaxHoles(n int) Option {
	return func(o *options) { o.maxHoles = n }
}

// WithPartColor sets the initial color of new separator parts.
func WithPartColor(c Color) Option {
	return func(o *options) { o.partColor = c }
}

// Closet is the arena-owning aggregate of holes, separators and separator
// parts. IDs handed out by a Closet stay valid for its whole lifetime.
// A Closet is not safe for concurrent mutation.
type Closet struct {
	holes      []Hole
	separators []Separator
	parts      []SeparatorPart
	opts       options
}

// New seeds a closet with one hole of the given size, centered at the
// origin, bounded by six independent separators. Every dimension must be
// direct and positive.
func New(dim HoleDimensions, opts ...Option) (*Closet, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var size geom.Vec3
	for _, a := range geom.Axes {
		d := dim.Axis(a)
		if d.Kind != DimDirect {
			return nil, &SeedDimensionError{Axis: a, Kind: d.Kind}
		}
		if !(d.Value > 0) {
			return nil, &SizeError{Axis: a, Kind: DimDirect, Size: d.Value}
		}
		size = size.With(a, d.Value)
	}

	cl := &Closet{opts: o}
	h := cl.appendHole(geom.FromDimensions(size), Placement{Base: NoHole, Dimensions: dim})
	for _, f := range []geom.Face{geom.FaceUp, geom.FaceDown, geom.FaceRight, geom.FaceLeft, geom.FaceFront, geom.FaceBack} {
		cl.createSeparator(h, f, o.thickness)
	}
	return cl, nil
}

// Thickness returns the thickness used for separators this closet creates.
func (cl *Closet) Thickness() float64 {
	return cl.opts.thickness
}

// NumHoles returns the number of holes.
func (cl *Closet) NumHoles() int { return len(cl.holes) }

// NumSeparators returns the number of separators.
func (cl *Closet) NumSeparators() int { return len(cl.separators) }

// NumParts returns the number of separator parts.
func (cl *Closet) NumParts() int { return len(cl.parts) }

// Hole returns a copy of hole id.
func (cl *Closet) Hole(id HoleID) (Hole, error) {
	if err := cl.checkHole("requested", id); err != nil {
		return Hole{}, err
	}
	return cl.holes[id], nil
}

// Holes returns a copy of every hole in creation order.
func (cl *Closet) Holes() []Hole {
	out := make([]Hole, len(cl.holes))
	copy(out, cl.holes)
	return out
}

// Separator returns a copy of separator id.
func (cl *Closet) Separator(id SeparatorID) (Separator, error) {
	if err := cl.checkSeparator(id); err != nil {
		return Separator{}, err
	}
	return cloneSeparator(cl.separators[id]), nil
}

// Separators returns a copy of every separator in creation order.
func (cl *Closet) Separators() []Separator {
	out := make([]Separator, len(cl.separators))
	for i, s := range cl.separators {
		out[i] = cloneSeparator(s)
	}
	return out
}

// Parts returns a copy of every separator part in creation order.
func (cl *Closet) Parts() []SeparatorPart {
	out := make([]SeparatorPart, len(cl.parts))
	copy(out, cl.parts)
	return out
}

// SeparatorParts returns copies of the parts that make up separator id.
func (cl *Closet) SeparatorParts(id SeparatorID) ([]SeparatorPart, error) {
	if err := cl.checkSeparator(id); err != nil {
		return nil, err
	}
	ids := cl.separators[id].Parts
	out := make([]SeparatorPart, len(ids))
	for i, pid := range ids {
		out[i] = cl.parts[pid]
	}
	return out, nil
}

// SharedSeparators returns copies of the separators that bound more than
// one hole face, in ID order.
func (cl *Closet) SharedSeparators() []Separator {
	var shared []Separator
	for _, s := range cl.separators {
		if len(s.Parts) > 1 {
			shared = append(shared, cloneSeparator(s))
		}
	}
	return shared
}

// Bounds returns the smallest box holding every hole and separator part,
// the outside envelope of the closet.
func (cl *Closet) Bounds() geom.Cuboid {
	if len(cl.holes) == 0 {
		return geom.Cuboid{}
	}
	min, max := cl.holes[0].Cuboid.Min(), cl.holes[0].Cuboid.Max()
	grow := func(c geom.Cuboid) {
		cmin, cmax := c.Min(), c.Max()
		for _, a := range geom.Axes {
			min = min.With(a, math.Min(min.Get(a), cmin.Get(a)))
			max = max.With(a, math.Max(max.Get(a), cmax.Get(a)))
		}
	}
	for _, h := range cl.holes[1:] {
		grow(h.Cuboid)
	}
	for _, p := range cl.parts {
		grow(p.Cuboid)
	}
	return geom.FromBounds(min, max)
}

// RecolorSeparator sets the color of every part of separator id, so the
// whole panel is highlighted as one unit across all holes it bounds.
func (cl *Closet) RecolorSeparator(id SeparatorID, c Color) error {
	if err := cl.checkSeparator(id); err != nil {
		return err
	}
	for _, pid := range cl.separators[id].Parts {
		cl.parts[pid].Color = c
	}
	return nil
}

// FacePanel returns the thin box flush against face f of base, extruded
// outward by thickness along f's axis.
func FacePanel(base geom.Cuboid, f geom.Face, thickness float64) geom.Cuboid {
	on, across := geom.FaceVertices(f)
	axis := f.Axis()
	var res geom.Cuboid
	for i := range on {
		p := base.V[on[i]]
		res.V[across[i]] = p
		res.V[on[i]] = p.With(axis, p.Get(axis)+f.Sign()*thickness)
	}
	return res
}

func (cl *Closet) appendHole(c geom.Cuboid, p Placement) HoleID {
	id := HoleID(len(cl.holes))
	h := Hole{ID: id, Cuboid: c, Placement: p}
	for i := range h.Separators {
		h.Separators[i] = NoSeparator
	}
	cl.holes = append(cl.holes, h)
	return id
}

func (cl *Closet) appendPart(sep SeparatorID, hole HoleID, f geom.Face, thickness float64) PartID {
	id := PartID(len(cl.parts))
	cl.parts = append(cl.parts, SeparatorPart{
		ID:        id,
		Separator: sep,
		Hole:      hole,
		Face:      f,
		Cuboid:    FacePanel(cl.holes[hole].Cuboid, f, thickness),
		Color:     cl.opts.partColor,
	})
	return id
}

// createSeparator allocates a new separator against face f of hole.
func (cl *Closet) createSeparator(hole HoleID, f geom.Face, thickness float64) SeparatorID {
	id := SeparatorID(len(cl.separators))
	cl.separators = append(cl.separators, Separator{ID: id, Thickness: thickness})
	cl.extendSeparator(hole, f, id)
	return id
}

// extendSeparator continues separator sep onto face f of hole.
func (cl *Closet) extendSeparator(hole HoleID, f geom.Face, sep SeparatorID) {
	s := &cl.separators[sep]
	s.Parts = append(s.Parts, cl.appendPart(sep, hole, f, s.Thickness))
	cl.holes[hole].Separators[f] = sep
}

func (cl *Closet) checkHole(role string, id HoleID) error {
	if id < 0 || int(id) >= len(cl.holes) {
		return &HoleRangeError{Role: role, ID: id, Count: len(cl.holes)}
	}
	return nil
}

func (cl *Closet) checkSeparator(id SeparatorID) error {
	if id < 0 || int(id) >= len(cl.separators) {
		return &SeparatorRangeError{ID: id, Count: len(cl.separators)}
	}
	return nil
}

func cloneSeparator(s Separator) Separator {
	s.Parts = append([]PartID(nil), s.Parts...)
	return s
}
