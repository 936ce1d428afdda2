package closet

import (
	"fmt"

	"github.com/chazu/closet/pkg/geom"
)

// PushHole attaches a new hole to face f of hole base and returns its ID.
//
// The new hole is pinned at one vertex (the anchor). anchorHint picks which
// vertex of the base face it starts from; its side on f's axis is forced
// onto f, so any hint is valid. The anchor sits separation away from the
// base face, and each axis of the new hole is sized by dim.
//
// Separators are resolved so that panels are shared: the face looking back
// at the base and the other faces touching the anchor continue the base
// hole's panels; faces touching the moving vertex get a new panel (direct
// dimension), continue the base hole's panel (copy) or continue the panel of
// the referenced hole (relative). The face on f always gets a new panel.
//
// PushHole validates all arguments before it mutates anything; on error the
// closet is unchanged.
func (cl *Closet) PushHole(dim HoleDimensions, base HoleID, f geom.Face, anchorHint geom.VertexID, separation float64) (HoleID, error) {
	if len(cl.holes) == 0 {
		return NoHole, ErrNoHoles
	}
	if !f.Valid() {
		return NoHole, fmt.Errorf("%w: %d", ErrInvalidFace, int(f))
	}
	if !anchorHint.Valid() {
		return NoHole, fmt.Errorf("%w: %d", ErrInvalidVertex, int(anchorHint))
	}
	if separation < 0 {
		return NoHole, fmt.Errorf("%w: %g", ErrNegativeSeparation, separation)
	}
	if err := cl.checkHole("base", base); err != nil {
		return NoHole, err
	}
	if cl.opts.maxHoles > 0 && len(cl.holes) >= cl.opts.maxHoles {
		return NoHole, ErrCapacity
	}

	baseHole := cl.holes[base]
	axis := f.Axis()

	// The anchor on the base face, pushed out across the gap, becomes the
	// new hole's nearest vertex: the same vertex flipped along f's axis.
	baseAnchor := anchorHint.WithSide(axis, f.Positive())
	pos := baseHole.Cuboid.V[baseAnchor]
	pos = pos.With(axis, pos.Get(axis)+f.Sign()*separation)
	anchor := baseAnchor.Flip(axis)

	size, err := cl.resolveSize(dim, baseHole.Cuboid, anchor, pos)
	if err != nil {
		return NoHole, err
	}

	h := cl.appendHole(geom.FromAnchor(size, anchor, pos), Placement{
		Base:       base,
		Face:       f,
		Anchor:     baseAnchor,
		Dimensions: dim,
		Separation: separation,
	})

	back := f.Opposite()
	cl.extendSeparator(h, back, baseHole.Separators[f])

	for _, af := range anchor.Faces() {
		if af == back {
			continue
		}
		cl.extendSeparator(h, af, baseHole.Separators[af])
	}

	moving := anchor.Opposite()
	for _, a := range geom.Axes {
		mf := moving.Face(a)
		if mf == f {
			continue
		}
		switch d := dim.Axis(a); d.Kind {
		case DimDirect:
			cl.createSeparator(h, mf, cl.opts.thickness)
		case DimCopy:
			cl.extendSeparator(h, mf, baseHole.Separators[mf])
		case DimRelative:
			cl.extendSeparator(h, mf, cl.holes[d.Hole].Separators[d.Face])
		}
	}

	cl.createSeparator(h, f, cl.opts.thickness)
	return h, nil
}

// resolveSize computes the extent of a new hole anchored at pos on every
// axis.
//
// A relative size is the distance from the anchor to the referenced face,
// measured toward the moving vertex. It is signed rather than absolute: a
// face on the anchor's far side would give a hole that grows away from the
// face it is meant to reach, so that case resolves to a non-positive size
// and fails with *SizeError instead.
func (cl *Closet) resolveSize(dim HoleDimensions, base geom.Cuboid, anchor geom.VertexID, pos geom.Vec3) (geom.Vec3, error) {
	moving := anchor.Opposite()
	var size geom.Vec3
	for _, a := range geom.Axes {
		d := dim.Axis(a)
		var v float64
		switch d.Kind {
		case DimDirect:
			v = d.Value
		case DimCopy:
			v = base.Extent(a)
		case DimRelative:
			if err := cl.checkHole("relative "+a.String(), d.Hole); err != nil {
				return geom.Vec3{}, err
			}
			want := moving.Face(a)
			if d.Face != want {
				return geom.Vec3{}, &RelativeFaceError{Axis: a, Face: d.Face, Want: want}
			}
			coord := cl.holes[d.Hole].Cuboid.FaceCoord(d.Face)
			v = (coord - pos.Get(a)) * want.Sign()
		default:
			return geom.Vec3{}, fmt.Errorf("closet: %s dimension has unknown kind %d", a, int(d.Kind))
		}
		if !(v > 0) {
			return geom.Vec3{}, &SizeError{Axis: a, Kind: d.Kind, Size: v}
		}
		size = size.With(a, v)
	}
	return size, nil
}
