package geom

import (
	"math"
	"testing"
)

const eps = 1e-12

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

// --- Faces ---

func TestOppositeFaceInvolution(t *testing.T) {
	for _, f := range Faces {
		if got := f.Opposite().Opposite(); got != f {
			t.Errorf("Opposite(Opposite(%s)) = %s", f, got)
		}
		if f.Opposite() == f {
			t.Errorf("Opposite(%s) returned the same face", f)
		}
		if f.Opposite().Axis() != f.Axis() {
			t.Errorf("Opposite(%s) = %s is on a different axis", f, f.Opposite())
		}
	}
}

func TestOppositeFacePairs(t *testing.T) {
	tests := []struct {
		face, want Face
	}{
		{FaceRight, FaceLeft},
		{FaceLeft, FaceRight},
		{FaceUp, FaceDown},
		{FaceDown, FaceUp},
		{FaceFront, FaceBack},
		{FaceBack, FaceFront},
	}
	for _, tt := range tests {
		t.Run(tt.face.String(), func(t *testing.T) {
			if got := tt.face.Opposite(); got != tt.want {
				t.Errorf("Opposite() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFaceOn(t *testing.T) {
	for _, f := range Faces {
		if got := FaceOn(f.Axis(), f.Positive()); got != f {
			t.Errorf("FaceOn(%s, %v) = %s, want %s", f.Axis(), f.Positive(), got, f)
		}
	}
}

func TestFaceVerticesCoverCube(t *testing.T) {
	for _, f := range Faces {
		t.Run(f.String(), func(t *testing.T) {
			on, opp := FaceVertices(f)
			seen := make(map[VertexID]int)
			for i := 0; i < 4; i++ {
				seen[on[i]]++
				seen[opp[i]]++
				if on[i].Positive(f.Axis()) != f.Positive() {
					t.Errorf("vertex %s is not on face %s", on[i], f)
				}
				if opp[i].Positive(f.Axis()) == f.Positive() {
					t.Errorf("vertex %s is not on the face opposite %s", opp[i], f)
				}
				if on[i].Flip(f.Axis()) != opp[i] {
					t.Errorf("pair %d: %s and %s are not directly across", i, on[i], opp[i])
				}
			}
			if len(seen) != NumVertices {
				t.Fatalf("covered %d vertices, want %d", len(seen), NumVertices)
			}
			for v, n := range seen {
				if n != 1 {
					t.Errorf("vertex %s listed %d times", v, n)
				}
			}
		})
	}
}

func TestParseFace(t *testing.T) {
	tests := []struct {
		in      string
		want    Face
		wantErr bool
	}{
		{"up", FaceUp, false},
		{"DOWN", FaceDown, false},
		{"top", FaceUp, false},
		{"bottom", FaceDown, false},
		{"back", FaceBack, false},
		{"sideways", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFace(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFace(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseFace(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

// --- Vertices ---

func TestVertexBits(t *testing.T) {
	tests := []struct {
		v       VertexID
		x, y, z bool
	}{
		{LDB, false, false, false},
		{LDF, false, false, true},
		{LUB, false, true, false},
		{RDB, true, false, false},
		{RUF, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			if tt.v.Positive(AxisX) != tt.x || tt.v.Positive(AxisY) != tt.y || tt.v.Positive(AxisZ) != tt.z {
				t.Errorf("%s sides = (%v,%v,%v), want (%v,%v,%v)", tt.v,
					tt.v.Positive(AxisX), tt.v.Positive(AxisY), tt.v.Positive(AxisZ), tt.x, tt.y, tt.z)
			}
		})
	}
}

func TestVertexOpposite(t *testing.T) {
	for _, v := range Vertices {
		o := v.Opposite()
		for _, a := range Axes {
			if o.Positive(a) == v.Positive(a) {
				t.Errorf("Opposite(%s) = %s shares the %s side", v, o, a)
			}
		}
	}
	if RUF.Opposite() != LDB {
		t.Errorf("Opposite(RUF) = %s, want LDB", RUF.Opposite())
	}
}

func TestVertexWithSideAndFaces(t *testing.T) {
	if got := LDB.WithSide(AxisX, true); got != RDB {
		t.Errorf("LDB.WithSide(x, +) = %s, want RDB", got)
	}
	if got := RUF.WithSide(AxisY, false); got != RDF {
		t.Errorf("RUF.WithSide(y, -) = %s, want RDF", got)
	}
	if got := RUF.WithSide(AxisZ, true); got != RUF {
		t.Errorf("RUF.WithSide(z, +) = %s, want RUF", got)
	}
	if got := LUF.Faces(); got != [3]Face{FaceLeft, FaceUp, FaceFront} {
		t.Errorf("LUF.Faces() = %v", got)
	}
}

func TestParseVertex(t *testing.T) {
	v, err := ParseVertex("RuF")
	if err != nil {
		t.Fatalf("ParseVertex: %v", err)
	}
	if v != RUF {
		t.Errorf("ParseVertex(RuF) = %s, want RUF", v)
	}
	if _, err := ParseVertex("xyz"); err == nil {
		t.Error("ParseVertex(xyz) should fail")
	}
}

// --- Cuboids ---

func TestFromDimensions(t *testing.T) {
	dims := []Vec3{
		V3(0.9, 0.4, 0.7),
		V3(1, 1, 1),
		V3(2.5, 0.01, 100),
	}
	for _, d := range dims {
		t.Run(d.String(), func(t *testing.T) {
			c := FromDimensions(d)
			if !c.Valid() {
				t.Fatal("cuboid is not a valid box")
			}
			size := c.Size()
			for _, a := range Axes {
				if !near(size.Get(a), d.Get(a)) {
					t.Errorf("extent %s = %g, want %g", a, size.Get(a), d.Get(a))
				}
			}
			for _, id := range Vertices {
				for _, a := range Axes {
					want := d.Get(a) / 2
					if !id.Positive(a) {
						want = -want
					}
					if c.V[id].Get(a) != want {
						t.Errorf("%s.%s = %g, want %g", id, a, c.V[id].Get(a), want)
					}
				}
			}
			center := c.Center()
			if !near(center.X, 0) || !near(center.Y, 0) || !near(center.Z, 0) {
				t.Errorf("center = %s, want origin", center)
			}
		})
	}
}

func TestFromAnchorPinsAnchorExactly(t *testing.T) {
	dim := V3(0.3, 0.825, 0.7)
	pos := V3(0.475, 0.625, 0.35)
	for _, anchor := range Vertices {
		t.Run(anchor.String(), func(t *testing.T) {
			c := FromAnchor(dim, anchor, pos)
			if c.V[anchor] != pos {
				t.Errorf("v[%s] = %s, want %s", anchor, c.V[anchor], pos)
			}
			if !c.Valid() {
				t.Error("cuboid is not a valid box")
			}
			size := c.Size()
			for _, a := range Axes {
				if math.Abs(size.Get(a)-dim.Get(a)) > 1e-9 {
					t.Errorf("extent %s = %g, want %g", a, size.Get(a), dim.Get(a))
				}
			}
		})
	}
}

func TestFromAnchorFaceCoordRoundTrip(t *testing.T) {
	dim := V3(1, 2, 3)
	pos := V3(-0.3, 4.1, 7.7)
	for _, anchor := range Vertices {
		c := FromAnchor(dim, anchor, pos)
		for _, f := range anchor.Faces() {
			if got := c.FaceCoord(f); got != pos.Get(f.Axis()) {
				t.Errorf("anchor %s: FaceCoord(%s) = %g, want %g", anchor, f, got, pos.Get(f.Axis()))
			}
		}
	}
}

func TestFaceCoord(t *testing.T) {
	c := FromBounds(V3(-1, -2, -3), V3(4, 5, 6))
	tests := []struct {
		face Face
		want float64
	}{
		{FaceRight, 4},
		{FaceLeft, -1},
		{FaceUp, 5},
		{FaceDown, -2},
		{FaceFront, 6},
		{FaceBack, -3},
	}
	for _, tt := range tests {
		if got := c.FaceCoord(tt.face); got != tt.want {
			t.Errorf("FaceCoord(%s) = %g, want %g", tt.face, got, tt.want)
		}
	}
}

func TestCuboidValidRejectsSkewedVertex(t *testing.T) {
	c := FromDimensions(V3(1, 1, 1))
	c.V[RDF].Y += 0.1
	if c.Valid() {
		t.Error("Valid() = true for a skewed cuboid")
	}
}

func TestCuboidOverlaps(t *testing.T) {
	a := FromBounds(V3(0, 0, 0), V3(1, 1, 1))
	tests := []struct {
		name string
		b    Cuboid
		want bool
	}{
		{"shared face", FromBounds(V3(1, 0, 0), V3(2, 1, 1)), false},
		{"disjoint", FromBounds(V3(3, 3, 3), V3(4, 4, 4)), false},
		{"interior", FromBounds(V3(0.5, 0.5, 0.5), V3(2, 2, 2)), true},
		{"contained", FromBounds(V3(0.2, 0.2, 0.2), V3(0.8, 0.8, 0.8)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b, 1e-9); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3With(t *testing.T) {
	v := V3(1, 2, 3).With(AxisY, 9)
	if v != V3(1, 9, 3) {
		t.Errorf("With(y, 9) = %s", v)
	}
	if FaceDown.Normal() != V3(0, -1, 0) {
		t.Errorf("FaceDown.Normal() = %s", FaceDown.Normal())
	}
}
