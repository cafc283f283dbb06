package geom

import (
	"math"
	"testing"
)

const tol = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < tol }

func nearVec(a, b Vec2) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func TestVec2_Arithmetic(t *testing.T) {
	a, b := Vec2{1, 2}, Vec2{3, -4}
	if got := a.Add(b); got != (Vec2{4, -2}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Vec2{-2, 6}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec2{2, 4}) {
		t.Errorf("Scale = %v", got)
	}
	if got := b.Mag(); !near(got, 5) {
		t.Errorf("Mag = %v, want 5", got)
	}
	if got := a.Dot(b); !near(got, -5) {
		t.Errorf("Dot = %v, want -5", got)
	}
}

func TestVec2_NormalizeZero(t *testing.T) {
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("Normalize of zero vector = %v, want zero", got)
	}
	if got := (Vec2{0, -3}).Normalize(); !nearVec(got, Vec2{0, -1}) {
		t.Errorf("Normalize = %v", got)
	}
}

func TestVec2_ClampMag(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.ClampMag(10); got != v {
		t.Errorf("ClampMag below max changed vector: %v", got)
	}
	got := v.ClampMag(2.5)
	if !near(got.Mag(), 2.5) || !nearVec(got.Normalize(), v.Normalize()) {
		t.Errorf("ClampMag = %v, want length 2.5 along %v", got, v)
	}
}

func TestVec2_Rotate(t *testing.T) {
	got := Vec2{1, 0}.Rotate(math.Pi / 2)
	if !nearVec(got, Vec2{0, 1}) {
		t.Errorf("Rotate(π/2) = %v, want (0,1)", got)
	}
	got = Vec2{2, 3}.Rotate(math.Pi)
	if !nearVec(got, Vec2{-2, -3}) {
		t.Errorf("Rotate(π) = %v", got)
	}
}

func TestAngleBetween(t *testing.T) {
	cases := []struct {
		a, b Vec2
		want float64
	}{
		{Vec2{1, 0}, Vec2{0, 1}, math.Pi / 2},
		{Vec2{1, 0}, Vec2{5, 0}, 0},
		{Vec2{1, 0}, Vec2{-2, 0}, math.Pi},
		{Vec2{}, Vec2{1, 1}, 0},
	}
	for _, c := range cases {
		if got := AngleBetween(c.a, c.b); !near(got, c.want) {
			t.Errorf("AngleBetween(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestSlerp(t *testing.T) {
	got := Slerp(Vec2{1, 0}, Vec2{0, 1}, 0.5)
	want := Vec2{math.Sqrt2 / 2, math.Sqrt2 / 2}
	if !nearVec(got, want) {
		t.Errorf("Slerp midpoint = %v, want %v", got, want)
	}
	if got := Slerp(Vec2{2, 0}, Vec2{0, 2}, 0); !nearVec(got, Vec2{2, 0}) {
		t.Errorf("Slerp(t=0) = %v", got)
	}
	if got := Slerp(Vec2{2, 0}, Vec2{0, 2}, 1); !nearVec(got, Vec2{0, 2}) {
		t.Errorf("Slerp(t=1) = %v", got)
	}
}

func TestSlerp_DegenerateNoNaN(t *testing.T) {
	cases := [][2]Vec2{
		{{1, 0}, {3, 0}},  // parallel
		{{1, 0}, {-1, 0}}, // anti-parallel
		{{}, {1, 1}},      // zero
		{{}, {}},
	}
	for _, c := range cases {
		for _, tt := range []float64{0, 0.25, 0.5, 1} {
			got := Slerp(c[0], c[1], tt)
			if math.IsNaN(got.X) || math.IsNaN(got.Y) || math.IsInf(got.X, 0) || math.IsInf(got.Y, 0) {
				t.Fatalf("Slerp(%v, %v, %v) = %v", c[0], c[1], tt, got)
			}
			if want := Lerp(c[0], c[1], tt); !nearVec(got, want) {
				t.Errorf("Slerp(%v, %v, %v) = %v, want linear fallback %v", c[0], c[1], tt, got, want)
			}
		}
	}
}

func TestBox(t *testing.T) {
	b := NewBox(Point{100, 100}, Point{0, 0})
	if b.TopLeft != (Point{0, 0}) || b.BottomRight != (Point{100, 100}) {
		t.Fatalf("NewBox did not normalise corners: %+v", b)
	}
	if b.Center() != (Point{50, 50}) {
		t.Errorf("Center = %v", b.Center())
	}
	if !b.Contains(Point{100, 0}) || b.Contains(Point{100.1, 0}) {
		t.Errorf("Contains edges wrong")
	}
	if !b.Intersects(Square(Point{105, 50}, 5)) {
		t.Errorf("touching boxes should intersect")
	}
	if b.Intersects(Square(Point{110, 50}, 5)) {
		t.Errorf("disjoint boxes should not intersect")
	}
	if got := b.DistSq(Point{103, 104}); !near(got, 25) {
		t.Errorf("DistSq = %v, want 25", got)
	}
	if got := b.Clamp(Point{-5, 40}); got != (Point{0, 40}) {
		t.Errorf("Clamp = %v", got)
	}
}
