package pheromone

import (
	"math"
	"testing"

	"github.com/sjjohnst/Ant-Colony/geom"
)

var world = geom.NewBox(geom.Point{X: 0, Y: 0}, geom.Point{X: 100, Y: 100})

func newStore(t *testing.T, ttl float64) *Store {
	t.Helper()
	s, err := New(world, 4, ttl)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNew_InvalidTTL(t *testing.T) {
	for _, ttl := range []float64{0, -1, math.NaN()} {
		if _, err := New(world, 4, ttl); err == nil {
			t.Errorf("New with ttl %v should fail", ttl)
		}
	}
}

func TestInsert(t *testing.T) {
	s := newStore(t, 10)
	p := geom.Point{X: 5, Y: 5}
	if !s.Insert(p, HomeTrail, 0) {
		t.Fatalf("Insert failed")
	}
	if s.Insert(p, HomeTrail, 1) {
		t.Errorf("duplicate mark of the same category accepted")
	}
	if !s.Insert(p, FoodTrail, 1) {
		t.Errorf("mark of another category at the same point rejected")
	}
	if s.Insert(geom.Point{X: -5, Y: 5}, HomeTrail, 1) {
		t.Errorf("out of bounds mark accepted")
	}
	if s.Insert(p, Category(7), 1) {
		t.Errorf("unknown category accepted")
	}
	if s.Len(HomeTrail) != 1 || s.Len(FoodTrail) != 1 {
		t.Errorf("Len = %d/%d, want 1/1", s.Len(HomeTrail), s.Len(FoodTrail))
	}
	if s.expiry.Len() != 2 {
		t.Errorf("heap holds %d items, want 2", s.expiry.Len())
	}
}

func TestSweep_Expiry(t *testing.T) {
	const (
		t0  = 3.0
		ttl = 7.0
		ε   = 1e-6
	)
	s := newStore(t, ttl)
	p := geom.Point{X: 50, Y: 50}
	s.Insert(p, FoodTrail, t0)

	s.Sweep(t0 + ttl - ε)
	if got := s.Query(p, 1, FoodTrail); len(got) != 1 {
		t.Fatalf("mark missing before its expiry: %v", got)
	}
	if n := s.Sweep(t0 + ttl + ε); n != 1 {
		t.Errorf("Sweep removed %d marks, want 1", n)
	}
	if got := s.Query(p, 1, FoodTrail); len(got) != 0 {
		t.Errorf("mark still present after expiry: %v", got)
	}
	if s.Len(FoodTrail) != 0 || s.expiry.Len() != 0 {
		t.Errorf("store not empty after sweep")
	}
}

func TestSweep_Order(t *testing.T) {
	s := newStore(t, 10)
	for i := 0; i < 20; i++ {
		// insertion times out of order
		now := float64((i * 7) % 20)
		s.Insert(geom.Point{X: float64(i), Y: 1}, Category(i%2), now)
	}
	for now := 10.0; now < 30; now++ {
		s.Sweep(now)
		for _, c := range []Category{HomeTrail, FoodTrail} {
			for _, e := range s.Query(geom.Point{X: 10, Y: 1}, 50, c) {
				if e.Payload.ExpiresAt <= now {
					t.Fatalf("expired mark %v survived sweep at %v", e, now)
				}
			}
		}
	}
	if s.Len(HomeTrail)+s.Len(FoodTrail) != 0 {
		t.Errorf("marks left after final sweep")
	}
}

func TestSweep_ReinsertAfterExpiry(t *testing.T) {
	s := newStore(t, 5)
	p := geom.Point{X: 1, Y: 1}
	s.Insert(p, HomeTrail, 0)
	s.Sweep(5)
	if !s.Insert(p, HomeTrail, 6) {
		t.Fatalf("reinsert after expiry failed")
	}
	s.Sweep(8)
	if s.Len(HomeTrail) != 1 {
		t.Errorf("fresh mark swept early")
	}
}

func TestQueryStrength(t *testing.T) {
	s := newStore(t, 10)
	s.Insert(geom.Point{X: 10, Y: 10}, FoodTrail, 0) // expires 10
	s.Insert(geom.Point{X: 12, Y: 10}, FoodTrail, 4) // expires 14
	s.Insert(geom.Point{X: 11, Y: 11}, HomeTrail, 4) // other category
	s.Insert(geom.Point{X: 40, Y: 40}, FoodTrail, 4) // out of range

	got := s.QueryStrength(geom.Point{X: 11, Y: 10}, 3, FoodTrail, 6)
	if want := 4.0 + 8.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("QueryStrength = %v, want %v", got, want)
	}
	// expired but not yet swept marks contribute nothing
	got = s.QueryStrength(geom.Point{X: 11, Y: 10}, 3, FoodTrail, 12)
	if want := 2.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("QueryStrength = %v, want %v", got, want)
	}
	if got := s.QueryStrength(geom.Point{X: 11, Y: 10}, 3, Category(-1), 0); got != 0 {
		t.Errorf("QueryStrength of unknown category = %v", got)
	}
}

func TestQueryStrength_FresherWeighsMore(t *testing.T) {
	s := newStore(t, 10)
	s.Insert(geom.Point{X: 10, Y: 10}, FoodTrail, 0)
	s.Insert(geom.Point{X: 50, Y: 10}, FoodTrail, 8)
	stale := s.QueryStrength(geom.Point{X: 10, Y: 10}, 1, FoodTrail, 9)
	fresh := s.QueryStrength(geom.Point{X: 50, Y: 10}, 1, FoodTrail, 9)
	if !(fresh > stale) {
		t.Errorf("fresh strength %v should exceed stale %v", fresh, stale)
	}
}

func TestDecayAlpha(t *testing.T) {
	s := newStore(t, 10)
	m := Mark{Category: HomeTrail, ExpiresAt: 10}
	cases := []struct{ now, want float64 }{
		{0, 1}, {-5, 1}, {5, 0.5}, {10, 0}, {20, 0},
	}
	for _, c := range cases {
		if got := s.DecayAlpha(m, c.now); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("DecayAlpha(now=%v) = %v, want %v", c.now, got, c.want)
		}
	}
}

func TestEach(t *testing.T) {
	s := newStore(t, 10)
	s.Insert(geom.Point{X: 1, Y: 1}, HomeTrail, 0)
	s.Insert(geom.Point{X: 2, Y: 2}, FoodTrail, 5)
	seen := map[Category]float64{}
	s.Each(5, func(e Entry, alpha float64) bool {
		seen[e.Payload.Category] = alpha
		return true
	})
	if len(seen) != 2 || math.Abs(seen[HomeTrail]-0.5) > 1e-9 || math.Abs(seen[FoodTrail]-1) > 1e-9 {
		t.Errorf("Each saw %v", seen)
	}
	n := 0
	s.Each(5, func(Entry, float64) bool { n++; return false })
	if n != 1 {
		t.Errorf("Each did not stop early: %d calls", n)
	}
}

func TestCategory_String(t *testing.T) {
	if HomeTrail.String() != "home-trail" || FoodTrail.String() != "food-trail" {
		t.Errorf("unexpected names %q %q", HomeTrail, FoodTrail)
	}
}
