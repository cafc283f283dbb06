// Package pheromone stores time-decaying trail marks.
//
// Marks are kept in one quadtree per category for proximity queries and in a
// single min-heap ordered by expiry time, so that a sweep only touches marks
// that are actually due. Time is whatever clock the caller threads through;
// nothing here reads the wall clock.
package pheromone

import (
	"container/heap"
	"fmt"

	"github.com/sjjohnst/Ant-Colony/geom"
	"github.com/sjjohnst/Ant-Colony/quadtree"
)

// A Category distinguishes independent kinds of trails.
type Category int

const (
	// HomeTrail is laid by ants searching for food and leads back to the nest.
	HomeTrail Category = iota
	// FoodTrail is laid by ants carrying food and leads to the food source.
	FoodTrail

	// NumCategories is the number of trail categories.
	NumCategories = 2
)

// String returns the name of the category.
func (c Category) String() string {
	switch c {
	case HomeTrail:
		return "home-trail"
	case FoodTrail:
		return "food-trail"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// A Mark is the payload of a trail entry.
type Mark struct {
	Category  Category
	ExpiresAt float64
}

// Remaining returns the time left before m expires, clamped to 0.
func (m Mark) Remaining(now float64) float64 {
	if r := m.ExpiresAt - now; r > 0 {
		return r
	}
	return 0
}

// An Entry is a mark with its position.
type Entry = quadtree.Entry[Mark]

// Store holds the marks of every category.
type Store struct {
	ttl    float64
	trees  [NumCategories]*quadtree.Tree[Mark]
	expiry expiryHeap
}

// New returns an empty store over box whose marks live for ttl time units.
func New(box geom.Box, capacity int, ttl float64) (*Store, error) {
	if !(ttl > 0) {
		return nil, fmt.Errorf("pheromone: ttl must be positive, got %v", ttl)
	}
	s := &Store{ttl: ttl}
	for i := range s.trees {
		s.trees[i] = quadtree.New[Mark](box, capacity)
	}
	return s, nil
}

// TTL returns the lifetime of a mark.
func (s *Store) TTL() float64 { return s.ttl }

// Len returns the number of live marks of category c.
func (s *Store) Len(c Category) int {
	if !valid(c) {
		return 0
	}
	return s.trees[c].Len()
}

// Insert lays a mark of category c at p at time now.
// It returns false if p is out of bounds or already holds a mark of that category.
func (s *Store) Insert(p geom.Point, c Category, now float64) bool {
	if !valid(c) {
		return false
	}
	m := Mark{Category: c, ExpiresAt: now + s.ttl}
	if !s.trees[c].Insert(p, m) {
		return false
	}
	heap.Push(&s.expiry, expiring{point: p, mark: m})
	return true
}

// Sweep removes every mark expiring at or before now and returns how many were removed.
// It must run at least once per tick: it is the only way marks are reclaimed.
func (s *Store) Sweep(now float64) int {
	n := 0
	for len(s.expiry) > 0 && s.expiry[0].mark.ExpiresAt <= now {
		it := heap.Pop(&s.expiry).(expiring)
		t := s.trees[it.mark.Category]
		if e, ok := t.Get(it.point); ok && e.Payload == it.mark {
			t.Delete(it.point)
			n++
		}
	}
	return n
}

// Query returns the marks of category c within r of center.
func (s *Store) Query(center geom.Point, r float64, c Category) []Entry {
	if !valid(c) {
		return nil
	}
	return s.trees[c].QueryRadius(center, r)
}

// QueryStrength returns the total remaining lifetime of the marks of category c
// within r of center, so that fresh marks weigh more than stale ones.
func (s *Store) QueryStrength(center geom.Point, r float64, c Category, now float64) float64 {
	var sum float64
	for _, e := range s.Query(center, r, c) {
		sum += e.Payload.Remaining(now)
	}
	return sum
}

// DecayAlpha returns the fraction of lifetime left to m at time now, in [0, 1].
func (s *Store) DecayAlpha(m Mark, now float64) float64 {
	a := m.Remaining(now) / s.ttl
	if a > 1 {
		return 1
	}
	return a
}

// Each calls fn with every live mark and its decay alpha until fn returns false.
func (s *Store) Each(now float64, fn func(e Entry, alpha float64) bool) {
	for _, t := range s.trees {
		stopped := false
		t.Walk(func(e Entry) bool {
			if !fn(e, s.DecayAlpha(e.Payload, now)) {
				stopped = true
				return false
			}
			return true
		})
		if stopped {
			return
		}
	}
}

func valid(c Category) bool { return c >= 0 && c < NumCategories }

type expiring struct {
	point geom.Point
	mark  Mark
}

// expiryHeap implements heap.Interface ordered by expiry time.
type expiryHeap []expiring

func (h expiryHeap) Len() int           { return len(h) }
func (h expiryHeap) Less(i, j int) bool { return h[i].mark.ExpiresAt < h[j].mark.ExpiresAt }
func (h expiryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *expiryHeap) Push(x any) { *h = append(*h, x.(expiring)) }

func (h *expiryHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}
