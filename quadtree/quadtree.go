// Package quadtree implements a point quadtree over a fixed rectangular world.
//
// Each node covers a box and holds at most Capacity entries until it overflows,
// at which point it splits into four equal quadrants around its center and
// pushes all of its entries down; a divided node never stores entries itself.
// Deleting entries collapses nodes whose children fit back into a single leaf,
// so the tree shrinks again as points are consumed.
//
// Points lying exactly on a midline belong to the east (x >= center.X) and
// south (y >= center.Y) quadrants. Coordinates are unique: inserting a point
// equal to a stored one fails.
//
// A Tree is not safe for concurrent mutation. Concurrent reads are fine as long
// as no goroutine mutates the tree at the same time.
package quadtree

import (
	"slices"

	"github.com/sjjohnst/Ant-Colony/geom"
)

const (
	// DefaultCapacity is used when a non-positive capacity is requested.
	DefaultCapacity = 4

	// MaxDepth bounds subdivision. Leaves at this depth accept entries beyond
	// capacity, so nearly coincident points degrade to a linear scan instead
	// of recursing without end.
	MaxDepth = 32
)

// An Entry is a point stored in the tree together with its payload.
type Entry[T any] struct {
	Point   geom.Point
	Payload T
}

// quadrants, indexed so that bit 0 is east and bit 1 is south
const (
	nw = iota
	ne
	sw
	se
)

type node[T any] struct {
	box      geom.Box
	depth    int
	entries  []Entry[T]
	divided  bool
	children [4]*node[T]
}

// A Tree is a point quadtree whose entries carry a payload of type T.
type Tree[T any] struct {
	root     *node[T]
	capacity int
	size     int
}

// New returns an empty tree covering box whose leaves hold up to capacity entries.
func New[T any](box geom.Box, capacity int) *Tree[T] {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	box = geom.NewBox(box.TopLeft, box.BottomRight)
	return &Tree[T]{
		root:     &node[T]{box: box, entries: make([]Entry[T], 0, capacity)},
		capacity: capacity,
	}
}

// Bounds returns the box covered by the tree.
func (t *Tree[T]) Bounds() geom.Box { return t.root.box }

// Capacity returns the maximum number of entries of a leaf.
func (t *Tree[T]) Capacity() int { return t.capacity }

// Len returns the number of entries in the tree.
func (t *Tree[T]) Len() int { return t.size }

// Clear removes every entry.
func (t *Tree[T]) Clear() {
	t.root = &node[T]{box: t.root.box, entries: make([]Entry[T], 0, t.capacity)}
	t.size = 0
}

// Insert stores p with its payload. It returns false if p lies outside the
// tree bounds or if an entry with the same coordinates is already stored.
func (t *Tree[T]) Insert(p geom.Point, payload T) bool {
	if !t.root.box.Contains(p) || t.Search(p) {
		return false
	}
	n := t.root
	for {
		if !n.divided {
			if len(n.entries) < t.capacity || n.depth >= MaxDepth {
				n.entries = append(n.entries, Entry[T]{Point: p, Payload: payload})
				t.size++
				return true
			}
			n.subdivide(t.capacity)
		}
		n = n.children[n.quadrant(p)]
	}
}

// Search reports whether an entry with exactly the coordinates of p is stored.
func (t *Tree[T]) Search(p geom.Point) bool {
	_, ok := t.Get(p)
	return ok
}

// Get returns the entry stored at exactly the coordinates of p.
func (t *Tree[T]) Get(p geom.Point) (Entry[T], bool) {
	if !t.root.box.Contains(p) {
		return Entry[T]{}, false
	}
	n := t.root
	for n.divided {
		n = n.children[n.quadrant(p)]
	}
	if i := n.index(p); i >= 0 {
		return n.entries[i], true
	}
	return Entry[T]{}, false
}

// Delete removes the entry at exactly the coordinates of p and reports whether there was one.
func (t *Tree[T]) Delete(p geom.Point) bool {
	_, ok := t.Take(p)
	return ok
}

// Take removes and returns the entry at exactly the coordinates of p.
// Nodes left with few enough entries below them collapse back into leaves.
func (t *Tree[T]) Take(p geom.Point) (Entry[T], bool) {
	if !t.root.box.Contains(p) {
		return Entry[T]{}, false
	}
	path := make([]*node[T], 0, 8)
	n := t.root
	for n.divided {
		path = append(path, n)
		n = n.children[n.quadrant(p)]
	}
	i := n.index(p)
	if i < 0 {
		return Entry[T]{}, false
	}
	e := n.entries[i]
	n.entries = slices.Delete(n.entries, i, i+1)
	t.size--

	// a node that stays divided keeps its ancestors divided too
	for k := len(path) - 1; k >= 0; k-- {
		if !path[k].collapse(t.capacity) {
			break
		}
	}
	return e, true
}

// QueryRadius returns every entry within distance r of c, in no particular order.
func (t *Tree[T]) QueryRadius(c geom.Point, r float64) []Entry[T] {
	var found []Entry[T]
	if r < 0 {
		return found
	}
	t.root.queryCircle(geom.Square(c, r), c, r, &found)
	return found
}

// Nearest returns the entry closest to p among those within maxDist of it.
func (t *Tree[T]) Nearest(p geom.Point, maxDist float64) (Entry[T], bool) {
	s := nearestSearch[T]{p: p, best: maxDist * maxDist}
	t.root.nearest(&s)
	return s.entry, s.found
}

// Walk calls fn for every entry until fn returns false.
// The tree must not be modified during the walk.
func (t *Tree[T]) Walk(fn func(Entry[T]) bool) {
	t.root.walk(fn)
}

// quadrant returns the index of the child of n whose box holds p.
func (n *node[T]) quadrant(p geom.Point) int {
	c := n.box.Center()
	q := nw
	if p.X >= c.X {
		q |= ne
	}
	if p.Y >= c.Y {
		q |= sw
	}
	return q
}

// subdivide splits n into four quadrants and moves its entries into them.
func (n *node[T]) subdivide(capacity int) {
	tl, br, c := n.box.TopLeft, n.box.BottomRight, n.box.Center()
	boxes := [4]geom.Box{
		nw: {TopLeft: tl, BottomRight: c},
		ne: {TopLeft: geom.Point{X: c.X, Y: tl.Y}, BottomRight: geom.Point{X: br.X, Y: c.Y}},
		sw: {TopLeft: geom.Point{X: tl.X, Y: c.Y}, BottomRight: geom.Point{X: c.X, Y: br.Y}},
		se: {TopLeft: c, BottomRight: br},
	}
	for i := range n.children {
		n.children[i] = &node[T]{
			box:     boxes[i],
			depth:   n.depth + 1,
			entries: make([]Entry[T], 0, capacity),
		}
	}
	for _, e := range n.entries {
		ch := n.children[n.quadrant(e.Point)]
		ch.entries = append(ch.entries, e)
	}
	n.entries = nil
	n.divided = true
}

// collapse turns a divided n back into a leaf if its children are leaves
// holding no more than capacity entries altogether.
func (n *node[T]) collapse(capacity int) bool {
	if !n.divided {
		return false
	}
	total := 0
	for _, ch := range n.children {
		if ch.divided {
			return false
		}
		total += len(ch.entries)
	}
	if total > capacity {
		return false
	}
	entries := make([]Entry[T], 0, capacity)
	for i, ch := range n.children {
		entries = append(entries, ch.entries...)
		n.children[i] = nil
	}
	n.entries = entries
	n.divided = false
	return true
}

// index returns the position of the entry of n at exactly p, or -1.
func (n *node[T]) index(p geom.Point) int {
	for i, e := range n.entries {
		if e.Point.X == p.X && e.Point.Y == p.Y {
			return i
		}
	}
	return -1
}

// queryCircle collects the entries of the subtree within r of c.
// sq is the square bounding the circle, used to prune nodes and entries cheaply.
func (n *node[T]) queryCircle(sq geom.Box, c geom.Point, r float64, found *[]Entry[T]) {
	if !n.box.Intersects(sq) {
		return
	}
	for _, e := range n.entries {
		if sq.Contains(e.Point) && e.Point.Dist(c) <= r {
			*found = append(*found, e)
		}
	}
	if n.divided {
		for _, ch := range n.children {
			ch.queryCircle(sq, c, r, found)
		}
	}
}

type nearestSearch[T any] struct {
	p     geom.Point
	best  float64 // squared distance of current best, or bound
	entry Entry[T]
	found bool
}

func (n *node[T]) nearest(s *nearestSearch[T]) {
	if n.box.DistSq(s.p) > s.best {
		return
	}
	for _, e := range n.entries {
		d := e.Point.Sub(s.p).MagSq()
		if d < s.best || (!s.found && d <= s.best) {
			s.best, s.entry, s.found = d, e, true
		}
	}
	if !n.divided {
		return
	}
	// the quadrant holding p usually yields the tightest bound
	first := n.quadrant(s.p)
	n.children[first].nearest(s)
	for i, ch := range n.children {
		if i != first {
			ch.nearest(s)
		}
	}
}

func (n *node[T]) walk(fn func(Entry[T]) bool) bool {
	for _, e := range n.entries {
		if !fn(e) {
			return false
		}
	}
	if n.divided {
		for _, ch := range n.children {
			if !ch.walk(fn) {
				return false
			}
		}
	}
	return true
}
