package antcolony

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/sjjohnst/Ant-Colony/geom"
	"github.com/sjjohnst/Ant-Colony/pheromone"
	"github.com/sjjohnst/Ant-Colony/quadtree"
)

// Food is the payload of a food item. Food items are identified by their position.
type Food struct{}

// Params contains all the parameters of a colony.
type Params struct {
	Bounds   geom.Box   // extent of the world
	Boundary string     // boundary condition: finite or periodic
	Nest     geom.Point // position of the nest
	Agents   int        // number of ants

	Kinematics
	Senses

	TrailTTL float64 // lifetime of a trail mark
	Capacity int     // leaf capacity of the quadtrees
	Wander   string  // wander source: uniform or perlin
	Seed     int64   // seed of all random draws
	Workers  int     // goroutines used to update ants (0 or 1: none)
}

// DefaultParams returns reasonable parameters for a 500x500 world.
func DefaultParams() Params {
	return Params{
		Bounds:   geom.NewBox(geom.Point{X: 0, Y: 0}, geom.Point{X: 500, Y: 500}),
		Boundary: Reflective,
		Nest:     geom.Point{X: 250, Y: 250},
		Agents:   50,
		Kinematics: Kinematics{
			MaxSpeed:       35,
			SteerStrength:  70,
			WanderStrength: 10 * math.Pi / 180,
		},
		Senses: Senses{
			DetectionRadius: 25,
			ViewAngle:       2 * math.Pi / 3,
			PickupRadius:    5,
			DropOffRadius:   15,
			HomeSenseRadius: 50,
			ProbeDistance:   20,
			ProbeRadius:     10,
			DepositInterval: 0.25,
		},
		TrailTTL: 10,
		Capacity: quadtree.DefaultCapacity,
		Wander:   UniformWander,
		Seed:     1,
	}
}

// Validate checks that p describes a consistent colony.
func (p *Params) Validate() error {
	switch {
	case !(p.Bounds.Width() > 0 && p.Bounds.Height() > 0):
		return fmt.Errorf("antcolony: empty world bounds %+v", p.Bounds)
	case !p.Bounds.Contains(p.Nest):
		return fmt.Errorf("antcolony: nest %v outside world bounds", p.Nest)
	case p.Agents < 0:
		return fmt.Errorf("antcolony: negative number of agents %d", p.Agents)
	case !(p.MaxSpeed > 0):
		return fmt.Errorf("antcolony: max speed must be positive, got %v", p.MaxSpeed)
	case !(p.SteerStrength > 0):
		return fmt.Errorf("antcolony: steer strength must be positive, got %v", p.SteerStrength)
	case !(p.WanderStrength >= 0):
		return fmt.Errorf("antcolony: wander strength must not be negative, got %v", p.WanderStrength)
	case !(p.ViewAngle > 0 && p.ViewAngle <= 2*math.Pi):
		return fmt.Errorf("antcolony: view angle must be in (0, 2π], got %v", p.ViewAngle)
	case !(p.DepositInterval > 0):
		return fmt.Errorf("antcolony: deposit interval must be positive, got %v", p.DepositInterval)
	case p.Workers < 0:
		return fmt.Errorf("antcolony: negative number of workers %d", p.Workers)
	}
	for name, r := range map[string]float64{
		"detection":  p.DetectionRadius,
		"pickup":     p.PickupRadius,
		"drop-off":   p.DropOffRadius,
		"home sense": p.HomeSenseRadius,
		"probe":      p.ProbeRadius,
	} {
		if !(r >= 0) {
			return fmt.Errorf("antcolony: %s radius must not be negative, got %v", name, r)
		}
	}
	return nil
}

// A Colony contains all the state of a simulation: the ants, the food and the trails.
type Colony struct {
	Env       Environment
	Delivered int // food items brought back to the nest
	Ticks     int // number of ticks run

	params Params
	nest   geom.Point
	ants   []Ant
	food   *quadtree.Tree[Food]
	trails *pheromone.Store
	log    mutationLog
}

// New returns a colony whose ants all start at the nest with random headings.
func New(p Params) (*Colony, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	env, err := NewEnvironment(p.Bounds, p.Boundary)
	if err != nil {
		return nil, err
	}
	trails, err := pheromone.New(p.Bounds, p.Capacity, p.TrailTTL)
	if err != nil {
		return nil, fmt.Errorf("antcolony: %w", err)
	}
	c := &Colony{
		Env:    env,
		params: p,
		nest:   p.Nest,
		ants:   make([]Ant, p.Agents),
		food:   quadtree.New[Food](p.Bounds, p.Capacity),
		trails: trails,
	}

	rng := rand.New(rand.NewSource(p.Seed))
	for i := range c.ants {
		w, err := NewWander(p.Wander, rng.Int63())
		if err != nil {
			return nil, err
		}
		dir := geom.Polar(1, 2*math.Pi*rng.Float64()-math.Pi)
		c.ants[i] = NewAnt(p.Nest, dir, p.Kinematics, w)
		c.ants[i].Vel = dir.Scale(p.MaxSpeed * rng.Float64())
	}
	return c, nil
}

// Params returns the parameters the colony was built with.
func (c *Colony) Params() Params { return c.params }

// Nest returns the position of the nest.
func (c *Colony) Nest() geom.Point { return c.nest }

// Trails returns the pheromone store. Callers must treat it as read-only.
func (c *Colony) Trails() *pheromone.Store { return c.trails }

// Tick runs a single simulation step of duration dt ending at time now.
//
// Every ant first senses the world and records what it wants to change; the
// changes are then applied one ant at a time; every ant moves; and finally
// expired trail marks are swept.
func (c *Colony) Tick(dt, now float64) {
	c.log.reset(len(c.ants))
	c.each(func(i int) {
		c.log.slots[i] = c.ants[i].sense(c.food, c.trails, c.nest, &c.params.Senses, now)
	})
	c.log.commit(c, now)
	c.each(func(i int) {
		a := &c.ants[i]
		old := a.State
		a.Update(dt)
		a.State = c.Env.Move(old, a.State)
	})
	c.trails.Sweep(now)
	c.Ticks++
}

// each calls fn for every ant index, spread over the configured workers.
func (c *Colony) each(fn func(i int)) {
	n, w := len(c.ants), c.params.Workers
	if w <= 1 || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	if w > n {
		w = n
	}
	var wg sync.WaitGroup
	chunk := (n + w - 1) / w
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}

// PlaceFood adds a food item at p. It fails if p is out of bounds or already holds food.
func (c *Colony) PlaceFood(p geom.Point) bool {
	return c.food.Insert(p, Food{})
}

// RemoveFood removes the food item at p and reports whether there was one.
func (c *Colony) RemoveFood(p geom.Point) bool {
	return c.food.Delete(p)
}

// FoodCount returns the number of food items left in the world.
func (c *Colony) FoodCount() int { return c.food.Len() }

// EachFood calls fn with the position of every food item until fn returns false.
func (c *Colony) EachFood(fn func(p geom.Point) bool) {
	c.food.Walk(func(e quadtree.Entry[Food]) bool { return fn(e.Point) })
}

// An AntView is the read-only state of an ant exposed to renderers and recorders.
type AntView struct {
	Pos         geom.Point
	Vel         geom.Vec2
	Heading     geom.Vec2
	Mode        Mode
	HoldingFood bool
	Delivered   int
}

// Len returns the number of ants.
func (c *Colony) Len() int { return len(c.ants) }

// Ant returns a view of the i-th ant.
func (c *Colony) Ant(i int) AntView {
	a := &c.ants[i]
	return AntView{
		Pos:         a.Pos,
		Vel:         a.Vel,
		Heading:     a.Heading(),
		Mode:        a.Mode,
		HoldingFood: a.HoldingFood,
		Delivered:   a.Delivered,
	}
}

// Ants returns a view of every ant.
func (c *Colony) Ants() []AntView {
	v := make([]AntView, len(c.ants))
	for i := range c.ants {
		v[i] = c.Ant(i)
	}
	return v
}
