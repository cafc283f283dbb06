package antcolony

import (
	"math"

	"github.com/sjjohnst/Ant-Colony/geom"
	"github.com/sjjohnst/Ant-Colony/pheromone"
	"github.com/sjjohnst/Ant-Colony/quadtree"
)

// Mode is the behavioral state of an ant.
type Mode int

const (
	// Exploring ants wander without a target.
	Exploring Mode = iota
	// Targeting ants steer toward food they saw or toward a trail.
	Targeting
	// Returning ants carry food back to the nest.
	Returning
)

// String returns the name of the mode.
func (m Mode) String() string {
	switch m {
	case Exploring:
		return "exploring"
	case Targeting:
		return "targeting"
	case Returning:
		return "returning"
	default:
		return "unknown"
	}
}

// probeAngle is the offset of the left and right trail probes from the heading.
const probeAngle = math.Pi / 6

// Kinematics contains the motion parameters of an ant.
type Kinematics struct {
	MaxSpeed       float64 // unit: distance/time
	SteerStrength  float64 // unit: distance/time² (also caps the acceleration)
	WanderStrength float64 // unit: rad per update
}

// Senses contains the perception parameters of an ant.
type Senses struct {
	DetectionRadius float64 // food detection range
	ViewAngle       float64 // full angle of the view cone, in radians
	PickupRadius    float64 // distance at which food is picked up
	DropOffRadius   float64 // distance to the nest at which food is dropped
	HomeSenseRadius float64 // distance to the nest under which ants head straight home
	ProbeDistance   float64 // distance ahead of the ant of trail probes
	ProbeRadius     float64 // radius of trail probes
	DepositInterval float64 // minimum time between two trail marks
}

// An Ant is a steering agent.
type Ant struct {
	State
	Kinematics

	Mode        Mode
	HoldingFood bool
	HasTarget   bool
	Target      geom.Point
	Delivered   int // food items brought home

	targetFood  bool // Target is a food item rather than a trail point
	deposited   bool
	lastDeposit float64
	wander      Wander
}

// NewAnt returns an exploring ant at pos heading along dir.
// A nil wander source makes the ant go straight when it has no target.
func NewAnt(pos geom.Point, dir geom.Vec2, k Kinematics, w Wander) Ant {
	return Ant{
		State:      State{Pos: pos, Dir: unitOr(dir, geom.Vec2{X: 1})},
		Kinematics: k,
		wander:     w,
	}
}

// Heading returns the unit direction the ant is moving in,
// or its desired direction while it stands still.
func (a *Ant) Heading() geom.Vec2 {
	if h := a.Vel.Normalize(); !h.IsZero() {
		return h
	}
	return unitOr(a.Dir, geom.Vec2{X: 1})
}

// SetTarget makes the ant steer toward p.
func (a *Ant) SetTarget(p geom.Point) {
	a.setTarget(p, false)
}

// ClearTarget makes the ant wander again.
func (a *Ant) ClearTarget() {
	a.HasTarget, a.targetFood = false, false
}

func (a *Ant) setTarget(p geom.Point, food bool) {
	a.Target, a.HasTarget, a.targetFood = p, true, food
}

// Update advances the ant by dt: it turns its desired direction (toward its
// target, or by a random wander), steers its velocity toward it with a bounded
// acceleration and integrates its position.
func (a *Ant) Update(dt float64) {
	if a.HasTarget {
		a.Dir = unitOr(a.Target.Sub(a.Pos), a.Dir)
	} else if a.wander != nil && a.WanderStrength > 0 {
		a.Dir = a.Dir.Rotate(a.WanderStrength * a.wander.Turn(dt)).Normalize()
	}
	a.Dir = unitOr(a.Dir, a.Heading())

	desired := a.Dir.Scale(a.MaxSpeed)
	acc := desired.Sub(a.Vel).Scale(a.SteerStrength).ClampMag(a.SteerStrength)
	a.Vel = a.Vel.Add(acc.Scale(dt)).ClampMag(a.MaxSpeed)
	a.Pos = a.Pos.Add(a.Vel.Scale(dt))
}

// intent holds the changes to shared state an ant asks for during one tick.
type intent struct {
	pickup  bool
	food    geom.Point
	dropOff bool
	deposit bool
	mark    pheromone.Category
	at      geom.Point
}

// sense updates the mode and target of the ant from what it perceives.
// It only reads the shared food tree and trails; changes to them are returned as an intent.
func (a *Ant) sense(food *quadtree.Tree[Food], trails *pheromone.Store, nest geom.Point, s *Senses, now float64) intent {
	var in intent

	if !a.deposited || now-a.lastDeposit >= s.DepositInterval {
		in.deposit, in.at = true, a.Pos
		in.mark = pheromone.HomeTrail
		if a.HoldingFood {
			in.mark = pheromone.FoodTrail
		}
		a.deposited, a.lastDeposit = true, now
	}

	if a.HoldingFood {
		a.Mode = Returning
		d := a.Pos.Dist(nest)
		if d <= s.DropOffRadius {
			in.dropOff = true
			return in
		}
		a.setTarget(nest, false)
		if d > s.HomeSenseRadius {
			if dir, ok := a.probe(trails, pheromone.HomeTrail, s, now); ok {
				a.setTarget(a.Pos.Add(dir.Scale(s.ProbeDistance)), false)
			}
		}
		return in
	}

	// stick to a food item until it is picked up or vanishes
	if a.HasTarget && a.targetFood {
		if food.Search(a.Target) {
			a.Mode = Targeting
			if a.Pos.Dist(a.Target) <= s.PickupRadius {
				in.pickup, in.food = true, a.Target
			}
			return in
		}
		a.ClearTarget()
	}

	if p, ok := a.spot(food, s); ok {
		a.setTarget(p, true)
		a.Mode = Targeting
		if a.Pos.Dist(p) <= s.PickupRadius {
			in.pickup, in.food = true, p
		}
		return in
	}

	if dir, ok := a.probe(trails, pheromone.FoodTrail, s, now); ok {
		a.setTarget(a.Pos.Add(dir.Scale(s.ProbeDistance)), false)
		a.Mode = Targeting
		return in
	}

	a.ClearTarget()
	a.Mode = Exploring
	return in
}

// spot returns the closest food item within detection range and inside the view cone.
func (a *Ant) spot(food *quadtree.Tree[Food], s *Senses) (geom.Point, bool) {
	h := a.Heading()
	var best geom.Point
	found, bestDist := false, math.Inf(1)
	for _, e := range food.QueryRadius(a.Pos, s.DetectionRadius) {
		v := e.Point.Sub(a.Pos)
		if !v.IsZero() && geom.AngleBetween(h, v) > s.ViewAngle/2 {
			continue
		}
		d := v.Mag()
		if d < bestDist || (d == bestDist && less(e.Point, best)) {
			best, bestDist, found = e.Point, d, true
		}
	}
	return best, found
}

// probe samples trail strength of category c ahead, to the left and to the
// right of the ant and returns the direction with the strongest trail.
// Ties go to the center, then to the left. It fails when no trail is sensed.
func (a *Ant) probe(trails *pheromone.Store, c pheromone.Category, s *Senses, now float64) (geom.Vec2, bool) {
	h := a.Heading()
	dirs := [3]geom.Vec2{h, h.Rotate(probeAngle), h.Rotate(-probeAngle)} // center, left, right
	best, strength := -1, 0.0
	for i, d := range dirs {
		x := trails.QueryStrength(a.Pos.Add(d.Scale(s.ProbeDistance)), s.ProbeRadius, c, now)
		if x > strength {
			best, strength = i, x
		}
	}
	if best < 0 {
		return geom.Vec2{}, false
	}
	return dirs[best], true
}

// unitOr returns v normalized, or fallback when v has no length.
func unitOr(v, fallback geom.Vec2) geom.Vec2 {
	if u := v.Normalize(); !u.IsZero() {
		return u
	}
	return fallback.Normalize()
}

// less orders points by X then Y.
func less(p, q geom.Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}
