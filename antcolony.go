// Package antcolony runs ant-colony foraging simulations.
//
// Ants leave the nest, wander, steer toward food they can see, lay and follow
// pheromone trails, and carry food back home. Food is stored in a quadtree and
// trails in a pheromone store shared by the whole colony.
//
// The simulation is driven by explicit time: the host calls Tick with the
// step duration and the current simulated time. Given the same Params (seed
// included) and the same sequence of ticks, a run is exactly reproducible.
package antcolony

import (
	"fmt"
	"math"

	"github.com/sjjohnst/Ant-Colony/geom"
)

// State contains the kinematic state of an ant.
type State struct {
	Pos geom.Point // position in world units
	Vel geom.Vec2  // velocity in world units per unit time
	Dir geom.Vec2  // desired direction (unit vector)
}

// An Environment contains the parameters relative to the world.
type Environment struct {
	// Bounds is the extent of the world. Food and trail marks outside it are rejected.
	Bounds geom.Box

	// Move validates and canonicalizes a move by returning
	// the actual new state given a requested change in state.
	// It is used to enforce the boundary conditions of the world.
	Move func(old, new State) State
}

// Boundary names accepted by NewEnvironment.
const (
	Reflective = "finite"
	Periodic   = "periodic"
)

// NewEnvironment returns an environment over bounds with the named boundary condition.
func NewEnvironment(bounds geom.Box, boundary string) (Environment, error) {
	env := Environment{Bounds: bounds}
	switch boundary {
	case Reflective, "":
		env.Move = ReflectiveMove(bounds)
	case Periodic:
		env.Move = PeriodicMove(bounds)
	default:
		return env, fmt.Errorf("antcolony: bad boundary type %q", boundary)
	}
	return env, nil
}

// ReflectiveMove is a move function that bounces ants off the edges of b.
func ReflectiveMove(b geom.Box) func(old, new State) State {
	return func(old, new State) State {
		min, max := b.TopLeft, b.BottomRight
		if new.Pos.X < min.X {
			new.Pos.X += 2 * (min.X - new.Pos.X)
			new.Vel.X, new.Dir.X = -new.Vel.X, -new.Dir.X
		}
		if new.Pos.X > max.X {
			new.Pos.X -= 2 * (new.Pos.X - max.X)
			new.Vel.X, new.Dir.X = -new.Vel.X, -new.Dir.X
		}
		if new.Pos.Y < min.Y {
			new.Pos.Y += 2 * (min.Y - new.Pos.Y)
			new.Vel.Y, new.Dir.Y = -new.Vel.Y, -new.Dir.Y
		}
		if new.Pos.Y > max.Y {
			new.Pos.Y -= 2 * (new.Pos.Y - max.Y)
			new.Vel.Y, new.Dir.Y = -new.Vel.Y, -new.Dir.Y
		}
		// a step longer than the world is wide can still overshoot
		new.Pos = b.Clamp(new.Pos)
		return new
	}
}

// PeriodicMove is a move function that wraps ants around the edges of b.
// Queries are not wrapped: an ant near an edge does not sense across it.
func PeriodicMove(b geom.Box) func(old, new State) State {
	w, h := b.Width(), b.Height()
	return func(old, new State) State {
		new.Pos.X = b.TopLeft.X + wrap(new.Pos.X-b.TopLeft.X, w)
		new.Pos.Y = b.TopLeft.Y + wrap(new.Pos.Y-b.TopLeft.Y, h)
		return new
	}
}

func wrap(x, size float64) float64 {
	x = math.Mod(x, size)
	if x < 0 {
		x += size
	}
	return x
}
