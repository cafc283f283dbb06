package antcolony

import (
	"fmt"
	"math"
)

// mutationLog collects the intents of every ant during the sense phase of a
// tick. Each ant writes only its own slot, so the phase can run on several
// goroutines while the food tree and trails are only read. Commit then applies
// the intents one ant at a time, in ant order.
type mutationLog struct {
	slots []intent
}

func (l *mutationLog) reset(n int) {
	if cap(l.slots) < n {
		l.slots = make([]intent, n)
		return
	}
	l.slots = l.slots[:n]
	clear(l.slots)
}

// commit applies the logged intents to the colony.
// A pickup only succeeds if the food item is still there, so two ants
// reaching the same item in the same tick cannot both take it.
func (l *mutationLog) commit(c *Colony, now float64) {
	for i, in := range l.slots {
		a := &c.ants[i]
		switch {
		case in.pickup:
			if c.food.Delete(in.food) {
				a.HoldingFood = true
				a.Mode = Returning
				a.setTarget(c.nest, false)
			} else {
				a.ClearTarget()
				a.Mode = Exploring
			}
		case in.dropOff:
			a.HoldingFood = false
			a.ClearTarget()
			a.Mode = Exploring
			a.Vel = a.Vel.Rotate(math.Pi)
			a.Dir = a.Dir.Rotate(math.Pi)
			a.Delivered++
			c.Delivered++
		}
		if in.deposit {
			c.trails.Insert(in.at, in.mark, now)
		}
	}
}

// String returns a summary of the pending intents for debugging.
func (l *mutationLog) String() string {
	var pickups, drops, deposits int
	for _, in := range l.slots {
		if in.pickup {
			pickups++
		}
		if in.dropOff {
			drops++
		}
		if in.deposit {
			deposits++
		}
	}
	return fmt.Sprintf("mutationLog{pickups: %d, dropOffs: %d, deposits: %d}", pickups, drops, deposits)
}
