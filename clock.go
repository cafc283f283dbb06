package antcolony

// Clock drives a colony with fixed steps of simulated time and can be paused.
// While paused, Step does not tick the colony and time does not advance.
type Clock struct {
	Dt float64 // duration of a step

	now    float64
	paused bool
}

// NewClock returns a running clock at time 0.
func NewClock(dt float64) *Clock {
	return &Clock{Dt: dt}
}

// Now returns the current simulated time.
func (k *Clock) Now() float64 { return k.now }

// Paused reports whether the clock is paused.
func (k *Clock) Paused() bool { return k.paused }

// Pause stops time.
func (k *Clock) Pause() { k.paused = true }

// Resume restarts time.
func (k *Clock) Resume() { k.paused = false }

// Toggle pauses a running clock or resumes a paused one.
func (k *Clock) Toggle() { k.paused = !k.paused }

// Step advances time by Dt and ticks c, unless the clock is paused.
// It reports whether a tick happened.
func (k *Clock) Step(c *Colony) bool {
	if k.paused {
		return false
	}
	k.now += k.Dt
	c.Tick(k.Dt, k.now)
	return true
}
