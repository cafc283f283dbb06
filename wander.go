package antcolony

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// A Wander produces the random turns of an exploring ant.
// Turn returns a value in [-1, 1] that is scaled by the ant's wander strength.
type Wander interface {
	Turn(dt float64) float64
}

// Wander kinds accepted by NewWander.
const (
	UniformWander = "uniform"
	PerlinWander  = "perlin"
)

// NewWander returns a deterministic wander source of the named kind.
func NewWander(kind string, seed int64) (Wander, error) {
	switch kind {
	case UniformWander, "":
		return &uniformWander{rng: rand.New(rand.NewSource(seed))}, nil
	case PerlinWander:
		return &perlinWander{
			noise: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed),
			t:     0.5, // noise is zero at integer abscissas
		}, nil
	default:
		return nil, fmt.Errorf("antcolony: bad wander type %q", kind)
	}
}

// uniformWander turns by independent uniform draws at every update.
type uniformWander struct {
	rng *rand.Rand
}

func (w *uniformWander) Turn(dt float64) float64 {
	return 2*w.rng.Float64() - 1
}

const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 3
	perlinRate    = 1.5 // noise abscissa per unit time
	perlinGain    = 2.5 // raw noise rarely exceeds ±0.4
)

// perlinWander samples 1D Perlin noise along simulated time,
// so consecutive turns are correlated and paths curve smoothly.
type perlinWander struct {
	noise *perlin.Perlin
	t     float64
}

func (w *perlinWander) Turn(dt float64) float64 {
	w.t += dt * perlinRate
	v := perlinGain * w.noise.Noise1D(w.t)
	return math.Max(-1, math.Min(1, v))
}
