// Command antcolony runs ant-colony foraging simulations.
//
// Usage
//
// The antcolony command takes one optional argument:
//
//	antcolony [config_file]
//
// It is the path to a TOML config file.
// If no config file is specified, a simulation with default parameters runs
// and a summary is printed when it ends.
//
// Config file
//
// The config file is written in TOML, see https://github.com/toml-lang/toml.
// Keys are the field names of Config and override the defaults.
// When Output is set, the state of the colony is recorded at every step to
// the HDF5 file it names, in the datasets "ants", "food", "trails" and
// "delivered", along with a "config" dataset whose attributes are the config.
//
// Food
//
// FoodType selects the initial food layout: random clusters, a GeoJSON file
// of points and polygons, or the first frame of a food dataset in an HDF5
// file such as one written by a previous run.
//
// Known bugs
//
// In a periodic world ants do not sense food or trails across the edges.
// Food at the origin cannot be recorded: a point at (0,0) marks the end of a frame.
package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	antcolony "github.com/sjjohnst/Ant-Colony"
	"github.com/sjjohnst/Ant-Colony/geom"
	"github.com/sjjohnst/Ant-Colony/hdf5"
	"github.com/sjjohnst/Ant-Colony/pheromone"
	"github.com/sjjohnst/Ant-Colony/scenario"
)

const usage = `Usage: antcolony [config_file]

The first argument is optional and is the path to a TOML config file.
If no config file is specified, a simulation with default parameters runs
and a summary is printed when it ends.
`

func main() {
	var conf *Config
	var err error
	switch len(os.Args) {
	case 1:
		conf = DefaultConf
	case 2:
		conf, err = ParseConfig(os.Args[1])
	default:
		err = fmt.Errorf("%d arguments provided (0 required, 1 optional)\n\n%s", len(os.Args)-1, usage)
	}
	if err != nil {
		Fatal(err)
	}

	// setup simulation
	c, err := setup(conf)
	if err != nil {
		Fatal(err)
	}
	placed := c.FoodCount()

	// record or not depending on config
	clock := antcolony.NewClock(conf.Dt)
	if conf.Output == "" {
		run(c, clock, conf.Steps, os.Stdout)
	} else {
		err = hdf5.Run(c, &hdf5.Config{
			Output: conf.Output,
			Steps:  conf.Steps,
			Step:   func() { clock.Step(c) },
			Datasets: []*hdf5.Dataset{
				hdf5.Ants(conf.Agents),
				hdf5.Food(conf.FoodRows),
				hdf5.Trails(),
				hdf5.Delivered(),
			},
			Meta:     conf,
			Progress: os.Stdout,
		})
	}
	if err != nil {
		Fatal(err)
	}

	summarize(log.New(os.Stderr, "antcolony: ", 0), c, clock, placed)
}

// Fatal prints an error on the standard output and exits with a non-zero status.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}

// setup builds the colony and places its food.
func setup(conf *Config) (*antcolony.Colony, error) {
	c, err := antcolony.New(conf.Params())
	if err != nil {
		return nil, err
	}

	// food layout has its own random source
	rng := rand.New(rand.NewSource(conf.Seed))
	var food []geom.Point
	switch conf.FoodType {
	case "clusters":
		food = scenario.Clusters(rng, c.Env.Bounds, conf.FoodClusters, conf.FoodPerCluster, conf.FoodClusterRadius)
	case "geojson":
		food, err = loadGeoJSON(conf.FoodPath, rng)
	case "data":
		food, err = loadFrame(conf.FoodPath, conf.FoodDataset)
	case "none":
	default:
		err = fmt.Errorf("bad food type %q", conf.FoodType)
	}
	if err != nil {
		return nil, err
	}
	for _, p := range food {
		c.PlaceFood(p)
	}
	return c, nil
}

func loadGeoJSON(path string, rng *rand.Rand) (pts []geom.Point, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return scenario.LoadGeoJSON(f, rng)
}

// loadFrame reads the first frame of a food dataset.
func loadFrame(path, dataset string) (pts []geom.Point, err error) {
	l, err := hdf5.NewLoader(path, dataset)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := l.Close(); err == nil {
			err = cerr
		}
	}()
	err = l.Load(&pts)
	return pts, err
}

// run steps the colony and reports progress as a percentage on w.
func run(c *antcolony.Colony, clock *antcolony.Clock, steps int, w io.Writer) {
	for k := 0; k < steps; k++ {
		if w != nil && k%100 == 0 {
			fmt.Fprintf(w, "\r% 3d%%", 100*k/steps)
		}
		clock.Step(c)
	}
	if w != nil {
		fmt.Fprintf(w, "\r100%%\n")
	}
}

// summarize logs the outcome of a run.
func summarize(l *log.Logger, c *antcolony.Colony, clock *antcolony.Clock, placed int) {
	l.Printf("%d ticks, simulated time %.2f", c.Ticks, clock.Now())
	l.Printf("food: %d placed, %d delivered, %d left", placed, c.Delivered, c.FoodCount())
	for k := pheromone.Category(0); k < pheromone.NumCategories; k++ {
		l.Printf("%s: %d marks", k, c.Trails().Len(k))
	}
	if c.Len() == 0 {
		return
	}
	d := make([]float64, c.Len())
	for i, a := range c.Ants() {
		d[i] = float64(a.Delivered)
	}
	mean, std := stat.MeanStdDev(d, nil)
	l.Printf("deliveries per ant: mean %.3f, std dev %.3f, max %.0f", mean, std, floats.Max(d))
}
