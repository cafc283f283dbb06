package main

import (
	"fmt"
	"math"

	"github.com/BurntSushi/toml"

	antcolony "github.com/sjjohnst/Ant-Colony"
	"github.com/sjjohnst/Ant-Colony/geom"
)

// Config holds the various parameters required for running a simulation.
type Config struct {
	// Output is either a filename (path) for the HDF5 output file,
	// or the empty string for a run that only prints a summary.
	Output string

	Agents  int     // number of ants
	Steps   int     // number of time steps
	Dt      float64 // duration of time steps
	Seed    int64   // seed of all random draws
	Workers int     // goroutines sensing in parallel (0 or 1: none)

	// Ant kinematics parameters
	MaxSpeed       float64 // unit: distance/time
	SteerStrength  float64 // unit: distance/time²
	WanderStrength float64 // unit: rad per update
	WanderType     string  // possible values: uniform, perlin

	// Ant senses parameters
	DetectionRadius float64 // unit: distance
	ViewAngle       float64 // unit: rad
	PickupRadius    float64 // unit: distance
	DropOffRadius   float64 // unit: distance
	HomeSenseRadius float64 // unit: distance
	ProbeDistance   float64 // unit: distance
	ProbeRadius     float64 // unit: distance
	DepositInterval float64 // unit: time
	TrailTTL        float64 // unit: time

	// World parameters
	DomainType   string  // possible values: finite, periodic
	DomainWidth  float64 // unit: distance
	DomainHeight float64 // unit: distance
	NestX        float64 // unit: distance
	NestY        float64 // unit: distance
	Capacity     int     // entries per quadtree leaf

	// Food parameters
	FoodType          string  // possible values: clusters, geojson, data
	FoodClusters      int     // number of clusters (clusters only)
	FoodPerCluster    int     // items per cluster (clusters only)
	FoodClusterRadius float64 // unit: distance (clusters only)
	FoodPath          string  // GeoJSON file (geojson) or HDF5 file (data)
	FoodDataset       string  // dataset holding food frames (data only)
	FoodRows          int     // maximum number of food items recorded per step
}

// DefaultConf are the default parameters.
var DefaultConf = &Config{
	Output:            "",
	Agents:            50,
	Steps:             5000,
	Dt:                0.05,
	Seed:              1,
	Workers:           0,
	MaxSpeed:          35,
	SteerStrength:     70,
	WanderStrength:    10 * math.Pi / 180,
	WanderType:        antcolony.UniformWander,
	DetectionRadius:   25,
	ViewAngle:         2 * math.Pi / 3,
	PickupRadius:      5,
	DropOffRadius:     15,
	HomeSenseRadius:   50,
	ProbeDistance:     20,
	ProbeRadius:       10,
	DepositInterval:   0.25,
	TrailTTL:          10,
	DomainType:        antcolony.Reflective,
	DomainWidth:       500,
	DomainHeight:      500,
	NestX:             250,
	NestY:             250,
	Capacity:          4,
	FoodType:          "clusters",
	FoodClusters:      5,
	FoodPerCluster:    40,
	FoodClusterRadius: 15,
	FoodDataset:       "food",
	FoodRows:          1000,
}

// ParseConfig parses the TOML config file whose path is provided.
func ParseConfig(path string) (*Config, error) {
	// config file overwrites default parameters
	conf := *DefaultConf
	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return nil, err
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, fmt.Errorf("unknown config keys %v", keys)
	}
	return &conf, nil
}

// Params returns the colony parameters described by the config.
func (conf *Config) Params() antcolony.Params {
	return antcolony.Params{
		Bounds:   geom.NewBox(geom.Point{}, geom.Point{X: conf.DomainWidth, Y: conf.DomainHeight}),
		Boundary: conf.DomainType,
		Nest:     geom.Point{X: conf.NestX, Y: conf.NestY},
		Agents:   conf.Agents,
		Kinematics: antcolony.Kinematics{
			MaxSpeed:       conf.MaxSpeed,
			SteerStrength:  conf.SteerStrength,
			WanderStrength: conf.WanderStrength,
		},
		Senses: antcolony.Senses{
			DetectionRadius: conf.DetectionRadius,
			ViewAngle:       conf.ViewAngle,
			PickupRadius:    conf.PickupRadius,
			DropOffRadius:   conf.DropOffRadius,
			HomeSenseRadius: conf.HomeSenseRadius,
			ProbeDistance:   conf.ProbeDistance,
			ProbeRadius:     conf.ProbeRadius,
			DepositInterval: conf.DepositInterval,
		},
		TrailTTL: conf.TrailTTL,
		Capacity: conf.Capacity,
		Wander:   conf.WanderType,
		Seed:     conf.Seed,
		Workers:  conf.Workers,
	}
}
