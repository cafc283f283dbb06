// Package scenario generates initial food layouts.
package scenario

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/sjjohnst/Ant-Colony/geom"
)

// DefaultCount is the number of food items scattered in a polygon without a count property.
const DefaultCount = 20

// maxTries bounds rejection sampling per requested point.
const maxTries = 1000

// Clusters returns n discs of perCluster food items each, of the given radius
// and centered uniformly in bounds. Points falling outside bounds are clamped to it.
func Clusters(rng *rand.Rand, bounds geom.Box, n, perCluster int, radius float64) []geom.Point {
	pts := make([]geom.Point, 0, n*perCluster)
	for i := 0; i < n; i++ {
		c := geom.Point{
			X: bounds.TopLeft.X + rng.Float64()*bounds.Width(),
			Y: bounds.TopLeft.Y + rng.Float64()*bounds.Height(),
		}
		for j := 0; j < perCluster; j++ {
			r := radius * math.Sqrt(rng.Float64())
			sin, cos := math.Sincos(2 * math.Pi * rng.Float64())
			pts = append(pts, bounds.Clamp(geom.Point{X: c.X + r*cos, Y: c.Y + r*sin}))
		}
	}
	return pts
}

// LoadGeoJSON reads a food layout from a GeoJSON feature collection, feature or geometry.
//
// Points and multipoints place one food item per coordinate. Polygons and
// multipolygons scatter uniformly inside their area as many items as the
// numeric "count" property of their feature says (DefaultCount if absent).
// Other geometries are ignored.
func LoadGeoJSON(r io.Reader, rng *rand.Rand) ([]geom.Point, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}

	var features []*geojson.Feature
	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil {
		features = fc.Features
	} else if f, err := geojson.UnmarshalFeature(data); err == nil {
		features = []*geojson.Feature{f}
	} else if g, err := geojson.UnmarshalGeometry(data); err == nil {
		features = []*geojson.Feature{geojson.NewFeature(g.Geometry())}
	} else {
		return nil, fmt.Errorf("scenario: unable to unmarshal GeoJSON: %w", err)
	}

	var pts []geom.Point
	for i, f := range features {
		count := int(f.Properties.MustFloat64("count", DefaultCount))
		if count < 0 {
			return nil, fmt.Errorf("scenario: feature %d: negative count %d", i, count)
		}
		switch g := f.Geometry.(type) {
		case orb.Point:
			pts = append(pts, point(g))
		case orb.MultiPoint:
			for _, p := range g {
				pts = append(pts, point(p))
			}
		case orb.Polygon:
			s, err := scatter(rng, g, func(p orb.Point) bool { return planar.PolygonContains(g, p) }, count)
			if err != nil {
				return nil, fmt.Errorf("scenario: feature %d: %w", i, err)
			}
			pts = append(pts, s...)
		case orb.MultiPolygon:
			s, err := scatter(rng, g, func(p orb.Point) bool { return planar.MultiPolygonContains(g, p) }, count)
			if err != nil {
				return nil, fmt.Errorf("scenario: feature %d: %w", i, err)
			}
			pts = append(pts, s...)
		}
	}
	return pts, nil
}

// scatter draws n points uniformly in the bound of g and keeps those inside it.
func scatter(rng *rand.Rand, g orb.Geometry, inside func(orb.Point) bool, n int) ([]geom.Point, error) {
	b := g.Bound()
	pts := make([]geom.Point, 0, n)
	for tries := 0; len(pts) < n; tries++ {
		if tries >= maxTries*n {
			return nil, fmt.Errorf("polygon too thin: placed %d of %d points", len(pts), n)
		}
		p := orb.Point{
			b.Min[0] + rng.Float64()*(b.Max[0]-b.Min[0]),
			b.Min[1] + rng.Float64()*(b.Max[1]-b.Min[1]),
		}
		if inside(p) {
			pts = append(pts, point(p))
		}
	}
	return pts, nil
}

func point(p orb.Point) geom.Point {
	return geom.Point{X: p.X(), Y: p.Y()}
}
