// Package enrich joins population figures onto county boundary features
// and derives approximate area and population density.
package enrich

import (
	"math"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/county-enrich/internal/census"
)

// kmPerDegree is the approximate length of one degree at the equator.
// The square-degree conversion applies this flat constant at every
// latitude; output distorts towards the poles.
const kmPerDegree = 111.0

// Enrich joins county populations onto a boundary collection. The
// input collection is left untouched: the result is a new collection
// with the same features in the same order, each carrying a fresh
// property map extended with population, area_km2 and density. Those
// three keys overwrite any same-named input properties.
func Enrich(fc *geojson.FeatureCollection, pop *census.PopulationTable) *geojson.FeatureCollection {
	out := &geojson.FeatureCollection{
		BBox:     fc.BBox,
		Features: make([]*geojson.Feature, 0, len(fc.Features)),
	}

	for _, f := range fc.Features {
		out.Features = append(out.Features, enrichFeature(f, pop))
	}

	return out
}

func enrichFeature(f *geojson.Feature, pop *census.PopulationTable) *geojson.Feature {
	props := make(map[string]interface{}, len(f.Properties)+3)
	for k, v := range f.Properties {
		props[k] = v
	}

	// A feature whose FIPS code is absent from the table gets a
	// population of zero, not an error.
	fips := stringProp(f.Properties, "STATEFP") + stringProp(f.Properties, "COUNTYFP")
	population, ok := pop.Population(fips)
	if !ok {
		population = 0
	}

	areaKm2 := PlanarArea(f.Geometry) * kmPerDegree * kmPerDegree

	density := 0.0
	if areaKm2 > 0 {
		density = float64(population) / areaKm2
	}

	props["population"] = population
	props["area_km2"] = areaKm2
	props["density"] = density

	return &geojson.Feature{
		ID:         f.ID,
		BBox:       f.BBox,
		Geometry:   f.Geometry,
		Properties: props,
	}
}

// PlanarArea computes the unsigned planar area of a polygonal geometry
// in its native coordinate units (square degrees for longitude/latitude
// input). Non-polygonal geometries have zero area.
func PlanarArea(g geom.T) float64 {
	switch t := g.(type) {
	case *geom.Polygon:
		return math.Abs(t.Area())
	case *geom.MultiPolygon:
		return math.Abs(t.Area())
	default:
		return 0
	}
}

// stringProp reads a property as a string, tolerating absent or
// non-string values as empty.
func stringProp(props map[string]interface{}, key string) string {
	s, _ := props[key].(string)
	return s
}
