package boundary

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// FromShapefile reads a Census cartographic boundary shapefile and
// converts it to the feature collection the enrich pipeline consumes.
// Only the STATEFP, COUNTYFP and NAME attributes are carried over.
func FromShapefile(path string) (*geojson.FeatureCollection, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	stateIdx := fieldIndex(reader, "STATEFP")
	countyIdx := fieldIndex(reader, "COUNTYFP")
	nameIdx := fieldIndex(reader, "NAME")
	if stateIdx < 0 || countyIdx < 0 {
		return nil, eris.New("boundary: required shapefile fields (STATEFP, COUNTYFP) not found")
	}

	fc := &geojson.FeatureCollection{}
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()

		g := shapeGeometry(shape)
		if g == nil {
			skipped++
			continue
		}

		props := map[string]interface{}{
			"STATEFP":  strings.TrimSpace(reader.Attribute(stateIdx)),
			"COUNTYFP": strings.TrimSpace(reader.Attribute(countyIdx)),
		}
		if nameIdx >= 0 {
			props["NAME"] = strings.TrimSpace(reader.Attribute(nameIdx))
		}

		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   g,
			Properties: props,
		})
	}

	if skipped > 0 {
		zap.L().Debug("boundary: skipped records without polygonal geometry",
			zap.String("shapefile", path),
			zap.Int("skipped", skipped),
		)
	}

	return fc, nil
}

// shapeGeometry converts a shapefile shape to a go-geom MultiPolygon.
// Non-polygonal or empty shapes convert to nil.
func shapeGeometry(s shp.Shape) geom.T {
	p, ok := s.(*shp.Polygon)
	if !ok || p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
			zap.L().Debug("boundary: skipping malformed ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("boundary: skipping malformed part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

// fieldIndex returns the index of a named field in the shapefile, or -1 if not found.
func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), name) {
			return i
		}
	}
	return -1
}
