// Package boundary reads and writes county boundary feature collections.
package boundary

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Load reads a GeoJSON feature collection from path. Schema is not
// validated beyond what the decoder enforces.
func Load(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: read %s", path)
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrapf(err, "boundary: parse %s", path)
	}

	return &fc, nil
}

// Write serializes a feature collection to path as a single JSON
// document, creating intermediate directories as needed and overwriting
// any existing file.
func Write(path string, fc *geojson.FeatureCollection) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "boundary: create output dir %s", dir)
		}
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return eris.Wrap(err, "boundary: encode collection")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "boundary: write %s", path)
	}

	return nil
}
