package sentinel

import (
	"encoding/json"

	"github.com/go-spatial/geom/encoding/geojson"
)

// ProjectedGeometry is a geojson geometry carrying a name-based CRS declaration,
// as found in the tileInfo.json sidecars of the Sentinel-2 buckets
type ProjectedGeometry struct {
	geojson.Geometry
	CRSName string
}

func (pg *ProjectedGeometry) UnmarshalJSON(data []byte) error {
	if err := pg.Geometry.UnmarshalJSON(data); err != nil {
		return err
	}
	aux := struct {
		CRS struct {
			Properties struct {
				Name string `json:"name"`
			} `json:"properties"`
		} `json:"crs"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	pg.CRSName = aux.CRS.Properties.Name
	return nil
}

// TileInfo is the per-scene metadata sidecar (tileInfo.json)
type TileInfo struct {
	Path                  string             `json:"path"`
	Timestamp             string             `json:"timestamp"`
	UTMZone               int                `json:"utmZone"`
	LatitudeBand          string             `json:"latitudeBand"`
	GridSquare            string             `json:"gridSquare"`
	ProductName           string             `json:"productName"`
	ProductPath           string             `json:"productPath"`
	TileGeometry          *ProjectedGeometry `json:"tileGeometry"`
	TileDataGeometry      *ProjectedGeometry `json:"tileDataGeometry"`
	CloudyPixelPercentage float64            `json:"cloudyPixelPercentage"`
}

// BoundingGeometry returns the geometry to derive the scene footprint from:
// the data coverage geometry when present, the full tile geometry otherwise
func (ti *TileInfo) BoundingGeometry() *ProjectedGeometry {
	if ti.TileDataGeometry != nil && ti.TileDataGeometry.Geometry.Geometry != nil {
		return ti.TileDataGeometry
	}
	if ti.TileGeometry != nil && ti.TileGeometry.Geometry.Geometry != nil {
		return ti.TileGeometry
	}
	return nil
}
