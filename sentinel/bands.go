package sentinel

import (
	"strings"

	"github.com/auxgeo/sentinel-tiler/common"
)

// Spectral bands physically present in the products of each processing level.
// L2A products do not carry B10 (cirrus), it is consumed by the atmospheric correction.
var (
	l1cBands = []string{"B01", "B02", "B03", "B04", "B05", "B06", "B07", "B08", "B09", "B10", "B11", "B12", "B8A"}
	l2aBands = []string{"B01", "B02", "B03", "B04", "B05", "B06", "B07", "B08", "B09", "B11", "B12", "B8A"}
)

// Bands returns the band codes of the products of the given processing level
func Bands(level common.ProcessingLevel) []string {
	var bands []string
	switch level {
	case common.LevelL1C:
		bands = l1cBands
	case common.LevelL2A:
		bands = l2aBands
	default:
		return nil
	}
	return append([]string(nil), bands...)
}

// NormalizeBand returns the canonical 3-character band code
// ("4" and "b04" normalize to "B04", "8a" to "B8A")
func NormalizeBand(band string) string {
	band = strings.TrimPrefix(strings.ToUpper(band), "B")
	if len(band) == 1 {
		band = "0" + band
	}
	return "B" + band
}
