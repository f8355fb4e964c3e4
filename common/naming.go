package common

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ProcessingLevel is the Sentinel-2 product processing level
type ProcessingLevel string

const (
	LevelL1C ProcessingLevel = "L1C"
	LevelL2A ProcessingLevel = "L2A"
)

// SupportedLevels lists the processing levels a scene reader can be created for
var SupportedLevels = []ProcessingLevel{LevelL1C, LevelL2A}

// Supported returns whether a reader implementation exists for the level
func (l ProcessingLevel) Supported() bool {
	for _, sl := range SupportedLevels {
		if l == sl {
			return true
		}
	}
	return false
}

// SceneMetadata maps the named fields of a scene identifier to their values
type SceneMetadata map[string]string

// Constellation defines the kind of satellites
type Constellation int

const (
	Unknown   Constellation = iota
	Sentinel2 // S2A_29RKH_20200219_0_L2A (COG form) or MMM_MSIXXX_YYYYMMDDTHHMMSS_Nxxyy_ROOO_Txxxxx_<Product Discriminator>.SAFE
)

// GetConstellationFromProductId returns the constellation from the scene name.
// Both Sentinel-2 identifier forms (COG and SAFE) are recognized.
func GetConstellationFromProductId(sceneName string) Constellation {
	if cogSceneIDRegex.MatchString(sceneName) || safeSceneIDRegex.MatchString(sceneName) {
		return Sentinel2
	}
	return Unknown
}

var (
	cogSceneIDRegex = regexp.MustCompile(
		`^S(?P<sensor>2)(?P<satellite>[AB])_` +
			`(?P<utm>[0-9]{1,2})(?P<lat>[CDEFGHJKLMNPQRSTUVWX])(?P<sq>[A-Z]{2})_` +
			`(?P<acquisitionYear>[0-9]{4})(?P<acquisitionMonth>[0-9]{2})(?P<acquisitionDay>[0-9]{2})_` +
			`(?P<num>[0-9]+)_` +
			`(?P<processingLevel>L[0-9AB]{2})$`)

	safeSceneIDRegex = regexp.MustCompile(
		`^S(?P<sensor>2)(?P<satellite>[AB])_MSI(?P<processingLevel>L[0-9AB]{2})_` +
			`(?P<acquisitionYear>[0-9]{4})(?P<acquisitionMonth>[0-9]{2})(?P<acquisitionDay>[0-9]{2})T[0-9]{6}_` +
			`N[0-9]{4}_R[0-9]{3}_` +
			`T(?P<utm>[0-9]{2})(?P<lat>[CDEFGHJKLMNPQRSTUVWX])(?P<sq>[A-Z]{2})_` +
			`[0-9]{8}T[0-9]{6}(\.SAFE)?$`)
)

// Info parses a Sentinel-2 scene identifier and returns its named fields.
// Both the COG form (S2A_29RKH_20200219_0_L2A) and the SAFE form
// (S2A_MSIL2A_20200219T110121_N0214_R094_T29RKH_20200219T135756) are accepted.
// Derived fields (_utm, _month, _day, _levelLow) carry the unpadded/lowercase
// variants used in storage path templates.
func Info(sceneName string) (SceneMetadata, error) {
	switch GetConstellationFromProductId(sceneName) {
	case Sentinel2:
		re := safeSceneIDRegex
		if cogSceneIDRegex.MatchString(sceneName) {
			re = cogSceneIDRegex
		}

		match := re.FindStringSubmatch(sceneName)
		metadata := SceneMetadata{"scene": sceneName}
		for i, name := range re.SubexpNames() {
			if name != "" {
				metadata[name] = match[i]
			}
		}
		if _, ok := metadata["num"]; !ok {
			// the SAFE form carries no sequence number
			metadata["num"] = "0"
		}

		metadata["_utm"] = strings.TrimLeft(metadata["utm"], "0")
		metadata["_month"] = strings.TrimLeft(metadata["acquisitionMonth"], "0")
		metadata["_day"] = strings.TrimLeft(metadata["acquisitionDay"], "0")
		metadata["_levelLow"] = strings.ToLower(metadata["processingLevel"])
		return metadata, nil
	}
	return nil, fmt.Errorf("Info: constellation not supported: %s", sceneName)
}

// Level returns the processing level field of the metadata
func (m SceneMetadata) Level() ProcessingLevel {
	return ProcessingLevel(m["processingLevel"])
}

// UTMZone returns the UTM zone field of the metadata as an integer
func (m SceneMetadata) UTMZone() (int, error) {
	zone, err := strconv.Atoi(m["utm"])
	if err != nil {
		return 0, fmt.Errorf("UTMZone: %w", err)
	}
	return zone, nil
}

// AcquisitionDate returns the acquisition date of the scene
func AcquisitionDate(sceneName string) (time.Time, error) {
	metadata, err := Info(sceneName)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse("20060102", fmt.Sprintf("%s%s%s", metadata["acquisitionYear"], metadata["acquisitionMonth"], metadata["acquisitionDay"]))
}

var bracketFieldRegex = regexp.MustCompile(`\{([^{}]+)\}`)

// BracketFields returns the names of all {placeholders} of the template
func BracketFields(template string) []string {
	var fields []string
	for _, match := range bracketFieldRegex.FindAllStringSubmatch(template, -1) {
		fields = append(fields, match[1])
	}
	return fields
}

/**
 * FormatBrackets replaces in <str> all {keys} of <infos> by the corresponding value
 * keys must be fields returned by Info (e.g. utm, lat, sq, acquisitionYear, _month...)
 */
func FormatBrackets(str string, infos ...SceneMetadata) string {
	for _, info := range infos {
		for k, v := range info {
			str = strings.ReplaceAll(str, "{"+k+"}", v)
		}
	}
	return str
}
