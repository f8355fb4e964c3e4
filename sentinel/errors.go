package sentinel

import (
	"fmt"
)

// ErrUnsupportedProcessingLevel is returned at construction time when no reader
// exists for the processing level of the scene
type ErrUnsupportedProcessingLevel struct {
	Level string
	Scene string
}

func (e ErrUnsupportedProcessingLevel) Error() string {
	return fmt.Sprintf("processing level %s of scene %s is not supported", e.Level, e.Scene)
}

// ErrMissingMetadataField is returned when a placeholder of the prefix template
// has no corresponding scene metadata field
type ErrMissingMetadataField struct {
	Field    string
	Template string
}

func (e ErrMissingMetadataField) Error() string {
	return fmt.Sprintf("scene metadata has no field %q required by the prefix template %q", e.Field, e.Template)
}

// ErrInvalidBandName is returned by BandURL for bands that are not available
type ErrInvalidBandName struct {
	Band       string
	ValidBands []string
}

func (e ErrInvalidBandName) Error() string {
	return fmt.Sprintf("%s is not a valid band name. Valid bands: %v", e.Band, e.ValidBands)
}
