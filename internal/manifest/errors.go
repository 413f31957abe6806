package manifest

import "errors"

// Sentinel errors for the manifest package
var (
	// ErrProjectNotFound indicates the project file is missing or unset
	ErrProjectNotFound = errors.New("project file not found")

	// ErrDescriptorNotFound indicates no deployment descriptor could be located
	ErrDescriptorNotFound = errors.New("deployment descriptor not found")

	// ErrNoAnnotationCarriers indicates the project declares no annotation files
	ErrNoAnnotationCarriers = errors.New("project declares no assembly info files")

	// ErrMissingElement indicates a required descriptor element is absent
	ErrMissingElement = errors.New("required element missing")

	// ErrInvalidFormat indicates a document could not be parsed
	ErrInvalidFormat = errors.New("invalid document format")

	// ErrSidecarNotFound indicates the sidecar file does not exist
	ErrSidecarNotFound = errors.New("manifest sidecar not found")

	// ErrNoSidecarLocation indicates neither descriptor nor project path is known
	ErrNoSidecarLocation = errors.New("no location for manifest sidecar")
)
