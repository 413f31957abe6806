package profile

import "errors"

// Sentinel errors for the profile package
var (
	// ErrInvalidFormat indicates the profile file is not valid YAML or JSON
	ErrInvalidFormat = errors.New("profile must be valid YAML or JSON")

	// ErrFileNotFound indicates the profile file does not exist
	ErrFileNotFound = errors.New("profile file not found")

	// ErrUnsupportedExt indicates an unsupported file extension
	ErrUnsupportedExt = errors.New("unsupported file extension (use .yaml, .yml, or .json)")

	// ErrMissingHandlerType indicates a handler entry without a type
	ErrMissingHandlerType = errors.New("handler type cannot be empty")

	// ErrUnknownHandler indicates a handler type that is not bundled
	ErrUnknownHandler = errors.New("unknown handler type")

	// ErrUnknownLogger indicates a logger name that is not bundled
	ErrUnknownLogger = errors.New("unknown logger")
)
