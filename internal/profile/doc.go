// Package profile loads publish profiles. A profile describes one publish
// pipeline: the project to build, where manifest information comes from,
// the handlers to run and how handler failures are treated.
//
// # Profile Format
//
// Profiles can be written in YAML or JSON format:
//
//	project: App/App.csproj
//	source: both
//	platform: x86
//	configuration: Release
//	force_rebuild: true
//	version: 1.4.0.0
//	handlers:
//	  - type: cleanup
//	  - type: zip
//	    options:
//	      output_dir: dist
//	  - type: gittag
//	    options:
//	      message: "Release {name} {version}"
//	policy:
//	  on_handler_error: fail
//	loggers: [log, metrics]
//
// Relative paths are resolved against the directory holding the profile.
//
// # Usage
//
//	loader := profile.NewLoader()
//	p, err := loader.Load("publish.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - ErrInvalidFormat: file is not valid YAML/JSON
//   - ErrFileNotFound: profile file does not exist
//   - ErrUnsupportedExt: unsupported file extension
//   - ErrMissingHandlerType: a handler entry has no type
//   - ErrUnknownHandler: a handler type is not recognised
//   - ErrUnknownLogger: a logger name is not recognised
package profile
