// Package handlers provides the bundled publish handlers.
//
// Input handlers run before the build:
//   - Cleanup removes stale publish output
//
// Output handlers run after the build and manifest resolution:
//   - ZipPackage archives the publish directory
//   - CopyDeploy copies the publish directory to a deployment location
//   - GitTag tags the project repository with the published version
//
// InfoFile runs in both phases and writes a YAML summary of the release.
package handlers
