// Package buildmeta carries release metadata stamped at link time with
// -ldflags "-X github.com/geostack-dev/geostack/internal/buildmeta.Version=...".
// Unstamped binaries identify as a dev build.
package buildmeta

//nolint:gochecknoglobals
var (
	// Version is the release version, or "dev" for local builds.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
