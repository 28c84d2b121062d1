// Package version holds the launcher's own version string.
package version

// Version is set at build time via
// -ldflags "-X .../internal/version.Version=vX.Y.Z".
var Version = "dev"
