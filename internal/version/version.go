// Package version holds build information for automute.
package version

// Version is overridden at build time with -ldflags "-X ...version.Version=v1.2.3".
var Version = "development"

// Commit is the git commit the binary was built from.
var Commit = "unknown"

// String returns the version, suffixed with the commit when it is known.
func String() string {
	if Commit == "" || Commit == "unknown" {
		return Version
	}
	return Version + "+" + Commit
}
