package version

import "fmt"

// Version numbers follow semantic versioning. VersionPrerelease is set
// to a non-empty value on any build that does not come from a release
// tag.
const (
	Version           = "0.2.0"
	VersionPrerelease = "dev"
)

// Get returns the full version string reported in logs and the status
// endpoint.
func Get() string {
	if VersionPrerelease != "" {
		return fmt.Sprintf("%s-%s", Version, VersionPrerelease)
	}
	return Version
}
