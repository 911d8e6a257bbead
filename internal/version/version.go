package version

// Version is the current prmate version.
// It must be bumped on every release.
const Version = "0.2.0"

// FullVersion returns the version with the v prefix
func FullVersion() string {
	return "v" + Version
}
