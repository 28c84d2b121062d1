//go:build !windows

package steam

// discoverDir has no registry to consult off Windows; the well-known
// paths handled by the caller are the best available guess.
func discoverDir() string {
	return ""
}
