//go:build !windows

package process

import "time"

// IsRunningInDir reports whether an executable with the given name is
// running from the specified directory.
func IsRunningInDir(_, _ string) bool {
	return false
}

// IsRunning reports whether any process with the given image name is
// running.
func IsRunning(_ string) bool {
	return false
}

// WaitForTermination polls until no process with the given image name
// is running.
func WaitForTermination(_ string, _ time.Duration) bool {
	return true
}
