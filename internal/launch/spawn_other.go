//go:build !windows

package launch

import (
	"fmt"
	"os/exec"
)

// spawn starts the executable. There is no UAC equivalent worth
// driving here; an elevated request is refused rather than silently
// downgraded.
func spawn(path, workDir string, elevated bool) error {
	if elevated {
		return ErrElevationUnsupported
	}

	cmd := exec.Command(path)
	cmd.Dir = workDir
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start process: %w", err)
	}
	return cmd.Process.Release()
}

// IsElevated reports whether the process runs as root. Only used for
// logging off Windows.
func IsElevated() bool {
	return false
}
