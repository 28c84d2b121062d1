//go:build windows

package launch

import (
	"fmt"
	"os/exec"

	"golang.org/x/sys/windows"
)

// spawn starts the executable. Elevated spawns go through
// ShellExecute with the "runas" verb, which triggers the UAC prompt
// when the current process is not already elevated.
func spawn(path, workDir string, elevated bool) error {
	if !elevated || IsElevated() {
		cmd := exec.Command(path)
		cmd.Dir = workDir
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("failed to start process: %w", err)
		}
		// Fire-and-forget: release the handle so the child keeps
		// running after the launcher exits.
		return cmd.Process.Release()
	}

	verb, err := windows.UTF16PtrFromString("runas")
	if err != nil {
		return fmt.Errorf("failed to encode verb: %w", err)
	}
	exe, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return fmt.Errorf("failed to encode path: %w", err)
	}
	cwd, err := windows.UTF16PtrFromString(workDir)
	if err != nil {
		return fmt.Errorf("failed to encode working directory: %w", err)
	}

	if err := windows.ShellExecute(0, verb, exe, nil, cwd, windows.SW_SHOWNORMAL); err != nil {
		return fmt.Errorf("elevated start failed: %w", err)
	}
	return nil
}

// IsElevated reports whether the current process runs with
// administrator rights.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
