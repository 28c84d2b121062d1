//go:build windows

package process

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// IsRunningInDir checks whether an executable with the given name is
// running from the specified directory. Used to refuse patching while
// the game is open.
func IsRunningInDir(exeName, targetDir string) bool {
	expectedPath := filepath.Join(targetDir, exeName)
	expectedPath = strings.ToLower(filepath.Clean(expectedPath))

	// WMIC reports the full path of each matching process.
	cmd := exec.Command("wmic", "process", "where",
		fmt.Sprintf("name='%s'", exeName), "get", "ExecutablePath", "/format:list")
	output, err := cmd.Output()
	if err != nil {
		return false
	}

	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "ExecutablePath=") {
			continue
		}
		processPath := strings.TrimPrefix(line, "ExecutablePath=")
		processPath = strings.ToLower(filepath.Clean(processPath))
		if processPath == expectedPath {
			return true
		}
	}

	return false
}

// IsRunning checks whether any process with the given image name is
// running.
func IsRunning(processName string) bool {
	cmd := exec.Command("tasklist", "/FI", fmt.Sprintf("IMAGENAME eq %s", processName), "/NH")
	output, err := cmd.Output()
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(output)), strings.ToLower(processName))
}

// WaitForTermination polls until no process with the given image name
// is running. Returns true if the process terminated, false on
// timeout.
func WaitForTermination(processName string, timeout time.Duration) bool {
	start := time.Now()
	for time.Since(start) < timeout {
		if !IsRunning(processName) {
			return true
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}
