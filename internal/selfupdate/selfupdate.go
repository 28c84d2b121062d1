// Package selfupdate replaces the launcher executable with the latest
// released build. The swap is the usual rename dance: move the running
// binary aside, write the new one, and clean up the old file on the
// next start.
package selfupdate

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/po1sontre/nightreign-launcher/internal/download"
	"github.com/po1sontre/nightreign-launcher/internal/github"
)

// AssetName returns the release asset holding the launcher binary for
// this platform.
func AssetName() string {
	if runtime.GOOS == "windows" {
		return "nightreign-launcher.exe"
	}
	return "nightreign-launcher-" + runtime.GOOS
}

// Check fetches the latest launcher release and reports whether it is
// newer than currentVersion.
func Check(client *github.Client, currentVersion string) (*github.Release, bool, error) {
	release, err := client.LatestRelease()
	if err != nil {
		return nil, false, err
	}

	remote := strings.TrimPrefix(release.TagName, "v")
	current := strings.TrimPrefix(currentVersion, "v")
	return release, remote != "" && remote != current, nil
}

// Apply downloads the release binary and swaps it in for the running
// executable. The replaced binary keeps running; the new one is used
// on the next start.
func Apply(release *github.Release) error {
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	url := release.AssetURL(AssetName())
	tempPath, err := download.ToTemp(url, "nightreign-launcher-", nil)
	if err != nil {
		return fmt.Errorf("failed to download launcher: %w", err)
	}
	defer func() {
		_ = os.Remove(tempPath)
	}()

	info, err := os.Stat(tempPath)
	if err != nil {
		return fmt.Errorf("failed to stat download: %w", err)
	}
	// A launcher binary under 1MB is a truncated or error response.
	if info.Size() < 1024*1024 {
		return fmt.Errorf("downloaded binary too small (%d bytes)", info.Size())
	}

	data, err := os.ReadFile(tempPath)
	if err != nil {
		return fmt.Errorf("failed to read download: %w", err)
	}

	oldExe := exePath + ".old"
	_ = os.Remove(oldExe)
	if err := os.Rename(exePath, oldExe); err != nil {
		return fmt.Errorf("failed to move current executable aside: %w", err)
	}

	if err := os.WriteFile(exePath, data, 0o755); err != nil {
		_ = os.Rename(oldExe, exePath)
		return fmt.Errorf("failed to write new executable: %w", err)
	}

	log.Info().Str("tag", release.TagName).Msg("launcher updated")
	return nil
}

// CleanupOld removes the .old file a previous self-update left
// behind. Called on every start; failures are ignored because the old
// binary may still be running.
func CleanupOld() {
	exePath, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Remove(exePath + ".old")
}
