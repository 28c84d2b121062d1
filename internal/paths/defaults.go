package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultGameDir returns the conventional install location of the
// game for the current platform. The directory is not guaranteed to
// exist; callers check before using it.
func DefaultGameDir() string {
	if runtime.GOOS == "windows" {
		return `C:\Games\ELDEN RING NIGHTREIGN\Game`
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	// Proton installs under the Steam library.
	return filepath.Join(home, ".steam", "steam", "steamapps", "common", "ELDEN RING NIGHTREIGN", "Game")
}

// DefaultSteamDir returns the conventional Steam install location for
// the current platform. On Windows the registry lookup in the steam
// package takes precedence; this is the fallback.
func DefaultSteamDir() string {
	switch runtime.GOOS {
	case "windows":
		return `C:\Program Files (x86)\Steam`
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, "Library", "Application Support", "Steam")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, ".steam", "steam")
	}
}

// DefaultSaveDir returns the directory the game writes save files to.
func DefaultSaveDir() string {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return ""
		}
		return filepath.Join(appData, "Nightreign")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	// Wine prefix location used by Proton.
	return filepath.Join(home, ".steam", "steam", "steamapps", "compatdata", "2622380",
		"pfx", "drive_c", "users", "steamuser", "AppData", "Roaming", "Nightreign")
}
