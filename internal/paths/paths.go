// Package paths resolves the fixed file layout the launcher works
// with: bundled resources next to the executable, per-user config and
// state directories, and the well-known game file names.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under the user's config and
// state roots.
const AppName = "nightreign-launcher"

// Well-known file and directory names inside the game and resource
// layout.
const (
	GameExe          = "nrsc_launcher.exe"
	UpdaterExe       = "update.exe"
	SeamlessDir      = "SeamlessCoop"
	SeamlessSettings = "nrsc_settings.ini"
	ActionsVDF       = "game_actions_480.vdf"
	ConfigFile       = "config.toml"
	LogFile          = "launcher.log"
)

// ResourceDir returns the directory holding the bundled resources
// (online_patch, templates, mods, ...), which sit next to the
// launcher executable.
func ResourceDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// ConfigPath returns the path of the launcher settings file.
func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, ConfigFile)
}

// LogPath returns the path of the rotating log file.
func LogPath() string {
	return filepath.Join(xdg.StateHome, AppName, LogFile)
}

// BackupRoot returns the directory that holds timestamped save
// backups.
func BackupRoot() string {
	return filepath.Join(xdg.DataHome, AppName, "backups")
}

// SeamlessSettingsPath returns the Seamless Coop INI path inside a
// game directory.
func SeamlessSettingsPath(gameDir string) string {
	return filepath.Join(gameDir, SeamlessDir, SeamlessSettings)
}

// GameExePath returns the game executable path inside a game
// directory.
func GameExePath(gameDir string) string {
	return filepath.Join(gameDir, GameExe)
}

// Denormalize converts a forward-slash path (as found in archive
// entries) to platform separators.
func Denormalize(p string) string {
	return strings.ReplaceAll(p, "/", string(filepath.Separator))
}
