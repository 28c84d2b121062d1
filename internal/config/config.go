// Package config persists the launcher settings. Loading never fails:
// a missing or malformed file yields the defaults so the launcher
// always starts. Saving is atomic (write to a temp file, then rename).
package config

import (
	"fmt"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/po1sontre/nightreign-launcher/internal/paths"
)

// Player count bounds supported by Seamless Coop sessions.
const (
	MinPlayers = 1
	MaxPlayers = 3
)

// Settings is the persisted launcher configuration.
type Settings struct {
	GameDir     string `toml:"game_dir"`
	SteamDir    string `toml:"steam_dir"`
	Theme       Theme  `toml:"theme"`
	PlayerCount int    `toml:"player_count"`
	Sounds      bool   `toml:"sounds"`
	Debug       bool   `toml:"debug"`
}

// Defaults returns the settings used on first run and as the fallback
// for anything unreadable.
func Defaults() Settings {
	return Settings{
		GameDir:     paths.DefaultGameDir(),
		SteamDir:    paths.DefaultSteamDir(),
		Theme:       ThemeTeal,
		PlayerCount: MaxPlayers,
		Sounds:      true,
	}
}

// Load reads settings from path. Absent or malformed files are not
// errors: the defaults come back and a warning is logged. Invalid
// values are coerced to their defaults.
func Load(fs afero.Fs, path string) Settings {
	defaults := Defaults()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("no settings file, using defaults")
		return defaults
	}

	// Start with defaults, then unmarshal file values on top, so
	// fields missing from the file keep their default values.
	settings := defaults
	if err := toml.Unmarshal(data, &settings); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("malformed settings file, using defaults")
		return defaults
	}

	return sanitize(settings, defaults)
}

// Save writes settings to path, creating parent directories as
// needed. The file is written next to its final location and renamed
// into place so a crash never leaves a truncated settings file.
func Save(fs afero.Fs, path string, settings Settings) error {
	data, err := toml.Marshal(&settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("failed to replace settings file: %w", err)
	}

	return nil
}

func sanitize(settings, defaults Settings) Settings {
	if !settings.Theme.Valid() {
		log.Warn().Str("theme", string(settings.Theme)).Msg("unknown theme, using default")
		settings.Theme = defaults.Theme
	}
	if settings.PlayerCount < MinPlayers || settings.PlayerCount > MaxPlayers {
		log.Warn().Int("player_count", settings.PlayerCount).Msg("player count out of range, using default")
		settings.PlayerCount = defaults.PlayerCount
	}
	if settings.GameDir == "" {
		settings.GameDir = defaults.GameDir
	}
	if settings.SteamDir == "" {
		settings.SteamDir = defaults.SteamDir
	}
	return settings
}
