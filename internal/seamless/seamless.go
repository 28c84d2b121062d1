// Package seamless edits the Seamless Coop mod's settings file
// (SeamlessCoop/nrsc_settings.ini). Writes touch only the
// player_count line and keep every other byte intact, including the
// mod author's comments.
package seamless

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	ini "gopkg.in/ini.v1"

	"github.com/po1sontre/nightreign-launcher/internal/config"
)

const playerCountKey = "player_count"

// ReadPlayerCount parses the settings file and returns the configured
// session player count.
func ReadPlayerCount(fs afero.Fs, path string) (int, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return 0, fmt.Errorf("failed to read coop settings: %w", err)
	}

	file, err := ini.Load(data)
	if err != nil {
		return 0, fmt.Errorf("failed to parse coop settings: %w", err)
	}

	for _, section := range file.Sections() {
		if section.HasKey(playerCountKey) {
			count, err := section.Key(playerCountKey).Int()
			if err != nil {
				return 0, fmt.Errorf("failed to parse %s: %w", playerCountKey, err)
			}
			return count, nil
		}
	}

	return 0, fmt.Errorf("no %s entry in coop settings", playerCountKey)
}

// SetPlayerCount rewrites the player_count line in place. The rest of
// the file is preserved byte-for-byte, so the mod's documentation
// comments and formatting survive.
func SetPlayerCount(fs afero.Fs, path string, count int) error {
	if count < config.MinPlayers || count > config.MaxPlayers {
		return fmt.Errorf("player count %d out of range (%d-%d)", count, config.MinPlayers, config.MaxPlayers)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read coop settings: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	found := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, playerCountKey) {
			continue
		}
		rest := strings.TrimPrefix(trimmed, playerCountKey)
		if !strings.HasPrefix(strings.TrimSpace(rest), "=") {
			continue
		}
		indent := line[:strings.Index(line, playerCountKey)]
		lines[i] = fmt.Sprintf("%s%s = %d", indent, playerCountKey, count)
		found = true
		break
	}
	if !found {
		return fmt.Errorf("no %s entry in coop settings", playerCountKey)
	}

	if err := afero.WriteFile(fs, path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return fmt.Errorf("failed to write coop settings: %w", err)
	}

	return nil
}
