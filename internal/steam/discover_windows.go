//go:build windows

package steam

import (
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows/registry"
)

// discoverDir locates the Steam installation through the registry.
func discoverDir() string {
	keys := []string{
		`SOFTWARE\Wow6432Node\Valve\Steam`,
		`SOFTWARE\Valve\Steam`,
	}

	for _, path := range keys {
		key, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
		if err != nil {
			continue
		}

		installPath, _, err := key.GetStringValue("InstallPath")
		if closeErr := key.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing registry key")
		}
		if err != nil {
			continue
		}

		if _, statErr := os.Stat(installPath); statErr == nil {
			return installPath
		}
	}

	return ""
}
