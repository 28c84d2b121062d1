package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/po1sontre/nightreign-launcher/internal/audio"
	"github.com/po1sontre/nightreign-launcher/internal/launch"
	"github.com/po1sontre/nightreign-launcher/internal/paths"
	"github.com/po1sontre/nightreign-launcher/internal/seamless"
)

func newLaunchCmd(deps *Deps, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "launch",
		Short: "Start the game with the configured player count",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := deps.settings(opts)
			audio.Init(opts.sounds(settings))

			if ok, err := afero.DirExists(deps.Fs, settings.GameDir); err != nil || !ok {
				return fmt.Errorf("game directory not found: %s (set it with 'settings set game_dir <path>')", settings.GameDir)
			}

			// The coop settings must hold the player count before the
			// game reads them.
			iniPath := paths.SeamlessSettingsPath(settings.GameDir)
			if err := seamless.SetPlayerCount(deps.Fs, iniPath, settings.PlayerCount); err != nil {
				return fmt.Errorf("failed to set player count before launch: %w", err)
			}

			if err := launch.Game(settings.GameDir); err != nil {
				audio.Failure()
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Game launched with %d player(s)\n", settings.PlayerCount)
			return nil
		},
	}
}

func newUpdateCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Run the bundled external updater",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resourceDir, err := deps.ResourceDir()
			if err != nil {
				return fmt.Errorf("failed to locate resources: %w", err)
			}
			if err := launch.Updater(resourceDir); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updater started")
			return nil
		},
	}
}
