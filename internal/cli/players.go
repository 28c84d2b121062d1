package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/po1sontre/nightreign-launcher/internal/config"
	"github.com/po1sontre/nightreign-launcher/internal/paths"
	"github.com/po1sontre/nightreign-launcher/internal/seamless"
)

func newPlayersCmd(deps *Deps, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "players [count]",
		Short: "Show or set the coop session player count (1-3)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := deps.settings(opts)
			iniPath := paths.SeamlessSettingsPath(settings.GameDir)

			if len(args) == 0 {
				count, err := seamless.ReadPlayerCount(deps.Fs, iniPath)
				if err != nil {
					// Fall back to the stored preference when the game
					// has not been patched yet.
					fmt.Fprintf(cmd.OutOrStdout(), "%d (configured; coop settings not readable)\n", settings.PlayerCount)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), count)
				return nil
			}

			count, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid player count: %s", args[0])
			}
			if count < config.MinPlayers || count > config.MaxPlayers {
				return fmt.Errorf("player count must be between %d and %d", config.MinPlayers, config.MaxPlayers)
			}

			settings.PlayerCount = count
			if err := config.Save(deps.Fs, deps.ConfigPath, settings); err != nil {
				return err
			}

			// Push into the coop settings too when the game is already
			// patched; otherwise launch will do it.
			if ok, _ := afero.Exists(deps.Fs, iniPath); ok {
				if err := seamless.SetPlayerCount(deps.Fs, iniPath, count); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Player count set to %d\n", count)
			return nil
		},
	}
}
