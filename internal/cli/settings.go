package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/po1sontre/nightreign-launcher/internal/config"
)

func newSettingsCmd(deps *Deps, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change launcher settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := deps.settings(opts)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "game_dir\t%s\n", settings.GameDir)
			fmt.Fprintf(w, "steam_dir\t%s\n", settings.SteamDir)
			fmt.Fprintf(w, "theme\t%s (%s)\n", settings.Theme, settings.Theme.Hex())
			fmt.Fprintf(w, "player_count\t%d\n", settings.PlayerCount)
			fmt.Fprintf(w, "sounds\t%t\n", settings.Sounds)
			fmt.Fprintf(w, "debug\t%t\n", settings.Debug)
			return w.Flush()
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting and persist it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load without overrides so a --game-dir flag is not
			// accidentally persisted.
			settings := config.Load(deps.Fs, deps.ConfigPath)

			key, value := args[0], args[1]
			if err := applySetting(&settings, key, value); err != nil {
				return err
			}
			if err := config.Save(deps.Fs, deps.ConfigPath, settings); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s\n", key, value)
			return nil
		},
	}

	cmd.AddCommand(show, set)
	return cmd
}

func applySetting(settings *config.Settings, key, value string) error {
	switch key {
	case "game_dir":
		settings.GameDir = value
	case "steam_dir":
		settings.SteamDir = value
	case "theme":
		theme := config.Theme(value)
		if !theme.Valid() {
			return fmt.Errorf("unknown theme %q (one of: %v)", value, config.Themes())
		}
		settings.Theme = theme
	case "player_count":
		count, err := strconv.Atoi(value)
		if err != nil || count < config.MinPlayers || count > config.MaxPlayers {
			return fmt.Errorf("player_count must be a number between %d and %d", config.MinPlayers, config.MaxPlayers)
		}
		settings.PlayerCount = count
	case "sounds", "debug":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false", key)
		}
		if key == "sounds" {
			settings.Sounds = enabled
		} else {
			settings.Debug = enabled
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
