package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/po1sontre/nightreign-launcher/internal/audio"
	"github.com/po1sontre/nightreign-launcher/internal/steam"
)

func newControllerFixCmd(deps *Deps, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "controller-fix",
		Short: "Install the Steam controller configuration for the coop launcher",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := deps.settings(opts)
			audio.Init(opts.sounds(settings))

			resourceDir, err := deps.ResourceDir()
			if err != nil {
				return fmt.Errorf("failed to locate resources: %w", err)
			}

			steamDir := steam.FindDir(deps.Fs, settings.SteamDir)
			if err := steam.ApplyControllerFix(deps.Fs, resourceDir, steamDir); err != nil {
				audio.Failure()
				return err
			}

			audio.Success()
			fmt.Fprintf(cmd.OutOrStdout(), "Controller fix applied to %s\n", steamDir)
			return nil
		},
	}
}
