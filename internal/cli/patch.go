package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/po1sontre/nightreign-launcher/internal/audio"
	"github.com/po1sontre/nightreign-launcher/internal/deploy"
	"github.com/po1sontre/nightreign-launcher/internal/paths"
)

// gameExitTimeout bounds how long patch waits for a running game to
// shut down.
const gameExitTimeout = 5 * time.Minute

func newPatchCmd(deps *Deps, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "patch",
		Short: "Copy the bundled patch files into the game directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := deps.settings(opts)
			audio.Init(opts.sounds(settings))

			resourceDir, err := deps.ResourceDir()
			if err != nil {
				return fmt.Errorf("failed to locate resources: %w", err)
			}

			if deps.GameRunning != nil && deps.GameRunning(paths.GameExe, settings.GameDir) {
				ok, err := confirm(opts, cmd.InOrStdin(), cmd.OutOrStdout(),
					"The game appears to be running from this directory. Wait for it to exit and patch?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}

				fmt.Fprintln(cmd.OutOrStdout(), "Waiting for the game to exit...")
				if !deps.WaitForExit(paths.GameExe, gameExitTimeout) {
					audio.Failure()
					return fmt.Errorf("the game is still running; close it and run 'patch' again")
				}
			}

			if err := deploy.Patch(deps.Fs, resourceDir, settings.GameDir); err != nil {
				audio.Failure()
				return err
			}

			missing, err := deploy.Verify(deps.Fs, settings.GameDir)
			if err != nil {
				return err
			}
			if len(missing) > 0 {
				audio.Failure()
				return fmt.Errorf("patch incomplete, still missing: %s", strings.Join(missing, ", "))
			}

			audio.Success()
			fmt.Fprintln(cmd.OutOrStdout(), "Game patched successfully")
			return nil
		},
	}
}

func newVerifyCmd(deps *Deps, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that the game directory contains every patched file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := deps.settings(opts)

			missing, err := deploy.Verify(deps.Fs, settings.GameDir)
			if err != nil {
				return err
			}

			if len(missing) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Game directory is fully patched")
				return nil
			}

			for _, item := range missing {
				fmt.Fprintf(cmd.OutOrStdout(), "missing: %s\n", item)
			}
			return fmt.Errorf("%d item(s) missing; run 'patch' to fix", len(missing))
		},
	}
}
