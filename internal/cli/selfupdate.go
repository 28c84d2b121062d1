package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/po1sontre/nightreign-launcher/internal/bundle"
	"github.com/po1sontre/nightreign-launcher/internal/github"
	"github.com/po1sontre/nightreign-launcher/internal/selfupdate"
	"github.com/po1sontre/nightreign-launcher/internal/version"
)

func newSelfUpdateCmd() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "self-update",
		Short: "Update the launcher itself to the latest release",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := github.NewClient(bundle.DefaultOwner, bundle.DefaultRepo, nil)

			release, newer, err := selfupdate.Check(client, version.Version)
			if err != nil {
				return err
			}
			if !newer {
				fmt.Fprintln(cmd.OutOrStdout(), "Launcher is up to date")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "New launcher release: %s\n", release.TagName)
			if checkOnly {
				return nil
			}

			if err := selfupdate.Apply(release); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Launcher updated; the new version runs on next start")
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "only check whether a newer launcher exists")
	return cmd
}
