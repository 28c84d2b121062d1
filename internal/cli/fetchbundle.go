package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/po1sontre/nightreign-launcher/internal/bundle"
	"github.com/po1sontre/nightreign-launcher/internal/github"
)

func newFetchBundleCmd(deps *Deps) *cobra.Command {
	var (
		checkOnly bool
		owner     string
		repo      string
	)

	cmd := &cobra.Command{
		Use:   "fetch-bundle",
		Short: "Download the latest patch bundle from GitHub",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resourceDir, err := deps.ResourceDir()
			if err != nil {
				return fmt.Errorf("failed to locate resources: %w", err)
			}

			var client *github.Client
			if owner != bundle.DefaultOwner || repo != bundle.DefaultRepo {
				client = github.NewClient(owner, repo, nil)
			}
			updater := bundle.NewUpdater(resourceDir, client)

			release, newer, err := updater.Check()
			if err != nil {
				return err
			}
			if !newer {
				fmt.Fprintln(cmd.OutOrStdout(), "Patch bundle is up to date")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "New patch bundle available: %s\n", release.TagName)
			if checkOnly {
				return nil
			}

			out := cmd.OutOrStdout()
			err = updater.Apply(release, func(current, total int, filename string) {
				fmt.Fprintf(out, "[%d/%d] %s\n", current, total, filename)
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Patch bundle updated to %s\n", release.TagName)
			if release.Body != "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, release.Body)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "only check whether a newer bundle exists")
	cmd.Flags().StringVar(&owner, "owner", bundle.DefaultOwner, "GitHub repository owner")
	cmd.Flags().StringVar(&repo, "repo", bundle.DefaultRepo, "GitHub repository name")

	return cmd
}
