package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/po1sontre/nightreign-launcher/internal/bundle"
	"github.com/po1sontre/nightreign-launcher/internal/version"
)

func newVersionCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the launcher and patch bundle versions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "nightreign-launcher %s\n", version.Version)

			resourceDir, err := deps.ResourceDir()
			if err != nil {
				return nil
			}
			installed, err := bundle.LoadLocal(resourceDir)
			if err == nil && installed.Tag != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "patch bundle %s\n", installed.Tag)
			}
			return nil
		},
	}
}
