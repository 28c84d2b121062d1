package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/po1sontre/nightreign-launcher/internal/backup"
	"github.com/po1sontre/nightreign-launcher/internal/paths"
)

func newBackupCmd(deps *Deps, opts *options) *cobra.Command {
	var saveDir string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage save-file backups",
	}
	cmd.PersistentFlags().StringVar(&saveDir, "save-dir", "", "override the save directory")

	resolveSaveDir := func() string {
		if saveDir != "" {
			return saveDir
		}
		return paths.DefaultSaveDir()
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Snapshot the save directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager := backup.NewManager(deps.Fs, deps.BackupRoot)
			record, err := manager.Create(resolveSaveDir())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup created: %s\n", record.Name())
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List backups, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager := backup.NewManager(deps.Fs, deps.BackupRoot)
			records, err := manager.List()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No backups")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIMESTAMP\tPATH")
			for _, record := range records {
				fmt.Fprintf(w, "%s\t%s\n", record.Name(), record.Path)
			}
			return w.Flush()
		},
	}

	restore := &cobra.Command{
		Use:   "restore [timestamp]",
		Short: "Restore a backup over the live save directory (latest by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := backup.Latest
			if len(args) == 1 {
				name = args[0]
			}

			dest := resolveSaveDir()
			ok, err := confirm(opts, cmd.InOrStdin(), cmd.OutOrStdout(),
				fmt.Sprintf("Overwrite the saves in %s with backup %s?", dest, name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}

			manager := backup.NewManager(deps.Fs, deps.BackupRoot)
			if err := manager.Restore(name, dest); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Backup restored")
			return nil
		},
	}

	cmd.AddCommand(create, list, restore)
	return cmd
}
