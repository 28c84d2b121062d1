// Package cli wires the launcher's operations into a cobra command
// tree. Every command talks to the rest of the code through an
// explicit Deps value so tests can run the full command surface
// against an in-memory filesystem.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/po1sontre/nightreign-launcher/internal/config"
	"github.com/po1sontre/nightreign-launcher/internal/logging"
	"github.com/po1sontre/nightreign-launcher/internal/paths"
	"github.com/po1sontre/nightreign-launcher/internal/process"
)

// Deps carries everything the commands touch outside their own
// logic. Tests swap in a MemMapFs and buffers.
type Deps struct {
	Fs          afero.Fs
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	ConfigPath  string
	BackupRoot  string
	ResourceDir func() (string, error)
	InitLogging func(verbose, debug bool) error
	GameRunning func(exeName, dir string) bool
	WaitForExit func(exeName string, timeout time.Duration) bool
}

// DefaultDeps returns the production dependency set.
func DefaultDeps() *Deps {
	return &Deps{
		Fs:          afero.NewOsFs(),
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		ConfigPath:  paths.ConfigPath(),
		BackupRoot:  paths.BackupRoot(),
		ResourceDir: paths.ResourceDir,
		InitLogging: func(verbose, debug bool) error {
			return logging.Init(paths.LogPath(), verbose, debug)
		},
		GameRunning: process.IsRunningInDir,
		WaitForExit: process.WaitForTermination,
	}
}

// options are the global flag values shared by all commands.
type options struct {
	gameDir    string
	steamDir   string
	configPath string
	verbose    bool
	quiet      bool
	yes        bool
}

// sounds reports whether feedback sounds should play: the stored
// preference, unless --quiet overrides it.
func (o *options) sounds(settings config.Settings) bool {
	return settings.Sounds && !o.quiet
}

// settings loads persisted settings and applies command-line
// overrides on top.
func (d *Deps) settings(opts *options) config.Settings {
	settings := config.Load(d.Fs, d.ConfigPath)
	if opts.gameDir != "" {
		settings.GameDir = opts.gameDir
	}
	if opts.steamDir != "" {
		settings.SteamDir = opts.steamDir
	}
	return settings
}

// NewRootCmd returns the root cobra command for the launcher CLI.
func NewRootCmd(deps *Deps) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "nightreign-launcher",
		Short:         "Patch, launch, and manage ELDEN RING NIGHTREIGN with Seamless Coop",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.configPath != "" {
				deps.ConfigPath = opts.configPath
			}
			if deps.InitLogging == nil {
				return nil
			}
			settings := config.Load(deps.Fs, deps.ConfigPath)
			return deps.InitLogging(opts.verbose, settings.Debug)
		},
	}

	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)
	if deps.Stdin != nil {
		cmd.SetIn(deps.Stdin)
	}

	cmd.PersistentFlags().StringVar(&opts.gameDir, "game-dir", "", "override the configured game directory")
	cmd.PersistentFlags().StringVar(&opts.steamDir, "steam-dir", "", "override the configured Steam directory")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "use an alternate settings file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to the console as well as the log file")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress feedback sounds")
	cmd.PersistentFlags().BoolVarP(&opts.yes, "yes", "y", false, "answer yes to confirmation prompts")

	cmd.AddCommand(newLaunchCmd(deps, opts))
	cmd.AddCommand(newPatchCmd(deps, opts))
	cmd.AddCommand(newVerifyCmd(deps, opts))
	cmd.AddCommand(newControllerFixCmd(deps, opts))
	cmd.AddCommand(newPlayersCmd(deps, opts))
	cmd.AddCommand(newBackupCmd(deps, opts))
	cmd.AddCommand(newUpdateCmd(deps))
	cmd.AddCommand(newFetchBundleCmd(deps))
	cmd.AddCommand(newSelfUpdateCmd())
	cmd.AddCommand(newSettingsCmd(deps, opts))
	cmd.AddCommand(newVersionCmd(deps))

	return cmd
}

// Execute runs the CLI with the production dependency set and returns
// the process exit code.
func Execute() int {
	root := NewRootCmd(DefaultDeps())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
