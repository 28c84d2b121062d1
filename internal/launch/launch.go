// Package launch spawns the game and updater executables. Processes
// are fire-and-forget: the launcher reports spawn failures but never
// monitors or restarts what it started.
package launch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/po1sontre/nightreign-launcher/internal/paths"
)

// Error reasons reported for launch failures.
var (
	ErrMissingExecutable    = errors.New("executable not found")
	ErrElevationUnsupported = errors.New("elevation not supported on this platform")
)

// Error is a failure to spawn an executable.
type Error struct {
	Err  error
	Path string
}

func (e *Error) Error() string {
	return fmt.Sprintf("launch %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Start spawns the executable at path with the given working
// directory and does not wait for it. With elevated set, the spawn
// goes through the platform's elevation mechanism.
func Start(path, workDir string, elevated bool) error {
	if _, err := os.Stat(path); err != nil {
		return &Error{Path: path, Err: ErrMissingExecutable}
	}

	log.Info().Str("path", path).Bool("elevated", elevated).Msg("starting process")

	if err := spawn(path, workDir, elevated); err != nil {
		return &Error{Path: path, Err: err}
	}
	return nil
}

// Game starts the game executable from the game directory, elevated.
// The Seamless Coop launcher needs administrator rights to inject
// into the game process.
func Game(gameDir string) error {
	exe := paths.GameExePath(gameDir)
	return Start(exe, filepath.Dir(exe), true)
}

// Updater starts the bundled external updater.
func Updater(resourceDir string) error {
	exe := filepath.Join(resourceDir, paths.UpdaterExe)
	return Start(exe, resourceDir, false)
}
