// Package steam applies the controller configuration fix and locates
// the Steam installation. The fix places the bundled controller
// template files where Steam picks them up, which lets the game's
// Steam Input profile work with the renamed Seamless Coop executable.
package steam

import (
	"fmt"
	"path/filepath"

	"github.com/andygrunwald/vdf"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/po1sontre/nightreign-launcher/internal/deploy"
	"github.com/po1sontre/nightreign-launcher/internal/fsutil"
	"github.com/po1sontre/nightreign-launcher/internal/paths"
)

const (
	// TemplatesSource is the bundled controller template directory.
	TemplatesSource = "templates"

	templatesDest = "controller_base/templates"
	configDest    = "controller_config"
)

// ApplyControllerFix copies the bundled controller templates into the
// Steam install and places the game actions VDF in Steam's controller
// config directory. The VDF is parsed before anything is written so a
// corrupt bundle is rejected up front.
func ApplyControllerFix(fs afero.Fs, resourceDir, steamDir string) error {
	if ok, err := afero.DirExists(fs, steamDir); err != nil || !ok {
		return &deploy.Error{Op: "controller-fix", Path: steamDir, Err: deploy.ErrBadGameDir}
	}

	templates := filepath.Join(resourceDir, TemplatesSource)
	if ok, err := afero.DirExists(fs, templates); err != nil || !ok {
		return &deploy.Error{Op: "controller-fix", Path: templates, Err: deploy.ErrMissingSource}
	}

	actionsPath := filepath.Join(resourceDir, paths.ActionsVDF)
	if err := validateActionsFile(fs, actionsPath); err != nil {
		return &deploy.Error{Op: "controller-fix", Path: actionsPath, Err: err}
	}

	templatesDir := filepath.Join(steamDir, filepath.FromSlash(templatesDest))
	configDir := filepath.Join(steamDir, configDest)
	for _, dir := range []string{templatesDir, configDir} {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return &deploy.Error{Op: "controller-fix", Path: dir, Err: err}
		}
	}

	if err := fsutil.CopyContents(fs, templates, templatesDir); err != nil {
		return &deploy.Error{Op: "controller-fix", Path: templatesDir, Err: err}
	}
	if err := fsutil.CopyFile(fs, actionsPath, filepath.Join(configDir, paths.ActionsVDF)); err != nil {
		return &deploy.Error{Op: "controller-fix", Path: configDir, Err: err}
	}

	log.Info().Str("steam_dir", steamDir).Msg("controller fix applied")
	return nil
}

// validateActionsFile parses the game actions VDF to make sure the
// bundled template is intact before it is deployed.
func validateActionsFile(fs afero.Fs, path string) error {
	f, err := fs.Open(path)
	if err != nil {
		return deploy.ErrMissingSource
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing actions file")
		}
	}()

	m, err := vdf.NewParser(f).Parse()
	if err != nil {
		return fmt.Errorf("failed to parse actions file: %w", err)
	}
	if len(m) == 0 {
		return fmt.Errorf("actions file is empty")
	}
	return nil
}

// FindDir returns the Steam directory to use: the configured one when
// it exists, otherwise a platform-discovered install, otherwise the
// platform default.
func FindDir(fs afero.Fs, configured string) string {
	if configured != "" {
		if ok, err := afero.DirExists(fs, configured); err == nil && ok {
			return configured
		}
		log.Warn().Str("path", configured).Msg("configured Steam directory not found")
	}

	if discovered := discoverDir(); discovered != "" {
		if ok, err := afero.DirExists(fs, discovered); err == nil && ok {
			log.Debug().Str("path", discovered).Msg("discovered Steam installation")
			return discovered
		}
	}

	return paths.DefaultSteamDir()
}
