// Package bundle keeps the deployed patch bundle up to date. The
// bundle is the set of resource directories shipped next to the
// launcher; new revisions are published as GitHub releases and
// extracted over the resource directory. The installed revision is
// tracked in version.json.
package bundle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/po1sontre/nightreign-launcher/internal/download"
	"github.com/po1sontre/nightreign-launcher/internal/github"
)

// VersionFile records the installed bundle revision in the resource
// directory.
const VersionFile = "version.json"

// AssetName is the release asset holding the packed bundle. Releases
// without it fall back to the source zipball.
const AssetName = "patch-bundle.zip"

// Default repository publishing patch bundles.
const (
	DefaultOwner = "po1sontre"
	DefaultRepo  = "nightreign-launcher"
)

// Version is the installed bundle revision.
type Version struct {
	Tag  string `json:"tag"`
	Date string `json:"date,omitempty"`
}

// LoadLocal reads the installed bundle version from the resource
// directory. A missing file returns an empty version, not an error:
// it just means no bundle update has ever been applied.
func LoadLocal(resourceDir string) (Version, error) {
	data, err := os.ReadFile(filepath.Join(resourceDir, VersionFile))
	if err != nil {
		if os.IsNotExist(err) {
			return Version{}, nil
		}
		return Version{}, fmt.Errorf("failed to read bundle version: %w", err)
	}

	var v Version
	if err := json.Unmarshal(data, &v); err != nil {
		return Version{}, fmt.Errorf("failed to parse bundle version: %w", err)
	}
	return v, nil
}

// Save writes the installed bundle version to the resource directory.
func Save(resourceDir string, v Version) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bundle version: %w", err)
	}

	path := filepath.Join(resourceDir, VersionFile)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write bundle version: %w", err)
	}
	return nil
}

// Updater checks for and applies patch-bundle releases.
type Updater struct {
	client      *github.Client
	resourceDir string
}

// NewUpdater returns an Updater for the given resource directory. A
// nil client gets the default repository.
func NewUpdater(resourceDir string, client *github.Client) *Updater {
	if client == nil {
		client = github.NewClient(DefaultOwner, DefaultRepo, nil)
	}
	return &Updater{client: client, resourceDir: resourceDir}
}

// Check fetches the latest release and reports whether it is newer
// than the installed bundle.
func (u *Updater) Check() (*github.Release, bool, error) {
	release, err := u.client.LatestRelease()
	if err != nil {
		return nil, false, err
	}

	installed, err := LoadLocal(u.resourceDir)
	if err != nil {
		return nil, false, err
	}

	return release, release.TagName != "" && release.TagName != installed.Tag, nil
}

// Apply downloads the release bundle and extracts it over the
// resource directory, then records the installed revision. Partial
// extraction is not rolled back; rerunning Apply repairs it.
func (u *Updater) Apply(release *github.Release, progress download.ProgressFunc) error {
	url := release.AssetURL(AssetName)
	log.Info().Str("tag", release.TagName).Str("url", url).Msg("downloading patch bundle")

	archive, err := download.ToTemp(url, "nightreign-bundle-", nil)
	if err != nil {
		return fmt.Errorf("failed to download bundle: %w", err)
	}
	defer func() {
		_ = os.Remove(archive)
	}()

	if err := download.ExtractZip(archive, u.resourceDir, progress); err != nil {
		return fmt.Errorf("failed to extract bundle: %w", err)
	}

	v := Version{Tag: release.TagName, Date: time.Now().Format(time.RFC3339)}
	if err := Save(u.resourceDir, v); err != nil {
		return err
	}

	log.Info().Str("tag", release.TagName).Msg("patch bundle updated")
	return nil
}
