// Package deploy copies the bundled patch resources into the game
// directory and verifies the result. Copies overwrite whatever is
// there; directories are replaced wholesale so stale files from an
// older patch never survive. There is no rollback: a failed copy
// leaves whatever was written, and the operation can simply be run
// again.
package deploy

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/po1sontre/nightreign-launcher/internal/fsutil"
)

// Error reasons reported during deployment.
var (
	ErrMissingSource = errors.New("source missing")
	ErrBadGameDir    = errors.New("game directory not found")
)

// Error is a deployment failure tied to a path.
type Error struct {
	Err  error
	Op   string
	Path string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Entry maps a bundled resource to its place in the game directory.
type Entry struct {
	// Source is the resource path relative to the resource dir.
	Source string
	// Dest is the target path relative to the game dir. "." with
	// Contents set means the children of Source land in the game dir
	// root.
	Dest string
	// Required lists game-dir-relative paths that must exist after
	// the entry has been applied. Verify checks these.
	Required []string
	// Contents copies the children of a source directory rather than
	// the directory itself.
	Contents bool
}

// Manifest returns the static deployment manifest. It is data, not
// logic: which bundled folder lands where is a product decision.
func Manifest() []Entry {
	return []Entry{
		{
			Source:   "online_patch",
			Dest:     ".",
			Contents: true,
			Required: []string{"nrsc_launcher.exe", "SeamlessCoop"},
		},
		{
			Source:   "regulation.bin",
			Dest:     "regulation.bin",
			Required: []string{"regulation.bin"},
		},
		{
			Source:   "mods",
			Dest:     "mods",
			Required: []string{"mods"},
		},
		{
			Source:   "fps unlock",
			Dest:     "fps unlock",
			Required: []string{"fps unlock"},
		},
		{
			Source:   "nograssnoshadows",
			Dest:     "nograssnoshadows",
			Required: []string{"nograssnoshadows"},
		},
	}
}

// Verify checks the game directory against the manifest and returns
// the required items that are missing. An empty result means the
// directory is fully patched.
func Verify(fs afero.Fs, gameDir string) ([]string, error) {
	if ok, err := afero.DirExists(fs, gameDir); err != nil {
		return nil, &Error{Op: "verify", Path: gameDir, Err: err}
	} else if !ok {
		return nil, &Error{Op: "verify", Path: gameDir, Err: ErrBadGameDir}
	}

	var missing []string
	for _, entry := range Manifest() {
		for _, required := range entry.Required {
			if _, err := fs.Stat(filepath.Join(gameDir, required)); err != nil {
				missing = append(missing, required)
			}
		}
	}
	return missing, nil
}

// Patch applies every manifest entry from resourceDir into gameDir,
// overwriting existing files. Applying it twice yields the same tree
// as applying it once.
func Patch(fs afero.Fs, resourceDir, gameDir string) error {
	if ok, err := afero.DirExists(fs, gameDir); err != nil || !ok {
		return &Error{Op: "patch", Path: gameDir, Err: ErrBadGameDir}
	}

	for _, entry := range Manifest() {
		if err := apply(fs, entry, resourceDir, gameDir); err != nil {
			return err
		}
	}
	return nil
}

func apply(fs afero.Fs, entry Entry, resourceDir, gameDir string) error {
	src := filepath.Join(resourceDir, entry.Source)
	info, err := fs.Stat(src)
	if err != nil {
		return &Error{Op: "patch", Path: src, Err: ErrMissingSource}
	}

	log.Debug().Str("source", entry.Source).Str("dest", entry.Dest).Msg("applying manifest entry")

	switch {
	case !info.IsDir():
		err = fsutil.CopyFile(fs, src, filepath.Join(gameDir, entry.Dest))
	case entry.Contents:
		err = fsutil.CopyContents(fs, src, gameDir)
	default:
		err = fsutil.ReplaceTree(fs, src, filepath.Join(gameDir, entry.Dest))
	}
	if err != nil {
		return &Error{Op: "patch", Path: src, Err: err}
	}
	return nil
}
