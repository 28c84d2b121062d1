// Package backup manages timestamped snapshots of the save directory.
// Each snapshot is a plain copy under <root>/<timestamp>/ so a user
// can inspect or restore one without any tooling. Snapshots are never
// pruned.
package backup

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/po1sontre/nightreign-launcher/internal/fsutil"
)

// TimestampLayout names snapshot directories. Colon-free so the names
// are valid on Windows.
const TimestampLayout = "20060102-150405"

// Latest selects the most recent snapshot in Restore.
const Latest = "latest"

// Error reasons reported by backup operations.
var (
	ErrMissingSource = errors.New("save directory not found")
	ErrNoBackups     = errors.New("no backups exist")
	ErrUnknownBackup = errors.New("no backup with that timestamp")
	ErrAlreadyExists = errors.New("a backup with this timestamp already exists")
)

// Error is a backup or restore failure tied to a path.
type Error struct {
	Err  error
	Op   string
	Path string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Record describes one snapshot.
type Record struct {
	Timestamp time.Time
	Source    string
	Path      string
}

// Name returns the snapshot's directory name.
func (r Record) Name() string {
	return r.Timestamp.Format(TimestampLayout)
}

// Manager creates, lists, and restores snapshots under a fixed root.
type Manager struct {
	fs   afero.Fs
	now  func() time.Time
	root string
}

// NewManager returns a Manager storing snapshots under root.
func NewManager(fs afero.Fs, root string) *Manager {
	return &Manager{fs: fs, root: root, now: time.Now}
}

// WithClock overrides the clock used for snapshot names. Tests use
// this to create snapshots at controlled timestamps.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Create copies saveDir into a new timestamped snapshot and returns
// its record.
func (m *Manager) Create(saveDir string) (Record, error) {
	if ok, err := afero.DirExists(m.fs, saveDir); err != nil || !ok {
		return Record{}, &Error{Op: "backup", Path: saveDir, Err: ErrMissingSource}
	}

	ts := m.now().Truncate(time.Second)
	dest := filepath.Join(m.root, ts.Format(TimestampLayout))
	if ok, err := afero.DirExists(m.fs, dest); err == nil && ok {
		return Record{}, &Error{Op: "backup", Path: dest, Err: ErrAlreadyExists}
	}

	if err := m.fs.MkdirAll(m.root, 0o755); err != nil {
		return Record{}, &Error{Op: "backup", Path: m.root, Err: err}
	}
	if err := fsutil.CopyTree(m.fs, saveDir, dest); err != nil {
		return Record{}, &Error{Op: "backup", Path: dest, Err: err}
	}

	record := Record{Timestamp: ts, Source: saveDir, Path: dest}
	log.Info().Str("snapshot", record.Name()).Str("source", saveDir).Msg("backup created")
	return record, nil
}

// List returns all snapshots, newest first. Directories that do not
// look like snapshots are ignored.
func (m *Manager) List() ([]Record, error) {
	entries, err := afero.ReadDir(m.fs, m.root)
	if err != nil {
		if ok, statErr := afero.DirExists(m.fs, m.root); statErr == nil && !ok {
			return nil, nil
		}
		return nil, &Error{Op: "list", Path: m.root, Err: err}
	}

	var records []Record
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ts, err := time.ParseInLocation(TimestampLayout, entry.Name(), time.Local)
		if err != nil {
			continue
		}
		records = append(records, Record{
			Timestamp: ts,
			Path:      filepath.Join(m.root, entry.Name()),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}

// Restore copies the chosen snapshot back over the live save
// directory. The name is a snapshot timestamp or Latest. The live
// directory is replaced, so the result matches the snapshot exactly.
func (m *Manager) Restore(name, saveDir string) error {
	record, err := m.find(name)
	if err != nil {
		return err
	}

	if err := m.fs.MkdirAll(filepath.Dir(saveDir), 0o755); err != nil {
		return &Error{Op: "restore", Path: saveDir, Err: err}
	}
	if err := fsutil.ReplaceTree(m.fs, record.Path, saveDir); err != nil {
		return &Error{Op: "restore", Path: saveDir, Err: err}
	}

	log.Info().Str("snapshot", record.Name()).Str("dest", saveDir).Msg("backup restored")
	return nil
}

func (m *Manager) find(name string) (Record, error) {
	records, err := m.List()
	if err != nil {
		return Record{}, err
	}
	if len(records) == 0 {
		return Record{}, &Error{Op: "restore", Path: m.root, Err: ErrNoBackups}
	}

	if name == "" || name == Latest {
		return records[0], nil
	}
	for _, record := range records {
		if record.Name() == name {
			return record, nil
		}
	}
	return Record{}, &Error{Op: "restore", Path: filepath.Join(m.root, name), Err: ErrUnknownBackup}
}
