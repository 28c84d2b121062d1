package download

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/po1sontre/nightreign-launcher/internal/paths"
)

// ProgressFunc is called during extraction with current file index
// and total files.
type ProgressFunc func(current, total int, filename string)

// ExtractZip unpacks an archive over targetDir. A common top-level
// prefix (as in GitHub zipballs, "owner-repo-ref/") is stripped.
func ExtractZip(archivePath, targetDir string, progress ProgressFunc) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	stripPrefix := detectStripPrefix(&reader.Reader)

	total := len(reader.File)
	for current, f := range reader.File {
		relPath := strings.TrimPrefix(f.Name, stripPrefix)
		if relPath == "" {
			continue
		}

		if progress != nil {
			progress(current+1, total, relPath)
		}

		targetPath, err := ValidatePath(targetDir, filepath.Join(targetDir, paths.Denormalize(relPath)))
		if err != nil {
			return fmt.Errorf("refusing archive entry %s: %w", relPath, err)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(targetPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", relPath, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
			return fmt.Errorf("failed to create parent dir for %s: %w", relPath, err)
		}
		if err := extractFile(f, targetPath); err != nil {
			return fmt.Errorf("failed to extract %s: %w", relPath, err)
		}
	}

	return nil
}

// detectStripPrefix finds the common prefix directory shared by every
// archive entry, if any.
func detectStripPrefix(reader *zip.Reader) string {
	if len(reader.File) == 0 {
		return ""
	}

	firstPath := reader.File[0].Name
	idx := strings.Index(firstPath, "/")
	if idx == -1 {
		return ""
	}

	prefix := firstPath[:idx+1]
	for _, f := range reader.File {
		if !strings.HasPrefix(f.Name, prefix) {
			return ""
		}
	}

	return prefix
}

func extractFile(f *zip.File, targetPath string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() {
		_ = rc.Close()
	}()

	out, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, rc); err != nil { //nolint:gosec // bundle sizes are bounded
		_ = out.Close()
		return err
	}
	return out.Close()
}
