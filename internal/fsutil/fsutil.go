// Package fsutil holds the file-copy primitives shared by the
// deployment, controller-fix, and backup code. Everything operates on
// an afero.Fs so callers can run against an in-memory filesystem in
// tests.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// CopyFile copies a single file, overwriting dst if it exists.
func CopyFile(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", src, err)
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := fs.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to finish writing %s: %w", dst, err)
	}
	return nil
}

// CopyTree copies the directory tree rooted at src to dst, creating
// directories as needed and overwriting existing files.
func CopyTree(fs afero.Fs, src, dst string) error {
	err := afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			if err := fs.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			return nil
		}
		return CopyFile(fs, path, target)
	})
	if err != nil {
		return fmt.Errorf("failed to copy tree %s: %w", src, err)
	}
	return nil
}

// ReplaceTree removes dst if present and copies the src tree in its
// place, so files deleted from src never linger in dst.
func ReplaceTree(fs afero.Fs, src, dst string) error {
	if ok, err := afero.DirExists(fs, dst); err == nil && ok {
		if err := fs.RemoveAll(dst); err != nil {
			return fmt.Errorf("failed to remove %s: %w", dst, err)
		}
	}
	return CopyTree(fs, src, dst)
}

// CopyContents copies the children of the src directory into dst.
// Child directories are replaced wholesale; child files overwrite.
func CopyContents(fs afero.Fs, src, dst string) error {
	children, err := afero.ReadDir(fs, src)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", src, err)
	}
	for _, child := range children {
		childSrc := filepath.Join(src, child.Name())
		childDst := filepath.Join(dst, child.Name())
		if child.IsDir() {
			if err := ReplaceTree(fs, childSrc, childDst); err != nil {
				return err
			}
		} else if err := CopyFile(fs, childSrc, childDst); err != nil {
			return err
		}
	}
	return nil
}
