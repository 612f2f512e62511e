package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// MakeDir creates a directory with all parent directories
func MakeDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// RemoveFile removes a file; a file that is already gone is not an error.
func RemoveFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// MoveFile moves or renames a file, replacing dst when it exists.
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to move file from %s to %s: %w", src, dst, err)
	}
	return nil
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// SameDir reports whether a and b live in the same directory.
func SameDir(a, b string) bool {
	da, err := filepath.Abs(filepath.Dir(a))
	if err != nil {
		return false
	}
	db, err := filepath.Abs(filepath.Dir(b))
	if err != nil {
		return false
	}
	return da == db
}
