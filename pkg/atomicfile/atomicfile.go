// Package atomicfile writes files using a temp-file-then-rename strategy so
// readers never observe a partially-written file.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to path atomically (on most Unix filesystems). The
// temporary file is created alongside the destination so the final rename
// never crosses a filesystem boundary.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filepath.Clean(path))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("atomic write: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("atomic write: create temp: %w", err)
	}

	tmpName := tmp.Name()
	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(tmpName)
		if writeErr != nil {
			return fmt.Errorf("atomic write: write: %w", writeErr)
		}
		return fmt.Errorf("atomic write: close: %w", closeErr)
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("atomic write: chmod: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("atomic write: rename: %w", err)
	}

	return nil
}
