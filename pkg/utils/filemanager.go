// =============================================================================
// ReportsImport - File Manager Utility
// =============================================================================
//
// This module provides the file operations shared by the layout writer and the
// import pipeline:
//   - Absolute path resolution and existence checks for the input file
//   - Atomic writes for generated layout files
//
// ATOMIC WRITES:
//   Layout files are first written to a uniquely named temporary file in the
//   destination directory, synced, and renamed over the destination. A failed
//   write never leaves a truncated layout behind. Each file is atomic on its
//   own; a root report and its subreport files are not written as a unit.
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// =============================================================================
// INPUT FILES
// =============================================================================

// ResolveExisting returns the absolute form of path and fails when no regular
// file exists there.
//
// PARAMETERS:
//   - path: The path as given on the command line.
//
// RETURNS:
//   - The absolute path.
//   - An error naming the absolute path if the file does not exist.
func ResolveExisting(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return "", errors.New(`File "` + abs + `" doesn't exist.`)
	}

	return abs, nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// =============================================================================
// OUTPUT FILES
// =============================================================================

// WriteFileAtomic writes the output of write to path through a temporary file
// in the same directory.
//
// PARAMETERS:
//   - path: The destination file.
//   - write: Produces the file content.
//
// RETURNS:
//   - An error if the content cannot be produced, written or moved in place.
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, tempName(filepath.Base(path)))

	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = write(file); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}

	return nil
}

// tempName returns a hidden, collision-free sibling name for base.
func tempName(base string) string {
	return fmt.Sprintf(".%s.%s.tmp", base, uuid.New().String())
}
