// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrBaseDirEmpty           = errors.New("base directory cannot be empty")
)

// Permissions for directories and files created on behalf of the renderer.
const (
	DirPermissions  = 0o750 // rwxr-x---
	FilePermissions = 0o644 // rw-r--r--
)

// requestDirPattern names per-request output directories.
// The trailing * is replaced by os.MkdirTemp with a random suffix.
const requestDirPattern = "render-*"

// WriteTempFile creates a temporary file with the given content and extension.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", "syntree-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// MakeRequestDir creates a fresh, uniquely named directory under base.
// base is created first if missing. Two calls never return the same path,
// so concurrent renders writing a fixed file name into their own directory
// cannot overwrite each other.
func MakeRequestDir(base string) (dir string, cleanup func(), err error) {
	if base == "" {
		return "", nil, ErrBaseDirEmpty
	}

	if err := os.MkdirAll(base, DirPermissions); err != nil {
		return "", nil, fmt.Errorf("creating output directory: %w", err)
	}

	dir, err = os.MkdirTemp(base, requestDirPattern)
	if err != nil {
		return "", nil, fmt.Errorf("creating request directory: %w", err)
	}

	return dir, func() { _ = os.RemoveAll(dir) }, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirWritable reports whether a file can be created inside dir.
func DirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".syntree-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "dark" -> false (name)
//   - "./custom.css" -> true (relative path)
//   - "/absolute/path.yaml" -> true (absolute)
//   - "C:\configs\syntree.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
