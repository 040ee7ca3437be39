// Package fileutils provides the file helpers the CLI commands share.
package fileutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// StdioPath selects stdin for inputs and stdout for outputs.
const StdioPath = "-"

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// OpenInput opens filePath for reading. An empty path or "-" reads stdin.
func OpenInput(filePath string, stdin io.Reader) (io.ReadCloser, error) {
	if filePath == "" || filePath == StdioPath {
		return io.NopCloser(stdin), nil
	}
	if !FileExists(filePath) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// CreateOutput creates or truncates filePath for writing, creating parent
// directories as needed. An empty path or "-" writes to stdout.
func CreateOutput(filePath string, stdout io.Writer) (io.WriteCloser, error) {
	if filePath == "" || filePath == StdioPath {
		return nopWriteCloser{stdout}, nil
	}
	if err := EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return nil, err
	}
	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, nil
}
