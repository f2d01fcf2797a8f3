package output

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

//go:generate go tool stringer -type=Status -output=status_string.go

// Status reports what a write did.
type Status int

const (
	_ Status = iota // zero value is invalid

	Created
	Updated
	Unchanged
)

// Sink stores generated files and returns the previous contents of files
// written by an earlier run.
type Sink interface {
	// WriteFile stores content at the slash-separated relative path.
	WriteFile(ctx context.Context, path string, content []byte) (Status, error)
	// ReadFile returns the current contents at path, or an error wrapping
	// fs.ErrNotExist.
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// FilesystemSink writes below a directory on the local filesystem.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string
	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode
}

// NewFilesystemSink creates a FilesystemSink writing below root.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{Root: root, Mode: 0o644}
}

func (s *FilesystemSink) resolve(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}

	fullPath := filepath.Join(s.Root, filepath.FromSlash(path))

	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return "", fmt.Errorf("resolving root directory: %w", err)
	}

	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	if !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes root directory: %q", path)
	}

	return fullPath, nil
}

// ReadFile reads path below Root.
func (s *FilesystemSink) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullPath, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	return os.ReadFile(fullPath)
}

// WriteFile writes content to path below Root unless the file already
// holds exactly these bytes. Writes are atomic: a temp file in the target
// directory is renamed over the destination.
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) (Status, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	fullPath, err := s.resolve(path)
	if err != nil {
		return 0, err
	}

	status := Created

	old, err := os.ReadFile(fullPath)
	switch {
	case err == nil:
		if sha256.Sum256(old) == sha256.Sum256(content) {
			return Unchanged, nil
		}

		status = Updated
	case !errors.Is(err, fs.ErrNotExist):
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating directories: %w", err)
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0o644
	}

	tempFile, err := os.CreateTemp(dir, ".schemagen-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}

	tempPath := tempFile.Name()
	cleanup := func() {
		_ = os.Remove(tempPath)
	}

	_, writeErr := tempFile.Write(content)
	closeErr := tempFile.Close()

	if writeErr != nil {
		cleanup()
		return 0, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr != nil {
		cleanup()
		return 0, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tempPath, mode); err != nil {
		cleanup()
		return 0, fmt.Errorf("setting file mode: %w", err)
	}

	if err := ctx.Err(); err != nil {
		cleanup()
		return 0, err
	}

	if err := os.Rename(tempPath, fullPath); err != nil {
		cleanup()
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}

	return status, nil
}

// MemorySink keeps files in memory. It is safe for concurrent use.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content.
func (s *MemorySink) WriteFile(ctx context.Context, path string, content []byte) (Status, error) {
	if err := ValidatePath(path); err != nil {
		return 0, fmt.Errorf("invalid path %q: %w", path, err)
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.files[path]

	switch {
	case ok && bytes.Equal(old, content):
		return Unchanged, nil
	case ok:
		s.files[path] = bytes.Clone(content)
		return Updated, nil
	default:
		s.files[path] = bytes.Clone(content)
		return Created, nil
	}
}

// ReadFile returns a copy of the stored content.
func (s *MemorySink) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, fs.ErrNotExist)
	}

	return bytes.Clone(content), nil
}

// Files returns a copy of every stored file.
func (s *MemorySink) Files() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]byte, len(s.files))
	for path, content := range s.files {
		out[path] = bytes.Clone(content)
	}

	return out
}

// ValidatePath checks that path is relative, slash-separated, clean and
// free of ".." components.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}

	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return errors.New("absolute paths not allowed")
	}

	if len(path) >= 2 && path[1] == ':' {
		return errors.New("absolute paths not allowed")
	}

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return errors.New("path traversal not allowed")
		}
	}

	if cleaned := filepath.ToSlash(filepath.Clean(path)); cleaned != path {
		return fmt.Errorf("path is not clean (expected %q, got %q)", cleaned, path)
	}

	return nil
}
