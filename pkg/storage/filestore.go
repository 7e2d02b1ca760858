package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStore persists authoritative job files and their metadata sidecars
// under per-status directories below a single root.
type FileStore struct {
	root string
}

// NewFileStore ensures the root directory exists and returns a handle.
func NewFileStore(root string) (*FileStore, error) {
	if root == "" {
		root = "./storage"
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &FileStore{root: abs}, nil
}

// Root returns the absolute storage root.
func (s *FileStore) Root() string {
	return s.root
}

// DirPath returns the absolute path of a status directory.
func (s *FileStore) DirPath(dir string) string {
	return filepath.Join(s.root, dir)
}

// Save writes data to <root>/<dir>/<filename> and returns the absolute path.
func (s *FileStore) Save(dir, filename string, data []byte) (string, error) {
	target := filepath.Join(s.root, dir, filename)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("prepare status directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return target, nil
}

// SaveStream copies from reader into <root>/<dir>/<filename>.
func (s *FileStore) SaveStream(dir, filename string, r io.Reader) (string, error) {
	target := filepath.Join(s.root, dir, filename)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("prepare status directory: %w", err)
	}
	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer file.Close() //nolint:errcheck
	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write stream: %w", err)
	}
	return target, nil
}

// WriteMetadata marshals the sidecar document to the given absolute path.
func (s *FileStore) WriteMetadata(path string, meta map[string]interface{}) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare metadata directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// ReadMetadata loads a sidecar document. A missing or unparsable file
// yields an empty map so audit scans can continue.
func (s *FileStore) ReadMetadata(path string) map[string]interface{} {
	data, err := os.ReadFile(path)
	if err != nil {
		return map[string]interface{}{}
	}
	meta := map[string]interface{}{}
	if err := json.Unmarshal(data, &meta); err != nil {
		return map[string]interface{}{}
	}
	return meta
}

// Move relocates a file into destDir keeping its basename, copy-then-delete.
// Returns the new absolute path.
func (s *FileStore) Move(path, destDir string) (string, error) {
	target := filepath.Join(s.root, destDir, filepath.Base(path))
	if target == path {
		return target, nil
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("prepare destination: %w", err)
	}
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	dst, err := os.Create(target)
	if err != nil {
		src.Close()
		return "", fmt.Errorf("create destination: %w", err)
	}
	_, copyErr := io.Copy(dst, src)
	src.Close()
	dst.Close()
	if copyErr != nil {
		return "", fmt.Errorf("copy file: %w", copyErr)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("remove source: %w", err)
	}
	return target, nil
}

// ListDir returns the basenames of regular files in a status directory,
// sorted for stable output.
func (s *FileStore) ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read status directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ListAll returns the absolute paths of every regular file across the
// provided status directories.
func (s *FileStore) ListAll(dirs []string) ([]string, error) {
	var paths []string
	for _, dir := range dirs {
		full := filepath.Join(s.root, dir)
		entries, err := os.ReadDir(full)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read status directory %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.Type().IsRegular() {
				paths = append(paths, filepath.Join(full, entry.Name()))
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Delete removes a file, refusing paths outside the storage root.
func (s *FileStore) Delete(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if !strings.HasPrefix(abs, s.root+string(filepath.Separator)) {
		return fmt.Errorf("path %s is outside the storage root", path)
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// Exists reports whether the path names an existing regular file.
func (s *FileStore) Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
