package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const fileSuffix = ".json"

// FileBackend keeps one JSON file per key. The file modification time is the
// entry creation time.
type FileBackend struct {
	dir string
}

// NewFileBackend creates dir if needed and returns a backend rooted there
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, errors.New("cache directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

// Dir returns the directory holding the cache files
func (b *FileBackend) Dir() string { return b.dir }

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, url.PathEscape(key)+fileSuffix)
}

// Read returns the payload and mtime of the file for key
func (b *FileBackend) Read(_ context.Context, key string) (Entry, error) {
	path := b.path(key)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Entry{}, ErrEntryNotFound
		}
		return Entry{}, err
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Entry{}, ErrEntryNotFound
		}
		return Entry{}, err
	}
	return Entry{Payload: payload, CreatedAt: info.ModTime()}, nil
}

// Write replaces the file for key through a temp file and rename, then
// stamps its mtime with the entry creation time
func (b *FileBackend) Write(_ context.Context, key string, entry Entry) error {
	tmp, err := os.CreateTemp(b.dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(entry.Payload); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chtimes(tmpName, entry.CreatedAt, entry.CreatedAt); err != nil {
		return err
	}
	return os.Rename(tmpName, b.path(key))
}

// Delete removes the file for key
func (b *FileBackend) Delete(_ context.Context, key string) error {
	if err := os.Remove(b.path(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrEntryNotFound
		}
		return err
	}
	return nil
}

// DeleteAll removes every regular file in the cache directory
func (b *FileBackend) DeleteAll(_ context.Context) error {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	var errs []error
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := os.Remove(filepath.Join(b.dir, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Ping checks the cache directory is a writable directory
func (b *FileBackend) Ping(_ context.Context) error {
	info, err := os.Stat(b.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", b.dir)
	}
	probe, err := os.CreateTemp(b.dir, ".ping-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}

// Keys lists the keys currently stored, in directory order
func (b *FileBackend) Keys() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || !strings.HasSuffix(name, fileSuffix) || strings.HasPrefix(name, ".") {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, fileSuffix))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}
