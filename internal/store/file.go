package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend stores the document as a single JSON file. Writes go to a
// temp file in the same directory which is then renamed over the target,
// so readers never observe a partially written document.
type FileBackend struct {
	path string
	dir  string
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend resolves path to an absolute, cleaned form so every
// spelling of the same file shares one location.
func NewFileBackend(path string) *FileBackend {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	} else {
		path = filepath.Clean(path)
	}
	return &FileBackend{path: path, dir: filepath.Dir(path)}
}

func (f *FileBackend) Location() string { return "file:" + f.path }

// Path returns the backing file path.
func (f *FileBackend) Path() string { return f.path }

func (f *FileBackend) Read(ctx context.Context) ([]byte, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, f.path, err)
	}
	return b, nil
}

func (f *FileBackend) Write(ctx context.Context, data []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %w", ErrIO, f.dir, err)
	}
	tmp, err := os.CreateTemp(f.dir, "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp for %s: %w", ErrIO, f.path, err)
	}
	tmpPath := tmp.Name()
	fail := func(step string, err error) error {
		_ = tmp.Close()
		return errors.Join(fmt.Errorf("%w: %s %s: %w", ErrIO, step, f.path, err), removeIfExists(tmpPath))
	}

	if _, err := tmp.Write(data); err != nil {
		return fail("write temp", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("fsync temp", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail("chmod temp", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(fmt.Errorf("%w: close temp %s: %w", ErrIO, f.path, err), removeIfExists(tmpPath))
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return errors.Join(fmt.Errorf("%w: rename temp %s: %w", ErrIO, f.path, err), removeIfExists(tmpPath))
	}

	if d, err := os.Open(f.dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

func (f *FileBackend) Ping(ctx context.Context) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("%w: data dir %s: %w", ErrIO, f.dir, err)
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
