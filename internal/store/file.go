package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// File stores each key as <dir>/<key>.json.
type File struct {
	dir string
}

// NewFile creates the directory if needed.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, goerr.New("file store requires a directory", goerr.T(ErrTagStoreUnavailable))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "creating store directory",
			goerr.V("dir", dir), goerr.T(ErrTagStoreUnavailable))
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	// Keys are internal constants; flatten separators anyway so a key never escapes dir.
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(f.dir, safe+".json")
}

// Get reads <dir>/<key>.json. A missing file is reported as absent.
func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, goerr.Wrap(err, "reading store file",
			goerr.V("key", key), goerr.T(ErrTagStoreUnavailable))
	}
	return string(data), true, nil
}

// Set replaces <dir>/<key>.json atomically.
func (f *File) Set(_ context.Context, key, value string) error {
	if err := WriteFileAtomic(f.path(key), []byte(value), 0o644); err != nil {
		return goerr.Wrap(err, "writing store file",
			goerr.V("key", key), goerr.T(ErrTagStoreUnavailable))
	}
	return nil
}

// Close is a no-op.
func (f *File) Close() error { return nil }

// WriteFileAtomic writes data to a temporary file in the target directory and renames it
// over path, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
