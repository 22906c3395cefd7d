package store

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/ayush/inkpress/internal/common"
)

// DiskStore keeps thumbnails in a local directory.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// Put writes r to dir/key. Keys are expected to be sanitized file names;
// an existing file with the same name is overwritten.
func (s *DiskStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return common.StorageError("mkdir "+s.dir, err)
	}
	f, err := os.Create(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil {
		return common.StorageError("create "+key, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return common.StorageError("write "+key, err)
	}
	if err := f.Close(); err != nil {
		return common.StorageError("close "+key, err)
	}
	return nil
}
