package storage

import "os"
import "path/filepath"

import "github.com/peterbourgon/diskv"
import "github.com/pkg/errors"

// DiskBackend stores each artifact as a file named after its key.
type DiskBackend struct {
	dir string
	d   *diskv.Diskv
}

// flatTransform keeps every key directly under the base directory.
func flatTransform(string) []string {
	return []string{}
}

// NewDiskBackend stores artifacts in dir, created on the first Put.
func NewDiskBackend(dir string) (*DiskBackend, error) {
	if dir == "" {
		return nil, errors.New("storage: empty directory")
	}
	return &DiskBackend{
		dir: dir,
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			Transform:    flatTransform,
			CacheSizeMax: 4096 * 1024,
		}),
	}, nil
}

func (b *DiskBackend) Put(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return errors.Wrapf(err, "storage: create %s", b.dir)
	}
	return errors.Wrapf(b.d.Write(key, value), "storage: write %s", b.Locate(key))
}

func (b *DiskBackend) Get(key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if !b.d.Has(key) {
		return nil, errors.Wrap(ErrNotFound, b.Locate(key))
	}
	data, err := b.d.Read(key)
	if err != nil {
		return nil, errors.Wrapf(err, "storage: read %s", b.Locate(key))
	}
	return data, nil
}

func (b *DiskBackend) Has(key string) bool {
	return checkKey(key) == nil && b.d.Has(key)
}

func (b *DiskBackend) Locate(key string) string {
	return filepath.Join(b.dir, key)
}

func (b *DiskBackend) Close() error {
	return nil
}
