package storage

import "strings"

import "github.com/pkg/errors"

// DefaultDir is where artifacts go when no store is configured.
const DefaultDir = "models"

// ErrNotFound is returned by Get for a missing key.
var ErrNotFound = errors.New("storage: artifact not found")

// Backend stores artifacts by key.
type Backend interface {
	Put(key string, value []byte) error
	Get(key string) ([]byte, error)
	Has(key string) bool

	// Locate describes where key is stored, for logging.
	Locate(key string) string

	Close() error
}

// Open opens the store named by uri. A "sqlite:" prefix selects a SQLite
// file, anything else is a directory. An empty uri means DefaultDir.
func Open(uri string) (Backend, error) {
	switch {
	case strings.HasPrefix(uri, "sqlite:///"):
		return NewSQLiteBackend(strings.TrimPrefix(uri, "sqlite:///"))
	case strings.HasPrefix(uri, "sqlite:"):
		return NewSQLiteBackend(strings.TrimPrefix(uri, "sqlite:"))
	case uri == "":
		uri = DefaultDir
	}
	return NewDiskBackend(uri)
}

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) {
		return errors.Errorf("storage: invalid key %q", key)
	}
	return nil
}
