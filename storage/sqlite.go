package storage

import "database/sql"
import "fmt"
import "os"
import "path/filepath"
import "sync"

import "github.com/pkg/errors"
import _ "modernc.org/sqlite"

// SQLiteBackend bundles all artifacts into one SQLite file.
type SQLiteBackend struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

// NewSQLiteBackend opens or creates the SQLite file at path.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if path == "" {
		return nil, errors.New("storage: empty sqlite path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "storage: create %s", dir)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrapf(err, "storage: open %s", path)
	}
	db.SetMaxOpenConns(1)

	query := `
	CREATE TABLE IF NOT EXISTS artifacts (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	);`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "storage: init %s", path)
	}
	return &SQLiteBackend{path: path, db: db}, nil
}

func (s *SQLiteBackend) Put(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.Exec("INSERT OR REPLACE INTO artifacts (key, value) VALUES (?, ?)", key, value)
	return errors.Wrapf(err, "storage: write %s", s.Locate(key))
}

func (s *SQLiteBackend) Get(key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var value []byte
	err := s.db.QueryRow("SELECT value FROM artifacts WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(ErrNotFound, s.Locate(key))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "storage: read %s", s.Locate(key))
	}
	return value, nil
}

func (s *SQLiteBackend) Has(key string) bool {
	if checkKey(key) != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM artifacts WHERE key = ?", key).Scan(&n); err != nil {
		return false
	}
	return n > 0
}

func (s *SQLiteBackend) Locate(key string) string {
	return fmt.Sprintf("sqlite:%s#%s", s.path, key)
}

func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
