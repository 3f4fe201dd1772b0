package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const (
	// EnvStorage overrides the directory the cache lives under.
	EnvStorage = "STORAGE"

	cacheDirName  = ".cache"
	cacheFileName = "weather.json"
)

// FileStore persists the single cached record as one JSON object on disk.
type FileStore struct {
	path string
	log  *logrus.Logger
}

// NewFileStore creates a FileStore over the given file path.
func NewFileStore(path string, log *logrus.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Path returns the location of the cache file.
func (s *FileStore) Path() string { return s.path }

// DefaultPath returns the cache file location, creating its directory if
// needed. $STORAGE is honored when it names a writable directory; otherwise
// the user's home directory is used.
func DefaultPath() (string, error) {
	base := ""
	if storage := os.Getenv(EnvStorage); storage != "" && writableDir(storage) {
		base = storage
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve cache directory: %w", err)
		}
		base = home
	}
	dir := filepath.Join(base, cacheDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache directory %s: %w", dir, err)
	}
	return filepath.Join(dir, cacheFileName), nil
}

func writableDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	probe, err := os.CreateTemp(path, ".weather-probe-*")
	if err != nil {
		return false
	}
	probe.Close()
	os.Remove(probe.Name())
	return true
}

// Load reads the cached record. A missing or corrupt file yields no record
// rather than an error: the cache is best-effort and a bad file is simply
// replaced on the next refresh.
func (s *FileStore) Load() (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache %s: %w", s.path, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.log.Debugf("discarding corrupt cache file %s: %v", s.path, err)
		return nil, nil
	}
	return &rec, nil
}

// Save atomically replaces the cached record. The record is written to a
// temporary file in the same directory and renamed into place, so a
// concurrently started invocation never observes a torn write.
func (s *FileStore) Save(rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode cache record: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".weather-*.json")
	if err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace cache %s: %w", s.path, err)
	}
	return nil
}
