package cache

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-cli/internal/geo"
)

func testStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	log := logrus.New()
	log.SetOutput(io.Discard)
	path := filepath.Join(dir, "weather.json")
	return NewFileStore(path, log), dir
}

// TestLoadAbsent verifies a missing cache file yields no record and no error.
func TestLoadAbsent(t *testing.T) {
	store, _ := testStore(t)
	rec, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

// TestSaveLoadRoundtrip verifies a saved record reads back intact, payload
// included byte for byte.
func TestSaveLoadRoundtrip(t *testing.T) {
	store, _ := testStore(t)
	saved := &Record{
		Coordinate: geo.Coordinate{Latitude: 39.75, Longitude: -105.00},
		ObservedAt: 1756200000,
		Payload:    json.RawMessage(`{"current":{"dt":1756200000,"temp":21.4}}`),
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved.Coordinate, loaded.Coordinate)
	assert.Equal(t, saved.ObservedAt, loaded.ObservedAt)
	assert.JSONEq(t, string(saved.Payload), string(loaded.Payload))
}

// TestSaveReplacesAtomically verifies a second save fully replaces the first
// record and leaves no temporary files behind.
func TestSaveReplacesAtomically(t *testing.T) {
	store, dir := testStore(t)
	first := &Record{Coordinate: geo.Coordinate{Latitude: 1, Longitude: 1}, ObservedAt: 100, Payload: json.RawMessage(`{"v":1}`)}
	second := &Record{Coordinate: geo.Coordinate{Latitude: 2, Longitude: 2}, ObservedAt: 200, Payload: json.RawMessage(`{"v":2}`)}

	require.NoError(t, store.Save(first))
	require.NoError(t, store.Save(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(200), loaded.ObservedAt)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "weather.json", entries[0].Name())
}

// TestLoadCorrupt verifies a torn or garbage cache file is treated as
// absent, so the next refresh simply replaces it.
func TestLoadCorrupt(t *testing.T) {
	store, _ := testStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"coordinate":{"latit`), 0o644))

	rec, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

// TestDefaultPathStorageOverride verifies $STORAGE is honored when it names
// a writable directory and ignored otherwise.
func TestDefaultPathStorageOverride(t *testing.T) {
	storage := t.TempDir()
	t.Setenv(EnvStorage, storage)

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(storage, ".cache", "weather.json"), path)
	assert.DirExists(t, filepath.Dir(path))

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvStorage, filepath.Join(storage, "does-not-exist"))

	path, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".cache", "weather.json"), path)
}
