package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/dev/null/invalid")
	assert.Error(t, err)
}

func TestNewStore_DefaultDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewStore("")
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(home, ".screener", "data", "screener.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var (
		version int
		file    string
		rows    int
	)
	require.NoError(t, second.db.QueryRow("SELECT version, file FROM schema_migrations ORDER BY version DESC LIMIT 1").Scan(&version, &file))
	assert.Equal(t, 1, version)
	assert.Equal(t, "001_initial.up.sql", file)
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&rows))
	assert.Equal(t, 1, rows, "reopening must not re-apply migrations")

	for _, table := range []string{"chunks", "sessions", "session_turns", "job_descriptions"} {
		var name string
		err := second.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestNewStore_ForeignKeysEnabled(t *testing.T) {
	store := setupTestStore(t)

	var enabled int
	require.NoError(t, store.db.QueryRowContext(context.Background(), "PRAGMA foreign_keys").Scan(&enabled))
	assert.Equal(t, 1, enabled)
}

func TestFloat32Conversion_RoundTrip(t *testing.T) {
	in := []float32{0, 1.5, -2.25, 3.4028235e38}
	assert.Equal(t, in, bytesToFloat32Slice(float32SliceToBytes(in)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}

func TestPendingMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"010_later.up.sql":   {Data: []byte("SELECT 1;")},
		"002_second.up.sql":  {Data: []byte("SELECT 1;")},
		"001_initial.up.sql": {Data: []byte("SELECT 1;")},
		"README.md":          {Data: []byte("ignored")},
	}

	pending, err := pendingMigrations(fsys, 1)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, 2, pending[0].version)
	assert.Equal(t, "010_later.up.sql", pending[1].file)

	pending, err = pendingMigrations(fsys, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestPendingMigrations_BadPrefix(t *testing.T) {
	_, err := pendingMigrations(fstest.MapFS{"initial.up.sql": {Data: []byte("")}}, 0)
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	got := dsn("/tmp/x.db")
	assert.Equal(t, "/tmp/x.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", got)
}
