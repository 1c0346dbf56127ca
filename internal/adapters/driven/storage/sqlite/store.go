package sqlite

import (
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/vishwapandiyan/Resume-screener/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

// Store is a SQLite database holding chunks, sessions and job descriptions.
// Each persistence port is a thin view over the shared connection pool.
type Store struct {
	db   *sql.DB
	path string
}

// dbFile is the database file name inside the data directory.
const dbFile = "screener.db"

// NewStore opens (creating if needed) the database in dataDir and applies
// pending migrations. An empty dataDir means ~/.screener/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".screener", "data")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// dsn enables WAL, a busy timeout for concurrent writers and cascading
// deletes of session turns.
func dsn(path string) string {
	pragmas := []string{"journal_mode(WAL)", "busy_timeout(5000)", "foreign_keys(1)"}
	return path + "?_pragma=" + strings.Join(pragmas, "&_pragma=")
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// VectorStore returns the chunk collections of this database.
// Closing it does not close the database.
func (s *Store) VectorStore() driven.VectorStore {
	return &vectorStore{store: s}
}

// SessionStore returns conversation sessions bounded by policy.
// Closing it does not close the database.
func (s *Store) SessionStore(policy domain.SessionPolicy) driven.SessionStore {
	return newSessionStore(s, policy)
}

// JobDescriptionStore returns the per-workspace job descriptions.
func (s *Store) JobDescriptionStore() driven.JobDescriptionStore {
	return &jobDescriptionStore{store: s}
}

// migration is one NNN_name.up.sql file.
type migration struct {
	version int
	file    string
}

// pendingMigrations lists the migrations newer than current, oldest first.
func pendingMigrations(fsys fs.FS, current int) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var pending []migration
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			return nil, fmt.Errorf("migration %s: version prefix: %w", name, err)
		}
		if version > current {
			pending = append(pending, migration{version: version, file: name})
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].version < pending[j].version })
	return pending, nil
}

// migrate applies each pending migration in its own transaction together
// with its schema_migrations row.
func (s *Store) migrate(fsys embed.FS) error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		file       TEXT NOT NULL DEFAULT '',
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	pending, err := pendingMigrations(fsys, current)
	if err != nil {
		return err
	}
	for _, m := range pending {
		if err := s.apply(fsys, m); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) apply(fsys fs.FS, m migration) error {
	body, err := fs.ReadFile(fsys, m.file)
	if err != nil {
		return fmt.Errorf("reading migration %s: %w", m.file, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("migration %s: %w", m.file, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(string(body)); err != nil {
		return fmt.Errorf("executing migration %s: %w", m.file, err)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version, file) VALUES (?, ?)", m.version, m.file); err != nil {
		return fmt.Errorf("recording migration %s: %w", m.file, err)
	}
	return tx.Commit()
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// unavailable wraps a database failure as a vector index capability error.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrVectorIndexUnavailable, err)
}
