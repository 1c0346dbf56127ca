// Package sqlite provides a SQLite-based implementation of the persistence
// ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. A single database connection backs:
//
//   - VectorStore: chunk collections with embeddings
//   - SessionStore: conversation turns bounded by a SessionPolicy
//   - JobDescriptionStore: one job description per workspace
//
// # Vector search
//
// Embeddings are stored as float32 blobs. Candidate and contains filters are
// applied in SQL; distances are computed in Go over the filtered rows.
//
// # Data Location
//
// By default, the database is stored at ~/.screener/data/screener.db
//
// # Thread Safety
//
// All operations are thread-safe. The store relies on SQLite locking in WAL mode.
package sqlite
