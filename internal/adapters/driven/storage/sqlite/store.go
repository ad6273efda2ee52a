// Package sqlite persists index snapshots in a local SQLite database so
// a rebuilt process can serve queries without re-ingesting the corpus.
package sqlite

import (
	"context"
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
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/numan-developer-2/RAGSystem-Company/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/ports/driven"
	"github.com/numan-developer-2/RAGSystem-Company/internal/index/snapshot"
)

// Ensure Store implements the interface.
var _ driven.SnapshotStore = (*Store)(nil)

// Store is a SQLite-backed snapshot store. Exactly one snapshot is kept:
// Save replaces the previous one wholesale inside a transaction.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a snapshot store under dataDir. If dataDir is empty,
// defaults to ~/.ragsystem/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".ragsystem", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Save persists the snapshot, replacing any previous one.
func (s *Store) Save(ctx context.Context, snap *snapshot.Snapshot) error {
	if snap == nil {
		return domain.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Previous snapshot rows cascade away with the snapshot itself.
	if _, err := tx.ExecContext(ctx, "DELETE FROM snapshots"); err != nil {
		return fmt.Errorf("clearing previous snapshot: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (version, built_at, dimensions)
		VALUES (?, ?, ?)
	`, snap.Version, snap.BuiltAt.UTC(), snap.Dimensions)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}

	docStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (id, snapshot_version, name, format, body, ingested_at, ord)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing document insert: %w", err)
	}
	defer docStmt.Close()

	for i, doc := range snap.Documents {
		_, err := docStmt.ExecContext(ctx, doc.ID, snap.Version, doc.Name,
			string(doc.Format), doc.Text, doc.IngestedAt.UTC(), i)
		if err != nil {
			return fmt.Errorf("inserting document %s: %w", doc.ID, err)
		}
	}

	chunkStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, snapshot_version, document_id, document_name,
			seq, start_word, end_word, body, embedding, ord)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer chunkStmt.Close()

	for i, chunk := range snap.Chunks {
		_, err := chunkStmt.ExecContext(ctx, chunk.ID, snap.Version, chunk.DocumentID,
			chunk.DocumentName, chunk.Seq, chunk.StartWord, chunk.EndWord,
			chunk.Text, float32SliceToBytes(chunk.Embedding), i)
		if err != nil {
			return fmt.Errorf("inserting chunk %s: %w", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// LoadLatest restores the persisted snapshot. The lexical and vector
// indices are rebuilt from the chunk rows; the persisted version and
// build time are restored so the snapshot identity survives restarts.
func (s *Store) LoadLatest(ctx context.Context) (*snapshot.Snapshot, error) {
	var version string
	var builtAt time.Time
	var dimensions int

	row := s.db.QueryRowContext(ctx, "SELECT version, built_at, dimensions FROM snapshots LIMIT 1")
	if err := row.Scan(&version, &builtAt, &dimensions); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNoSnapshot
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}

	docs, err := s.loadDocuments(ctx, version)
	if err != nil {
		return nil, err
	}
	chunks, err := s.loadChunks(ctx, version)
	if err != nil {
		return nil, err
	}

	snap, err := snapshot.Build(docs, chunks)
	if err != nil {
		return nil, fmt.Errorf("rebuilding indices: %w", err)
	}
	snap.Version = version
	snap.BuiltAt = builtAt
	return snap, nil
}

func (s *Store) loadDocuments(ctx context.Context, version string) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, format, body, ingested_at
		FROM documents WHERE snapshot_version = ? ORDER BY ord
	`, version)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var doc domain.Document
		var format string
		if err := rows.Scan(&doc.ID, &doc.Name, &format, &doc.Text, &doc.IngestedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc.Format = domain.Format(format)
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *Store) loadChunks(ctx context.Context, version string) ([]domain.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, document_name, seq, start_word, end_word, body, embedding
		FROM chunks WHERE snapshot_version = ? ORDER BY ord
	`, version)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk
	for rows.Next() {
		var chunk domain.Chunk
		var embeddingBlob []byte
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.DocumentName,
			&chunk.Seq, &chunk.StartWord, &chunk.EndWord, &chunk.Text, &embeddingBlob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunk.Embedding = bytesToFloat32Slice(embeddingBlob)
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

// float32SliceToBytes converts an embedding vector to a byte slice for
// BLOB storage.
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
