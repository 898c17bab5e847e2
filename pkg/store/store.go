// Package store keeps extraction snapshots and changelog records in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kataras/figma-tokens/pkg/changelog"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNoSnapshot is returned by LatestSnapshot when nothing was saved for the file.
var ErrNoSnapshot = errors.New("no snapshot")

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	file_key   TEXT NOT NULL,
	version    TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	data       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_file ON snapshots(file_key, created_at);

CREATE TABLE IF NOT EXISTS changelog (
	id          TEXT PRIMARY KEY,
	snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
	file_key    TEXT NOT NULL,
	created_at  INTEGER NOT NULL,
	data        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_changelog_file ON changelog(file_key, created_at);
`

// Store wraps a SQLite database connection
type Store struct {
	conn *sql.DB
	Path string
}

// Snapshot is a saved extraction.
type Snapshot struct {
	ID        string
	FileKey   string
	Version   string
	CreatedAt time.Time
	Data      changelog.Snapshot
}

// Open opens (creating if needed) a SQLite database with WAL mode and
// foreign keys enabled and applies the schema.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// database/sql pools connections and PRAGMAs are per connection.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{conn: conn, Path: path}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SaveSnapshot stores snap for fileKey and returns its id.
func (s *Store) SaveSnapshot(ctx context.Context, fileKey, version string, snap changelog.Snapshot, now time.Time) (string, error) {
	return insertSnapshot(ctx, s.conn, fileKey, version, snap, now)
}

// Record stores snap and the changelog record computed for it in a single
// transaction: either both are saved or neither is. A nil record stores the
// snapshot only.
func (s *Store) Record(ctx context.Context, fileKey, version string, snap changelog.Snapshot, r *changelog.Record, now time.Time) (string, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := insertSnapshot(ctx, tx, fileKey, version, snap, now)
	if err != nil {
		return "", err
	}
	if err := insertChangelog(ctx, tx, fileKey, id, r); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing snapshot: %w", err)
	}
	return id, nil
}

func insertSnapshot(ctx context.Context, db execer, fileKey, version string, snap changelog.Snapshot, now time.Time) (string, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}

	id := uuid.New().String()
	_, err = db.ExecContext(ctx,
		`INSERT INTO snapshots (id, file_key, version, created_at, data) VALUES (?, ?, ?, ?, ?)`,
		id, fileKey, version, now.UnixNano(), string(data))
	if err != nil {
		return "", fmt.Errorf("saving snapshot: %w", err)
	}
	return id, nil
}

// LatestSnapshot returns the most recent snapshot of fileKey.
func (s *Store) LatestSnapshot(ctx context.Context, fileKey string) (*Snapshot, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, file_key, version, created_at, data FROM snapshots
		 WHERE file_key = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, fileKey)

	var (
		snap    Snapshot
		created int64
		data    string
	)
	if err := row.Scan(&snap.ID, &snap.FileKey, &snap.Version, &created, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w for file %s", ErrNoSnapshot, fileKey)
		}
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &snap.Data); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", snap.ID, err)
	}
	snap.CreatedAt = time.Unix(0, created).UTC()
	return &snap, nil
}

// AppendChangelog stores r against the snapshot it was computed for. A nil
// record is ignored.
func (s *Store) AppendChangelog(ctx context.Context, fileKey, snapshotID string, r *changelog.Record) error {
	return insertChangelog(ctx, s.conn, fileKey, snapshotID, r)
}

func insertChangelog(ctx context.Context, db execer, fileKey, snapshotID string, r *changelog.Record) error {
	if r == nil {
		return nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding changelog record: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO changelog (id, snapshot_id, file_key, created_at, data) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), snapshotID, fileKey, r.Timestamp.UnixNano(), string(data))
	if err != nil {
		return fmt.Errorf("saving changelog record: %w", err)
	}
	return nil
}

// History returns up to limit changelog records of fileKey, newest first.
// A limit <= 0 returns every record.
func (s *Store) History(ctx context.Context, fileKey string, limit int) (changelog.History, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.conn.QueryContext(ctx,
		`SELECT data FROM changelog WHERE file_key = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`, fileKey, limit)
	if err != nil {
		return nil, fmt.Errorf("querying changelog: %w", err)
	}
	defer rows.Close()

	h := changelog.History{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning changelog: %w", err)
		}
		var r changelog.Record
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("decoding changelog record: %w", err)
		}
		h = append(h, r)
	}
	return h, rows.Err()
}
