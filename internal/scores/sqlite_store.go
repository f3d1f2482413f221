package scores

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quirk/internal/chart"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps all documents in one SQLite database, one row per entry.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (and if needed creates) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps pragmas and in-memory databases consistent.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS score_entries (
			id          TEXT PRIMARY KEY,
			document    TEXT NOT NULL,
			grp         TEXT NOT NULL,
			day         TEXT NOT NULL,
			score       INTEGER NOT NULL,
			recorded_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS score_entries_document ON score_entries (document)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

func (s *SQLiteStore) Path(name string) string {
	return s.path
}

func (s *SQLiteStore) Load(ctx context.Context, name string) (Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT grp, day, score FROM score_entries WHERE document = ? ORDER BY rowid`, name)
	if err != nil {
		return nil, fmt.Errorf("query score entries: %w", err)
	}
	defer rows.Close()

	doc := Document{}
	for rows.Next() {
		var group, day string
		var score int
		if err := rows.Scan(&group, &day, &score); err != nil {
			return nil, fmt.Errorf("scan score entry: %w", err)
		}
		d, err := chart.ParseDate(day)
		if err != nil {
			return nil, &MalformedError{Name: name, Err: fmt.Errorf("group %q: %w", group, err)}
		}
		doc[group] = append(doc[group], Entry{Date: d, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate score entries: %w", err)
	}
	return doc, nil
}

func (s *SQLiteStore) Append(ctx context.Context, name string, entries map[string]Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, group := range sortedGroups(entries) {
		e := entries[group]
		_, err := tx.ExecContext(ctx,
			`INSERT INTO score_entries (id, document, grp, day, score, recorded_at) VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), name, group, chart.FormatDate(e.Date), e.Score, now)
		if err != nil {
			return fmt.Errorf("insert score entry: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT document FROM score_entries ORDER BY document`)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
