// internal/store/archive.go
//
// SQLite-backed archive of finished rounds.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying the embedded migrations (idempotent, recorded in _migrations).
//   - Recording finished rounds and listing recent ones.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/evilhangman/assets"
)

// Result is one archived round.
type Result struct {
	ID         string    `json:"id"`
	Length     int       `json:"length"`
	Difficulty string    `json:"difficulty"`
	MaxWrong   int       `json:"maxWrong"`
	Guesses    int       `json:"guesses"`
	Wrong      int       `json:"wrong"`
	Status     string    `json:"status"` // "won" | "lost"
	Secret     string    `json:"secret"`
	Dictionary string    `json:"dictionary"` // word list fingerprint
	DailyDate  string    `json:"dailyDate,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Archive stores finished rounds in SQLite.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens (creating if missing) the database at dsn and migrates it.
// dsn ":memory:" gives a private in-memory database.
func OpenArchive(dsn string) (*Archive, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, assets.Migrations()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Archive{db: db}, nil
}

// Close releases the database.
func (a *Archive) Close() error { return a.db.Close() }

// Record inserts a finished round. Recording the same ID twice is a no-op.
func (a *Archive) Record(ctx context.Context, r Result) error {
	var daily any
	if r.DailyDate != "" {
		daily = r.DailyDate
	}
	_, err := a.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO rounds
            (id, length, difficulty, max_wrong, guesses, wrong, status, secret,
             dictionary, daily_date, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Length, r.Difficulty, r.MaxWrong, r.Guesses, r.Wrong, r.Status, r.Secret,
		r.Dictionary, daily, r.StartedAt.UTC().Format(time.RFC3339Nano), r.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record round %s: %w", r.ID, err)
	}
	return nil
}

// Recent lists the latest finished rounds, newest first.
// A non-positive limit defaults to 20.
func (a *Archive) Recent(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := a.db.QueryContext(ctx, `
        SELECT id, length, difficulty, max_wrong, guesses, wrong, status, secret,
               dictionary, COALESCE(daily_date, ''), started_at, finished_at
        FROM rounds
        ORDER BY finished_at DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var (
			r                 Result
			started, finished string
		)
		if err := rows.Scan(&r.ID, &r.Length, &r.Difficulty, &r.MaxWrong, &r.Guesses, &r.Wrong,
			&r.Status, &r.Secret, &r.Dictionary, &r.DailyDate, &started, &finished); err != nil {
			return nil, err
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("round %s: started_at: %w", r.ID, err)
		}
		if r.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("round %s: finished_at: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// openDB opens a SQLite database, creating the parent directory of
// relative file paths such as ./data/hangman.db.
func openDB(dsn string) (*sql.DB, error) {
	if dsn != ":memory:" {
		dir := filepath.Dir(dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	source := dsn + "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on"
	if dsn == ":memory:" {
		source = dsn
	}
	db, err := sql.Open("sqlite3", source)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	return db, nil
}

// migrate applies every *.sql file of fsys in lexical order, once.
// Applied files are recorded in the _migrations table.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		b, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(strings.TrimSpace(string(b))); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}
