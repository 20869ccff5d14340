// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/crackle/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout has fixed-width fractional seconds so stored timestamps sort
// chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for attack sessions.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			algorithm TEXT NOT NULL,
			target TEXT NOT NULL,
			dictionary_path TEXT NOT NULL,
			outcome TEXT NOT NULL,
			password TEXT NOT NULL,
			attempts INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_origin_stats (
			session_id TEXT NOT NULL,
			origin TEXT NOT NULL,
			attempts INTEGER NOT NULL,
			PRIMARY KEY (session_id, origin)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_algorithm ON sessions(algorithm);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a finished session and its per-origin counts.
func (s *Store) InsertSession(ctx context.Context, rec model.SessionRecord, origins []model.OriginCount) (err error) {
	if rec.ID == "" {
		return fmt.Errorf("session id is empty")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, ended_at, algorithm, target, dictionary_path, outcome, password, attempts, skipped, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.StartedAt.UTC().Format(timeLayout),
		rec.EndedAt.UTC().Format(timeLayout),
		rec.Algorithm,
		strings.ToLower(rec.Target),
		rec.DictionaryPath,
		rec.Outcome,
		rec.Password,
		rec.Attempts,
		rec.Skipped,
		rec.DurationMs,
	)
	if err != nil {
		return err
	}

	if len(origins) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO session_origin_stats (session_id, origin, attempts) VALUES (?, ?, ?)`)
		if perr != nil {
			err = perr
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, oc := range origins {
			if _, err = stmt.ExecContext(ctx, rec.ID, oc.Origin, oc.Attempts); err != nil {
				return err
			}
		}
	}

	err = tx.Commit()
	return err
}

// ListSessions returns session aggregates filtered by the history config, oldest first.
func (s *Store) ListSessions(ctx context.Context, cfg model.HistoryConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Algorithm != "" {
		clauses = append(clauses, "algorithm = ?")
		args = append(args, cfg.Algorithm)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, algorithm, outcome, password, attempts, duration_ms
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		if err := rows.Scan(&agg.SessionID, &endedAt, &agg.Algorithm, &agg.Outcome, &agg.Password, &agg.Attempts, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// FindCracked returns the most recent recovered password for a digest.
func (s *Store) FindCracked(ctx context.Context, algorithm, target string) (string, bool, error) {
	var password string
	err := s.db.QueryRowContext(ctx,
		`SELECT password FROM sessions
		 WHERE algorithm = ? AND target = ? AND outcome = 'found'
		 ORDER BY ended_at DESC LIMIT 1`,
		algorithm, strings.ToLower(strings.TrimSpace(target)),
	).Scan(&password)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return password, true, nil
}

// ListOriginAggregates sums per-origin attempts across sessions.
func (s *Store) ListOriginAggregates(ctx context.Context, sessionIDs []string) ([]model.OriginAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(sessionIDs))
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT origin, SUM(attempts) AS attempts, COUNT(DISTINCT session_id) AS sessions
		FROM session_origin_stats
		WHERE session_id IN (%s)
		GROUP BY origin`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.OriginAggregate
	for rows.Next() {
		var agg model.OriginAggregate
		if err := rows.Scan(&agg.Origin, &agg.Attempts, &agg.Sessions); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
