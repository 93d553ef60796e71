// Package store keeps the round log of the running session in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/wps/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// MemoryPath keeps the round log in memory for the lifetime of the process.
const MemoryPath = ":memory:"

// Store wraps SQLite access for round data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if path == "" {
		path = MemoryPath
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Every new connection to :memory: is a fresh database.
	db.SetMaxOpenConns(1)
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
		`CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY,
			round INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			target TEXT NOT NULL,
			chars INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS round_char_stats (
			round_id INTEGER NOT NULL,
			char TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			PRIMARY KEY (round_id, char)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_round_char_stats_char ON round_char_stats(char);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return nil
}

// InsertRound stores a completed round and its per-character tallies.
func (s *Store) InsertRound(ctx context.Context, res model.RoundResult) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	r, err := tx.ExecContext(ctx,
		`INSERT INTO rounds (round, started_at, ended_at, target, chars, wpm, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.Round,
		res.StartedAt.Format(time.RFC3339Nano),
		res.EndedAt.Format(time.RFC3339Nano),
		res.Target,
		res.Chars,
		res.WPM,
		res.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err = r.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, cs := range res.CharStats {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO round_char_stats (round_id, char, correct, incorrect) VALUES (?, ?, ?, ?)`,
			id, cs.Char, cs.Correct, cs.Incorrect); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRounds returns stored rounds in completion order. When last > 0 only
// the most recent last rounds are returned.
func (s *Store) ListRounds(ctx context.Context, last int) ([]model.RoundAggregate, error) {
	query := `SELECT id, round, ended_at, chars, wpm, duration_ms FROM rounds ORDER BY id ASC`
	args := []any{}
	if last > 0 {
		query = `SELECT id, round, ended_at, chars, wpm, duration_ms FROM (
			SELECT * FROM rounds ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`
		args = append(args, last)
	}
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

	var rounds []model.RoundAggregate
	for rows.Next() {
		var agg model.RoundAggregate
		var endedAt string
		if err := rows.Scan(&agg.ID, &agg.Round, &endedAt, &agg.Chars, &agg.WPM, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		rounds = append(rounds, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rounds, nil
}

// ListCharAggregates sums per-character tallies across the given rounds.
func (s *Store) ListCharAggregates(ctx context.Context, roundIDs []int64) ([]model.CharAggregate, error) {
	if len(roundIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(roundIDs))
	args := make([]any, len(roundIDs))
	for i, id := range roundIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT char, SUM(correct) AS correct, SUM(incorrect) AS incorrect
		FROM round_char_stats
		WHERE round_id IN (%s)
		GROUP BY char
		ORDER BY char`, strings.Join(placeholders, ","))
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

	var result []model.CharAggregate
	for rows.Next() {
		var agg model.CharAggregate
		if err := rows.Scan(&agg.Char, &agg.Correct, &agg.Incorrect); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
