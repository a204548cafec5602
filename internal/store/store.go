// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alice-yql/bearwithme/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for words, durations, and the practice log.
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
		`CREATE TABLE IF NOT EXISTS words (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			breakdown TEXT NOT NULL,
			status TEXT NOT NULL,
			practice_count INTEGER NOT NULL,
			last_practiced TEXT NOT NULL,
			position INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS durations (
			word_id TEXT PRIMARY KEY,
			elapsed_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS practice_log (
			id INTEGER PRIMARY KEY,
			word_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_practice_log_started_at ON practice_log(started_at);`,
		`CREATE INDEX IF NOT EXISTS idx_practice_log_word_id ON practice_log(word_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadWords returns all words ordered by position.
func (s *Store) LoadWords(ctx context.Context) ([]model.Word, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, breakdown, status, practice_count, last_practiced
		 FROM words ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var words []model.Word
	for rows.Next() {
		var w model.Word
		var status, lastPracticed string
		if err := rows.Scan(&w.ID, &w.Text, &w.Breakdown, &status, &w.PracticeCount, &lastPracticed); err != nil {
			return nil, err
		}
		w.Status = model.Status(status)
		if !model.ValidStatus(w.Status) {
			w.Status = model.StatusNotStarted
		}
		if lastPracticed != "" {
			parsed, err := time.Parse(time.RFC3339Nano, lastPracticed)
			if err != nil {
				return nil, err
			}
			w.LastPracticed = parsed
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// SaveWords rewrites the word table with the given ordering.
func (s *Store) SaveWords(ctx context.Context, words []model.Word) error {
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

	if _, err = tx.ExecContext(ctx, `DELETE FROM words`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO words (id, text, breakdown, status, practice_count, last_practiced, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for i, w := range words {
		lastPracticed := ""
		if !w.LastPracticed.IsZero() {
			lastPracticed = w.LastPracticed.Format(time.RFC3339Nano)
		}
		if _, err = stmt.ExecContext(ctx, w.ID, w.Text, w.Breakdown, string(w.Status), w.PracticeCount, lastPracticed, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UpdateWordProgress writes back status and practice counters by word
// id. The stored order is not touched, so a session that practiced the
// words in a different sequence cannot reorder the library.
func (s *Store) UpdateWordProgress(ctx context.Context, words []model.Word) error {
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

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE words SET status = ?, practice_count = ?, last_practiced = ? WHERE id = ?`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, w := range words {
		lastPracticed := ""
		if !w.LastPracticed.IsZero() {
			lastPracticed = w.LastPracticed.Format(time.RFC3339Nano)
		}
		if _, err = stmt.ExecContext(ctx, string(w.Status), w.PracticeCount, lastPracticed, w.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadDurations returns the duration table index-aligned with words.
// Words without a stored entry get zero; entries whose word no longer
// exists are pruned.
func (s *Store) LoadDurations(ctx context.Context, words []model.Word) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word_id, elapsed_ms FROM durations`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	byID := make(map[string]int64)
	for rows.Next() {
		var id string
		var elapsed int64
		if err := rows.Scan(&id, &elapsed); err != nil {
			return nil, err
		}
		if elapsed < 0 {
			elapsed = 0
		}
		byID[id] = elapsed
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(words))
	durations := make([]int64, len(words))
	for i, w := range words {
		durations[i] = byID[w.ID]
		known[w.ID] = struct{}{}
	}

	var orphans []string
	for id := range byID {
		if _, ok := known[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	if len(orphans) > 0 {
		placeholders := make([]string, len(orphans))
		args := make([]any, len(orphans))
		for i, id := range orphans {
			placeholders[i] = "?"
			args[i] = id
		}
		query := `DELETE FROM durations WHERE word_id IN (` + strings.Join(placeholders, ",") + `)`
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return nil, err
		}
	}
	return durations, nil
}

// SaveDurations rewrites the duration table keyed by word id. The slice
// must be index-aligned with words.
func (s *Store) SaveDurations(ctx context.Context, words []model.Word, durations []int64) error {
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

	if _, err = tx.ExecContext(ctx, `DELETE FROM durations`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO durations (word_id, elapsed_ms) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for i, w := range words {
		var elapsed int64
		if i < len(durations) {
			elapsed = durations[i]
		}
		if elapsed < 0 {
			elapsed = 0
		}
		if _, err = stmt.ExecContext(ctx, w.ID, elapsed); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// HasDurations reports whether any duration entry is stored.
func (s *Store) HasDurations(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM durations`).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertPractice appends one committed stretch of practice to the log.
func (s *Store) InsertPractice(ctx context.Context, rec model.PracticeRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO practice_log (word_id, started_at, ended_at, duration_ms)
		 VALUES (?, ?, ?, ?)`,
		rec.WordID,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
		rec.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListWordAggregates joins words with their stored duration and practice
// counts, optionally filtered by a substring of the word text.
func (s *Store) ListWordAggregates(ctx context.Context, wordFilter string) ([]model.WordAggregate, error) {
	query := `SELECT w.id, w.text, w.status, w.last_practiced,
			COALESCE(d.elapsed_ms, 0) AS total_ms,
			COALESCE(l.sessions, 0) AS sessions
		FROM words w
		LEFT JOIN durations d ON d.word_id = w.id
		LEFT JOIN (
			SELECT word_id, COUNT(*) AS sessions FROM practice_log GROUP BY word_id
		) l ON l.word_id = w.id
		WHERE (? = '' OR instr(lower(w.text), lower(?)) > 0)
		ORDER BY w.position ASC`
	rows, err := s.db.QueryContext(ctx, query, wordFilter, wordFilter)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var aggs []model.WordAggregate
	for rows.Next() {
		var agg model.WordAggregate
		var status, lastPracticed string
		if err := rows.Scan(&agg.WordID, &agg.Text, &status, &lastPracticed, &agg.TotalMs, &agg.Sessions); err != nil {
			return nil, err
		}
		agg.Status = model.Status(status)
		if lastPracticed != "" {
			parsed, err := time.Parse(time.RFC3339Nano, lastPracticed)
			if err != nil {
				return nil, err
			}
			agg.LastPracticed = parsed
		}
		aggs = append(aggs, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return aggs, nil
}

// ListPractice returns practice records matching the stats filters,
// oldest first.
func (s *Store) ListPractice(ctx context.Context, cfg model.StatsConfig) ([]model.PracticeRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "started_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	if cfg.Word != "" {
		clauses = append(clauses, `word_id IN (SELECT id FROM words WHERE instr(lower(text), lower(?)) > 0)`)
		args = append(args, cfg.Word)
	}
	query := `SELECT id, word_id, started_at, ended_at, duration_ms
		FROM practice_log
		WHERE ` + strings.Join(clauses, " AND ") + `
		ORDER BY started_at ASC`
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

	var records []model.PracticeRecord
	for rows.Next() {
		var rec model.PracticeRecord
		var startedAt, endedAt string
		if err := rows.Scan(&rec.ID, &rec.WordID, &startedAt, &endedAt, &rec.DurationMs); err != nil {
			return nil, err
		}
		start, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, err
		}
		end, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		rec.StartedAt = start
		rec.EndedAt = end
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(records) > cfg.Last {
		records = records[len(records)-cfg.Last:]
	}
	return records, nil
}
