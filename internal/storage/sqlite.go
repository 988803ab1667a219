// Package storage provides SQLite-based persistence for the scoreboard.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-shooter/internal/config"
)

// timeLayout is how played_at is stored (UTC).
const timeLayout = "2006-01-02 15:04:05"

var (
	// ErrNotFound is returned when a score id does not exist.
	ErrNotFound = errors.New("storage: score not found")
	// ErrInvalidMode is returned for modes outside Easy/Medium/Hard.
	ErrInvalidMode = errors.New("storage: invalid mode")
	// ErrNegativeScore is returned for scores below zero.
	ErrNegativeScore = errors.New("storage: score must not be negative")
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// RunRecord is what a finished run hands to the scoreboard.
type RunRecord struct {
	RunID    string // generated when empty
	Player   string
	Mode     config.Mode
	Score    int
	Duration time.Duration
	Ticks    int
	PlayedAt time.Time // now when zero
}

// ScoreEntry represents a single scoreboard row.
type ScoreEntry struct {
	ID          int64
	RunID       string
	Player      string
	Mode        config.Mode
	Score       int
	DurationSec float64
	Ticks       int
	PlayedAt    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			mode TEXT NOT NULL CHECK (mode IN ('Easy', 'Medium', 'Hard')),
			score INTEGER NOT NULL CHECK (score >= 0),
			duration_sec REAL NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			played_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_mode ON scores(mode);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(mode, score DESC, played_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func validate(mode config.Mode, score int) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if score < 0 {
		return ErrNegativeScore
	}
	return nil
}

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(rec RunRecord) (int64, error) {
	if err := validate(rec.Mode, rec.Score); err != nil {
		return 0, err
	}
	if rec.RunID == "" {
		rec.RunID = uuid.New().String()
	}
	if rec.PlayedAt.IsZero() {
		rec.PlayedAt = s.now()
	}
	if rec.Player == "" {
		rec.Player = "Player"
	}

	result, err := s.db.Exec(
		`INSERT INTO scores (run_id, player, mode, score, duration_sec, ticks, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.Player,
		string(rec.Mode),
		rec.Score,
		rec.Duration.Seconds(),
		rec.Ticks,
		rec.PlayedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// AddScore inserts a score entered by hand.
func (s *Store) AddScore(player string, mode config.Mode, score int, duration time.Duration) (int64, error) {
	return s.SaveRun(RunRecord{
		Player:   player,
		Mode:     mode,
		Score:    score,
		Duration: duration,
	})
}

const selectColumns = `SELECT id, run_id, player, mode, score, duration_sec, ticks, played_at FROM scores`

// ListScores returns every score of a mode, or of all modes when mode is
// empty, best first and newest first among ties.
func (s *Store) ListScores(mode config.Mode) ([]ScoreEntry, error) {
	return s.TopScores(mode, -1)
}

// TopScores retrieves the top N scores for a mode (all modes when empty).
// A negative limit returns every row.
func (s *Store) TopScores(mode config.Mode, limit int) ([]ScoreEntry, error) {
	if limit == 0 {
		limit = 10
	}

	query := selectColumns
	var args []any
	if mode != "" {
		query += ` WHERE mode = ?`
		args = append(args, string(mode))
	}
	query += ` ORDER BY score DESC, played_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// GetScore returns one score by ID.
func (s *Store) GetScore(id int64) (ScoreEntry, error) {
	e, err := scanEntry(s.db.QueryRow(selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return ScoreEntry{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return e, err
}

// UpdateScore replaces the player, mode and score of an existing entry.
func (s *Store) UpdateScore(id int64, player string, mode config.Mode, score int) error {
	if err := validate(mode, score); err != nil {
		return err
	}
	res, err := s.db.Exec(
		`UPDATE scores SET player = ?, mode = ?, score = ? WHERE id = ?`,
		player, string(mode), score, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update score: %w", err)
	}
	return expectOne(res, id)
}

// DeleteScore removes one entry.
func (s *Store) DeleteScore(id int64) error {
	res, err := s.db.Exec(`DELETE FROM scores WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete score: %w", err)
	}
	return expectOne(res, id)
}

// ClearScores deletes all scores of a mode (all modes when empty) and
// returns how many were removed.
func (s *Store) ClearScores(mode config.Mode) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if mode == "" {
		res, err = s.db.Exec(`DELETE FROM scores`)
	} else {
		res, err = s.db.Exec(`DELETE FROM scores WHERE mode = ?`, string(mode))
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared rows: %w", err)
	}
	return n, nil
}

// HighScore returns the highest score for a mode (all modes when empty).
// Returns 0 if no scores exist.
func (s *Store) HighScore(mode config.Mode) (int, error) {
	var score sql.NullInt64
	var err error
	if mode == "" {
		err = s.db.QueryRow("SELECT MAX(score) FROM scores").Scan(&score)
	} else {
		err = s.db.QueryRow("SELECT MAX(score) FROM scores WHERE mode = ?", string(mode)).Scan(&score)
	}

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ModeStats contains aggregated statistics for one mode.
type ModeStats struct {
	Mode       config.Mode
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Stats returns statistics for every mode that has been played, in
// Easy, Medium, Hard order.
func (s *Store) Stats() ([]ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(played_at)
		 FROM scores
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	byMode := make(map[config.Mode]ModeStats)
	for rows.Next() {
		var st ModeStats
		var mode string
		var lastPlayed any
		if err := rows.Scan(&mode, &st.GamesCount, &st.HighScore, &st.AvgScore, &st.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.Mode = config.Mode(mode)
		st.LastPlayed = parseTime(lastPlayed)
		byMode[st.Mode] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	var stats []ModeStats
	for _, m := range config.Modes() {
		if st, ok := byMode[m]; ok {
			stats = append(stats, st)
		}
	}
	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (ScoreEntry, error) {
	var e ScoreEntry
	var mode string
	var playedAt any
	if err := sc.Scan(&e.ID, &e.RunID, &e.Player, &mode, &e.Score, &e.DurationSec, &e.Ticks, &playedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return e, err
		}
		return e, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	e.Mode = config.Mode(mode)
	e.PlayedAt = parseTime(playedAt)
	return e, nil
}

// parseTime handles both time.Time and string column values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func expectOne(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}
