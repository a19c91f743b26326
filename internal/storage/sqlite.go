// Package storage provides SQLite-based persistence for finished voyages.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/starquest/internal/voyage"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run represents one finished voyage.
type Run struct {
	ID         int64
	ScenarioID string
	Difficulty string
	Score      int
	Moves      int
	Visited    int
	Correct    int
	Wrong      int
	Fuel       int // final values
	Hull       int
	Errors     int
	Reason     string
	Abandoned  bool
	CreatedAt  time.Time
}

// NewRun summarizes a finished session.
func NewRun(s *voyage.Session, difficulty string) Run {
	v := s.View()
	return Run{
		ScenarioID: s.Scenario().ID,
		Difficulty: difficulty,
		Score:      s.Score(),
		Moves:      v.Stats.Moves,
		Visited:    v.Stats.Visited,
		Correct:    v.Stats.Correct,
		Wrong:      v.Stats.Wrong,
		Fuel:       v.Resources.Fuel,
		Hull:       v.Resources.Hull,
		Errors:     v.Resources.ErrorCount,
		Reason:     v.Reason,
		Abandoned:  v.Abandoned,
	}
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

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario_id TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT 'normal',
			score INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			visited INTEGER NOT NULL DEFAULT 0,
			correct INTEGER NOT NULL DEFAULT 0,
			wrong INTEGER NOT NULL DEFAULT 0,
			fuel INTEGER NOT NULL DEFAULT 0,
			hull INTEGER NOT NULL DEFAULT 0,
			errors INTEGER NOT NULL DEFAULT 0,
			reason TEXT NOT NULL DEFAULT '',
			abandoned INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario_id ON runs(scenario_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(scenario_id, score DESC);
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

// SaveRun records a finished voyage.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Difficulty == "" {
		r.Difficulty = "normal"
	}
	result, err := s.db.Exec(
		`INSERT INTO runs (scenario_id, difficulty, score, moves, visited, correct, wrong,
		                   fuel, hull, errors, reason, abandoned)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ScenarioID, r.Difficulty, r.Score, r.Moves, r.Visited, r.Correct, r.Wrong,
		r.Fuel, r.Hull, r.Errors, r.Reason, r.Abandoned,
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

const runColumns = `id, scenario_id, difficulty, score, moves, visited, correct, wrong,
	fuel, hull, errors, reason, abandoned, created_at`

// TopRuns retrieves the top N runs for the given scenario.
// Results are ordered by score descending.
func (s *Store) TopRuns(scenarioID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE scenario_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		scenarioID, limit,
	)
}

// RecentRuns retrieves the most recent runs across all scenarios.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.ScenarioID, &r.Difficulty, &r.Score, &r.Moves, &r.Visited,
			&r.Correct, &r.Wrong, &r.Fuel, &r.Hull, &r.Errors, &r.Reason, &r.Abandoned, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// HighScore returns the highest score for the given scenario.
// Returns 0 if no runs exist.
func (s *Store) HighScore(scenarioID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE scenario_id = ?",
		scenarioID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearRuns removes all runs for the given scenario.
func (s *Store) ClearRuns(scenarioID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE scenario_id = ?", scenarioID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// ScenarioStats contains aggregated statistics for a scenario.
type ScenarioStats struct {
	ScenarioID string
	Runs       int
	Survived   int // runs that ended with the hull intact and were not abandoned
	HighScore  int
	AvgScore   float64
	AvgVisited float64
	LastPlayed time.Time
}

// survivedClause counts runs that kept their hull and were not abandoned.
const survivedClause = `SUM(CASE WHEN abandoned = 0 AND hull > 0 THEN 1 ELSE 0 END)`

// ScenarioStats retrieves aggregated statistics for a specific scenario.
func (s *Store) ScenarioStats(scenarioID string) (*ScenarioStats, error) {
	stats := &ScenarioStats{ScenarioID: scenarioID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(`+survivedClause+`, 0), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(AVG(visited), 0), MAX(created_at)
		 FROM runs WHERE scenario_id = ?`,
		scenarioID,
	).Scan(&stats.Runs, &stats.Survived, &stats.HighScore, &stats.AvgScore, &stats.AvgVisited, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllScenarioStats retrieves statistics for all scenarios that have been played.
func (s *Store) AllScenarioStats() (map[string]*ScenarioStats, error) {
	rows, err := s.db.Query(
		`SELECT scenario_id, COUNT(*), ` + survivedClause + `, MAX(score), AVG(score), AVG(visited), MAX(created_at)
		 FROM runs
		 GROUP BY scenario_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all scenario stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ScenarioStats)
	for rows.Next() {
		var st ScenarioStats
		var lastPlayed any
		if err := rows.Scan(&st.ScenarioID, &st.Runs, &st.Survived, &st.HighScore,
			&st.AvgScore, &st.AvgVisited, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.ScenarioID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
