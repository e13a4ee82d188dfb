package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LevelResult is the outcome of one level within a run.
type LevelResult struct {
	ID        int64
	RunID     uuid.UUID
	GameID    string
	Level     int
	Score     int // Run score after the level
	Moves     int
	Skipped   bool
	CreatedAt time.Time
}

// SaveLevelResult records a finished or skipped level.
func (s *Store) SaveLevelResult(r LevelResult) (int64, error) {
	if r.RunID == uuid.Nil {
		return 0, errors.New("storage: level result needs a run id")
	}
	result, err := s.db.Exec(
		`INSERT INTO level_results (run_id, game_id, level, score, moves, skipped)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.RunID.String(), r.GameID, r.Level, r.Score, r.Moves, r.Skipped,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RunResults returns every level of a run in play order.
func (s *Store) RunResults(runID uuid.UUID) ([]LevelResult, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, game_id, level, score, moves, skipped, created_at
		 FROM level_results
		 WHERE run_id = ?
		 ORDER BY id ASC`,
		runID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run %s: %w", runID, err)
	}
	return collectLevelResults(rows)
}

func collectLevelResults(rows *sql.Rows) ([]LevelResult, error) {
	defer rows.Close()

	var results []LevelResult
	for rows.Next() {
		r, err := scanLevelResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// RecentLevels returns the latest level results of a mode, newest first.
func (s *Store) RecentLevels(gameID string, limit int) ([]LevelResult, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, game_id, level, score, moves, skipped, created_at
		 FROM level_results
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	return collectLevelResults(rows)
}

// BestLevel returns the highest level completed (not skipped) in a mode.
// Returns 0 if none was completed.
func (s *Store) BestLevel(gameID string) (int, error) {
	var level sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(level) FROM level_results WHERE game_id = ? AND skipped = 0",
		gameID,
	).Scan(&level)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best level: %w", err)
	}
	if !level.Valid {
		return 0, nil
	}
	return int(level.Int64), nil
}

func scanLevelResult(rows *sql.Rows) (LevelResult, error) {
	var (
		r         LevelResult
		runID     string
		createdAt any
	)
	if err := rows.Scan(&r.ID, &runID, &r.GameID, &r.Level, &r.Score, &r.Moves, &r.Skipped, &createdAt); err != nil {
		return r, fmt.Errorf("storage: cannot scan level result: %w", err)
	}
	id, err := uuid.Parse(runID)
	if err != nil {
		return r, fmt.Errorf("storage: bad run id %q: %w", runID, err)
	}
	r.RunID = id
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}
