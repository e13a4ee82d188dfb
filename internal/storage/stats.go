package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GameStats aggregates everything stored for one mode.
type GameStats struct {
	GameID     string
	RunsCount  int
	HighScore  int
	AvgScore   float64
	LevelsWon  int
	LevelsSkip int
	BestLevel  int
	AvgMoves   float64 // Over completed levels
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a mode.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.RunsCount, &stats.HighScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT
			COALESCE(SUM(CASE WHEN skipped = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN skipped = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(MAX(CASE WHEN skipped = 0 THEN level END), 0),
			COALESCE(AVG(CASE WHEN skipped = 0 THEN moves END), 0)
		 FROM level_results WHERE game_id = ?`,
		gameID,
	).Scan(&stats.LevelsWon, &stats.LevelsSkip, &stats.BestLevel, &stats.AvgMoves)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM (
			SELECT created_at FROM scores WHERE game_id = ?
			UNION ALL
			SELECT created_at FROM level_results WHERE game_id = ?
		 ) ORDER BY created_at DESC LIMIT 1`,
		gameID, gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}
	return stats, nil
}
