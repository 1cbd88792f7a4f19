package storage

import (
	"fmt"
	"time"
)

// Progress is a percentage toward one achievement.
type Progress struct {
	AchievementID string
	Percent       float64
	CompletedAt   time.Time // Zero unless Percent reached 100
	UpdatedAt     time.Time
}

// Completed reports whether the achievement is unlocked.
func (p Progress) Completed() bool { return p.Percent >= 100 }

// RecordProgress raises the stored progress for an achievement and returns
// the value now on record, which may be higher than percent.
func (s *Store) RecordProgress(id string, percent float64) (float64, error) {
	percent = min(max(percent, 0), 100)
	_, err := s.db.Exec(
		`INSERT INTO achievements (achievement_id, percent, completed_at)
		 VALUES (?, ?, CASE WHEN ? >= 100 THEN CURRENT_TIMESTAMP END)
		 ON CONFLICT(achievement_id) DO UPDATE SET
			percent = MAX(percent, excluded.percent),
			completed_at = COALESCE(completed_at, excluded.completed_at),
			updated_at = CURRENT_TIMESTAMP`,
		id, percent, percent,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record progress: %w", err)
	}

	var stored float64
	err = s.db.QueryRow("SELECT percent FROM achievements WHERE achievement_id = ?", id).Scan(&stored)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read progress: %w", err)
	}
	return stored, nil
}

// Achievements lists recorded achievement progress, most complete first.
func (s *Store) Achievements() ([]Progress, error) {
	rows, err := s.db.Query(
		`SELECT achievement_id, percent, completed_at, updated_at
		 FROM achievements
		 ORDER BY percent DESC, achievement_id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query achievements: %w", err)
	}
	defer rows.Close()

	var out []Progress
	for rows.Next() {
		var p Progress
		var completedAt, updatedAt any
		if err := rows.Scan(&p.AchievementID, &p.Percent, &completedAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.CompletedAt = parseTime(completedAt)
		p.UpdatedAt = parseTime(updatedAt)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// CacheProgress keeps progress that could not be submitted for a later
// retry. The cached value only ever rises.
func (s *Store) CacheProgress(id string, percent float64) error {
	_, err := s.db.Exec(
		`INSERT INTO pending_progress (achievement_id, percent) VALUES (?, ?)
		 ON CONFLICT(achievement_id) DO UPDATE SET
			percent = MAX(percent, excluded.percent),
			updated_at = CURRENT_TIMESTAMP`,
		id, percent,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot cache progress: %w", err)
	}
	return nil
}

// PendingProgress returns all cached progress awaiting submission.
func (s *Store) PendingProgress() ([]Progress, error) {
	rows, err := s.db.Query(
		`SELECT achievement_id, percent, updated_at
		 FROM pending_progress
		 ORDER BY achievement_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query pending progress: %w", err)
	}
	defer rows.Close()

	var out []Progress
	for rows.Next() {
		var p Progress
		var updatedAt any
		if err := rows.Scan(&p.AchievementID, &p.Percent, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.UpdatedAt = parseTime(updatedAt)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ClearPending drops cached progress once it has been submitted. Progress
// cached again at a higher value in the meantime is kept.
func (s *Store) ClearPending(id string, submitted float64) error {
	_, err := s.db.Exec(
		"DELETE FROM pending_progress WHERE achievement_id = ? AND percent <= ?",
		id, submitted,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot clear pending progress: %w", err)
	}
	return nil
}

// LeaderboardEntry is a score submitted to the local leaderboard.
type LeaderboardEntry struct {
	SessionID string
	Score     int
	CreatedAt time.Time
}

// SubmitLeaderboard records a score on the local leaderboard.
func (s *Store) SubmitLeaderboard(sessionID string, score int) error {
	_, err := s.db.Exec(
		"INSERT INTO leaderboard (session_id, score) VALUES (?, ?)",
		sessionID, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot submit leaderboard score: %w", err)
	}
	return nil
}

// Leaderboard returns the best N leaderboard entries.
func (s *Store) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT session_id, score, created_at
		 FROM leaderboard
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var out []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var createdAt any
		if err := rows.Scan(&e.SessionID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Achievement returns the recorded progress for one achievement. An
// unknown id wraps sql.ErrNoRows.
func (s *Store) Achievement(id string) (Progress, error) {
	var p Progress
	var completedAt, updatedAt any
	err := s.db.QueryRow(
		`SELECT achievement_id, percent, completed_at, updated_at
		 FROM achievements WHERE achievement_id = ?`,
		id,
	).Scan(&p.AchievementID, &p.Percent, &completedAt, &updatedAt)
	if err != nil {
		return Progress{}, fmt.Errorf("storage: cannot query achievement %s: %w", id, err)
	}
	p.CompletedAt = parseTime(completedAt)
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}
