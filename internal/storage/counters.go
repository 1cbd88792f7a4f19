package storage

import "fmt"

// Counters returns every stored lifetime counter for a game, keyed by name.
func (s *Store) Counters(gameID string) (map[string]int, error) {
	rows, err := s.db.Query("SELECT name, value FROM counters WHERE game_id = ?", gameID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query counters: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var name string
		var value int
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// SaveCounters stores lifetime counters. A stored value is never lowered,
// so a stale session cannot roll back a newer one.
func (s *Store) SaveCounters(gameID string, values map[string]int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	for name, value := range values {
		_, err := tx.Exec(
			`INSERT INTO counters (game_id, name, value) VALUES (?, ?, ?)
			 ON CONFLICT(game_id, name) DO UPDATE SET value = MAX(value, excluded.value)`,
			gameID, name, value,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save counter %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit counters: %w", err)
	}
	return nil
}
