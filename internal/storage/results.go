package storage

import (
	"fmt"
	"time"
)

// GameResult is one finished game as seen by the local player.
type GameResult struct {
	ID        int64
	GameID    string // client-generated, unique
	Server    string
	LocalName string
	Winner    string
	Players   int
	Places    []string // names in finishing order
	CreatedAt time.Time
}

// WinCount is the number of recorded games won by one name.
type WinCount struct {
	Name string
	Wins int
}

// SaveResult records a finished game and its finishing order.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r GameResult) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO results (game_id, server, local_name, winner, players, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Server, r.LocalName, r.Winner, r.Players, s.now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for i, name := range r.Places {
		if _, err := tx.Exec(
			"INSERT INTO result_places (result_id, place, name) VALUES (?, ?, ?)",
			id, i+1, name,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save place %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit result: %w", err)
	}
	return id, nil
}

// RecentResults returns the most recent games, newest first.
func (s *Store) RecentResults(limit int) ([]GameResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, server, local_name, winner, players, created_at
		 FROM results
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		var r GameResult
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Server, &r.LocalName, &r.Winner, &r.Players, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	for i := range results {
		places, err := s.places(results[i].ID)
		if err != nil {
			return nil, err
		}
		results[i].Places = places
	}
	return results, nil
}

func (s *Store) places(resultID int64) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT name FROM result_places WHERE result_id = ? ORDER BY place",
		resultID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query places: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan place: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return names, nil
}

// WinCounts returns the names with the most recorded wins.
func (s *Store) WinCounts(limit int) ([]WinCount, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT winner, COUNT(*) AS wins
		 FROM results
		 GROUP BY winner
		 ORDER BY wins DESC, winner ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query win counts: %w", err)
	}
	defer rows.Close()

	var counts []WinCount
	for rows.Next() {
		var c WinCount
		if err := rows.Scan(&c.Name, &c.Wins); err != nil {
			return nil, fmt.Errorf("storage: cannot scan win count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return counts, nil
}
