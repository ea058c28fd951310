package storage

import (
	"database/sql"
	"fmt"
)

// RecordNewGame asynchronously records a new game
func (s *Store) RecordNewGame(record GameRecord) {
	if record.Result == "" {
		record.Result = "ongoing"
	}
	s.enqueue("game record", func(tx *sql.Tx) error {
		query := `INSERT INTO games (
			game_id,
			player_a_id, player_a_name,
			player_b_id, player_b_name,
			board_size, win_length, result, start_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID,
			record.PlayerAID, record.PlayerAName,
			record.PlayerBID, record.PlayerBName,
			record.BoardSize, record.WinLength, record.Result, record.StartTimeUTC,
		)
		return err
	})
}

// RecordMove asynchronously records a move
func (s *Store) RecordMove(record MoveRecord) {
	s.enqueue("move record", func(tx *sql.Tx) error {
		query := `INSERT INTO moves (
			game_id, move_number, cell_index, player_mark, board_after_move, move_time_utc
		) VALUES (?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID, record.MoveNumber, record.CellIndex,
			record.PlayerMark, record.BoardAfterMove, record.MoveTimeUTC,
		)
		return err
	})
}

// DeleteMovesAfter asynchronously removes moves discarded by a branch or restart
func (s *Store) DeleteMovesAfter(gameID string, afterMoveNumber int) {
	s.enqueue("move truncation", func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM moves WHERE game_id = ? AND move_number > ?`, gameID, afterMoveNumber)
		return err
	})
}

// UpdateGameResult asynchronously sets the result of the recorded line
func (s *Store) UpdateGameResult(gameID, result string) {
	s.enqueue("result update", func(tx *sql.Tx) error {
		_, err := tx.Exec(`UPDATE games SET result = ? WHERE game_id = ?`, result, gameID)
		return err
	})
}

// QueryGames retrieves games filtered by game and player ID; "" or "*" matches all
func (s *Store) QueryGames(gameID, playerID string) ([]GameRecord, error) {
	query := `SELECT
		game_id,
		player_a_id, player_a_name,
		player_b_id, player_b_name,
		board_size, win_length, result, start_time_utc
	FROM games WHERE 1=1`

	var args []interface{}

	if gameID != "" && gameID != "*" {
		query += " AND game_id = ?"
		args = append(args, gameID)
	}

	if playerID != "" && playerID != "*" {
		query += " AND (player_a_id = ? OR player_b_id = ?)"
		args = append(args, playerID, playerID)
	}

	query += " ORDER BY start_time_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		err := rows.Scan(
			&g.GameID,
			&g.PlayerAID, &g.PlayerAName,
			&g.PlayerBID, &g.PlayerBName,
			&g.BoardSize, &g.WinLength, &g.Result, &g.StartTimeUTC,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return games, nil
}

// QueryMoves returns the recorded moves of a game in order
func (s *Store) QueryMoves(gameID string) ([]MoveRecord, error) {
	rows, err := s.db.Query(`SELECT
		move_id, game_id, move_number, cell_index, player_mark, board_after_move, move_time_utc
	FROM moves WHERE game_id = ? ORDER BY move_number`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(
			&m.MoveID, &m.GameID, &m.MoveNumber, &m.CellIndex,
			&m.PlayerMark, &m.BoardAfterMove, &m.MoveTimeUTC,
		); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return moves, nil
}
