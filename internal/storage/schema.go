package storage

import "time"

// GameRecord represents a row in the games table
type GameRecord struct {
	GameID       string    `db:"game_id"`
	PlayerAID    string    `db:"player_a_id"`
	PlayerAName  string    `db:"player_a_name"`
	PlayerBID    string    `db:"player_b_id"`
	PlayerBName  string    `db:"player_b_name"`
	BoardSize    int       `db:"board_size"`
	WinLength    int       `db:"win_length"`
	Result       string    `db:"result"` // "ongoing", "a_wins", "b_wins", "draw"
	StartTimeUTC time.Time `db:"start_time_utc"`
}

// MoveRecord represents a row in the moves table
type MoveRecord struct {
	MoveID         int64     `db:"move_id"`
	GameID         string    `db:"game_id"`
	MoveNumber     int       `db:"move_number"`
	CellIndex      int       `db:"cell_index"`
	PlayerMark     string    `db:"player_mark"` // "A" or "B"
	BoardAfterMove string    `db:"board_after_move"`
	MoveTimeUTC    time.Time `db:"move_time_utc"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	player_a_id TEXT NOT NULL,
	player_a_name TEXT NOT NULL DEFAULT '',
	player_b_id TEXT NOT NULL,
	player_b_name TEXT NOT NULL DEFAULT '',
	board_size INTEGER NOT NULL DEFAULT 15,
	win_length INTEGER NOT NULL DEFAULT 5,
	result TEXT NOT NULL DEFAULT 'ongoing' CHECK(result IN ('ongoing', 'a_wins', 'b_wins', 'draw')),
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	move_number INTEGER NOT NULL,
	cell_index INTEGER NOT NULL CHECK(cell_index >= 0),
	player_mark TEXT NOT NULL CHECK(player_mark IN ('A', 'B')),
	board_after_move TEXT NOT NULL,
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id, move_number)
);

CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);
CREATE INDEX IF NOT EXISTS idx_games_player_a ON games(player_a_id);
CREATE INDEX IF NOT EXISTS idx_games_player_b ON games(player_b_id);
`
