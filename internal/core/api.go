package core

// Request types

type CreateGameRequest struct {
	PlayerA PlayerConfig `json:"playerA"`
	PlayerB PlayerConfig `json:"playerB"`
}

// MoveRequest takes either a flat cell index or a coordinate name like "h8"
type MoveRequest struct {
	Index *int   `json:"index,omitempty" validate:"required_without=Cell"`
	Cell  string `json:"cell,omitempty" validate:"omitempty,cell"`
}

type JumpRequest struct {
	Position *int `json:"position" validate:"required"`
}

// Response types

type GameResponse struct {
	GameID    string          `json:"gameId"`
	Board     string          `json:"board"`    // 225 chars, '0' empty, '1' A, '2' B
	Position  int             `json:"position"` // Snapshot currently viewed
	MoveCount int             `json:"moveCount"`
	Version   int             `json:"version"`
	Next      string          `json:"next"`  // "A" or "B"
	State     string          `json:"state"` // "ongoing", "a_wins", "b_wins", "draw"
	Winner    string          `json:"winner,omitempty"`
	WinLine   []int           `json:"winLine,omitempty"`
	Moves     []int           `json:"moves"`
	Players   PlayersResponse `json:"players"`
	LastMove  *MoveInfo       `json:"lastMove,omitempty"`
}

type MoveInfo struct {
	Index int    `json:"index"`
	Cell  string `json:"cell"`
	Mark  string `json:"mark"`
}

type BoardResponse struct {
	Board string `json:"board"`
	ASCII string `json:"ascii"`
}

type HistoryEntry struct {
	Position int       `json:"position"`
	Label    string    `json:"label"`
	Move     *MoveInfo `json:"move,omitempty"`
	Current  bool      `json:"current,omitempty"`
}

type HistoryResponse struct {
	GameID   string         `json:"gameId"`
	Position int            `json:"position"`
	Entries  []HistoryEntry `json:"entries"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Time    int64  `json:"time"`
	Storage string `json:"storage,omitempty"`
	Games   int    `json:"games"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
