package service

import (
	"sync"
	"time"

	"gomoku/internal/board"
	"gomoku/internal/core"
	"gomoku/internal/game"
)

// session is one hot-seat game. Its History is only touched with mu held.
type session struct {
	mu         sync.Mutex
	id         string
	history    *game.History
	playerA    *core.Player
	playerB    *core.Player
	version    int
	result     core.State // last result written to storage
	createdAt  time.Time
	lastActive time.Time
	removed    bool // deleted or evicted; new waiters return at once
}

// View is a point-in-time copy of a session, safe to use without locks
type View struct {
	GameID    string
	Board     board.Snapshot
	Position  int
	MoveCount int
	Version   int
	Next      core.Mark
	State     core.State
	Winner    core.Mark
	WinLine   []int
	Entries   []game.Snapshot
	PlayerA   core.Player
	PlayerB   core.Player
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Moves returns the recorded cell indices in order
func (v View) Moves() []int {
	moves := make([]int, 0, len(v.Entries))
	for _, e := range v.Entries[1:] {
		moves = append(moves, e.Move)
	}
	return moves
}

// LastMove returns the entry that produced the viewed position
func (v View) LastMove() (game.Snapshot, bool) {
	if v.Position == 0 || v.Position >= len(v.Entries) {
		return game.Snapshot{}, false
	}
	return v.Entries[v.Position], true
}

// view must be called with mu held
func (s *session) view() View {
	h := s.history
	winner, _ := h.Winner()
	return View{
		GameID:    s.id,
		Board:     h.CurrentSnapshot(),
		Position:  h.Position(),
		MoveCount: h.MoveCount(),
		Version:   s.version,
		Next:      h.NextMark(),
		State:     h.State(),
		Winner:    winner,
		WinLine:   h.WinningLine(),
		Entries:   h.Entries(),
		PlayerA:   *s.playerA,
		PlayerB:   *s.playerB,
		CreatedAt: s.createdAt,
		UpdatedAt: s.lastActive,
	}
}
