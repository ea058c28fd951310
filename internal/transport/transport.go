package transport

import (
	"gomoku/internal/board"
	"gomoku/internal/core"
	"gomoku/internal/game"
	"gomoku/internal/service"
)

// Games is the game backend a front-end drives; *service.Service implements it
type Games interface {
	CreateGame(id string, playerA, playerB *core.Player) (service.View, error)
	GetGame(gameID string) (service.View, error)
	GenerateGameID() string
	PlayMove(gameID string, index int) (service.View, error)
	JumpTo(gameID string, position int) (service.View, error)
	Restart(gameID string) (service.View, error)
}

// View abstracts display/output operations
type View interface {
	DisplayBoard(s board.Snapshot, winLine []int, last int)
	ShowMessage(msg string)
	ShowError(err error)
	ShowStatus(state core.State, next core.Mark)
	ShowHistory(entries []game.Snapshot, position int)
	ShowMove(position int, mark core.Mark, index int)
	ShowGameOver(state core.State)
	ShowPrompt(prompt string)
}

var _ Games = (*service.Service)(nil)
