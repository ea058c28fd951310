package processor

import (
	"gomoku/internal/core"
)

// CommandType defines the type of command being executed
type CommandType int

const (
	CmdCreateGame CommandType = iota
	CmdGetGame
	CmdDeleteGame
	CmdPlayMove
	CmdJumpTo
	CmdRestart
	CmdGetBoard
	CmdGetHistory
)

func (t CommandType) String() string {
	switch t {
	case CmdCreateGame:
		return "create"
	case CmdGetGame:
		return "get"
	case CmdDeleteGame:
		return "delete"
	case CmdPlayMove:
		return "move"
	case CmdJumpTo:
		return "jump"
	case CmdRestart:
		return "restart"
	case CmdGetBoard:
		return "board"
	case CmdGetHistory:
		return "history"
	default:
		return "unknown"
	}
}

// Command is a unified structure for all processor operations
type Command struct {
	Type   CommandType
	GameID string
	Args   any
}

// ProcessorResponse wraps the response with metadata
type ProcessorResponse struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Error   *core.ErrorResponse `json:"error,omitempty"`
}

func NewCreateGameCommand(req core.CreateGameRequest) Command {
	return Command{
		Type: CmdCreateGame,
		Args: req,
	}
}

func NewGetGameCommand(gameID string) Command {
	return Command{
		Type:   CmdGetGame,
		GameID: gameID,
	}
}

func NewPlayMoveCommand(gameID string, req core.MoveRequest) Command {
	return Command{
		Type:   CmdPlayMove,
		GameID: gameID,
		Args:   req,
	}
}

func NewJumpToCommand(gameID string, req core.JumpRequest) Command {
	return Command{
		Type:   CmdJumpTo,
		GameID: gameID,
		Args:   req,
	}
}

func NewRestartCommand(gameID string) Command {
	return Command{
		Type:   CmdRestart,
		GameID: gameID,
	}
}

func NewDeleteGameCommand(gameID string) Command {
	return Command{
		Type:   CmdDeleteGame,
		GameID: gameID,
	}
}

func NewGetBoardCommand(gameID string) Command {
	return Command{
		Type:   CmdGetBoard,
		GameID: gameID,
	}
}

func NewGetHistoryCommand(gameID string) Command {
	return Command{
		Type:   CmdGetHistory,
		GameID: gameID,
	}
}
