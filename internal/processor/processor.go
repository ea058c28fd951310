package processor

import (
	"errors"
	"fmt"

	"gomoku/internal/board"
	"gomoku/internal/core"
	"gomoku/internal/game"
	"gomoku/internal/service"
)

// Processor translates commands into service calls and service results into API responses
type Processor struct {
	svc *service.Service
}

func New(svc *service.Service) *Processor {
	return &Processor{svc: svc}
}

func (p *Processor) Execute(cmd Command) ProcessorResponse {
	switch cmd.Type {
	case CmdCreateGame:
		return p.handleCreateGame(cmd)
	case CmdGetGame:
		return p.handleGetGame(cmd)
	case CmdPlayMove:
		return p.handlePlayMove(cmd)
	case CmdJumpTo:
		return p.handleJumpTo(cmd)
	case CmdRestart:
		return p.handleRestart(cmd)
	case CmdDeleteGame:
		return p.handleDeleteGame(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	case CmdGetHistory:
		return p.handleGetHistory(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrInvalidRequest)
	}
}

func (p *Processor) handleCreateGame(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.CreateGameRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	gameID := p.svc.GenerateGameID()
	playerA := core.NewPlayer(args.PlayerA, core.MarkA)
	playerB := core.NewPlayer(args.PlayerB, core.MarkB)

	v, err := p.svc.CreateGame(gameID, playerA, playerB)
	if err != nil {
		return p.serviceError("failed to create game", err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    BuildGameResponse(v),
	}
}

func (p *Processor) handleGetGame(cmd Command) ProcessorResponse {
	v, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.serviceError("game not found", err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    BuildGameResponse(v),
	}
}

func (p *Processor) handlePlayMove(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.MoveRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	var index int
	switch {
	case args.Index != nil:
		index = *args.Index
	case args.Cell != "":
		i, err := board.ParseCoord(args.Cell)
		if err != nil {
			return p.errorResponseDetails("invalid cell", core.ErrInvalidRequest, err.Error())
		}
		index = i
	default:
		return p.errorResponse("index or cell required", core.ErrInvalidRequest)
	}

	v, err := p.svc.PlayMove(cmd.GameID, index)
	if err != nil {
		return p.serviceError("move rejected", err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    BuildGameResponse(v),
	}
}

func (p *Processor) handleJumpTo(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.JumpRequest)
	if !ok || args.Position == nil {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	v, err := p.svc.JumpTo(cmd.GameID, *args.Position)
	if err != nil {
		return p.serviceError("jump rejected", err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    BuildGameResponse(v),
	}
}

func (p *Processor) handleRestart(cmd Command) ProcessorResponse {
	v, err := p.svc.Restart(cmd.GameID)
	if err != nil {
		return p.serviceError("restart failed", err)
	}

	return ProcessorResponse{
		Success: true,
		Data:    BuildGameResponse(v),
	}
}

func (p *Processor) handleDeleteGame(cmd Command) ProcessorResponse {
	if err := p.svc.DeleteGame(cmd.GameID); err != nil {
		return p.serviceError("game not found", err)
	}

	return ProcessorResponse{
		Success: true,
	}
}

func (p *Processor) handleGetBoard(cmd Command) ProcessorResponse {
	v, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.serviceError("game not found", err)
	}

	return ProcessorResponse{
		Success: true,
		Data: core.BoardResponse{
			Board: v.Board.String(),
			ASCII: v.Board.ToASCII(),
		},
	}
}

func (p *Processor) handleGetHistory(cmd Command) ProcessorResponse {
	v, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.serviceError("game not found", err)
	}

	entries := make([]core.HistoryEntry, len(v.Entries))
	for i, e := range v.Entries {
		entries[i] = core.HistoryEntry{
			Position: i,
			Label:    game.Label(i),
			Move:     moveInfo(e),
			Current:  i == v.Position,
		}
	}

	return ProcessorResponse{
		Success: true,
		Data: core.HistoryResponse{
			GameID:   v.GameID,
			Position: v.Position,
			Entries:  entries,
		},
	}
}

// BuildGameResponse constructs the standard game response from a service view
func BuildGameResponse(v service.View) core.GameResponse {
	playerA, playerB := v.PlayerA, v.PlayerB
	resp := core.GameResponse{
		GameID:    v.GameID,
		Board:     v.Board.String(),
		Position:  v.Position,
		MoveCount: v.MoveCount,
		Version:   v.Version,
		Next:      v.Next.String(),
		State:     v.State.String(),
		WinLine:   v.WinLine,
		Moves:     v.Moves(),
		Players: core.PlayersResponse{
			A: &playerA,
			B: &playerB,
		},
	}

	if v.Winner != core.MarkEmpty {
		resp.Winner = v.Winner.String()
	}

	if last, ok := v.LastMove(); ok {
		resp.LastMove = moveInfo(last)
	}

	return resp
}

func moveInfo(s game.Snapshot) *core.MoveInfo {
	if s.Move < 0 {
		return nil
	}
	return &core.MoveInfo{
		Index: s.Move,
		Cell:  board.CellName(s.Move),
		Mark:  s.Mark.String(),
	}
}

// serviceError maps engine and service errors to API error codes
func (p *Processor) serviceError(message string, err error) ProcessorResponse {
	var code string
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		code = core.ErrGameNotFound
	case errors.Is(err, service.ErrResourceLimit):
		code = core.ErrResourceLimit
	case errors.Is(err, game.ErrOutOfBounds):
		code = core.ErrOutOfBounds
	case errors.Is(err, game.ErrGameAlreadyWon):
		code = core.ErrGameAlreadyWon
	case errors.Is(err, game.ErrCellOccupied):
		code = core.ErrCellOccupied
	default:
		code = core.ErrInternalError
		message = fmt.Sprintf("%s: internal error", message)
	}
	return p.errorResponseDetails(message, code, err.Error())
}

func (p *Processor) errorResponse(message, code string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error: message,
			Code:  code,
		},
	}
}

func (p *Processor) errorResponseDetails(message, code, details string) ProcessorResponse {
	resp := p.errorResponse(message, code)
	resp.Error.Details = details
	return resp
}
