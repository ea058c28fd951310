package processor

import (
	"testing"

	"gomoku/internal/core"
	"gomoku/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func createGame(t *testing.T, p *Processor) core.GameResponse {
	t.Helper()
	resp := p.Execute(NewCreateGameCommand(core.CreateGameRequest{
		PlayerA: core.PlayerConfig{Name: "alice"},
	}))
	require.True(t, resp.Success)
	g, ok := resp.Data.(core.GameResponse)
	require.True(t, ok)
	return g
}

func TestCreateAndGet(t *testing.T) {
	p := New(service.New(nil))
	g := createGame(t, p)

	assert.NotEmpty(t, g.GameID)
	assert.Len(t, g.Board, 225)
	assert.Equal(t, "A", g.Next)
	assert.Equal(t, "ongoing", g.State)
	assert.Equal(t, "alice", g.Players.A.Name)
	assert.Equal(t, "Player B", g.Players.B.Name)
	assert.NotNil(t, g.Moves)

	resp := p.Execute(NewGetGameCommand(g.GameID))
	require.True(t, resp.Success)
	assert.Equal(t, g.GameID, resp.Data.(core.GameResponse).GameID)
}

func TestPlayMoveByIndexAndCell(t *testing.T) {
	p := New(service.New(nil))
	g := createGame(t, p)

	resp := p.Execute(NewPlayMoveCommand(g.GameID, core.MoveRequest{Index: intPtr(0)}))
	require.True(t, resp.Success)

	resp = p.Execute(NewPlayMoveCommand(g.GameID, core.MoveRequest{Cell: "h8"}))
	require.True(t, resp.Success)
	out := resp.Data.(core.GameResponse)
	assert.Equal(t, []int{0, 112}, out.Moves)
	require.NotNil(t, out.LastMove)
	assert.Equal(t, "h8", out.LastMove.Cell)
	assert.Equal(t, "B", out.LastMove.Mark)
	assert.Equal(t, byte('2'), out.Board[112])
}

func TestErrorCodes(t *testing.T) {
	p := New(service.New(nil))
	g := createGame(t, p)
	require.True(t, p.Execute(NewPlayMoveCommand(g.GameID, core.MoveRequest{Index: intPtr(5)})).Success)

	tests := []struct {
		name string
		cmd  Command
		code string
	}{
		{"missing game", NewGetGameCommand("nope"), core.ErrGameNotFound},
		{"occupied", NewPlayMoveCommand(g.GameID, core.MoveRequest{Index: intPtr(5)}), core.ErrCellOccupied},
		{"out of bounds", NewPlayMoveCommand(g.GameID, core.MoveRequest{Index: intPtr(225)}), core.ErrOutOfBounds},
		{"bad cell", NewPlayMoveCommand(g.GameID, core.MoveRequest{Cell: "z9"}), core.ErrInvalidRequest},
		{"index as cell", NewPlayMoveCommand(g.GameID, core.MoveRequest{Cell: "05"}), core.ErrInvalidRequest},
		{"empty move", NewPlayMoveCommand(g.GameID, core.MoveRequest{}), core.ErrInvalidRequest},
		{"jump too far", NewJumpToCommand(g.GameID, core.JumpRequest{Position: intPtr(2)}), core.ErrOutOfBounds},
		{"jump without position", NewJumpToCommand(g.GameID, core.JumpRequest{}), core.ErrInvalidRequest},
		{"wrong args", Command{Type: CmdPlayMove, GameID: g.GameID, Args: "h8"}, core.ErrInvalidRequest},
		{"unknown", Command{Type: CommandType(99)}, core.ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := p.Execute(tt.cmd)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestGameAlreadyWon(t *testing.T) {
	p := New(service.New(nil))
	g := createGame(t, p)

	var resp ProcessorResponse
	for _, m := range []int{0, 15, 1, 16, 2, 17, 3, 18, 4} {
		resp = p.Execute(NewPlayMoveCommand(g.GameID, core.MoveRequest{Index: intPtr(m)}))
		require.True(t, resp.Success)
	}
	out := resp.Data.(core.GameResponse)
	assert.Equal(t, "a_wins", out.State)
	assert.Equal(t, "A", out.Winner)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, out.WinLine)

	resp = p.Execute(NewPlayMoveCommand(g.GameID, core.MoveRequest{Index: intPtr(100)}))
	require.False(t, resp.Success)
	assert.Equal(t, core.ErrGameAlreadyWon, resp.Error.Code)
}

func TestJumpHistoryRestart(t *testing.T) {
	p := New(service.New(nil))
	g := createGame(t, p)
	for _, m := range []int{10, 20, 30} {
		require.True(t, p.Execute(NewPlayMoveCommand(g.GameID, core.MoveRequest{Index: intPtr(m)})).Success)
	}

	resp := p.Execute(NewJumpToCommand(g.GameID, core.JumpRequest{Position: intPtr(1)}))
	require.True(t, resp.Success)
	out := resp.Data.(core.GameResponse)
	assert.Equal(t, 1, out.Position)
	assert.Equal(t, 3, out.MoveCount)
	assert.Equal(t, "B", out.Next)

	resp = p.Execute(NewGetHistoryCommand(g.GameID))
	require.True(t, resp.Success)
	hist := resp.Data.(core.HistoryResponse)
	require.Len(t, hist.Entries, 4)
	assert.Equal(t, "Go to game start", hist.Entries[0].Label)
	assert.Nil(t, hist.Entries[0].Move)
	assert.Equal(t, "Go to move #2", hist.Entries[2].Label)
	assert.Equal(t, 20, hist.Entries[2].Move.Index)
	assert.True(t, hist.Entries[1].Current)
	assert.False(t, hist.Entries[3].Current)

	resp = p.Execute(NewGetBoardCommand(g.GameID))
	require.True(t, resp.Success)
	b := resp.Data.(core.BoardResponse)
	assert.Equal(t, byte('1'), b.Board[10])
	assert.Equal(t, byte('0'), b.Board[20])
	assert.Contains(t, b.ASCII, "a b c")

	resp = p.Execute(NewRestartCommand(g.GameID))
	require.True(t, resp.Success)
	assert.Equal(t, 0, resp.Data.(core.GameResponse).MoveCount)

	require.True(t, p.Execute(NewDeleteGameCommand(g.GameID)).Success)
	assert.False(t, p.Execute(NewDeleteGameCommand(g.GameID)).Success)
}
