package cli

import (
	"bytes"
	"strings"
	"testing"

	"gomoku/internal/cli"
	"gomoku/internal/core"
	"gomoku/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, script string) (*CLIHandler, *service.Service, string) {
	t.Helper()
	var out bytes.Buffer
	svc := service.New(nil)
	view := cli.New(strings.NewReader(script), &out)
	h := New(svc, view)
	h.Run()
	return h, svc, out.String()
}

func TestRequiresGame(t *testing.T) {
	_, _, out := run(t, "h8\nquit\n")
	assert.Contains(t, out, "No active game")
}

func TestPlayToWin(t *testing.T) {
	script := strings.Join([]string{
		"new alice bob",
		"a1", "a2", "b1", "b2", "c1", "c2", "d1", "d2", "e1",
		"f1",
		"quit",
	}, "\n")
	h, svc, out := run(t, script)

	assert.Contains(t, out, "Game started: alice (●) vs bob (○)")
	assert.Contains(t, out, "Winner: ●")
	assert.Contains(t, out, "Game over: a_wins")
	assert.Contains(t, out, "game already won")

	v, err := svc.GetGame(h.gameID)
	require.NoError(t, err)
	assert.Equal(t, 9, v.MoveCount)
	assert.Equal(t, core.StateAWins, v.State)
}

func TestTimeTravel(t *testing.T) {
	script := strings.Join([]string{
		"new",
		"h8", "h9", "i8",
		"jump 1",
		"back",
		"forward",
		"history",
		"j9",
		"jump 9",
		"quit",
	}, "\n")
	h, svc, out := run(t, script)

	v, err := svc.GetGame(h.gameID)
	require.NoError(t, err)
	// branch from position 1 discards h9 and i8
	assert.Equal(t, 2, v.MoveCount)
	assert.Equal(t, []int{112, 129}, v.Moves())
	assert.Equal(t, core.MarkB, v.Board[129])

	assert.Contains(t, out, ">  1. Go to move #1 (● h8)")
	assert.Contains(t, out, "out of bounds")
}

func TestInvalidInput(t *testing.T) {
	script := strings.Join([]string{
		"new",
		"z99",
		"h8",
		"h8",
		"jump x",
		"color neon",
		"color mono",
		"verbose",
		"restart",
		"exit",
	}, "\n")
	h, svc, out := run(t, script)

	assert.Contains(t, out, "invalid column")
	assert.Contains(t, out, "cell occupied")
	assert.Contains(t, out, "Invalid position")
	assert.Contains(t, out, "invalid theme")
	assert.Contains(t, out, "Color theme set to: mono")
	assert.Contains(t, out, "Verbose mode: true")
	assert.Contains(t, out, "Game restarted.")

	v, err := svc.GetGame(h.gameID)
	require.NoError(t, err)
	assert.Equal(t, 0, v.MoveCount)
}
