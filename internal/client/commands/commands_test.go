package commands

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"gomoku/internal/client/session"
	gomokuhttp "gomoku/internal/http"
	"gomoku/internal/processor"
	"gomoku/internal/service"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*Registry, *session.Session, *bytes.Buffer) {
	t.Helper()
	svc := service.New(nil)
	app := gomokuhttp.NewFiberApp(processor.New(svc), svc, true)
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(func() {
		srv.Close()
		_ = svc.Shutdown(time.Second)
	})

	var out bytes.Buffer
	s := session.New(srv.URL)
	s.SetOutput(&out)
	return NewRegistry(s), s, &out
}

func TestGameCommands(t *testing.T) {
	r, s, out := newClient(t)

	require.True(t, r.Execute("new alice bob"))
	require.NotEmpty(t, s.CurrentGame)
	assert.Contains(t, out.String(), "Game created")

	for _, line := range []string{"m a1", "m a2", "m b1", "m b2", "m c1", "m c2", "m d1", "m d2", "move 4"} {
		r.Execute(line)
	}
	assert.Contains(t, out.String(), "Game over: a_wins")
	require.NotNil(t, s.CurrentGameState)
	assert.Equal(t, 9, s.CurrentGameState.MoveCount)
	assert.Equal(t, 9, s.LastVersion)

	out.Reset()
	r.Execute("m h8")
	assert.Contains(t, out.String(), "GAME_ALREADY_WON")

	out.Reset()
	r.Execute("jump 2")
	assert.Contains(t, out.String(), "At position 2 of 9")

	out.Reset()
	r.Execute("history")
	assert.Contains(t, out.String(), "Go to game start")
	assert.Contains(t, out.String(), "Go to move #9")

	out.Reset()
	r.Execute("show")
	assert.Contains(t, out.String(), "Position: 2/9")

	out.Reset()
	r.Execute("board")
	assert.Contains(t, out.String(), "a b c d e f g h i j k l m n o")

	r.Execute("restart")
	assert.Equal(t, 0, s.CurrentGameState.MoveCount)

	id := s.CurrentGame
	r.Execute("delete")
	assert.Empty(t, s.CurrentGame)

	out.Reset()
	r.Execute("join " + id)
	assert.Contains(t, out.String(), "GAME_NOT_FOUND")
}

func TestPollReturnsWhenStale(t *testing.T) {
	r, s, out := newClient(t)
	r.Execute("new")
	r.Execute("m h8")

	// pretend the client missed the update
	s.SetLastVersion(0)
	out.Reset()
	r.Execute("poll")
	assert.Contains(t, out.String(), "Game updated to version 1")
}

func TestUtilityCommands(t *testing.T) {
	r, s, out := newClient(t)

	r.Execute("health")
	assert.Contains(t, out.String(), "Storage: disabled")

	out.Reset()
	r.Execute("m h8")
	assert.Contains(t, out.String(), "no current game")

	out.Reset()
	r.Execute("bogus")
	assert.Contains(t, out.String(), "Unknown command: bogus")

	out.Reset()
	r.Execute("help")
	assert.Contains(t, out.String(), "Game Commands")
	assert.Contains(t, out.String(), "restart")

	out.Reset()
	r.Execute("raw POST /api/v1/games {}")
	assert.Contains(t, out.String(), "[201 Created]")

	out.Reset()
	r.Execute("url localhost:1")
	assert.Equal(t, "http://localhost:1", s.APIBaseURL)
	assert.Equal(t, "http://localhost:1", s.Client.BaseURL)

	assert.False(t, r.Execute("exit"))
}
