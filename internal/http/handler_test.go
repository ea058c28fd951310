package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"gomoku/internal/core"
	"gomoku/internal/processor"
	"gomoku/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, *service.Service) {
	t.Helper()
	svc := service.New(nil)
	// dev mode doubles the rate limit so table tests stay under it
	app := NewFiberApp(processor.New(svc), svc, true)
	t.Cleanup(func() { _ = svc.Shutdown(time.Second) })
	return app, svc
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

func create(t *testing.T, app *fiber.App) core.GameResponse {
	t.Helper()
	resp, data := do(t, app, "POST", "/api/v1/games", `{"playerA":{"name":"alice"}}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))
	return decode[core.GameResponse](t, data)
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	resp, data := do(t, app, "GET", "/health", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	h := decode[core.HealthResponse](t, data)
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, "disabled", h.Storage)
}

func TestCreateWithoutBody(t *testing.T) {
	app, _ := newTestApp(t)
	resp, data := do(t, app, "POST", "/api/v1/games", "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))

	g := decode[core.GameResponse](t, data)
	assert.Equal(t, "Player A", g.Players.A.Name)
	assert.Equal(t, 0, g.MoveCount)
}

func TestMoveFlow(t *testing.T) {
	app, _ := newTestApp(t)
	g := create(t, app)
	base := "/api/v1/games/" + g.GameID

	resp, data := do(t, app, "POST", base+"/moves", `{"index":0}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))

	resp, data = do(t, app, "POST", base+"/moves", `{"cell":"h8"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	out := decode[core.GameResponse](t, data)
	assert.Equal(t, []int{0, 112}, out.Moves)
	assert.Equal(t, "A", out.Next)

	resp, data = do(t, app, "POST", base+"/moves", `{"index":0}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, core.ErrCellOccupied, decode[core.ErrorResponse](t, data).Code)

	resp, data = do(t, app, "POST", base+"/moves", `{"index":225}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, core.ErrOutOfBounds, decode[core.ErrorResponse](t, data).Code)

	resp, data = do(t, app, "POST", base+"/jump", `{"position":0}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	out = decode[core.GameResponse](t, data)
	assert.Equal(t, 0, out.Position)
	assert.Equal(t, 2, out.MoveCount)

	resp, data = do(t, app, "GET", base+"/history", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	hist := decode[core.HistoryResponse](t, data)
	require.Len(t, hist.Entries, 3)
	assert.Equal(t, "Go to move #1", hist.Entries[1].Label)
	assert.True(t, hist.Entries[0].Current)

	resp, data = do(t, app, "GET", base+"/board", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, strings.Repeat("0", 225), decode[core.BoardResponse](t, data).Board)

	resp, _ = do(t, app, "POST", base+"/restart", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = do(t, app, "DELETE", base, "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, data = do(t, app, "GET", base, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, core.ErrGameNotFound, decode[core.ErrorResponse](t, data).Code)
}

func TestWinThenConflict(t *testing.T) {
	app, _ := newTestApp(t)
	g := create(t, app)
	base := "/api/v1/games/" + g.GameID

	var data []byte
	for _, cell := range []string{"a1", "a2", "b1", "b2", "c1", "c2", "d1", "d2", "e1"} {
		var resp *http.Response
		resp, data = do(t, app, "POST", base+"/moves", `{"cell":"`+cell+`"}`)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	}
	out := decode[core.GameResponse](t, data)
	assert.Equal(t, "a_wins", out.State)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, out.WinLine)

	resp, data := do(t, app, "POST", base+"/moves", `{"cell":"h8"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, core.ErrGameAlreadyWon, decode[core.ErrorResponse](t, data).Code)
}

func TestRequestValidation(t *testing.T) {
	app, _ := newTestApp(t)
	g := create(t, app)
	base := "/api/v1/games/" + g.GameID

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"bad uuid", "GET", "/api/v1/games/not-a-uuid", "", fiber.StatusBadRequest, core.ErrInvalidRequest},
		{"unknown game", "GET", "/api/v1/games/" + uuid.New().String(), "", fiber.StatusNotFound, core.ErrGameNotFound},
		{"empty move", "POST", base + "/moves", `{}`, fiber.StatusBadRequest, core.ErrInvalidRequest},
		{"malformed json", "POST", base + "/moves", `{"index":`, fiber.StatusBadRequest, core.ErrInvalidRequest},
		{"bad cell", "POST", base + "/moves", `{"cell":"z-9"}`, fiber.StatusBadRequest, core.ErrInvalidRequest},
		{"numeric cell", "POST", base + "/moves", `{"cell":"5"}`, fiber.StatusBadRequest, core.ErrInvalidRequest},
		{"zero-padded cell", "POST", base + "/moves", `{"cell":"05"}`, fiber.StatusBadRequest, core.ErrInvalidRequest},
		{"zero-padded row", "POST", base + "/moves", `{"cell":"h08"}`, fiber.StatusBadRequest, core.ErrInvalidRequest},
		{"missing position", "POST", base + "/jump", `{}`, fiber.StatusBadRequest, core.ErrInvalidRequest},
		{"jump out of range", "POST", base + "/jump", `{"position":3}`, fiber.StatusBadRequest, core.ErrOutOfBounds},
		{"long name", "POST", "/api/v1/games", `{"playerA":{"name":"` + strings.Repeat("x", 40) + `"}}`, fiber.StatusBadRequest, core.ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, app, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode, string(data))
			assert.Equal(t, tt.code, decode[core.ErrorResponse](t, data).Code)
		})
	}
}

func TestContentType(t *testing.T) {
	app, _ := newTestApp(t)
	req := httptest.NewRequest("POST", "/api/v1/games", strings.NewReader("playerA=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestLongPoll(t *testing.T) {
	app, svc := newTestApp(t)
	g := create(t, app)
	base := "/api/v1/games/" + g.GameID

	// stale version returns at once
	resp, data := do(t, app, "GET", base+"?wait=true&version=7", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decode[core.GameResponse](t, data).Version)

	done := make(chan core.GameResponse, 1)
	go func() {
		req := httptest.NewRequest("GET", base+"?wait=true&version=0", nil)
		resp, err := app.Test(req, -1)
		if err != nil {
			close(done)
			return
		}
		var out core.GameResponse
		_ = json.NewDecoder(resp.Body).Decode(&out)
		done <- out
	}()

	// the version check and registration share the session lock, so the
	// poll returns whichever side of registration the move lands on
	time.Sleep(50 * time.Millisecond)
	_, err := svc.PlayMove(g.GameID, 42)
	require.NoError(t, err)

	select {
	case out, ok := <-done:
		require.True(t, ok)
		assert.GreaterOrEqual(t, out.Version, 1)
	case <-time.After(5 * time.Second):
		t.Fatal("long poll did not return")
	}
	assert.Equal(t, 0, svc.Waiting(g.GameID))
}

func TestLongPollsDoNotAccumulate(t *testing.T) {
	app, svc := newTestApp(t)
	g := create(t, app)
	base := "/api/v1/games/" + g.GameID

	for i := 0; i < 5; i++ {
		done := make(chan int, 1)
		go func(version int) {
			req := httptest.NewRequest("GET", base+"?wait=true&version="+strconv.Itoa(version), nil)
			resp, err := app.Test(req, -1)
			if err != nil {
				done <- -1
				return
			}
			done <- resp.StatusCode
		}(i)

		require.Eventually(t, func() bool { return svc.Waiting(g.GameID) == 1 },
			time.Second, 5*time.Millisecond)
		_, err := svc.PlayMove(g.GameID, i)
		require.NoError(t, err)

		select {
		case status := <-done:
			require.Equal(t, fiber.StatusOK, status)
		case <-time.After(5 * time.Second):
			t.Fatal("long poll did not return")
		}
		assert.Equal(t, 0, svc.Waiting(g.GameID))
	}
}

func TestLongPollAfterMissedMove(t *testing.T) {
	app, svc := newTestApp(t)
	g := create(t, app)

	_, err := svc.PlayMove(g.GameID, 112)
	require.NoError(t, err)

	// the client still believes version 0
	start := time.Now()
	resp, data := do(t, app, "GET", "/api/v1/games/"+g.GameID+"?wait=true&version=0", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[core.GameResponse](t, data).Version)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRateLimitIgnoresForwardedHeader(t *testing.T) {
	app, _ := newTestApp(t)
	path := "/api/v1/games/" + uuid.NewString()

	limited := 0
	for i := 0; i < 30; i++ {
		req := httptest.NewRequest("GET", path, nil)
		req.Header.Set("X-Forwarded-For", "10.0.0."+strconv.Itoa(i+1))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		if resp.StatusCode == fiber.StatusTooManyRequests {
			limited++
		}
	}
	assert.Positive(t, limited, "rotating X-Forwarded-For bypassed the limiter")
}
