package session

import (
	"io"
	"os"

	"gomoku/internal/client/api"
	"gomoku/internal/core"
)

// Session is the client-side state of the debug client
type Session struct {
	APIBaseURL       string
	Client           *api.Client
	CurrentGame      string
	LastVersion      int
	CurrentGameState *core.GameResponse
	Verbose          bool
	Output           io.Writer
}

func New(baseURL string) *Session {
	return &Session{
		APIBaseURL: baseURL,
		Client:     api.New(baseURL),
		Output:     os.Stdout,
	}
}

func (s *Session) GetAPIBaseURL() string {
	return s.APIBaseURL
}

func (s *Session) SetAPIBaseURL(url string) {
	s.APIBaseURL = url
}

func (s *Session) GetCurrentGame() string {
	return s.CurrentGame
}

func (s *Session) GetLastVersion() int {
	return s.LastVersion
}

func (s *Session) SetLastVersion(v int) {
	s.LastVersion = v
}

func (s *Session) GetClient() *api.Client {
	return s.Client
}

func (s *Session) IsVerbose() bool {
	return s.Verbose
}

func (s *Session) Out() io.Writer {
	return s.Output
}

func (s *Session) GetGameState() *core.GameResponse {
	return s.CurrentGameState
}

// SetCurrentGame switches games and forgets the cached state
func (s *Session) SetCurrentGame(id string) {
	if id != s.CurrentGame {
		s.CurrentGameState = nil
		s.LastVersion = 0
	}
	s.CurrentGame = id
}

// SetGameState caches a game response and its version
func (s *Session) SetGameState(state *core.GameResponse) {
	s.CurrentGameState = state
	if state != nil {
		s.LastVersion = state.Version
	}
}

// SetOutput redirects both session and API client output
func (s *Session) SetOutput(w io.Writer) {
	s.Output = w
	s.Client.Out = w
}
