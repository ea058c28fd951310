package cli

import (
	"fmt"
	"strconv"

	"gomoku/internal/board"
	"gomoku/internal/cli"
	"gomoku/internal/core"
	"gomoku/internal/service"
	"gomoku/internal/transport"
)

// CLIHandler runs a local hot-seat game against a game backend
type CLIHandler struct {
	games  transport.Games
	view   *cli.CLI
	gameID string
}

var _ transport.View = (*cli.CLI)(nil)

func New(games transport.Games, view *cli.CLI) *CLIHandler {
	return &CLIHandler{
		games: games,
		view:  view,
	}
}

// Run is the main loop; it returns on quit or end of input
func (h *CLIHandler) Run() {
	for {
		h.view.ShowPrompt(h.getPrompt())

		cmd, err := h.view.GetCommand()
		if err != nil {
			break
		}

		if !h.ProcessCommand(cmd) {
			break
		}
	}
}

func (h *CLIHandler) getPrompt() string {
	if h.gameID == "" {
		return "> "
	}
	v, err := h.games.GetGame(h.gameID)
	if err != nil {
		return "> "
	}
	if v.State.Over() {
		return fmt.Sprintf("[%d/%d]> ", v.Position, v.MoveCount)
	}
	return fmt.Sprintf("[%d/%d %s]> ", v.Position, v.MoveCount, v.Next.Glyph())
}

// ProcessCommand handles one command and returns false to exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:
		return true

	case cli.CmdNew:
		h.handleNewGame(cmd.Args)

	case cli.CmdHelp:
		h.view.ShowHelp()

	case cli.CmdVerbose:
		verbose := h.view.ToggleVerbose()
		h.view.ShowMessage(fmt.Sprintf("Verbose mode: %t", verbose))

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|wood|mono>")
			return true
		}
		theme := cli.ColorTheme(cmd.Args[0])
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
		if h.gameID != "" {
			h.showGame()
		}

	default:
		if h.gameID == "" {
			h.view.ShowMessage("No active game. Use 'new' to start one.")
			return true
		}
		h.handleGameCommand(cmd)
	}

	return true
}

func (h *CLIHandler) handleGameCommand(cmd *cli.Command) {
	switch cmd.Type {
	case cli.CmdMove:
		index, err := board.ParseCell(cmd.Args[0])
		if err != nil {
			h.view.ShowError(err)
			return
		}
		v, err := h.games.PlayMove(h.gameID, index)
		if err != nil {
			h.view.ShowError(err)
			return
		}
		if last, ok := v.LastMove(); ok {
			h.view.ShowMove(v.Position, last.Mark, last.Move)
		}
		h.render(v)
		if v.State.Over() {
			h.view.ShowGameOver(v.State)
		}

	case cli.CmdJump:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: jump <position>")
			return
		}
		position, err := strconv.Atoi(cmd.Args[0])
		if err != nil {
			h.view.ShowMessage("Invalid position. Usage: jump <position>")
			return
		}
		h.jump(position)

	case cli.CmdBack, cli.CmdForward:
		v, err := h.games.GetGame(h.gameID)
		if err != nil {
			h.view.ShowError(err)
			return
		}
		step := -1
		if cmd.Type == cli.CmdForward {
			step = 1
		}
		h.jump(v.Position + step)

	case cli.CmdRestart:
		v, err := h.games.Restart(h.gameID)
		if err != nil {
			h.view.ShowError(err)
			return
		}
		h.view.ShowMessage("Game restarted.")
		h.render(v)

	case cli.CmdShow:
		h.showGame()

	case cli.CmdHistory:
		v, err := h.games.GetGame(h.gameID)
		if err != nil {
			h.view.ShowError(err)
			return
		}
		h.view.ShowHistory(v.Entries, v.Position)
	}
}

func (h *CLIHandler) jump(position int) {
	v, err := h.games.JumpTo(h.gameID, position)
	if err != nil {
		h.view.ShowError(err)
		return
	}
	if h.view.IsVerbose() {
		h.view.ShowMessage(fmt.Sprintf("Viewing position %d of %d", v.Position, v.MoveCount))
	}
	h.render(v)
}

func (h *CLIHandler) handleNewGame(names []string) {
	var configA, configB core.PlayerConfig
	if len(names) > 0 {
		configA.Name = names[0]
	}
	if len(names) > 1 {
		configB.Name = names[1]
	}

	id := h.games.GenerateGameID()
	v, err := h.games.CreateGame(id,
		core.NewPlayer(configA, core.MarkA),
		core.NewPlayer(configB, core.MarkB),
	)
	if err != nil {
		h.view.ShowError(fmt.Errorf("could not start the game: %w", err))
		return
	}

	h.gameID = id
	h.view.ShowMessage(fmt.Sprintf("Game started: %s (%s) vs %s (%s)",
		v.PlayerA.Name, core.MarkA.Glyph(), v.PlayerB.Name, core.MarkB.Glyph()))
	h.render(v)
}

func (h *CLIHandler) showGame() {
	v, err := h.games.GetGame(h.gameID)
	if err != nil {
		h.view.ShowError(err)
		return
	}
	h.render(v)
}

func (h *CLIHandler) render(v service.View) {
	last := -1
	if e, ok := v.LastMove(); ok {
		last = e.Move
	}
	h.view.DisplayBoard(v.Board, v.WinLine, last)
	h.view.ShowStatus(v.State, v.Next)
}
