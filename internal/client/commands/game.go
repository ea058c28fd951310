package commands

import (
	"fmt"
	"strconv"
	"strings"

	"gomoku/internal/board"
	"gomoku/internal/client/display"
	"gomoku/internal/core"
)

func (r *Registry) registerGameCommands() {
	for _, cmd := range []*Command{
		{Name: "new", ShortName: "n", Description: "Create a new game", Usage: "new [nameA] [nameB]", Handler: newGameHandler},
		{Name: "join", ShortName: "j", Description: "Join/set current game ID", Usage: "join <gameId>", Handler: joinGameHandler},
		{Name: "move", ShortName: "m", Description: "Place a stone", Usage: "move <cell|index>  (e.g. move h8, move 112)", Handler: moveHandler},
		{Name: "jump", ShortName: "g", Description: "Go to a history position", Usage: "jump <position>", Handler: jumpHandler},
		{Name: "restart", ShortName: "r", Description: "Clear the current game", Usage: "restart", Handler: restartHandler},
		{Name: "show", ShortName: "h", Description: "Show board and game state", Usage: "show", Handler: showBoardHandler},
		{Name: "board", ShortName: "b", Description: "Show the server ASCII board", Usage: "board", Handler: asciiBoardHandler},
		{Name: "history", ShortName: "y", Description: "List history positions", Usage: "history", Handler: historyHandler},
		{Name: "state", ShortName: "s", Description: "Show raw game JSON", Usage: "state", Handler: gameStateHandler},
		{Name: "delete", ShortName: "d", Description: "Delete a game", Usage: "delete [gameId]", Handler: deleteGameHandler},
		{Name: "poll", ShortName: "p", Description: "Long-poll for game updates", Usage: "poll", Handler: pollHandler},
	} {
		cmd.Group = groupGame
		r.Register(cmd)
	}
}

func newGameHandler(s Session, args []string) error {
	req := &core.CreateGameRequest{}
	if len(args) > 0 {
		req.PlayerA.Name = args[0]
	}
	if len(args) > 1 {
		req.PlayerB.Name = args[1]
	}

	resp, err := s.GetClient().CreateGame(req)
	if err != nil {
		return err
	}

	s.SetCurrentGame(resp.GameID)
	s.SetGameState(resp)

	out := s.Out()
	fmt.Fprintf(out, "%sGame created: %s%s\n", display.Green, resp.GameID, display.Reset)
	fmt.Fprintf(out, "%s vs %s\n", playerLabel(resp.Players.A), playerLabel(resp.Players.B))
	return nil
}

func joinGameHandler(s Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: join <gameId>")
	}

	gameID := args[0]
	resp, err := s.GetClient().GetGame(gameID)
	if err != nil {
		return err
	}

	s.SetCurrentGame(gameID)
	s.SetGameState(resp)

	fmt.Fprintf(s.Out(), "%sJoined game: %s%s\n", display.Green, gameID, display.Reset)
	printSummary(s, resp)
	return nil
}

func moveHandler(s Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: move <cell|index>")
	}
	gameID, err := requireGame(s)
	if err != nil {
		return err
	}

	c := s.GetClient()
	var resp *core.GameResponse
	arg := strings.ToLower(args[0])
	if arg[0] >= '0' && arg[0] <= '9' {
		index, parseErr := board.ParseCell(arg)
		if parseErr != nil {
			return parseErr
		}
		resp, err = c.PlayIndex(gameID, index)
	} else {
		resp, err = c.PlayCell(gameID, arg)
	}
	if err != nil {
		return err
	}

	s.SetGameState(resp)
	out := s.Out()
	if resp.LastMove != nil {
		fmt.Fprintf(out, "%sMove accepted: %s at %s%s\n", display.Green, resp.LastMove.Mark, resp.LastMove.Cell, display.Reset)
	}
	if resp.State != core.StateOngoing.String() {
		fmt.Fprintf(out, "%sGame over: %s%s\n", display.Magenta, resp.State, display.Reset)
	}
	return nil
}

func jumpHandler(s Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: jump <position>")
	}
	position, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid position: %s", args[0])
	}
	gameID, err := requireGame(s)
	if err != nil {
		return err
	}

	resp, err := s.GetClient().JumpTo(gameID, position)
	if err != nil {
		return err
	}

	s.SetGameState(resp)
	fmt.Fprintf(s.Out(), "%sAt position %d of %d%s\n", display.Green, resp.Position, resp.MoveCount, display.Reset)
	return nil
}

func restartHandler(s Session, args []string) error {
	gameID, err := requireGame(s)
	if err != nil {
		return err
	}

	resp, err := s.GetClient().Restart(gameID)
	if err != nil {
		return err
	}

	s.SetGameState(resp)
	fmt.Fprintf(s.Out(), "%sGame restarted%s\n", display.Green, display.Reset)
	return nil
}

func showBoardHandler(s Session, args []string) error {
	gameID, err := requireGame(s)
	if err != nil {
		return err
	}

	game, err := s.GetClient().GetGame(gameID)
	if err != nil {
		return err
	}
	s.SetGameState(game)

	out := s.Out()
	last := -1
	if game.LastMove != nil {
		last = game.LastMove.Index
	}
	fmt.Fprintln(out)
	if err := display.RenderBoard(out, game.Board, game.WinLine, last); err != nil {
		return err
	}

	fmt.Fprintln(out)
	printSummary(s, game)
	if game.LastMove != nil {
		fmt.Fprintf(out, "Last move: %s at %s\n", display.ColorForMark(game.LastMove.Mark), game.LastMove.Cell)
	}
	return nil
}

func asciiBoardHandler(s Session, args []string) error {
	gameID, err := requireGame(s)
	if err != nil {
		return err
	}

	resp, err := s.GetClient().GetBoard(gameID)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.Out(), resp.ASCII)
	return nil
}

func historyHandler(s Session, args []string) error {
	gameID, err := requireGame(s)
	if err != nil {
		return err
	}

	resp, err := s.GetClient().GetHistory(gameID)
	if err != nil {
		return err
	}

	out := s.Out()
	for _, e := range resp.Entries {
		marker := "  "
		if e.Current {
			marker = display.Yellow + "> " + display.Reset
		}
		line := fmt.Sprintf("%s%2d. %s", marker, e.Position, e.Label)
		if e.Move != nil {
			line += fmt.Sprintf(" (%s %s)", display.ColorForMark(e.Move.Mark), e.Move.Cell)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func gameStateHandler(s Session, args []string) error {
	gameID, err := requireGame(s)
	if err != nil {
		return err
	}

	resp, err := s.GetClient().GetGame(gameID)
	if err != nil {
		return err
	}
	s.SetGameState(resp)

	fmt.Fprintf(s.Out(), "%sGame State:%s\n", display.Cyan, display.Reset)
	display.PrettyPrintJSON(s.Out(), resp)
	return nil
}

func deleteGameHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if len(args) > 0 {
		gameID = args[0]
	}
	if gameID == "" {
		return fmt.Errorf("specify game ID or set current game")
	}

	if err := s.GetClient().DeleteGame(gameID); err != nil {
		return err
	}

	if gameID == s.GetCurrentGame() {
		s.SetCurrentGame("")
	}

	fmt.Fprintf(s.Out(), "%sGame deleted: %s%s\n", display.Green, gameID, display.Reset)
	return nil
}

func pollHandler(s Session, args []string) error {
	gameID, err := requireGame(s)
	if err != nil {
		return err
	}

	version := s.GetLastVersion()
	out := s.Out()
	fmt.Fprintf(out, "%sLong-polling for updates (version: %d)...%s\n", display.Cyan, version, display.Reset)
	fmt.Fprintf(out, "%sThis may take up to 25 seconds%s\n", display.Cyan, display.Reset)

	resp, err := s.GetClient().GetGameWithPoll(gameID, version)
	if err != nil {
		return err
	}
	s.SetGameState(resp)

	if resp.Version != version {
		fmt.Fprintf(out, "%sGame updated to version %d%s\n", display.Green, resp.Version, display.Reset)
		printSummary(s, resp)
	} else {
		fmt.Fprintf(out, "%sNo updates (timeout)%s\n", display.Yellow, display.Reset)
	}
	return nil
}

func printSummary(s Session, g *core.GameResponse) {
	status := "Next: " + display.ColorForMark(g.Next)
	if g.State != core.StateOngoing.String() {
		status = "Winner: " + display.ColorForMark(g.Winner)
		if g.Winner == "" {
			status = "Result: " + display.ColorForState(g.State)
		}
	}
	fmt.Fprintf(s.Out(), "%s | State: %s | Position: %d/%d\n",
		status, display.ColorForState(g.State), g.Position, g.MoveCount)
}

func playerLabel(p *core.Player) string {
	if p == nil {
		return "?"
	}
	return fmt.Sprintf("%s (%s)", p.Name, display.ColorForMark(p.Mark.String()))
}
