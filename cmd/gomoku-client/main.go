// Package main implements an interactive debugging client for the gomoku server API.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gomoku/internal/client/commands"
	"gomoku/internal/client/display"
	"gomoku/internal/client/session"
	"gomoku/internal/core"

	"github.com/chzyer/readline"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "Gomoku server base URL")
	flag.Parse()

	s := session.New(strings.TrimRight(*apiURL, "/"))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("gomoku"),
		HistoryFile:     ".gomoku_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("%s%s%s\n", display.Red, err.Error(), display.Reset)
		os.Exit(1)
	}
	defer rl.Close()

	s.SetOutput(rl.Stdout())

	fmt.Fprintf(rl.Stdout(), "%sGomoku Debug Client%s\n", display.Cyan, display.Reset)
	fmt.Fprintf(rl.Stdout(), "%sAPI: %s%s\n", display.Cyan, s.APIBaseURL, display.Reset)
	fmt.Fprintf(rl.Stdout(), "Type 'help' for commands\n\n")

	registry := commands.NewRegistry(s)

	for {
		rl.SetPrompt(buildPrompt(s))

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Trailing -v dumps raw requests and responses for this command
		if strings.HasSuffix(line, " -v") {
			s.Verbose = true
			line = strings.TrimSuffix(line, " -v")
		} else {
			s.Verbose = false
		}

		if !registry.Execute(line) {
			break
		}
	}
}

func buildPrompt(s *session.Session) string {
	promptStr := "gomoku"

	if s.CurrentGame != "" {
		id := s.CurrentGame
		if len(id) > 8 {
			id = id[:8]
		}
		promptStr += display.Yellow + " [" + display.Reset + display.White + id + display.Reset + display.Yellow + "]"
	}

	if g := s.CurrentGameState; g != nil {
		promptStr += fmt.Sprintf(" %d/%d", g.Position, g.MoveCount)
		if g.State == core.StateOngoing.String() {
			promptStr += " - Turn:" + display.ColorForMark(g.Next) + playerName(g)
		} else {
			promptStr += " - " + display.ColorForState(g.State)
		}
	}

	return display.Prompt(promptStr)
}

func playerName(g *core.GameResponse) string {
	p := g.Players.A
	if g.Next == core.MarkB.String() {
		p = g.Players.B
	}
	if p == nil || p.Name == "" {
		return ""
	}
	return "(" + p.Name + ")"
}
