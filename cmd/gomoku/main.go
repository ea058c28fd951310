// Package main runs a local two-player gomoku game in the terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gomoku/internal/cli"
	"gomoku/internal/service"
	clitransport "gomoku/internal/transport/cli"

	"golang.org/x/term"
)

func main() {
	var (
		color   = flag.String("color", "", "Board color theme: off, wood or mono (default: wood on a terminal)")
		verbose = flag.Bool("verbose", false, "Echo every move after it is played")
	)
	flag.Parse()

	view := cli.New(os.Stdin, os.Stdout)

	theme := cli.ThemeOff
	if term.IsTerminal(int(os.Stdout.Fd())) {
		theme = cli.ThemeWood
	}
	if *color != "" {
		theme = cli.ColorTheme(*color)
	}
	if err := view.SetTheme(theme); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -color: %v\n", err)
		os.Exit(2)
	}
	if *verbose {
		view.ToggleVerbose()
	}

	if width, ok := cli.TerminalWidth(int(os.Stdout.Fd())); ok && width < cli.BoardWidth {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %d columns wide, the board needs %d\n", width, cli.BoardWidth)
	}

	// No storage in local play
	svc := service.New(nil)
	defer svc.Shutdown(time.Second)

	handler := clitransport.New(svc, view)

	view.ShowWelcome()
	handler.Run()
}
