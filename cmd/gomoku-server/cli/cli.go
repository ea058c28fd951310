// Package cli implements the "gomoku-server db" maintenance commands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"gomoku/internal/board"
	"gomoku/internal/game"
	"gomoku/internal/storage"
)

// Run is the entry point for the CLI mini-app
func Run(args []string) error {
	return run(args, os.Stdout)
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, query, moves or replay")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:], out)
	case "delete":
		return runDelete(args[1:], out)
	case "query":
		return runQuery(args[1:], out)
	case "moves":
		return runMoves(args[1:], out)
	case "replay":
		return runReplay(args[1:], out)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

// openStore parses the shared -path flag plus any extra flags registered on fs
func openStore(fs *flag.FlagSet, args []string) (*storage.Store, error) {
	path := fs.String("path", "", "Database file path (required)")
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *path == "" {
		return nil, fmt.Errorf("database path required")
	}

	store, err := storage.NewStore(*path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return store, nil
}

func runInit(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	store, err := openStore(fs, args)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	fmt.Fprintf(out, "Database initialized at: %s\n", fs.Lookup("path").Value)
	return nil
}

func runDelete(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	store, err := openStore(fs, args)
	if err != nil {
		return err
	}

	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}

	fmt.Fprintf(out, "Database deleted: %s\n", fs.Lookup("path").Value)
	return nil
}

func runQuery(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	gameID := fs.String("gameId", "", "Game ID to filter (optional, * for all)")
	playerID := fs.String("playerId", "", "Player ID to filter (optional, * for all)")

	store, err := openStore(fs, args)
	if err != nil {
		return err
	}
	defer store.Close()

	games, err := store.QueryGames(*gameID, *playerID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(games) == 0 {
		fmt.Fprintln(out, "No games found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Game ID\tPlayer A\tPlayer B\tResult\tStart Time")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, g := range games {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			short(g.GameID)+"...",
			playerCell(g.PlayerAName, g.PlayerAID),
			playerCell(g.PlayerBName, g.PlayerBID),
			g.Result,
			g.StartTimeUTC.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\nFound %d game(s)\n", len(games))
	return nil
}

func runMoves(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("moves", flag.ContinueOnError)
	gameID := fs.String("gameId", "", "Game ID (required)")

	store, err := openStore(fs, args)
	if err != nil {
		return err
	}
	defer store.Close()

	if *gameID == "" {
		return fmt.Errorf("game ID required")
	}

	moves, err := store.QueryMoves(*gameID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(moves) == 0 {
		fmt.Fprintln(out, "No moves found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tMark\tCell\tIndex\tTime")
	for _, m := range moves {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			m.MoveNumber,
			m.PlayerMark,
			board.CellName(m.CellIndex),
			m.CellIndex,
			m.MoveTimeUTC.Format("15:04:05"),
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d move(s)\n", len(moves))
	return nil
}

// runReplay rebuilds a game from its recorded moves and prints the final board
func runReplay(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	gameID := fs.String("gameId", "", "Game ID (required)")

	store, err := openStore(fs, args)
	if err != nil {
		return err
	}
	defer store.Close()

	if *gameID == "" {
		return fmt.Errorf("game ID required")
	}

	records, err := store.QueryMoves(*gameID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	cells := make([]int, len(records))
	for i, m := range records {
		cells[i] = m.CellIndex
	}

	h, err := game.Replay(cells)
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	// Recorded boards must agree with the replayed ones
	entries := h.Entries()
	for i, m := range records {
		if got := entries[i+1].Board.String(); got != m.BoardAfterMove {
			return fmt.Errorf("move %d: recorded board does not match replay", m.MoveNumber)
		}
	}

	fmt.Fprint(out, h.CurrentSnapshot().ToASCII())
	fmt.Fprintf(out, "\nMoves: %d  State: %s\n", h.MoveCount(), h.State())
	return nil
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func playerCell(name, id string) string {
	if name == "" {
		return short(id)
	}
	return fmt.Sprintf("%s (%s)", name, short(id))
}
