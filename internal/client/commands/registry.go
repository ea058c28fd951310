package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gomoku/internal/client/api"
	"gomoku/internal/client/display"
	"gomoku/internal/core"
)

type Session interface {
	GetAPIBaseURL() string
	SetAPIBaseURL(string)
	GetCurrentGame() string
	SetCurrentGame(string)
	GetLastVersion() int
	SetLastVersion(int)
	GetClient() *api.Client
	IsVerbose() bool
	GetGameState() *core.GameResponse
	SetGameState(*core.GameResponse)
	Out() io.Writer
}

// Command defines a client command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Group       string
	Handler     func(Session, []string) error
}

// Registry manages command registration and execution
type Registry struct {
	session  Session
	commands map[string]*Command
}

func NewRegistry(session Session) *Registry {
	r := &Registry{
		session:  session,
		commands: make(map[string]*Command),
	}

	r.registerGameCommands()
	r.registerDebugCommands()

	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Group:       groupUtility,
		Handler:     r.helpHandler,
	})

	return r
}

const (
	groupGame    = "Game Commands"
	groupUtility = "Utility Commands"
)

func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
}

// Execute runs one input line; it reports false when the client should exit
func (r *Registry) Execute(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmdName := parts[0]
	args := parts[1:]
	out := r.session.Out()

	if cmdName == "exit" || cmdName == "quit" || cmdName == "x" {
		fmt.Fprintf(out, "%sGoodbye!%s\n", display.Cyan, display.Reset)
		return false
	}

	cmd, exists := r.commands[cmdName]
	if !exists {
		fmt.Fprintf(out, "%sUnknown command: %s%s\n", display.Red, cmdName, display.Reset)
		fmt.Fprintf(out, "Type 'help' for available commands\n")
		return true
	}

	r.session.GetClient().SetVerbose(r.session.IsVerbose())

	if err := cmd.Handler(r.session, args); err != nil {
		fmt.Fprintf(out, "%sError: %s%s\n", display.Red, err.Error(), display.Reset)
	}
	return true
}

func (r *Registry) helpHandler(s Session, args []string) error {
	out := s.Out()

	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Fprintf(out, "\n%s%s%s - %s\n", display.Cyan, cmd.Name, display.Reset, cmd.Description)
		if cmd.ShortName != "" {
			fmt.Fprintf(out, "Short form: %s%s%s\n", display.Cyan, cmd.ShortName, display.Reset)
		}
		fmt.Fprintf(out, "Usage: %s\n", cmd.Usage)
		return nil
	}

	fmt.Fprintf(out, "\n%sAvailable Commands:%s\n", display.Cyan, display.Reset)

	groups := map[string][]*Command{}
	for name, cmd := range r.commands {
		if name == cmd.Name {
			groups[cmd.Group] = append(groups[cmd.Group], cmd)
		}
	}

	for _, group := range []string{groupGame, groupUtility} {
		cmds := groups[group]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })

		fmt.Fprintf(out, "\n%s%s:%s\n", display.Yellow, group, display.Reset)
		for _, cmd := range cmds {
			shortPart := "    "
			if cmd.ShortName != "" {
				shortPart = fmt.Sprintf("[%s%s%s] ", display.Cyan, cmd.ShortName, display.Reset)
			}
			fmt.Fprintf(out, "  %s%-10s %s\n", shortPart, cmd.Name, cmd.Description)
		}
	}

	fmt.Fprintf(out, "\n%s%s:%s\n  [x] exit       Exit the client\n", display.Yellow, "Session", display.Reset)
	fmt.Fprintf(out, "\nType 'help <command>' for detailed usage\n")
	fmt.Fprintf(out, "Add '-v' to any command for verbose output\n")
	return nil
}

// requireGame returns the current game ID or a usage error
func requireGame(s Session) (string, error) {
	gameID := s.GetCurrentGame()
	if gameID == "" {
		return "", fmt.Errorf("no current game, use 'new' or 'join <gameId>'")
	}
	return gameID, nil
}
