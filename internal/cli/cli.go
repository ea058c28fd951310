package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gomoku/internal/board"
	"gomoku/internal/core"
	"gomoku/internal/game"

	"golang.org/x/term"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdRestart
	CmdMove
	CmdJump
	CmdBack
	CmdForward
	CmdShow
	CmdColor
	CmdVerbose
	CmdHistory
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

type ColorTheme string

const (
	ThemeOff  ColorTheme = "off"
	ThemeWood ColorTheme = "wood"
	ThemeMono ColorTheme = "mono"
)

// BoardWidth is the rendered board width in columns
const BoardWidth = 3 + board.Size*2 + 2

type themeColors struct {
	boardBg   string
	highlight string
	last      string
	markA     string
	markB     string
	reset     string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeWood: {
		boardBg:   "\033[48;5;180m", // Tan
		highlight: "\033[48;5;214m", // Orange
		last:      "\033[48;5;223m", // Pale
		markA:     "\033[30m",
		markB:     "\033[97m",
		reset:     "\033[0m",
	},
	ThemeMono: {
		highlight: "\033[7m", // Reverse video
		last:      "\033[4m", // Underline
		reset:     "\033[0m",
	},
}

type CLI struct {
	input   *bufio.Scanner
	output  io.Writer
	theme   ColorTheme
	verbose bool
}

func New(input io.Reader, output io.Writer) *CLI {
	return &CLI{
		input:  bufio.NewScanner(input),
		output: output,
		theme:  ThemeOff,
	}
}

// GetCommand reads one command; end of input reads as quit
func (c *CLI) GetCommand() (*Command, error) {
	if !c.input.Scan() {
		if err := c.input.Err(); err != nil {
			return nil, err
		}
		return &Command{Type: CmdQuit}, nil
	}

	input := strings.TrimSpace(c.input.Text())
	if input == "" {
		return &Command{Type: CmdNone}, nil
	}

	return ParseCommand(input), nil
}

func ParseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "new":
		return &Command{Type: CmdNew, Args: args, Raw: input}
	case "restart":
		return &Command{Type: CmdRestart}
	case "jump", "goto", "j":
		return &Command{Type: CmdJump, Args: args}
	case "back", "b":
		return &Command{Type: CmdBack}
	case "forward", "f":
		return &Command{Type: CmdForward}
	case "show", "board":
		return &Command{Type: CmdShow}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "verbose":
		return &Command{Type: CmdVerbose}
	case "history", "h":
		return &Command{Type: CmdHistory}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit", "q":
		return &Command{Type: CmdQuit}
	default:
		// Anything else is a cell
		return &Command{Type: CmdMove, Args: []string{parts[0]}, Raw: input}
	}
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, wood, mono)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) Theme() ColorTheme {
	return c.theme
}

func (c *CLI) ToggleVerbose() bool {
	c.verbose = !c.verbose
	return c.verbose
}

func (c *CLI) IsVerbose() bool {
	return c.verbose
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v", err))
}

func (c *CLI) ShowPrompt(prompt string) {
	fmt.Fprint(c.output, prompt)
}

// DisplayBoard renders s with the winning line and the last move marked.
// last is -1 when there is no move to mark.
func (c *CLI) DisplayBoard(s board.Snapshot, winLine []int, last int) {
	theme := themes[c.theme]
	onLine := make(map[int]bool, len(winLine))
	for _, i := range winLine {
		onLine[i] = true
	}

	var sb strings.Builder
	header := columnHeader()
	sb.WriteString("\n" + header + "\n")

	for r := 0; r < board.Size; r++ {
		sb.WriteString(fmt.Sprintf("%2d ", r+1))
		for col := 0; col < board.Size; col++ {
			i := board.Index(r, col)
			m := s[i]

			if c.theme == ThemeOff {
				// Trailing marker stands in for color
				sep := " "
				switch {
				case onLine[i]:
					sep = "*"
				case i == last:
					sep = "<"
				}
				sb.WriteString(m.Glyph() + sep)
				continue
			}

			bg := theme.boardBg
			switch {
			case onLine[i]:
				bg = theme.highlight
			case i == last:
				bg = theme.last
			}
			fg := ""
			switch m {
			case core.MarkA:
				fg = theme.markA
			case core.MarkB:
				fg = theme.markB
			}
			sb.WriteString(fmt.Sprintf("%s%s%s %s", bg, fg, m.Glyph(), theme.reset))
		}
		sb.WriteString(fmt.Sprintf(" %d\n", r+1))
	}
	sb.WriteString(header + "\n")

	c.ShowMessage(sb.String())
}

func columnHeader() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for col := 0; col < board.Size; col++ {
		sb.WriteByte(byte('a' + col))
		sb.WriteByte(' ')
	}
	return strings.TrimRight(sb.String(), " ")
}

// ShowStatus prints either the winner or the side to move
func (c *CLI) ShowStatus(state core.State, next core.Mark) {
	switch state {
	case core.StateAWins:
		c.ShowMessage(fmt.Sprintf("Winner: %s", core.MarkA.Glyph()))
	case core.StateBWins:
		c.ShowMessage(fmt.Sprintf("Winner: %s", core.MarkB.Glyph()))
	case core.StateDraw:
		c.ShowMessage("Draw: the board is full")
	default:
		c.ShowMessage(fmt.Sprintf("Next player: %s", next.Glyph()))
	}
}

// ShowHistory lists every history entry with its jump label
func (c *CLI) ShowHistory(entries []game.Snapshot, position int) {
	for i, e := range entries {
		marker := "  "
		if i == position {
			marker = "> "
		}
		line := fmt.Sprintf("%s%2d. %s", marker, i, game.Label(i))
		if e.Move >= 0 {
			line += fmt.Sprintf(" (%s %s)", e.Mark.Glyph(), board.CellName(e.Move))
		}
		c.ShowMessage(line)
	}
}

func (c *CLI) ShowMove(position int, mark core.Mark, index int) {
	if c.verbose {
		c.ShowMessage(fmt.Sprintf("Move #%d: %s at %s (cell %d)", position, mark.Glyph(), board.CellName(index), index))
	}
}

func (c *CLI) ShowGameOver(state core.State) {
	c.ShowMessage(fmt.Sprintf("Game over: %s", state))
	c.ShowMessage("Use 'jump <k>' to revisit a position, 'restart' or 'new' to play again.")
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  <cell>           - Place a stone (e.g. h8, or a cell index 0-224)
  jump <k>         - Go to position k (0 is the game start)
  back / forward   - Step one position through history
  history          - List every position with its jump label
  show             - Redraw the board
  new [A] [B]      - Start a new game, optionally naming the players
  restart          - Clear the current game
  color <theme>    - Set board color theme (off|wood|mono)
  verbose          - Toggle detailed move information
  quit/exit        - Exit the program
  help/?           - Show this help message`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to Gomoku!")
	c.ShowMessage(fmt.Sprintf("Five in a row on a %dx%d board. %s moves first.", board.Size, board.Size, core.MarkA.Glyph()))
	c.ShowMessage("Commands: new, <cell>, jump <k>, back, forward, history, help/?, quit")
	c.ShowMessage("")
}

// TerminalWidth returns the column count of fd when it is a terminal
func TerminalWidth(fd int) (int, bool) {
	if !term.IsTerminal(fd) {
		return 0, false
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0, false
	}
	return width, true
}
