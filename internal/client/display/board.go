package display

import (
	"fmt"
	"io"
	"strings"

	"gomoku/internal/board"
	"gomoku/internal/core"
)

// RenderBoard draws a compact-encoded board with colored stones;
// the winning line is bold and the last move is underlined
func RenderBoard(w io.Writer, encoded string, winLine []int, last int) error {
	s, err := board.Parse(encoded)
	if err != nil {
		return err
	}

	onLine := make(map[int]bool, len(winLine))
	for _, i := range winLine {
		onLine[i] = true
	}

	var sb strings.Builder
	sb.WriteString("   ")
	for col := 0; col < board.Size; col++ {
		sb.WriteString(Colorize(Cyan, string(rune('a'+col))))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')

	for r := 0; r < board.Size; r++ {
		sb.WriteString(Colorize(Cyan, fmt.Sprintf("%2d", r+1)))
		sb.WriteByte(' ')
		for col := 0; col < board.Size; col++ {
			i := board.Index(r, col)
			glyph := s[i].Glyph()
			switch s[i] {
			case core.MarkA:
				glyph = Blue + glyph
			case core.MarkB:
				glyph = Red + glyph
			}
			if onLine[i] {
				glyph = Bold + glyph
			}
			if i == last {
				glyph = "\033[4m" + glyph
			}
			sb.WriteString(glyph + Reset + " ")
		}
		sb.WriteByte('\n')
	}

	_, err = io.WriteString(w, sb.String())
	return err
}

// ColorForMark returns a colored mark indicator
func ColorForMark(mark string) string {
	switch core.ParseMark(mark) {
	case core.MarkA:
		return Blue + core.MarkA.Glyph() + " A" + Reset
	case core.MarkB:
		return Red + core.MarkB.Glyph() + " B" + Reset
	default:
		return mark
	}
}

// ColorForState returns a colored game state
func ColorForState(state string) string {
	switch state {
	case "a_wins", "b_wins":
		return Green + state + Reset
	case "draw":
		return Yellow + state + Reset
	default:
		return state
	}
}
