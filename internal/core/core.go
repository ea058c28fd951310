package core

// Mark is the content of a single board cell
type Mark uint8

const (
	MarkEmpty Mark = iota
	MarkA          // First mover
	MarkB
)

func (m Mark) String() string {
	switch m {
	case MarkA:
		return "A"
	case MarkB:
		return "B"
	default:
		return "-"
	}
}

// Glyph returns the display symbol used by renderers
func (m Mark) Glyph() string {
	switch m {
	case MarkA:
		return "●"
	case MarkB:
		return "○"
	default:
		return "·"
	}
}

func (m Mark) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mark) UnmarshalText(data []byte) error {
	*m = ParseMark(string(data))
	return nil
}

func OppositeMark(m Mark) Mark {
	if m == MarkA {
		return MarkB
	}
	return MarkA
}

// ParseMark accepts "A"/"B" in either case, anything else is empty
func ParseMark(s string) Mark {
	switch s {
	case "A", "a":
		return MarkA
	case "B", "b":
		return MarkB
	default:
		return MarkEmpty
	}
}

type State int

const (
	StateOngoing State = iota
	StateAWins
	StateBWins
	StateDraw
)

func (s State) String() string {
	switch s {
	case StateAWins:
		return "a_wins"
	case StateBWins:
		return "b_wins"
	case StateDraw:
		return "draw"
	case StateOngoing:
		return "ongoing"
	default:
		return "unknown"
	}
}

// Over reports whether no further moves are accepted at the end of history
func (s State) Over() bool {
	return s != StateOngoing
}

// WinState maps a winning mark to its terminal state
func WinState(m Mark) State {
	switch m {
	case MarkA:
		return StateAWins
	case MarkB:
		return StateBWins
	default:
		return StateOngoing
	}
}
