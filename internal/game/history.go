package game

import (
	"errors"
	"fmt"

	"gomoku/internal/board"
	"gomoku/internal/core"
)

var (
	ErrOutOfBounds    = errors.New("out of bounds")
	ErrGameAlreadyWon = errors.New("game already won")
	ErrCellOccupied   = errors.New("cell occupied")
)

// Snapshot is one entry of the history
type Snapshot struct {
	Board board.Snapshot // Board after the move
	Move  int            // Cell that produced this position, -1 for the start
	Mark  core.Mark      // Mark placed by that move, MarkEmpty for the start
}

// History is the ordered list of board snapshots plus the position being viewed.
// Not safe for concurrent use.
type History struct {
	snapshots []Snapshot
	position  int
}

func New() *History {
	return &History{
		snapshots: []Snapshot{
			{
				Board: board.Empty(),
				Move:  -1,
				Mark:  core.MarkEmpty,
			},
		},
	}
}

// Replay rebuilds a history by playing moves in order from an empty board
func Replay(moves []int) (*History, error) {
	h := New()
	for i, m := range moves {
		if err := h.PlayMove(m); err != nil {
			return nil, fmt.Errorf("replay move %d: %w", i+1, err)
		}
	}
	return h, nil
}

// MarkForPosition returns the mark placed to produce position k (k >= 1)
func MarkForPosition(k int) core.Mark {
	if k%2 == 1 {
		return core.MarkA
	}
	return core.MarkB
}

// PlayMove places the next mover's mark at index on the current snapshot.
// Any snapshots after the current position are discarded.
func (h *History) PlayMove(index int) error {
	if !board.InBounds(index) {
		return fmt.Errorf("cell %d: %w", index, ErrOutOfBounds)
	}

	current := h.snapshots[h.position].Board
	if winner, ok := board.Evaluate(current); ok {
		return fmt.Errorf("%s has five in a row: %w", winner, ErrGameAlreadyWon)
	}
	if current[index] != core.MarkEmpty {
		return fmt.Errorf("cell %s: %w", board.CellName(index), ErrCellOccupied)
	}

	mark := h.NextMark()
	next := Snapshot{
		Board: current.With(index, mark),
		Move:  index,
		Mark:  mark,
	}

	h.snapshots = append(h.snapshots[:h.position+1:h.position+1], next)
	h.position = len(h.snapshots) - 1
	return nil
}

// JumpTo moves the current position without touching the history
func (h *History) JumpTo(position int) error {
	if position < 0 || position >= len(h.snapshots) {
		return fmt.Errorf("position %d of %d: %w", position, h.MoveCount(), ErrOutOfBounds)
	}
	h.position = position
	return nil
}

func (h *History) CurrentSnapshot() board.Snapshot {
	return h.snapshots[h.position].Board
}

// Current returns the full history entry at the current position
func (h *History) Current() Snapshot {
	return h.snapshots[h.position]
}

// MoveCount is the number of moves recorded, not the number up to the current position
func (h *History) MoveCount() int {
	return len(h.snapshots) - 1
}

func (h *History) Position() int {
	return h.position
}

// NextMark returns who moves from the current position
func (h *History) NextMark() core.Mark {
	if h.position%2 == 0 {
		return core.MarkA
	}
	return core.MarkB
}

// Entries returns a copy of every snapshot in order
func (h *History) Entries() []Snapshot {
	out := make([]Snapshot, len(h.snapshots))
	copy(out, h.snapshots)
	return out
}

// Moves returns the cell index of every recorded move in order
func (h *History) Moves() []int {
	moves := make([]int, 0, len(h.snapshots)-1)
	for _, s := range h.snapshots[1:] {
		moves = append(moves, s.Move)
	}
	return moves
}

// Winner evaluates the current snapshot
func (h *History) Winner() (core.Mark, bool) {
	return board.Evaluate(h.CurrentSnapshot())
}

// WinningLine returns the cells of the winning line on the current snapshot
func (h *History) WinningLine() []int {
	line, ok := board.WinningLine(h.CurrentSnapshot())
	if !ok {
		return nil
	}
	return line.Cells
}

// State derives the status of the current snapshot
func (h *History) State() core.State {
	current := h.CurrentSnapshot()
	if winner, ok := board.Evaluate(current); ok {
		return core.WinState(winner)
	}
	if current.Full() {
		return core.StateDraw
	}
	return core.StateOngoing
}

// FinalState derives the status of the last recorded snapshot
func (h *History) FinalState() core.State {
	last := h.snapshots[len(h.snapshots)-1].Board
	if winner, ok := board.Evaluate(last); ok {
		return core.WinState(winner)
	}
	if last.Full() {
		return core.StateDraw
	}
	return core.StateOngoing
}

// Label returns the navigation caption for a history position
func Label(position int) string {
	if position == 0 {
		return "Go to game start"
	}
	return fmt.Sprintf("Go to move #%d", position)
}
