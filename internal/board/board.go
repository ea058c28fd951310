package board

import (
	"fmt"
	"strconv"
	"strings"

	"gomoku/internal/core"
)

const (
	Size      = 15
	WinLength = 5
	Cells     = Size * Size
)

// Snapshot is one board position in row-major order.
// It is an array value, so every assignment copies and no snapshot
// can be changed through another one.
type Snapshot [Cells]core.Mark

// Empty returns the starting position
func Empty() Snapshot {
	return Snapshot{}
}

// Index converts a row/column pair to a flat cell index
func Index(row, col int) int {
	return row*Size + col
}

// RowCol converts a flat cell index to its row/column pair
func RowCol(index int) (int, int) {
	return index / Size, index % Size
}

func InBounds(index int) bool {
	return index >= 0 && index < Cells
}

// At returns the mark at index, MarkEmpty when out of range
func (s Snapshot) At(index int) core.Mark {
	if !InBounds(index) {
		return core.MarkEmpty
	}
	return s[index]
}

// With returns a copy of s with index set to m
func (s Snapshot) With(index int, m core.Mark) Snapshot {
	s[index] = m
	return s
}

// Count returns the number of occupied cells
func (s Snapshot) Count() int {
	n := 0
	for _, m := range s {
		if m != core.MarkEmpty {
			n++
		}
	}
	return n
}

func (s Snapshot) Full() bool {
	return s.Count() == Cells
}

// String encodes the board as 225 digits: '0' empty, '1' A, '2' B
func (s Snapshot) String() string {
	out := make([]byte, Cells)
	for i, m := range s {
		out[i] = byte('0' + m)
	}
	return string(out)
}

// Parse decodes the String form
func Parse(encoded string) (Snapshot, error) {
	var s Snapshot
	if len(encoded) != Cells {
		return s, fmt.Errorf("invalid board: expected %d cells, got %d", Cells, len(encoded))
	}
	for i := 0; i < Cells; i++ {
		switch encoded[i] {
		case '0':
			s[i] = core.MarkEmpty
		case '1':
			s[i] = core.MarkA
		case '2':
			s[i] = core.MarkB
		default:
			return s, fmt.Errorf("invalid board: unexpected %q at cell %d", encoded[i], i)
		}
	}
	return s, nil
}

// CellName returns the coordinate name of index, columns a-o and rows 1-15 from the top
func CellName(index int) string {
	if !InBounds(index) {
		return "?"
	}
	row, col := RowCol(index)
	return fmt.Sprintf("%c%d", 'a'+col, row+1)
}

// ParseCell accepts a coordinate name ("h8") or a flat index of plain
// digits ("112"). Indices are returned as-is so range checks stay with the caller.
func ParseCell(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty cell")
	}
	if s[0] >= '0' && s[0] <= '9' {
		if !canonicalDigits(s, 3) {
			return 0, fmt.Errorf("invalid index %q", s)
		}
		n, _ := strconv.Atoi(s)
		return n, nil
	}
	return ParseCoord(s)
}

// ParseCoord parses a coordinate name: a column letter a-o followed by a row 1-15
func ParseCoord(s string) (int, error) {
	s = strings.ToLower(s)
	if len(s) < 2 || s[0] < 'a' || s[0] >= 'a'+Size {
		return 0, fmt.Errorf("invalid column in %q: use a-%c", s, 'a'+Size-1)
	}
	if !canonicalDigits(s[1:], 2) {
		return 0, fmt.Errorf("invalid row in %q: use 1-%d", s, Size)
	}
	row, _ := strconv.Atoi(s[1:])
	if row < 1 || row > Size {
		return 0, fmt.Errorf("invalid row in %q: use 1-%d", s, Size)
	}
	return Index(row-1, int(s[0]-'a')), nil
}

// canonicalDigits reports whether s is 1..max decimal digits without a leading zero
func canonicalDigits(s string, max int) bool {
	if len(s) == 0 || len(s) > max || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Symbol returns the ASCII character for a mark
func Symbol(m core.Mark) byte {
	switch m {
	case core.MarkA:
		return 'X'
	case core.MarkB:
		return 'O'
	default:
		return '.'
	}
}

// ToASCII creates an ASCII representation of the board
func (s Snapshot) ToASCII() string {
	var sb strings.Builder
	header := columnHeader()
	sb.WriteString(header)
	sb.WriteByte('\n')

	for r := 0; r < Size; r++ {
		sb.WriteString(fmt.Sprintf("%2d ", r+1))
		for c := 0; c < Size; c++ {
			sb.WriteByte(Symbol(s[Index(r, c)]))
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%d\n", r+1))
	}
	sb.WriteString(header)

	return sb.String()
}

func columnHeader() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for c := 0; c < Size; c++ {
		sb.WriteByte(byte('a' + c))
		if c < Size-1 {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
