package board

import (
	"testing"

	"gomoku/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func place(cells []int, m core.Mark) Snapshot {
	s := Empty()
	for _, c := range cells {
		s[c] = m
	}
	return s
}

func TestEvaluateEmpty(t *testing.T) {
	m, ok := Evaluate(Empty())
	assert.False(t, ok)
	assert.Equal(t, core.MarkEmpty, m)
}

func TestEvaluateOrientations(t *testing.T) {
	tests := []struct {
		name  string
		cells []int
		mark  core.Mark
	}{
		{"horizontal", []int{Index(3, 2), Index(3, 3), Index(3, 4), Index(3, 5), Index(3, 6)}, core.MarkA},
		{"vertical", []int{Index(2, 9), Index(3, 9), Index(4, 9), Index(5, 9), Index(6, 9)}, core.MarkB},
		{"diagonal", []int{Index(10, 10), Index(11, 11), Index(12, 12), Index(13, 13), Index(14, 14)}, core.MarkA},
		{"anti-diagonal", []int{Index(0, 4), Index(1, 3), Index(2, 2), Index(3, 1), Index(4, 0)}, core.MarkB},
		{"right edge", []int{Index(7, 10), Index(7, 11), Index(7, 12), Index(7, 13), Index(7, 14)}, core.MarkA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := place(tt.cells, tt.mark)
			m, ok := Evaluate(s)
			require.True(t, ok)
			assert.Equal(t, tt.mark, m)

			line, ok := WinningLine(s)
			require.True(t, ok)
			assert.ElementsMatch(t, tt.cells, line.Cells)
		})
	}
}

func TestEvaluateFourIsNotAWin(t *testing.T) {
	s := place([]int{0, 1, 2, 3}, core.MarkA)
	_, ok := Evaluate(s)
	assert.False(t, ok)

	// broken by the other mark
	s = place([]int{0, 1, 2, 3, 5}, core.MarkA)
	s[4] = core.MarkB
	_, ok = Evaluate(s)
	assert.False(t, ok)
}

func TestEvaluateSixWins(t *testing.T) {
	s := place([]int{Index(5, 0), Index(5, 1), Index(5, 2), Index(5, 3), Index(5, 4), Index(5, 5)}, core.MarkB)
	m, ok := Evaluate(s)
	require.True(t, ok)
	assert.Equal(t, core.MarkB, m)
}

func TestEvaluateNoWrapAcrossRows(t *testing.T) {
	// last three of row 0 and first two of row 1 are contiguous in memory only
	s := place([]int{12, 13, 14, 15, 16}, core.MarkA)
	_, ok := Evaluate(s)
	assert.False(t, ok)
}

func TestEvaluateFullBoardWithoutLine(t *testing.T) {
	var s Snapshot
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			// column pairs alternate and flip on every row
			if ((c/2)+r)%2 == 0 {
				s[Index(r, c)] = core.MarkA
			} else {
				s[Index(r, c)] = core.MarkB
			}
		}
	}
	require.True(t, s.Full())
	_, ok := Evaluate(s)
	assert.False(t, ok)
}

func TestFindLineScanOrder(t *testing.T) {
	// both lines are complete; the one whose start comes first row-major wins
	s := place([]int{Index(2, 0), Index(2, 1), Index(2, 2), Index(2, 3), Index(2, 4)}, core.MarkB)
	for _, c := range []int{Index(6, 0), Index(6, 1), Index(6, 2), Index(6, 3), Index(6, 4)} {
		s[c] = core.MarkA
	}
	line, ok := WinningLine(s)
	require.True(t, ok)
	assert.Equal(t, core.MarkB, line.Mark)
	assert.Equal(t, Directions[0], line.Dir)
	assert.Equal(t, []int{30, 31, 32, 33, 34}, line.Cells)
}

func TestEvaluateGridParametric(t *testing.T) {
	// 3x3 tic-tac-toe
	cells := []core.Mark{
		core.MarkA, core.MarkB, core.MarkEmpty,
		core.MarkB, core.MarkA, core.MarkEmpty,
		core.MarkEmpty, core.MarkB, core.MarkA,
	}
	m, ok := EvaluateGrid(cells, 3, 3)
	require.True(t, ok)
	assert.Equal(t, core.MarkA, m)

	_, ok = EvaluateGrid(cells, 3, 4)
	assert.False(t, ok)

	_, ok = EvaluateGrid(cells, 4, 3)
	assert.False(t, ok, "length must match size*size")

	_, ok = EvaluateGrid(nil, 0, 5)
	assert.False(t, ok)
}
