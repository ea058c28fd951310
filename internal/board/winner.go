package board

import "gomoku/internal/core"

// Direction is a step vector on the grid
type Direction struct {
	DRow, DCol int
}

// Directions in scan order: horizontal, vertical, diagonal, anti-diagonal
var Directions = [4]Direction{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// Line is a run of identical marks that decided the game
type Line struct {
	Mark  core.Mark
	Dir   Direction
	Cells []int
}

// Evaluate returns the winning mark on a standard board, if any
func Evaluate(s Snapshot) (core.Mark, bool) {
	return EvaluateGrid(s[:], Size, WinLength)
}

// EvaluateGrid returns the mark of the first line of winLength identical
// non-empty marks on a size x size row-major grid. Longer runs also win.
func EvaluateGrid(cells []core.Mark, size, winLength int) (core.Mark, bool) {
	line, ok := FindLine(cells, size, winLength)
	if !ok {
		return core.MarkEmpty, false
	}
	return line.Mark, true
}

// FindLine scans every cell in row-major order as the start of a candidate
// line and tries each direction in order; the first full window is returned
func FindLine(cells []core.Mark, size, winLength int) (Line, bool) {
	if size < 1 || winLength < 1 || len(cells) != size*size {
		return Line{}, false
	}

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			mark := cells[row*size+col]
			if mark == core.MarkEmpty {
				continue
			}

			for _, d := range Directions {
				count := 1
				for step := 1; step < winLength; step++ {
					r := row + step*d.DRow
					c := col + step*d.DCol
					if r < 0 || r >= size || c < 0 || c >= size || cells[r*size+c] != mark {
						break
					}
					count++
				}

				if count == winLength {
					line := Line{Mark: mark, Dir: d, Cells: make([]int, winLength)}
					for step := 0; step < winLength; step++ {
						line.Cells[step] = (row+step*d.DRow)*size + col + step*d.DCol
					}
					return line, true
				}
			}
		}
	}
	return Line{}, false
}

// WinningLine returns the deciding line on a standard board
func WinningLine(s Snapshot) (Line, bool) {
	return FindLine(s[:], Size, WinLength)
}
