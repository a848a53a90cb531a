package entity

import (
	"fmt"

	"github.com/playforge/gameroom-backend/internal/apperror"
)

const (
	EmptyCell = 0
	MarkX     = 1
	MarkO     = 2

	BoardSize = 3
)

// Board is a 3x3 grid of cell values. 0 is an empty cell, 1 and 2 are the
// marks of the first and second player.
type Board [BoardSize][BoardSize]int

// ApplyMove writes mark into cell (x, y). An occupied cell is never
// overwritten.
func (that *Board) ApplyMove(x, y, mark int) error {
	if x < 0 || x >= BoardSize || y < 0 || y >= BoardSize {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfRange, x, y)
	}

	if that[x][y] != EmptyCell {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, x, y)
	}

	that[x][y] = mark

	return nil
}

// HasWin reports whether mark holds a full row, column or diagonal.
func (that *Board) HasWin(mark int) bool {
	for i := 0; i < BoardSize; i++ {
		if that[i][0] == mark && that[i][1] == mark && that[i][2] == mark {
			return true
		}
		if that[0][i] == mark && that[1][i] == mark && that[2][i] == mark {
			return true
		}
	}

	if that[0][0] == mark && that[1][1] == mark && that[2][2] == mark {
		return true
	}
	if that[0][2] == mark && that[1][1] == mark && that[2][0] == mark {
		return true
	}

	return false
}

// IsFull reports whether no empty cell remains. A full board is only a draw
// when no win was detected first.
func (that *Board) IsFull() bool {
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			if that[x][y] == EmptyCell {
				return false
			}
		}
	}

	return true
}
