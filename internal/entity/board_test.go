package entity

import (
	"testing"

	"github.com/playforge/gameroom-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_ApplyMove(t *testing.T) {
	t.Run("Successful move sets the cell", func(t *testing.T) {
		// Given: an empty board
		board := Board{}

		// When: mark 1 is placed at (0, 0)
		err := board.ApplyMove(0, 0, MarkX)

		// Then: the cell holds the mark
		require.NoError(t, err)
		assert.Equal(t, MarkX, board[0][0])
	})

	t.Run("Error on occupied cell", func(t *testing.T) {
		// Given: a board with (1, 1) taken by mark 1
		board := Board{}
		require.NoError(t, board.ApplyMove(1, 1, MarkX))

		// When: mark 2 targets the same cell
		err := board.ApplyMove(1, 1, MarkO)

		// Then: the move fails and the cell is not overwritten
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, MarkX, board[1][1])
	})

	t.Run("Error on out-of-range coordinates", func(t *testing.T) {
		board := Board{}

		for _, coords := range [][2]int{{3, 0}, {0, 3}, {-1, 0}, {0, -1}, {7, 7}} {
			err := board.ApplyMove(coords[0], coords[1], MarkX)
			require.ErrorIs(t, err, apperror.ErrOutOfRange)
		}

		// And: the board stays empty
		assert.Equal(t, Board{}, board)
	})

	t.Run("N accepted moves leave exactly N cells occupied", func(t *testing.T) {
		// Given: a sequence of accepted moves on distinct empty cells
		board := Board{}
		moves := [][3]int{
			{0, 0, MarkX}, {1, 1, MarkO}, {0, 1, MarkX}, {2, 2, MarkO}, {2, 0, MarkX},
		}

		for _, move := range moves {
			require.NoError(t, board.ApplyMove(move[0], move[1], move[2]))
		}

		// Then: the board contains exactly len(moves) nonzero cells and
		// every written cell still holds its original mark
		occupied := 0
		for x := 0; x < BoardSize; x++ {
			for y := 0; y < BoardSize; y++ {
				if board[x][y] != EmptyCell {
					occupied++
				}
			}
		}
		assert.Equal(t, len(moves), occupied)

		for _, move := range moves {
			assert.Equal(t, move[2], board[move[0]][move[1]])
		}
	})
}

func TestBoard_HasWin(t *testing.T) {
	winningLines := [][3][2]int{
		{{0, 0}, {0, 1}, {0, 2}},
		{{1, 0}, {1, 1}, {1, 2}},
		{{2, 0}, {2, 1}, {2, 2}},
		{{0, 0}, {1, 0}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}},
		{{0, 2}, {1, 2}, {2, 2}},
		{{0, 0}, {1, 1}, {2, 2}},
		{{0, 2}, {1, 1}, {2, 0}},
	}

	t.Run("Detects all 8 winning lines for both marks", func(t *testing.T) {
		for _, mark := range []int{MarkX, MarkO} {
			for _, line := range winningLines {
				board := Board{}
				for _, cell := range line {
					board[cell[0]][cell[1]] = mark
				}

				assert.True(t, board.HasWin(mark), "line %v mark %d", line, mark)
			}
		}
	})

	t.Run("No win on a board without three in a row", func(t *testing.T) {
		// Given: a full drawn board
		board := Board{
			{MarkX, MarkO, MarkX},
			{MarkO, MarkX, MarkO},
			{MarkO, MarkX, MarkO},
		}

		assert.False(t, board.HasWin(MarkX))
		assert.False(t, board.HasWin(MarkO))
	})

	t.Run("A mixed line is not a win", func(t *testing.T) {
		board := Board{}
		board[0][0] = MarkX
		board[0][1] = MarkO
		board[0][2] = MarkX

		assert.False(t, board.HasWin(MarkX))
		assert.False(t, board.HasWin(MarkO))
	})

	t.Run("Empty board has no winner", func(t *testing.T) {
		board := Board{}

		assert.False(t, board.HasWin(MarkX))
		assert.False(t, board.HasWin(MarkO))
	})
}

func TestBoard_IsFull(t *testing.T) {
	t.Run("Empty and partial boards are not full", func(t *testing.T) {
		board := Board{}
		assert.False(t, board.IsFull())

		board[0][0] = MarkX
		assert.False(t, board.IsFull())
	})

	t.Run("A board with every cell written is full", func(t *testing.T) {
		board := Board{
			{MarkX, MarkO, MarkX},
			{MarkO, MarkX, MarkO},
			{MarkO, MarkX, MarkO},
		}

		assert.True(t, board.IsFull())
	})
}
