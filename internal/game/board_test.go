package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/workshop-backend/internal/apperror"
)

func TestBoard_EncodeDecode(t *testing.T) {
	t.Run("empty board is zero", func(t *testing.T) {
		var board Board
		require.Equal(t, uint64(0), board.Encode())
		require.Equal(t, board, Decode(0))
	})

	t.Run("round trip", func(t *testing.T) {
		// Given: a board with a bit of everything on it
		board := Board{
			TileCookie, TileMilk, TileEmpty, TileCookie,
			TileEmpty, TileEmpty, TileMilk, TileMilk,
			TileCookie, TileEmpty, TileCookie, TileEmpty,
			TileMilk, TileCookie, TileEmpty, TileMilk,
		}

		// When: the board is packed and unpacked again
		word := board.Encode()

		// Then: nothing is lost and the high half of the word is unused
		require.Equal(t, board, Decode(word))
		require.Zero(t, word>>32)
	})

	t.Run("corrupted word panics", func(t *testing.T) {
		// Given: a word holding the unrepresentable cell value 3
		require.Panics(t, func() {
			Decode(0b11)
		})
	})
}

func TestBoard_Result(t *testing.T) {
	t.Run("empty board is ongoing", func(t *testing.T) {
		var board Board
		require.Equal(t, ResultOngoing, board.Result())
	})

	t.Run("full top row wins", func(t *testing.T) {
		// Given: row 0 is all cookie
		var board Board
		for col := 0; col < Size; col++ {
			board[col] = TileCookie
		}

		require.Equal(t, ResultCookieWins, board.Result())
	})

	t.Run("full column wins", func(t *testing.T) {
		// Given: column 2 is all milk
		var board Board
		for row := 0; row < Size; row++ {
			board[row*Size+2] = TileMilk
		}

		require.Equal(t, ResultMilkWins, board.Result())
	})

	t.Run("main diagonal wins", func(t *testing.T) {
		// Given: the top-left to bottom-right diagonal is all cookie
		var board Board
		for i := 0; i < Size; i++ {
			board[i*Size+i] = TileCookie
		}

		require.Equal(t, ResultCookieWins, board.Result())
	})

	t.Run("anti diagonal wins", func(t *testing.T) {
		var board Board
		for i := 0; i < Size; i++ {
			board[i*Size+(Size-1-i)] = TileMilk
		}

		require.Equal(t, ResultMilkWins, board.Result())
	})

	t.Run("full board without a line is a draw", func(t *testing.T) {
		// Given: a filled board where no row, column or diagonal repeats
		board := Board{
			TileCookie, TileMilk, TileCookie, TileMilk,
			TileCookie, TileMilk, TileCookie, TileMilk,
			TileMilk, TileCookie, TileMilk, TileCookie,
			TileMilk, TileCookie, TileMilk, TileCookie,
		}

		require.Equal(t, ResultDraw, board.Result())
	})

	t.Run("winning line on a full board beats draw", func(t *testing.T) {
		// Given: a completely full board whose top row is all cookie
		board := Board{
			TileCookie, TileCookie, TileCookie, TileCookie,
			TileMilk, TileMilk, TileCookie, TileMilk,
			TileCookie, TileMilk, TileMilk, TileCookie,
			TileMilk, TileCookie, TileMilk, TileMilk,
		}

		require.Equal(t, ResultCookieWins, board.Result())
	})
}

func TestBoard_Place(t *testing.T) {
	t.Run("fills bottom row first", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: a cookie is dropped into column 1
		board, err := board.Place(1, TileCookie)
		require.NoError(t, err)

		// Then: it lands in the bottom row
		require.Equal(t, TileCookie, board[3*Size+1])

		// When: a milk follows into the same column
		board, err = board.Place(1, TileMilk)
		require.NoError(t, err)

		// Then: it stacks on top
		require.Equal(t, TileMilk, board[2*Size+1])
	})

	t.Run("fifth drop overflows the column", func(t *testing.T) {
		var board Board
		var err error

		// Given: column 0 filled bottom to top
		for i := 0; i < Size; i++ {
			board, err = board.Place(0, TileCookie)
			require.NoError(t, err)
		}

		// When: a fifth tile targets the same column
		after, err := board.Place(0, TileMilk)

		// Then: the drop fails and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrColumnFull)
		require.Equal(t, board, after)
	})
}

func TestNewRandom(t *testing.T) {
	// Given: a seeded generator
	rng := rand.New(rand.NewSource(2024))

	// When: a demo board is drawn
	board := NewRandom(rng)

	// Then: every cell is occupied by one of the two players
	for i, tile := range board {
		assert.NotEqual(t, TileEmpty, tile, "cell %d", i)
	}
}

func TestBoard_Render(t *testing.T) {
	t.Run("empty board", func(t *testing.T) {
		var board Board

		expected := "⬜⬛⬛⬛⬛⬜\n" +
			"⬜⬛⬛⬛⬛⬜\n" +
			"⬜⬛⬛⬛⬛⬜\n" +
			"⬜⬛⬛⬛⬛⬜\n" +
			"⬜⬜⬜⬜⬜⬜\n"

		require.Equal(t, expected, board.Render())
	})

	t.Run("won board appends the winner line", func(t *testing.T) {
		// Given: column 0 entirely cookie
		var board Board
		var err error
		for i := 0; i < Size; i++ {
			board, err = board.Place(0, TileCookie)
			require.NoError(t, err)
		}

		expected := "⬜🍪⬛⬛⬛⬜\n" +
			"⬜🍪⬛⬛⬛⬜\n" +
			"⬜🍪⬛⬛⬛⬜\n" +
			"⬜🍪⬛⬛⬛⬜\n" +
			"⬜⬜⬜⬜⬜⬜\n" +
			"🍪 wins!\n"

		require.Equal(t, expected, board.Render())
	})

	t.Run("drawn board appends no winner", func(t *testing.T) {
		board := Board{
			TileCookie, TileMilk, TileCookie, TileMilk,
			TileCookie, TileMilk, TileCookie, TileMilk,
			TileMilk, TileCookie, TileMilk, TileCookie,
			TileMilk, TileCookie, TileMilk, TileCookie,
		}

		render := board.Render()
		require.Contains(t, render, "No winner.\n")
	})
}
