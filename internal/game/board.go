// Package game implements the 4x4 connect-four board: its packed 64-bit
// encoding, gravity placement, outcome detection and emoji rendering.
package game

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/rocketscienceinc/workshop-backend/internal/apperror"
)

// Tile is one board cell. Two bits per tile in the packed word.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileCookie
	TileMilk
)

const (
	// Size is the board edge length.
	Size = 4
	// Cells is the total cell count.
	Cells = Size * Size
)

const (
	frameGlyph  = "⬜"
	emptyGlyph  = "⬛"
	cookieGlyph = "🍪"
	milkGlyph   = "🥛"
)

// winLines are the 4 rows, 4 columns and 2 diagonals, as cell indexes.
var winLines = [10][4]int{
	{0, 1, 2, 3},
	{4, 5, 6, 7},
	{8, 9, 10, 11},
	{12, 13, 14, 15},
	{0, 4, 8, 12},
	{1, 5, 9, 13},
	{2, 6, 10, 14},
	{3, 7, 11, 15},
	{0, 5, 10, 15},
	{3, 6, 9, 12},
}

// Board is the full grid, row-major.
type Board [Cells]Tile

// Decode unpacks a board from its 64-bit word: cell i lives in bits
// [2i, 2i+1] of the low 32 bits, the high 32 bits are always zero.
//
// A cell value of 3 is unrepresentable by Encode, so observing one means the
// shared word was corrupted; that is not a recoverable condition.
func Decode(word uint64) Board {
	var board Board

	for i := range board {
		value := Tile((word >> (2 * i)) & 0b11)
		if value > TileMilk {
			panic(fmt.Sprintf("game: corrupted board word %#016x: cell %d holds %d", word, i, value))
		}
		board[i] = value
	}

	return board
}

// Encode packs the board into its 64-bit word, the inverse of Decode.
func (that Board) Encode() uint64 {
	var word uint64

	for i, tile := range that {
		word |= uint64(tile) << (2 * i)
	}

	return word
}

// Result is the outcome of a board.
type Result uint8

const (
	ResultOngoing Result = iota
	ResultCookieWins
	ResultMilkWins
	ResultDraw
)

// Result checks every line for four equal non-empty tiles. A win takes
// precedence over a full board; with no winner and no empty cell the game is
// a draw.
func (that Board) Result() Result {
	for _, line := range winLines {
		first := that[line[0]]
		if first == TileEmpty {
			continue
		}

		if first == that[line[1]] && first == that[line[2]] && first == that[line[3]] {
			if first == TileCookie {
				return ResultCookieWins
			}
			return ResultMilkWins
		}
	}

	for _, tile := range that {
		if tile == TileEmpty {
			return ResultOngoing
		}
	}

	return ResultDraw
}

// IsFinished reports whether the board reached a terminal outcome.
func (that Board) IsFinished() bool {
	return that.Result() != ResultOngoing
}

// Place drops a tile into a 0-indexed column, filling the bottom-most empty
// cell first. A full column leaves the board unchanged.
func (that Board) Place(column int, tile Tile) (Board, error) {
	for row := Size - 1; row >= 0; row-- {
		idx := row*Size + column
		if that[idx] == TileEmpty {
			that[idx] = tile
			return that, nil
		}
	}

	return that, fmt.Errorf("%w: column %d", apperror.ErrColumnFull, column)
}

// NewRandom fills every cell with a coin flip between cookie and milk.
func NewRandom(rng *rand.Rand) Board {
	var board Board

	for i := range board {
		if rng.Intn(2) == 0 {
			board[i] = TileCookie
		} else {
			board[i] = TileMilk
		}
	}

	return board
}

// Render draws the board as an emoji grid, one row per line inside a frame,
// followed by the bottom frame row and, for finished games, the outcome line.
func (that Board) Render() string {
	var b strings.Builder

	for row := 0; row < Size; row++ {
		b.WriteString(frameGlyph)
		for col := 0; col < Size; col++ {
			switch that[row*Size+col] {
			case TileCookie:
				b.WriteString(cookieGlyph)
			case TileMilk:
				b.WriteString(milkGlyph)
			default:
				b.WriteString(emptyGlyph)
			}
		}
		b.WriteString(frameGlyph)
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat(frameGlyph, Size+2))

	switch that.Result() {
	case ResultCookieWins:
		b.WriteString("\n" + cookieGlyph + " wins!")
	case ResultMilkWins:
		b.WriteString("\n" + milkGlyph + " wins!")
	case ResultDraw:
		b.WriteString("\nNo winner.")
	case ResultOngoing:
	}

	b.WriteString("\n")

	return b.String()
}
