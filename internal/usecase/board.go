package usecase

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/rocketscienceinc/workshop-backend/internal/apperror"
	"github.com/rocketscienceinc/workshop-backend/internal/atomicword"
	"github.com/rocketscienceinc/workshop-backend/internal/game"
)

// randomSeed keeps demo boards reproducible; Reset restores it.
const randomSeed = 2024

// BoardManager owns the process-wide packed board word and the demo RNG.
// The board is mutated lock-free through CAS transitions; only the RNG,
// which mutates in place on every draw, sits behind a mutex.
type BoardManager struct {
	logger *slog.Logger
	word   *atomicword.Word

	mu  sync.Mutex
	rng *rand.Rand
}

func NewBoardManager(logger *slog.Logger) *BoardManager {
	return &BoardManager{
		logger: logger.With("component", "board"),
		word:   &atomicword.Word{},
		rng:    rand.New(rand.NewSource(randomSeed)),
	}
}

// Current returns a decoded snapshot of the board.
func (that *BoardManager) Current() game.Board {
	return game.Decode(that.word.Load())
}

// Reset clears the board and reseeds the demo RNG.
func (that *BoardManager) Reset() game.Board {
	that.mu.Lock()
	that.rng = rand.New(rand.NewSource(randomSeed))
	that.mu.Unlock()

	that.word.Store(0)

	return game.Board{}
}

// Randomize replaces the board with a fully pre-filled random one.
func (that *BoardManager) Randomize() game.Board {
	that.mu.Lock()
	board := game.NewRandom(that.rng)
	that.mu.Unlock()

	that.word.Store(board.Encode())

	return board
}

// Place drops a tile into a 0-indexed column through a CAS transition.
//
// The terminal-state check runs before the transition and inside it: another
// mover can finish the game between our load and our swap, and the retry loop
// must see that against fresh state.
func (that *BoardManager) Place(column int, tile game.Tile) (game.Board, error) {
	if current := that.Current(); current.IsFinished() {
		return current, apperror.ErrGameFinished
	}

	var reason error
	next, ok := that.word.Update(func(old uint64) (uint64, bool) {
		board := game.Decode(old)

		if board.IsFinished() {
			reason = apperror.ErrGameFinished
			return 0, false
		}

		moved, err := board.Place(column, tile)
		if err != nil {
			reason = err
			return 0, false
		}

		reason = nil
		return moved.Encode(), true
	})
	if !ok {
		return game.Decode(next), fmt.Errorf("move rejected: %w", reason)
	}

	return game.Decode(next), nil
}
