package bucket

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/workshop-backend/internal/atomicword"
)

func TestState_EncodeDecode(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		// Given: a state whose timestamp is already a multiple of 256 ms
		state := State{Level: 3, RefilledAtMillis: 1_614_000_000_000 &^ 0xFF}

		// Then: packing and unpacking loses nothing
		require.Equal(t, state, Decode(state.Encode()))
	})

	t.Run("level occupies the lowest byte", func(t *testing.T) {
		state := State{Level: 5, RefilledAtMillis: 0}
		require.Equal(t, uint64(5), state.Encode())
	})

	t.Run("encode truncates the timestamp low byte", func(t *testing.T) {
		// Given: a timestamp that is not a multiple of 256 ms
		state := State{Level: 2, RefilledAtMillis: 1000}

		decoded := Decode(state.Encode())

		// Then: the stored timestamp is rounded down to 256 ms granularity
		require.Equal(t, uint64(1000)&^0xFF, decoded.RefilledAtMillis)
		require.Equal(t, uint8(2), decoded.Level)
	})
}

func TestTryWithdraw(t *testing.T) {
	t.Run("empty bucket before a full interval stays dry", func(t *testing.T) {
		// Given: an empty bucket stamped at t=0
		old := State{Level: 0, RefilledAtMillis: 0}

		// When: a withdrawal is attempted at t=500ms
		after, ok := TryWithdraw(old, 500)

		// Then: there is no milk and the state is untouched
		require.False(t, ok)
		require.Equal(t, old, after)
	})

	t.Run("one interval refills exactly one unit", func(t *testing.T) {
		old := State{Level: 0, RefilledAtMillis: 0}

		// When: a withdrawal is attempted at t=1000ms
		after, ok := TryWithdraw(old, 1000)

		// Then: the refilled unit is withdrawn again, leaving level 0
		require.True(t, ok)
		require.Equal(t, uint8(0), after.Level)
		require.Equal(t, uint64(1000)&^0xFF, after.RefilledAtMillis)
	})

	t.Run("refill is capped at capacity", func(t *testing.T) {
		old := State{Level: 0, RefilledAtMillis: 0}

		// When: far more than five intervals elapsed
		after, ok := TryWithdraw(old, 5000)

		// Then: the bucket refilled to MaxLevel and one unit was taken
		require.True(t, ok)
		require.Equal(t, uint8(MaxLevel-1), after.Level)
	})

	t.Run("level never exceeds capacity", func(t *testing.T) {
		// Given: an already full bucket with elapsed time on the clock
		old := State{Level: MaxLevel, RefilledAtMillis: 0}

		after, ok := TryWithdraw(old, 10_000)

		require.True(t, ok)
		require.Equal(t, uint8(MaxLevel-1), after.Level)
	})

	t.Run("withdrawal without elapsed time drains the level", func(t *testing.T) {
		now := uint64(1 << 20)
		state := Full(now)

		var ok bool
		for i := 0; i < MaxLevel; i++ {
			state, ok = TryWithdraw(state, now)
			require.True(t, ok)
		}

		require.Equal(t, uint8(0), state.Level)

		// When: a sixth withdrawal happens within the same instant
		_, ok = TryWithdraw(state, now)

		// Then: the bucket is dry
		require.False(t, ok)
	})
}

// TestTryWithdraw_Concurrent drives concurrent CAS transitions against one
// shared word: with a full bucket and a frozen clock, exactly MaxLevel
// withdrawals may succeed, no matter how many compete.
func TestTryWithdraw_Concurrent(t *testing.T) {
	now := uint64(1 << 30)

	var word atomicword.Word
	word.Store(Full(now).Encode())

	const attempts = 100

	var successes atomic.Int64
	var wg sync.WaitGroup
	wg.Add(attempts)

	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()

			_, ok := word.Update(func(old uint64) (uint64, bool) {
				next, ok := TryWithdraw(Decode(old), now)
				if !ok {
					return 0, false
				}
				return next.Encode(), true
			})
			if ok {
				successes.Add(1)
			}
		}()
	}

	wg.Wait()

	// Then: no unit was double-spent and the bucket ended up empty
	require.Equal(t, int64(MaxLevel), successes.Load())
	require.Equal(t, uint8(0), Decode(word.Load()).Level)
}
