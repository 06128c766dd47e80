package usecase

import (
	"log/slog"
	"time"

	"github.com/rocketscienceinc/workshop-backend/internal/apperror"
	"github.com/rocketscienceinc/workshop-backend/internal/atomicword"
	"github.com/rocketscienceinc/workshop-backend/internal/bucket"
)

// BucketManager owns the process-wide packed milk bucket word.
type BucketManager struct {
	logger *slog.Logger
	word   *atomicword.Word

	now func() time.Time
}

func NewBucketManager(logger *slog.Logger) *BucketManager {
	return &BucketManager{
		logger: logger.With("component", "bucket"),
		word:   &atomicword.Word{},
		now:    time.Now,
	}
}

// Withdraw takes one unit of milk, refilling from elapsed time first.
//
// The timestamp is captured once per request and reused across CAS retries,
// so a contended withdrawal never observes a newer clock than the first
// attempt did.
func (that *BucketManager) Withdraw() (bucket.State, error) {
	nowMillis := uint64(that.now().UnixMilli())

	next, ok := that.word.Update(func(old uint64) (uint64, bool) {
		state, ok := bucket.TryWithdraw(bucket.Decode(old), nowMillis)
		if !ok {
			return 0, false
		}
		return state.Encode(), true
	})
	if !ok {
		return bucket.Decode(next), apperror.ErrNoMilk
	}

	return bucket.Decode(next), nil
}

// Refill fills the bucket to capacity, stamped now.
func (that *BucketManager) Refill() bucket.State {
	state := bucket.Full(uint64(that.now().UnixMilli()))
	that.word.Store(state.Encode())

	return state
}

// Level reports the current fill level.
func (that *BucketManager) Level() uint8 {
	return bucket.Decode(that.word.Load()).Level
}
