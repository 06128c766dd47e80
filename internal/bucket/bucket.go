// Package bucket implements the milk bucket: a leaky-bucket counter packed
// together with its refill timestamp into a single 64-bit word.
package bucket

const (
	// MaxLevel is the bucket capacity in milk units.
	MaxLevel = 5
	// RefillIntervalMillis is how long one unit takes to flow back.
	RefillIntervalMillis = 1000

	withdrawalUnits = 1

	levelMask = uint64(0xFF)
)

// State is the unpacked bucket: the fill level and the moment of the last
// accepted transition.
//
// The packed layout gives the level the lowest byte and the timestamp the
// remaining 56 bits, so RefilledAtMillis always carries a zero low byte:
// timestamps are rounded down to a multiple of 256 ms by construction.
type State struct {
	Level            uint8
	RefilledAtMillis uint64
}

// Decode unpacks a bucket word.
func Decode(word uint64) State {
	return State{
		Level:            uint8(word & levelMask),
		RefilledAtMillis: word &^ levelMask,
	}
}

// Encode packs the state back into its word, the inverse of Decode.
func (that State) Encode() uint64 {
	return (that.RefilledAtMillis &^ levelMask) | uint64(that.Level)
}

// Full is the state right after a refill: capacity reached, stamped now.
func Full(nowMillis uint64) State {
	return State{
		Level:            MaxLevel,
		RefilledAtMillis: nowMillis &^ levelMask,
	}
}

// TryWithdraw computes the state after withdrawing one unit at nowMillis.
//
// Elapsed time since the last transition refills one unit per interval, capped
// at capacity, and the withdrawal is taken from that refilled level. ok=false
// means the bucket is dry: it was empty and not a single unit has flowed back
// yet. The function is pure, so re-running it on CAS contention is safe.
func TryWithdraw(old State, nowMillis uint64) (State, bool) {
	elapsed := nowMillis - old.RefilledAtMillis

	refilled := elapsed / RefillIntervalMillis
	if refilled > MaxLevel {
		refilled = MaxLevel
	}

	if old.Level == 0 && refilled == 0 {
		return old, false
	}

	level := uint64(old.Level) + refilled
	if level > MaxLevel {
		level = MaxLevel
	}
	level -= withdrawalUnits

	return State{
		Level:            uint8(level),
		RefilledAtMillis: nowMillis &^ levelMask,
	}, true
}
