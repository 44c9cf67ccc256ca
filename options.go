package bentpixel

import (
	"math/rand/v2"
	"time"
)

// SessionOption configures a Session during creation.
//
// Example:
//
//	// Deterministic randomization and a frozen clock
//	s := bentpixel.NewSession(pm,
//		bentpixel.WithRand(rand.New(rand.NewPCG(1, 2))),
//		bentpixel.WithClock(func() float64 { return 0 }))
type SessionOption func(*sessionOptions)

// sessionOptions holds optional configuration for Session creation.
type sessionOptions struct {
	rng   *rand.Rand
	clock func() float64
}

// defaultOptions returns the default session options.
func defaultOptions() sessionOptions {
	return sessionOptions{
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		clock: wallClock,
	}
}

// wallClock returns Unix time in seconds.
func wallClock() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}

// WithRand sets the random source used by Randomize and RandomizeGrid.
// A nil source is ignored.
func WithRand(rng *rand.Rand) SessionOption {
	return func(o *sessionOptions) {
		if rng != nil {
			o.rng = rng
		}
	}
}

// WithClock sets the clock read once per Render to drive the animated warps.
// The clock returns seconds. A nil clock is ignored.
func WithClock(clock func() float64) SessionOption {
	return func(o *sessionOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}
