package grocer

import (
	"context"
	"math/rand"
	"time"
)

// DelayPolicy controls the pause between cart items. The production policy
// is randomized to keep the pacing human-like; tests substitute NoDelay.
type DelayPolicy interface {
	// Pause blocks for the policy's interval or until ctx is done.
	Pause(ctx context.Context)
}

// RandomDelay pauses for a uniformly random duration in [Min, Max].
type RandomDelay struct {
	Min time.Duration
	Max time.Duration
}

// DefaultDelay is the pacing used between cart items. This is throttling to
// reduce blocking risk, not a correctness requirement.
func DefaultDelay() RandomDelay {
	return RandomDelay{Min: 1500 * time.Millisecond, Max: 3 * time.Second}
}

func (d RandomDelay) Pause(ctx context.Context) {
	interval := d.Min
	if span := d.Max - d.Min; span > 0 {
		interval += time.Duration(rand.Int63n(int64(span)))
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// NoDelay is a DelayPolicy that never pauses.
type NoDelay struct{}

func (NoDelay) Pause(context.Context) {}
