package marketdata

import (
	"context"
	"sync"
	"time"
)

// requestGate enforces a minimum interval between provider fetches.
// One instance is shared by every call site in the process; callers block
// until the interval since the last request has elapsed. There is no queue
// beyond the lock itself, so concurrent callers simply serialize.
type requestGate struct {
	mu          sync.Mutex
	minInterval time.Duration
	lastRequest time.Time
}

func newRequestGate(minInterval time.Duration) *requestGate {
	return &requestGate{minInterval: minInterval}
}

// Wait blocks until the minimum interval has elapsed, then claims the slot.
// Returns early with the context error if the caller is cancelled while
// waiting.
func (g *requestGate) Wait(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if wait := g.minInterval - time.Since(g.lastRequest); wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	g.lastRequest = time.Now()
	return nil
}
