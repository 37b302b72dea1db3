package pishock

import (
	"sync"
	"time"
)

// cooldownGate enforces a minimum spacing between commands to one device.
// A rejected attempt never moves the window; a pass always stamps the
// current time, before the remote call is made.
type cooldownGate struct {
	mu       sync.Mutex
	now      func() time.Time
	lastSent time.Time
}

func newCooldownGate() *cooldownGate {
	return &cooldownGate{now: time.Now}
}

// pass reports whether a command may be sent now. An interval of zero or
// less disables the check but still records the send time. The lock covers
// only the compare-and-set, never any network activity.
func (g *cooldownGate) pass(interval time.Duration) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if interval > 0 && !g.lastSent.IsZero() {
		if elapsed := now.Sub(g.lastSent); elapsed < interval {
			return &CooldownError{Remaining: interval - elapsed}
		}
	}

	g.lastSent = now
	return nil
}
