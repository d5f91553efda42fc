package api

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// DefaultCooldownWindow is the client-facing throttle: one completed
// operation per action type per window.
const DefaultCooldownWindow = 60 * time.Second

// CooldownError reports a rejected action and how long to wait. It is raised
// before any network call is made.
type CooldownError struct {
	Action            string
	RetryAfterSeconds int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("please wait %ds before requesting another %s", e.RetryAfterSeconds, e.Action)
}

// Cooldown tracks the completion time per action type. Process-local,
// in-memory timestamp comparison; no coordination beyond the mutex.
type Cooldown struct {
	window time.Duration
	mu     sync.Mutex
	last   map[string]time.Time
	now    func() time.Time
}

// NewCooldown creates a cooldown tracker with the given window.
func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{
		window: window,
		last:   make(map[string]time.Time),
		now:    time.Now,
	}
}

// Check reports whether an action may run now. Inside the window it returns
// a CooldownError with the remaining wait. Nothing is recorded here; only a
// completed operation starts a window, via Commit, so a failed attempt never
// locks the user out.
func (c *Cooldown) Check(action string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if last, ok := c.last[action]; ok {
		elapsed := now.Sub(last)
		if elapsed < c.window {
			remaining := int(math.Ceil((c.window - elapsed).Seconds()))
			return &CooldownError{Action: action, RetryAfterSeconds: remaining}
		}
	}
	return nil
}

// Commit records a completed action, starting its cooldown window.
func (c *Cooldown) Commit(action string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last[action] = c.now()
}
