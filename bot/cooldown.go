package bot

import (
	"sync"
	"time"
)

type cooldownKey struct {
	command string
	userID  string
}

// CooldownTracker throttles per-user command usage in memory. State does not
// survive a restart; the durable 24h claims rely on the command cooldown
// being long enough that a restart mid-window is an acceptable reset.
type CooldownTracker struct {
	mu      sync.Mutex
	expires map[cooldownKey]time.Time

	// now is replaceable for tests
	now func() time.Time
}

// NewCooldownTracker creates an empty tracker
func NewCooldownTracker() *CooldownTracker {
	return &CooldownTracker{
		expires: make(map[cooldownKey]time.Time),
		now:     time.Now,
	}
}

// CheckAndArm atomically checks whether the user may run the command and,
// if so, arms the cooldown. A zero duration always allows and arms nothing.
// When denied, retryAfter is the remaining wait.
func (t *CooldownTracker) CheckAndArm(command, userID string, d time.Duration) (allowed bool, retryAfter time.Duration) {
	if d <= 0 {
		return true, 0
	}

	now := t.now()
	key := cooldownKey{command: command, userID: userID}

	t.mu.Lock()
	defer t.mu.Unlock()

	if expiry, ok := t.expires[key]; ok && now.Before(expiry) {
		return false, expiry.Sub(now)
	}

	t.expires[key] = now.Add(d)
	t.evictExpired(now)
	return true, 0
}

// evictExpired drops passed entries so the map tracks only live cooldowns.
// Caller must hold the mutex.
func (t *CooldownTracker) evictExpired(now time.Time) {
	for key, expiry := range t.expires {
		if !now.Before(expiry) {
			delete(t.expires, key)
		}
	}
}
