package bot

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestTracker(start time.Time) (*CooldownTracker, *time.Time) {
	now := start
	tracker := NewCooldownTracker()
	tracker.now = func() time.Time { return now }
	return tracker, &now
}

func TestCooldownTracker_ArmsAndDenies(t *testing.T) {
	tracker, now := newTestTracker(time.Unix(1000, 0))

	allowed, retryAfter := tracker.CheckAndArm("gamble", "user1", 30*time.Second)
	assert.True(t, allowed)
	assert.Zero(t, retryAfter)

	*now = now.Add(10 * time.Second)

	allowed, retryAfter = tracker.CheckAndArm("gamble", "user1", 30*time.Second)
	assert.False(t, allowed)
	assert.Equal(t, 20*time.Second, retryAfter)
}

func TestCooldownTracker_DenialDoesNotRearm(t *testing.T) {
	tracker, now := newTestTracker(time.Unix(1000, 0))

	tracker.CheckAndArm("gamble", "user1", 30*time.Second)

	// Repeated denied checks must not push the expiry forward
	*now = now.Add(20 * time.Second)
	allowed, _ := tracker.CheckAndArm("gamble", "user1", 30*time.Second)
	assert.False(t, allowed)

	*now = now.Add(10 * time.Second)
	allowed, _ = tracker.CheckAndArm("gamble", "user1", 30*time.Second)
	assert.True(t, allowed)
}

func TestCooldownTracker_AllowsAfterExpiry(t *testing.T) {
	tracker, now := newTestTracker(time.Unix(1000, 0))

	tracker.CheckAndArm("daily", "user1", 24*time.Hour)

	*now = now.Add(24*time.Hour + time.Second)

	allowed, retryAfter := tracker.CheckAndArm("daily", "user1", 24*time.Hour)
	assert.True(t, allowed)
	assert.Zero(t, retryAfter)
}

func TestCooldownTracker_KeysAreIndependent(t *testing.T) {
	tracker, _ := newTestTracker(time.Unix(1000, 0))

	tracker.CheckAndArm("gamble", "user1", 30*time.Second)

	// Different user, same command
	allowed, _ := tracker.CheckAndArm("gamble", "user2", 30*time.Second)
	assert.True(t, allowed)

	// Same user, different command
	allowed, _ = tracker.CheckAndArm("daily", "user1", 24*time.Hour)
	assert.True(t, allowed)
}

func TestCooldownTracker_ZeroDurationAlwaysAllows(t *testing.T) {
	tracker, _ := newTestTracker(time.Unix(1000, 0))

	for i := 0; i < 5; i++ {
		allowed, retryAfter := tracker.CheckAndArm("ping", "user1", 0)
		assert.True(t, allowed)
		assert.Zero(t, retryAfter)
	}
}

func TestCooldownTracker_ConcurrentCheckAndArm(t *testing.T) {
	tracker := NewCooldownTracker()

	const goroutines = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := tracker.CheckAndArm("gamble", "user1", time.Minute); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Exactly one concurrent caller wins the test-and-set
	assert.Equal(t, 1, allowedCount)
}

func TestCooldownTracker_EvictsExpiredEntries(t *testing.T) {
	tracker, now := newTestTracker(time.Unix(1000, 0))

	tracker.CheckAndArm("gamble", "user1", 10*time.Second)
	tracker.CheckAndArm("gamble", "user2", 10*time.Second)

	*now = now.Add(time.Minute)

	// The next arm sweeps out both expired entries and adds one live entry
	tracker.CheckAndArm("daily", "user3", time.Hour)

	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	assert.Len(t, tracker.expires, 1)
}
