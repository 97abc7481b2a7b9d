package cache

import (
	"sync"
	"time"
)

// AttemptGuard tracks verification failures per key (email). Reaching
// maxAttempts invalidates the current code and counts a strike; after
// lockStrikes strikes the key enters a cooldown window.
type AttemptGuard struct {
	mu          sync.Mutex
	maxAttempts int
	lockStrikes int
	cooldown    time.Duration
	entries     map[string]*attemptEntry
}

type attemptEntry struct {
	failures      int
	strikes       int
	cooldownUntil time.Time
}

// NewAttemptGuard builds a guard with the given limits.
func NewAttemptGuard(maxAttempts, lockStrikes int, cooldown time.Duration) *AttemptGuard {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if lockStrikes <= 0 {
		lockStrikes = 3
	}
	if cooldown <= 0 {
		cooldown = 5 * time.Minute
	}
	return &AttemptGuard{
		maxAttempts: maxAttempts,
		lockStrikes: lockStrikes,
		cooldown:    cooldown,
		entries:     make(map[string]*attemptEntry),
	}
}

// Allow reports whether the key may attempt verification, and the remaining
// cooldown when it may not.
func (g *AttemptGuard) Allow(key string) (bool, time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, ok := g.entries[key]
	if !ok {
		return true, 0
	}
	now := time.Now()
	if entry.cooldownUntil.After(now) {
		return false, entry.cooldownUntil.Sub(now)
	}
	return true, 0
}

// RecordFailure registers a failed verification. It returns exhausted=true
// when the current code just hit the attempt limit (the caller must
// invalidate it), and coolingDown=true when the strike limit started a
// cooldown window.
func (g *AttemptGuard) RecordFailure(key string) (exhausted bool, coolingDown bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, ok := g.entries[key]
	if !ok {
		entry = &attemptEntry{}
		g.entries[key] = entry
	}

	entry.failures++
	if entry.failures < g.maxAttempts {
		return false, false
	}

	entry.failures = 0
	entry.strikes++
	if entry.strikes < g.lockStrikes {
		return true, false
	}

	entry.strikes = 0
	entry.cooldownUntil = time.Now().Add(g.cooldown)
	return true, true
}

// Reset clears all state for the key (successful verification).
func (g *AttemptGuard) Reset(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.entries, key)
}
