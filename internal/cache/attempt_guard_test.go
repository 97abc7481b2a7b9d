package cache

import (
	"testing"
	"time"
)

func TestAttemptGuardExhaustsAfterMaxFailures(t *testing.T) {
	guard := NewAttemptGuard(5, 3, time.Minute)
	key := "otp@example.com"

	for i := 0; i < 4; i++ {
		exhausted, coolingDown := guard.RecordFailure(key)
		if exhausted || coolingDown {
			t.Fatalf("failure %d: exhausted=%v coolingDown=%v, want neither", i+1, exhausted, coolingDown)
		}
	}

	exhausted, coolingDown := guard.RecordFailure(key)
	if !exhausted {
		t.Fatal("fifth failure should exhaust the code")
	}
	if coolingDown {
		t.Fatal("first strike must not start a cooldown")
	}

	// The counter resets with the new code.
	if allowed, _ := guard.Allow(key); !allowed {
		t.Fatal("key should still be allowed after one strike")
	}
}

func TestAttemptGuardCooldownAfterStrikes(t *testing.T) {
	guard := NewAttemptGuard(2, 2, time.Minute)
	key := "locked@example.com"

	// First strike.
	guard.RecordFailure(key)
	if exhausted, coolingDown := guard.RecordFailure(key); !exhausted || coolingDown {
		t.Fatalf("strike 1: exhausted=%v coolingDown=%v", exhausted, coolingDown)
	}

	// Second strike starts the cooldown.
	guard.RecordFailure(key)
	if exhausted, coolingDown := guard.RecordFailure(key); !exhausted || !coolingDown {
		t.Fatalf("strike 2: exhausted=%v coolingDown=%v, want both", exhausted, coolingDown)
	}

	allowed, remaining := guard.Allow(key)
	if allowed {
		t.Fatal("key should be blocked during cooldown")
	}
	if remaining <= 0 || remaining > time.Minute {
		t.Fatalf("remaining = %v, want within (0, 1m]", remaining)
	}
}

func TestAttemptGuardResetClearsState(t *testing.T) {
	guard := NewAttemptGuard(2, 1, time.Minute)
	key := "reset@example.com"

	guard.RecordFailure(key)
	guard.RecordFailure(key)
	if allowed, _ := guard.Allow(key); allowed {
		t.Fatal("key should be in cooldown")
	}

	guard.Reset(key)
	if allowed, _ := guard.Allow(key); !allowed {
		t.Fatal("Reset should clear the cooldown")
	}
	if exhausted, _ := guard.RecordFailure(key); exhausted {
		t.Fatal("failure count should restart after Reset")
	}
}

func TestAttemptGuardKeysAreIndependent(t *testing.T) {
	guard := NewAttemptGuard(2, 1, time.Minute)

	guard.RecordFailure("a@example.com")
	guard.RecordFailure("a@example.com")

	if allowed, _ := guard.Allow("a@example.com"); allowed {
		t.Fatal("first key should be blocked")
	}
	if allowed, _ := guard.Allow("b@example.com"); !allowed {
		t.Fatal("second key must not be affected")
	}
}
