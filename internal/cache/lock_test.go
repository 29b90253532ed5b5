package cache

import (
	"strings"
	"testing"
)

func TestLockKey_Deterministic(t *testing.T) {
	t.Parallel()

	if lockKey("emotion:hello") != lockKey("emotion:hello") {
		t.Error("Same key should produce same lock key")
	}
}

func TestLockKey_FixedLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"client", "client:ana@example.com"},
		{"long text", "emotion:" + strings.Repeat("so long ", 500)},
		{"unicode", "emotion:héllo wörld"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := lockKey(tt.key)
			if !strings.HasPrefix(got, lockKeyPrefix) {
				t.Errorf("lockKey(%q) = %q, missing prefix", tt.key, got)
			}
			// blake2b-256 hex digest
			if len(got) != len(lockKeyPrefix)+64 {
				t.Errorf("lockKey(%q) length = %d, want %d", tt.key, len(got), len(lockKeyPrefix)+64)
			}
		})
	}
}

func TestLockKey_Different(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"client:a@example.com", "client:b@example.com"},
		{"client:x", "emotion:x"},
		{"emotion:Hello", "emotion:hello"},
	}

	for _, p := range pairs {
		if lockKey(p[0]) == lockKey(p[1]) {
			t.Errorf("lockKey collision for %q and %q", p[0], p[1])
		}
	}
}

func TestNewLocker_Defaults(t *testing.T) {
	t.Parallel()

	l := NewLocker(nil, 0, -1, nil)
	if l.ttl != DefaultLockTTL {
		t.Errorf("ttl = %v, want %v", l.ttl, DefaultLockTTL)
	}
	if l.wait != DefaultLockWait {
		t.Errorf("wait = %v, want %v", l.wait, DefaultLockWait)
	}
}
