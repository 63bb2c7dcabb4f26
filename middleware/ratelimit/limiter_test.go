package ratelimit

import (
	"testing"
	"time"
)

func TestNewLimiter(t *testing.T) {
	// NewLimiter should work with nil client for unit testing
	limiter := NewLimiter(nil, "test:")

	if limiter == nil {
		t.Fatal("NewLimiter returned nil")
	}
	if limiter.keyPrefix != "test:" {
		t.Errorf("expected keyPrefix 'test:', got %q", limiter.keyPrefix)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Limit <= 0 {
		t.Errorf("expected positive limit, got %d", cfg.Limit)
	}
	if cfg.Window != time.Minute {
		t.Errorf("expected one minute window, got %v", cfg.Window)
	}
}

// Note: integration tests for Allow() and Reset() require a running
// Redis instance and are exercised against a test Redis in CI.
