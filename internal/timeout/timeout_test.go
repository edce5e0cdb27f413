package timeout

import (
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(Config{
		DefaultTimeout: 30 * time.Second,
		Rules: []Rule{
			{Pattern: "pg_stat", Timeout: 5 * time.Second},
			{Pattern: "JOIN", Timeout: 60 * time.Second},
		},
	})
}

func TestMatchFirstRule(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)

	got := m.GetTimeout("SELECT * FROM pg_stat_activity")
	if got != 5*time.Second {
		t.Errorf("expected 5s, got %v", got)
	}
}

func TestStopOnFirstMatch(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)

	got := m.GetTimeout("SELECT * FROM pg_stat JOIN x JOIN y JOIN z")
	if got != 5*time.Second {
		t.Errorf("expected 5s (first match wins), got %v", got)
	}
}

func TestDefaultTimeout(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)

	got, pattern := m.GetTimeoutWithPattern("SELECT 1")
	if got != 30*time.Second {
		t.Errorf("expected 30s (default), got %v", got)
	}
	if pattern != "" {
		t.Errorf("expected empty pattern for default, got %q", pattern)
	}
}

func TestMatchedPattern(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)

	got, pattern := m.GetTimeoutWithPattern("SELECT a JOIN b ON a.id = b.id")
	if got != 60*time.Second {
		t.Errorf("expected 60s, got %v", got)
	}
	if pattern != "JOIN" {
		t.Errorf("expected pattern JOIN, got %q", pattern)
	}
}

func TestNoRules(t *testing.T) {
	t.Parallel()
	m := NewManager(Config{DefaultTimeout: 30 * time.Second})

	if got := m.GetTimeout("SELECT 1"); got != 30*time.Second {
		t.Errorf("expected 30s (default), got %v", got)
	}
}

func TestInvalidPatternPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for invalid regex pattern")
		}
	}()
	NewManager(Config{
		DefaultTimeout: 30 * time.Second,
		Rules:          []Rule{{Pattern: "[invalid(", Timeout: time.Second}},
	})
}
