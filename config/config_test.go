package config

import (
	"testing"
	"time"
)

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DELAY", "250ms")
	if got := GetEnvDuration("TEST_DELAY", time.Second); got != 250*time.Millisecond {
		t.Errorf("GetEnvDuration(250ms) = %s", got)
	}
	t.Setenv("TEST_DELAY", "750")
	if got := GetEnvDuration("TEST_DELAY", time.Second); got != 750*time.Millisecond {
		t.Errorf("GetEnvDuration(750) = %s, want 750ms", got)
	}
	t.Setenv("TEST_DELAY", "soon")
	if got := GetEnvDuration("TEST_DELAY", time.Second); got != time.Second {
		t.Errorf("GetEnvDuration(soon) = %s, want default", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_SIZE", "24")
	if got := GetEnvInt("TEST_SIZE", 12); got != 24 {
		t.Errorf("GetEnvInt = %d, want 24", got)
	}
	t.Setenv("TEST_SIZE", "")
	if got := GetEnvInt("TEST_SIZE", 12); got != 12 {
		t.Errorf("GetEnvInt(empty) = %d, want 12", got)
	}
}

func TestNewOptionsStore_InMemoryWithoutRedis(t *testing.T) {
	RedisClient = nil
	store, purge := NewOptionsStore()
	if store == nil || purge == nil {
		t.Fatal("expected in-memory store with purge func")
	}
}

func TestNewLogger_Level(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	if got := NewLogger().GetLevel().String(); got != "warning" {
		t.Errorf("level = %s, want warning", got)
	}
}
