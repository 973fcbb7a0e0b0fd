package logging

import (
	"strings"
	"testing"
	"time"
)

func TestKVFormatsPairs(t *testing.T) {
	got := kv("gameId", "abc", "numBalls", 5)
	want := "gameId=abc numBalls=5"
	if got != want {
		t.Fatalf("kv() = %q, want %q", got, want)
	}
}

func TestKVHandlesOddTrailingKey(t *testing.T) {
	got := kv("gameId", "abc", "dangling")
	if !strings.Contains(got, "dangling=<missing>") {
		t.Fatalf("kv() = %q, want dangling=<missing>", got)
	}
}

func TestKVEmpty(t *testing.T) {
	if got := kv(); got != "" {
		t.Fatalf("kv() = %q, want empty string", got)
	}
}

func TestHumanDurationNonEmpty(t *testing.T) {
	got := HumanDuration(2 * time.Minute)
	if got == "" {
		t.Fatalf("HumanDuration returned empty string")
	}
}

func TestNewLoggerMethodsDoNotPanic(t *testing.T) {
	l := New()
	l.Info("test_event", "k", "v")
	l.Warn("test_event", "k", "v")
	l.Error("test_event", "k", "v")
	l.Debug("test_event")
}
