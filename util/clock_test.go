package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSleepReturnsAfterDuration(t *testing.T) {
	start := time.Now()
	if err := Sleep(context.Background(), RealClock{}, 10*time.Millisecond); err != nil {
		t.Fatalf("Sleep: %v", err)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Error("Sleep returned early")
	}
}

func TestSleepHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Sleep(ctx, RealClock{}, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSleepZeroDuration(t *testing.T) {
	if err := Sleep(context.Background(), RealClock{}, 0); err != nil {
		t.Fatalf("Sleep(0): %v", err)
	}
}

func TestManualClock(t *testing.T) {
	start := time.Unix(1000, 0)
	c := NewManualClock(start)
	if err := Sleep(context.Background(), c, 3*time.Second); err != nil {
		t.Fatalf("Sleep: %v", err)
	}
	c.Advance(time.Second)
	if got := c.Now().Sub(start); got != 4*time.Second {
		t.Errorf("expected 4s elapsed, got %v", got)
	}
	if s := c.Sleeps(); len(s) != 1 || s[0] != 3*time.Second {
		t.Errorf("unexpected sleeps %v", s)
	}
}
