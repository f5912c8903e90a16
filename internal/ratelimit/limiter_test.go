package ratelimit

import (
	"context"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestNewDefaults(t *testing.T) {
	l := New(Config{})
	if l.queriesPerSec != rate.Limit(DefaultConfig().QueriesPerSecond) {
		t.Errorf("queriesPerSec = %v, want default", l.queriesPerSec)
	}
	if l.burstSize != DefaultConfig().BurstSize {
		t.Errorf("burstSize = %d, want %d", l.burstSize, DefaultConfig().BurstSize)
	}
}

func TestLimiterFor(t *testing.T) {
	l := New(Config{QueriesPerSecond: 10, BurstSize: 2})
	a := l.limiterFor("8.8.8.8:53")
	b := l.limiterFor("8.8.8.8:53")
	if a != b {
		t.Error("limiterFor() should return the same bucket for the same server")
	}
	c := l.limiterFor("1.1.1.1:53")
	if a == c {
		t.Error("limiterFor() should return distinct buckets per server")
	}
	if l.Servers() != 2 {
		t.Errorf("Servers() = %d, want 2", l.Servers())
	}
}

func TestWaitAdmitsWithinBurst(t *testing.T) {
	l := New(Config{QueriesPerSecond: 1000, BurstSize: 5})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for i := 0; i < 5; i++ {
		if err := l.Wait(ctx, "server"); err != nil {
			t.Fatalf("Wait() iteration %d error: %v", i, err)
		}
	}
}

func TestWaitRespectsCancellation(t *testing.T) {
	l := New(Config{QueriesPerSecond: 1, BurstSize: 1})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.Wait(ctx, "server"); err != nil {
		t.Fatalf("first Wait() error: %v", err)
	}

	shortCtx, shortCancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer shortCancel()
	if err := l.Wait(shortCtx, "server"); err == nil {
		t.Error("second Wait() should fail once the short context deadline passes")
	}
}
