/*
Copyright 2026 The Saze AI Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// The file contains unit tests for the in-process rate limiter.
package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func newTestLimiter(cfg Config) (*MemoryLimiter, *time.Time) {
	l := NewMemoryLimiter(cfg)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestMemoryLimiterThreshold(t *testing.T) {
	l, _ := newTestLimiter(Config{Threshold: 5, Window: time.Minute})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		d, err := l.Allow(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("Allow returned error: %v", err)
		}
		if !d.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if d.Remaining != 5-(i+1) {
			t.Errorf("request %d remaining = %d, want %d", i+1, d.Remaining, 5-(i+1))
		}
	}

	d, err := l.Allow(ctx, "1.2.3.4")
	if err != nil {
		t.Fatalf("Allow returned error: %v", err)
	}
	if d.Allowed {
		t.Error("request over the threshold should be denied")
	}
	if d.RetryAfter <= 0 || d.RetryAfter > time.Minute {
		t.Errorf("RetryAfter = %v, want within (0, 1m]", d.RetryAfter)
	}
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	l, now := newTestLimiter(Config{Threshold: 2, Window: 12 * time.Second})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if d, _ := l.Allow(ctx, "key"); !d.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if d, _ := l.Allow(ctx, "key"); d.Allowed {
		t.Fatal("third request within the window should be denied")
	}

	*now = now.Add(13 * time.Second)

	if d, _ := l.Allow(ctx, "key"); !d.Allowed {
		t.Error("request after the window elapsed should be allowed again")
	}
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(Config{Threshold: 1, Window: time.Minute})
	ctx := context.Background()

	if d, _ := l.Allow(ctx, "a"); !d.Allowed {
		t.Fatal("first request for key a should be allowed")
	}
	if d, _ := l.Allow(ctx, "a"); d.Allowed {
		t.Fatal("second request for key a should be denied")
	}
	if d, _ := l.Allow(ctx, "b"); !d.Allowed {
		t.Error("key b must not be affected by key a's counter")
	}
}

func TestMemoryLimiterCapacityEviction(t *testing.T) {
	l, _ := newTestLimiter(Config{Threshold: 1, Window: time.Minute, Capacity: 3})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		l.Allow(ctx, fmt.Sprintf("key-%d", i))
	}
	if l.Len() != 3 {
		t.Fatalf("tracked keys = %d, want 3", l.Len())
	}

	// key-0 is the least recently used and gets evicted.
	l.Allow(ctx, "key-3")
	if l.Len() != 3 {
		t.Fatalf("tracked keys after eviction = %d, want 3", l.Len())
	}

	// An evicted key starts from zero again.
	if d, _ := l.Allow(ctx, "key-0"); !d.Allowed {
		t.Error("evicted key should behave as absent")
	}
}

func TestMemoryLimiterTouchRefreshesRecency(t *testing.T) {
	l, _ := newTestLimiter(Config{Threshold: 10, Window: time.Minute, Capacity: 2})
	ctx := context.Background()

	l.Allow(ctx, "old")
	l.Allow(ctx, "young")
	l.Allow(ctx, "old") // old becomes most recently used
	l.Allow(ctx, "new") // evicts young, not old

	// old was counted twice before this call, so this is its third hit.
	if d, _ := l.Allow(ctx, "old"); d.Remaining != 10-3 {
		t.Errorf("old key counter was lost: remaining = %d", d.Remaining)
	}
}
