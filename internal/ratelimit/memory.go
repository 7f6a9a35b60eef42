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

// The file implements the in-process rate limiter: a capacity-bounded map of
// per-key counters with per-entry expiry and least-recently-used eviction.
package ratelimit

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	key       string
	count     int
	expiresAt time.Time
}

// MemoryLimiter is a fixed-window limiter backed by an in-process LRU map.
// It is safe for concurrent use and suitable for single-instance deployments
// only; counters are not shared across processes.
type MemoryLimiter struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = most recently used
}

// NewMemoryLimiter creates an in-process limiter. Zero config fields fall
// back to defaults.
func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	def := NewConfig()
	if cfg.Threshold <= 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = def.Capacity
	}
	return &MemoryLimiter{
		cfg:     cfg,
		now:     time.Now,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Allow implements Limiter. It never returns an error.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	elem, ok := l.entries[key]
	if ok {
		entry := elem.Value.(*memoryEntry)
		if now.After(entry.expiresAt) {
			// Expired entries behave as absent.
			entry.count = 0
			entry.expiresAt = now.Add(l.cfg.Window)
		}
		l.order.MoveToFront(elem)
		return l.decide(entry), nil
	}

	if len(l.entries) >= l.cfg.Capacity {
		l.evictOldest()
	}
	entry := &memoryEntry{key: key, expiresAt: now.Add(l.cfg.Window)}
	l.entries[key] = l.order.PushFront(entry)
	return l.decide(entry), nil
}

func (l *MemoryLimiter) decide(entry *memoryEntry) Decision {
	if entry.count >= l.cfg.Threshold {
		return Decision{
			Allowed:    false,
			RetryAfter: entry.expiresAt.Sub(l.now()),
		}
	}
	entry.count++
	return Decision{
		Allowed:   true,
		Remaining: l.cfg.Threshold - entry.count,
	}
}

func (l *MemoryLimiter) evictOldest() {
	oldest := l.order.Back()
	if oldest == nil {
		return
	}
	entry := oldest.Value.(*memoryEntry)
	delete(l.entries, entry.key)
	l.order.Remove(oldest)
}

// Len reports the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *MemoryLimiter) Close() error {
	return nil
}
