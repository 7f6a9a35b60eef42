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

// Package ratelimit provides per-client request rate limiting with a fixed
// time window. The check and the increment happen as a single operation at
// the Limiter boundary, so implementations can be swapped between the
// in-process store and a shared redis store without touching callers.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of a single check-and-increment.
type Decision struct {
	Allowed    bool
	Remaining  int           // requests left in the current window, 0 when denied
	RetryAfter time.Duration // time until the window resets, set when denied
}

// Limiter counts requests per client key within a fixed window.
type Limiter interface {
	// Allow records one request for the key and reports whether it is within
	// the configured threshold. Absent or expired keys count as zero.
	Allow(ctx context.Context, key string) (Decision, error)

	// Close releases any resources held by the implementation.
	Close() error
}

// Config holds the window parameters shared by all implementations.
type Config struct {
	Threshold int           // requests allowed per key per window
	Window    time.Duration // window length
	Capacity  int           // bound on tracked keys, in-process store only
}

// NewConfig returns a Config with default values.
func NewConfig() Config {
	return Config{
		Threshold: 5,
		Window:    time.Minute,
		Capacity:  10000,
	}
}
