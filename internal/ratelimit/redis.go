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

// The file implements the redis-backed rate limiter for multi-instance
// deployments. One INCR per request; the window TTL is set when the counter
// is created, so the window is fixed, not sliding.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	gredis "github.com/redis/go-redis/v9"
	uredis "github.com/saze-ai/toolgate/internal/util/redis"
	"k8s.io/klog/v2"
)

const redisKeyPrefix = "toolgate:ratelimit:"

// RedisLimiter is a fixed-window limiter with counters shared through redis.
type RedisLimiter struct {
	cfg     Config
	rds     *gredis.Client
	timeout time.Duration
	ownsRds bool
}

// NewRedisLimiter creates a limiter on an established redis client.
func NewRedisLimiter(cfg Config, rds *gredis.Client, timeout time.Duration) (*RedisLimiter, error) {
	if rds == nil {
		return nil, fmt.Errorf("redis client was not provided")
	}
	def := NewConfig()
	if cfg.Threshold <= 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if timeout <= 0 {
		timeout = time.Second
	}
	return &RedisLimiter{cfg: cfg, rds: rds, timeout: timeout}, nil
}

// NewRedisLimiterFromConfig dials redis and creates a limiter owning the
// connection.
func NewRedisLimiterFromConfig(ctx context.Context, cfg Config, rcnf *uredis.RedisClientConfig) (*RedisLimiter, error) {
	rds, err := uredis.NewRedisClient(ctx, rcnf)
	if err != nil {
		return nil, err
	}
	l, err := NewRedisLimiter(cfg, rds, rcnf.Timeout)
	if err != nil {
		rds.Close()
		return nil, err
	}
	l.ownsRds = true
	return l, nil
}

// Allow implements Limiter. The INCR and the first-hit EXPIRE run in one
// pipeline, so the counter can not be left without a TTL.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := klog.FromContext(ctx)
	redisKey := redisKeyPrefix + key

	cctx, ccancel := context.WithTimeout(ctx, l.timeout)
	defer ccancel()

	var incr *gredis.IntCmd
	_, err := l.rds.TxPipelined(cctx, func(pipe gredis.Pipeliner) error {
		incr = pipe.Incr(cctx, redisKey)
		pipe.ExpireNX(cctx, redisKey, l.cfg.Window)
		return nil
	})
	if err != nil {
		logger.Error(err, "Allow: redis pipeline failed", "key", key)
		return Decision{}, err
	}

	count := int(incr.Val())
	if count > l.cfg.Threshold {
		retryAfter := l.cfg.Window
		if ttl, terr := l.rds.TTL(cctx, redisKey).Result(); terr == nil && ttl > 0 {
			retryAfter = ttl
		}
		return Decision{Allowed: false, RetryAfter: retryAfter}, nil
	}
	return Decision{Allowed: true, Remaining: l.cfg.Threshold - count}, nil
}

func (l *RedisLimiter) Close() error {
	if l.ownsRds && l.rds != nil {
		return l.rds.Close()
	}
	return nil
}
