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

// The file contains unit tests for config validation and YAML loading.
package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	c := NewConfig()
	c.OpenAI.APIKey = "sk-test"
	return c
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults with an API key are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing listen address",
			mutate:  func(c *Config) { c.ListenAddress = "" },
			wantErr: true,
		},
		{
			name: "no provider keys",
			mutate: func(c *Config) {
				c.OpenAI.APIKey = ""
				c.Gemini.APIKey = ""
			},
			wantErr: true,
		},
		{
			name: "default model without its key",
			mutate: func(c *Config) {
				c.DefaultModel = "gemini"
				c.Gemini.APIKey = ""
			},
			wantErr: true,
		},
		{
			name:    "unknown default model",
			mutate:  func(c *Config) { c.DefaultModel = "claude" },
			wantErr: true,
		},
		{
			name:    "unknown rate limit backend",
			mutate:  func(c *Config) { c.RateLimit.Backend = "dynamo" },
			wantErr: true,
		},
		{
			name: "redis backend without URL",
			mutate: func(c *Config) {
				c.RateLimit.Backend = RateLimitBackendRedis
				c.RedisURL = ""
			},
			wantErr: true,
		},
		{
			name:    "non-positive threshold",
			mutate:  func(c *Config) { c.RateLimit.Threshold = 0 },
			wantErr: true,
		},
		{
			name:    "non-positive window",
			mutate:  func(c *Config) { c.RateLimit.Window = 0 },
			wantErr: true,
		},
		{
			name: "redis backend ignores memory capacity",
			mutate: func(c *Config) {
				c.RateLimit.Backend = RateLimitBackendRedis
				c.RateLimit.Capacity = 0
			},
		},
		{
			name: "redis TLS with full certificate pair",
			mutate: func(c *Config) {
				c.RateLimit.Backend = RateLimitBackendRedis
				c.RedisTLS.Enabled = true
				c.RedisTLS.CertFile = "client.crt"
				c.RedisTLS.KeyFile = "client.key"
			},
		},
		{
			name: "redis TLS certificate without key",
			mutate: func(c *Config) {
				c.RateLimit.Backend = RateLimitBackendRedis
				c.RedisTLS.Enabled = true
				c.RedisTLS.CertFile = "client.crt"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestConfigLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
listen_address: ":9000"
default_model: gemini
gemini:
  api_key: g-test
  model: gemini-1.5-pro
rate_limit:
  backend: redis
  threshold: 7
redis_url: redis://redis:6379/1
redis_tls:
  enabled: true
  ca_cert_file: /etc/redis/ca.crt
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	c := NewConfig()
	if err := c.LoadFromYAML(path); err != nil {
		t.Fatalf("LoadFromYAML failed: %v", err)
	}

	if c.ListenAddress != ":9000" {
		t.Errorf("listen address = %q", c.ListenAddress)
	}
	if c.DefaultModel != "gemini" || c.Gemini.Model != "gemini-1.5-pro" {
		t.Errorf("gemini config not loaded: %+v", c.Gemini)
	}
	if c.RateLimit.Backend != RateLimitBackendRedis || c.RateLimit.Threshold != 7 {
		t.Errorf("rate limit config not loaded: %+v", c.RateLimit)
	}
	if c.RateLimit.Window != time.Minute {
		t.Errorf("window = %s, want the untouched default", c.RateLimit.Window)
	}
	if !c.RedisTLS.Enabled || c.RedisTLS.CACertFile != "/etc/redis/ca.crt" {
		t.Errorf("redis TLS config not loaded: %+v", c.RedisTLS)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
}
