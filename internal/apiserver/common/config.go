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

// The api server's configuration definitions.
package common

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	RateLimitBackendMemory = "memory"
	RateLimitBackendRedis  = "redis"
)

type ProviderConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	APIKey  string `json:"api_key" yaml:"api_key" mapstructure:"api_key"`
	Model   string `json:"model" yaml:"model" mapstructure:"model"`
}

type RateLimitConfig struct {
	Backend   string        `json:"backend" yaml:"backend" mapstructure:"backend"`
	Threshold int           `json:"threshold" yaml:"threshold" mapstructure:"threshold"`
	Window    time.Duration `json:"window" yaml:"window" mapstructure:"window"`
	Capacity  int           `json:"capacity" yaml:"capacity" mapstructure:"capacity"`
}

type ModerationConfig struct {
	ClassifierBaseURL string `json:"classifier_base_url" yaml:"classifier_base_url" mapstructure:"classifier_base_url"`
	ClassifierAPIKey  string `json:"classifier_api_key" yaml:"classifier_api_key" mapstructure:"classifier_api_key"`
}

type RedisTLSConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Insecure   bool   `json:"insecure" yaml:"insecure" mapstructure:"insecure"`
	CertDir    string `json:"cert_dir" yaml:"cert_dir" mapstructure:"cert_dir"`
	CertFile   string `json:"cert_file" yaml:"cert_file" mapstructure:"cert_file"`
	KeyFile    string `json:"key_file" yaml:"key_file" mapstructure:"key_file"`
	CACertFile string `json:"ca_cert_file" yaml:"ca_cert_file" mapstructure:"ca_cert_file"`
}

type PredictionConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	APIKey  string `json:"api_key" yaml:"api_key" mapstructure:"api_key"`
}

type Config struct {
	ListenAddress string           `json:"listen_address" yaml:"listen_address" mapstructure:"listen_address"`
	DefaultModel  string           `json:"default_model" yaml:"default_model" mapstructure:"default_model"`
	OpenAI        ProviderConfig   `json:"openai" yaml:"openai" mapstructure:"openai"`
	Gemini        ProviderConfig   `json:"gemini" yaml:"gemini" mapstructure:"gemini"`
	RateLimit     RateLimitConfig  `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`
	Moderation    ModerationConfig `json:"moderation" yaml:"moderation" mapstructure:"moderation"`
	Prediction    PredictionConfig `json:"prediction" yaml:"prediction" mapstructure:"prediction"`
	RedisURL      string           `json:"redis_url" yaml:"redis_url" mapstructure:"redis_url"`
	RedisTLS      RedisTLSConfig   `json:"redis_tls" yaml:"redis_tls" mapstructure:"redis_tls"`
	ConfigFile    string           `json:"-" yaml:"-" mapstructure:"-"`
}

// NewConfig returns a new Config with default values. API keys have no
// defaults and come from flags, the config file or the environment.
func NewConfig() *Config {
	return &Config{
		ListenAddress: ":8080",
		DefaultModel:  "openai",
		OpenAI: ProviderConfig{
			BaseURL: "https://api.openai.com",
			APIKey:  os.Getenv("OPENAI_API_KEY"),
		},
		Gemini: ProviderConfig{
			BaseURL: "https://generativelanguage.googleapis.com",
			APIKey:  os.Getenv("GEMINI_API_KEY"),
		},
		RateLimit: RateLimitConfig{
			Backend:   RateLimitBackendMemory,
			Threshold: 5,
			Window:    time.Minute,
			Capacity:  10000,
		},
		Moderation: ModerationConfig{
			ClassifierBaseURL: "https://api.openai.com",
			ClassifierAPIKey:  os.Getenv("OPENAI_API_KEY"),
		},
		RedisURL: "redis://localhost:6379",
	}
}

// AddFlags registers the config fields on the flag set.
func (c *Config) AddFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config-file", c.ConfigFile, "Path to a YAML config file, applied over flag values")
	fs.StringVar(&c.ListenAddress, "listen-address", c.ListenAddress, "Address the api server listens on")
	fs.StringVar(&c.DefaultModel, "default-model", c.DefaultModel, "Provider used when a request names none")
	fs.StringVar(&c.OpenAI.BaseURL, "openai-base-url", c.OpenAI.BaseURL, "OpenAI API base URL")
	fs.StringVar(&c.OpenAI.APIKey, "openai-api-key", c.OpenAI.APIKey, "OpenAI API key")
	fs.StringVar(&c.OpenAI.Model, "openai-model", c.OpenAI.Model, "OpenAI model name, empty for the client default")
	fs.StringVar(&c.Gemini.BaseURL, "gemini-base-url", c.Gemini.BaseURL, "Gemini API base URL")
	fs.StringVar(&c.Gemini.APIKey, "gemini-api-key", c.Gemini.APIKey, "Gemini API key")
	fs.StringVar(&c.Gemini.Model, "gemini-model", c.Gemini.Model, "Gemini model name, empty for the client default")
	fs.StringVar(&c.RateLimit.Backend, "rate-limit-backend", c.RateLimit.Backend, "Rate limit store, memory or redis")
	fs.IntVar(&c.RateLimit.Threshold, "rate-limit-threshold", c.RateLimit.Threshold, "Requests allowed per client per window")
	fs.DurationVar(&c.RateLimit.Window, "rate-limit-window", c.RateLimit.Window, "Rate limit window duration")
	fs.IntVar(&c.RateLimit.Capacity, "rate-limit-capacity", c.RateLimit.Capacity, "Client entries kept by the memory rate limit store")
	fs.StringVar(&c.Moderation.ClassifierBaseURL, "moderation-classifier-base-url", c.Moderation.ClassifierBaseURL, "Moderation classifier base URL, empty to disable the remote classifier")
	fs.StringVar(&c.Moderation.ClassifierAPIKey, "moderation-classifier-api-key", c.Moderation.ClassifierAPIKey, "Moderation classifier API key")
	fs.StringVar(&c.Prediction.BaseURL, "prediction-base-url", c.Prediction.BaseURL, "Image prediction service base URL, empty to disable prediction endpoints")
	fs.StringVar(&c.Prediction.APIKey, "prediction-api-key", c.Prediction.APIKey, "Image prediction service API key")
	fs.StringVar(&c.RedisURL, "redis-url", c.RedisURL, "Redis URL for the redis rate limit store")
	fs.BoolVar(&c.RedisTLS.Enabled, "redis-tls-enabled", c.RedisTLS.Enabled, "Connect to redis over TLS")
	fs.BoolVar(&c.RedisTLS.Insecure, "redis-tls-insecure", c.RedisTLS.Insecure, "Skip redis TLS certificate verification")
	fs.StringVar(&c.RedisTLS.CertDir, "redis-tls-cert-dir", c.RedisTLS.CertDir, "Directory holding the redis TLS certificate files")
	fs.StringVar(&c.RedisTLS.CertFile, "redis-tls-cert-file", c.RedisTLS.CertFile, "Redis client certificate file")
	fs.StringVar(&c.RedisTLS.KeyFile, "redis-tls-key-file", c.RedisTLS.KeyFile, "Redis client key file")
	fs.StringVar(&c.RedisTLS.CACertFile, "redis-tls-ca-cert-file", c.RedisTLS.CACertFile, "Redis CA certificate file")
}

// LoadFromYAML loads the configuration from a YAML file.
func (c *Config) LoadFromYAML(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(c); err != nil {
		return err
	}
	return nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.ListenAddress == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.OpenAI.APIKey == "" && c.Gemini.APIKey == "" {
		return fmt.Errorf("at least one provider API key is required")
	}
	switch c.DefaultModel {
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("default model is openai but no OpenAI API key is set")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("default model is gemini but no Gemini API key is set")
		}
	default:
		return fmt.Errorf("unknown default model %q", c.DefaultModel)
	}
	switch c.RateLimit.Backend {
	case RateLimitBackendMemory:
	case RateLimitBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis rate limit backend requires a redis URL")
		}
		if c.RedisTLS.CertFile != "" && c.RedisTLS.KeyFile == "" {
			return fmt.Errorf("redis TLS client certificate requires a key file")
		}
	default:
		return fmt.Errorf("unknown rate limit backend %q", c.RateLimit.Backend)
	}
	if c.RateLimit.Threshold <= 0 {
		return fmt.Errorf("rate limit threshold must be positive")
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive")
	}
	if c.RateLimit.Backend == RateLimitBackendMemory && c.RateLimit.Capacity <= 0 {
		return fmt.Errorf("memory rate limit capacity must be positive")
	}
	return nil
}
