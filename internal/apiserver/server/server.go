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

// The file assembles the api server from its configuration: pipeline
// collaborators, handlers, middleware and the HTTP listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/saze-ai/toolgate/internal/apiserver/common"
	"github.com/saze-ai/toolgate/internal/apiserver/generate"
	"github.com/saze-ai/toolgate/internal/apiserver/health"
	"github.com/saze-ai/toolgate/internal/apiserver/metrics"
	"github.com/saze-ai/toolgate/internal/apiserver/middleware"
	predhandler "github.com/saze-ai/toolgate/internal/apiserver/prediction"
	"github.com/saze-ai/toolgate/internal/moderation"
	"github.com/saze-ai/toolgate/internal/pipeline"
	predclient "github.com/saze-ai/toolgate/internal/prediction"
	"github.com/saze-ai/toolgate/internal/provider"
	"github.com/saze-ai/toolgate/internal/provider/gemini"
	"github.com/saze-ai/toolgate/internal/provider/openai"
	"github.com/saze-ai/toolgate/internal/ratelimit"
	"github.com/saze-ai/toolgate/internal/tools"
	uredis "github.com/saze-ai/toolgate/internal/util/redis"
	utls "github.com/saze-ai/toolgate/internal/util/tls"
	"k8s.io/klog/v2"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	config  *common.Config
	limiter ratelimit.Limiter
	mux     *http.ServeMux
}

// New builds the server and all of its collaborators from the config.
func New(config *common.Config) (*Server, error) {
	registry, err := tools.NewRegistry(tools.DefaultCatalog())
	if err != nil {
		return nil, fmt.Errorf("failed to build tool registry: %w", err)
	}

	providers, err := buildProviders(config)
	if err != nil {
		return nil, err
	}

	limiter, err := buildLimiter(config)
	if err != nil {
		return nil, err
	}

	moderator := buildModerator(config)

	p, err := pipeline.New(registry, providers, limiter, moderator)
	if err != nil {
		limiter.Close()
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}

	mux := http.NewServeMux()
	common.RegisterHandler(mux, health.NewHealthApiHandler())
	common.RegisterHandler(mux, metrics.NewMetricsApiHandler())
	common.RegisterHandler(mux, generate.NewGenerateApiHandler(p, registry, config.DefaultModel))
	if config.Prediction.BaseURL != "" {
		common.RegisterHandler(mux, predhandler.NewPredictionApiHandler(predclient.NewClient(predclient.Config{
			BaseURL: config.Prediction.BaseURL,
			APIKey:  config.Prediction.APIKey,
		})))
	}

	return &Server{
		config:  config,
		limiter: limiter,
		mux:     mux,
	}, nil
}

// Start runs the HTTP listener until the context is cancelled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	logger := klog.FromContext(ctx)

	httpServer := &http.Server{
		Addr:    s.config.ListenAddress,
		Handler: middleware.RequestMiddleware(s.mux),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server listening", "address", s.config.ListenAddress)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.limiter.Close()
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := httpServer.Shutdown(shutdownCtx)
	if closeErr := s.limiter.Close(); closeErr != nil {
		logger.Error(closeErr, "failed to close rate limiter")
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func buildProviders(config *common.Config) (*provider.Registry, error) {
	var list []provider.Provider
	if config.OpenAI.APIKey != "" {
		list = append(list, openai.NewClient(openai.Config{
			BaseURL: config.OpenAI.BaseURL,
			APIKey:  config.OpenAI.APIKey,
			Model:   config.OpenAI.Model,
		}))
	}
	if config.Gemini.APIKey != "" {
		list = append(list, gemini.NewClient(gemini.Config{
			BaseURL: config.Gemini.BaseURL,
			APIKey:  config.Gemini.APIKey,
			Model:   config.Gemini.Model,
		}))
	}
	registry, err := provider.NewRegistry(list...)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider registry: %w", err)
	}
	return registry, nil
}

func buildLimiter(config *common.Config) (ratelimit.Limiter, error) {
	cfg := ratelimit.Config{
		Threshold: config.RateLimit.Threshold,
		Window:    config.RateLimit.Window,
		Capacity:  config.RateLimit.Capacity,
	}

	switch config.RateLimit.Backend {
	case common.RateLimitBackendRedis:
		clientCfg := &uredis.RedisClientConfig{
			Url:         config.RedisURL,
			ServiceName: "toolgate-apiserver",
			EnableTLS:   config.RedisTLS.Enabled,
			Insecure:    config.RedisTLS.Insecure,
		}
		if config.RedisTLS.CertFile != "" || config.RedisTLS.CACertFile != "" {
			clientCfg.Certificates = &utls.Certificates{
				Dir:        config.RedisTLS.CertDir,
				CertFile:   config.RedisTLS.CertFile,
				KeyFile:    config.RedisTLS.KeyFile,
				CaCertFile: config.RedisTLS.CACertFile,
			}
		}
		limiter, err := ratelimit.NewRedisLimiterFromConfig(context.Background(), cfg, clientCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to build redis rate limiter: %w", err)
		}
		return limiter, nil
	default:
		return ratelimit.NewMemoryLimiter(cfg), nil
	}
}

func buildModerator(config *common.Config) moderation.Moderator {
	var classifier moderation.Moderator
	if config.Moderation.ClassifierBaseURL != "" {
		classifier = moderation.NewClassifier(moderation.ClassifierConfig{
			BaseURL: config.Moderation.ClassifierBaseURL,
			APIKey:  config.Moderation.ClassifierAPIKey,
		})
	}
	return moderation.NewComposite(moderation.DefaultDenylist(), moderation.DefaultSensitiveTerms(), classifier)
}
