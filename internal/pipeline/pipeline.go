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

// Package pipeline orchestrates one tool invocation: validation, rate
// limiting, input moderation, prompt construction, provider dispatch, output
// moderation and response shaping, in that order. Every stage may fail the
// run; nothing is retried and nothing is cached.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/saze-ai/toolgate/internal/moderation"
	"github.com/saze-ai/toolgate/internal/provider"
	"github.com/saze-ai/toolgate/internal/ratelimit"
	"github.com/saze-ai/toolgate/internal/tools"
	"k8s.io/klog/v2"
)

// Request is one tool invocation.
type Request struct {
	Tool      string
	Model     string // provider name
	Data      map[string]any
	ClientKey string // rate-limit key, normally the client IP
}

// Result is the successful outcome of a run.
type Result struct {
	OutputKey string
	Text      string
	Model     string
}

// Shape returns the tool-specific single-key response object.
func (r Result) Shape() map[string]string {
	return map[string]string{r.OutputKey: r.Text}
}

// Pipeline wires the stages together. All collaborators are injected.
type Pipeline struct {
	registry  *tools.Registry
	providers *provider.Registry
	limiter   ratelimit.Limiter
	moderator moderation.Moderator
}

// New creates a pipeline. All collaborators are mandatory.
func New(
	registry *tools.Registry,
	providers *provider.Registry,
	limiter ratelimit.Limiter,
	moderator moderation.Moderator,
) (*Pipeline, error) {
	if registry == nil || providers == nil || limiter == nil || moderator == nil {
		return nil, fmt.Errorf("pipeline collaborators are missing")
	}
	return &Pipeline{
		registry:  registry,
		providers: providers,
		limiter:   limiter,
		moderator: moderator,
	}, nil
}

// Run executes the stages sequentially for one request. The returned error
// is always a *pipeline.Error.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	logger := klog.FromContext(ctx).WithValues("tool", req.Tool, "model", req.Model)

	// Validating
	tool, err := p.registry.Validate(req.Tool, req.Data)
	if err != nil {
		logger.V(3).Info("request validation failed", "reason", err.Error())
		return p.fail(req.Tool, &Error{Kind: KindValidation, Err: err})
	}
	prov, ok := p.providers.Get(req.Model)
	if !ok {
		logger.V(3).Info("unknown provider requested")
		return p.fail(req.Tool, &Error{Kind: KindValidation, Err: fmt.Errorf("unknown model %q", req.Model)})
	}

	// RateLimiting
	decision, err := p.limiter.Allow(ctx, req.ClientKey)
	if err != nil {
		// A broken limiter store must not take the service down with it.
		logger.Error(err, "rate limiter failed, allowing request")
	} else if !decision.Allowed {
		logger.V(3).Info("rate limit exceeded", "retryAfter", decision.RetryAfter)
		return p.fail(req.Tool, &Error{Kind: KindRateLimited, Err: fmt.Errorf("retry after %s", decision.RetryAfter)})
	}

	// ModeratingInput
	verdict, err := p.moderator.Moderate(ctx, tools.UserText(req.Data))
	if err != nil {
		logger.Error(err, "input moderation failed")
		return p.fail(req.Tool, &Error{Kind: KindModerationService, Err: err})
	}
	if verdict.Flagged {
		logger.V(3).Info("input flagged", "reason", verdict.Reason)
		return p.fail(req.Tool, &Error{Kind: KindFlagged, Err: fmt.Errorf("input: %s", verdict.Reason)})
	}

	// Generating
	prompt := tool.Prompt(req.Data)
	start := time.Now()
	text, err := prov.Generate(ctx, prompt)
	recordProviderDuration(prov.Name(), time.Since(start).Seconds())
	if err != nil {
		if provider.IsBlocked(err) {
			logger.V(3).Info("provider blocked generation", "reason", err.Error())
			return p.fail(req.Tool, &Error{Kind: KindProviderBlocked, Err: err})
		}
		logger.Error(err, "provider call failed")
		return p.fail(req.Tool, &Error{Kind: KindProvider, Err: err})
	}

	// ModeratingOutput
	verdict, err = p.moderator.Moderate(ctx, text)
	if err != nil {
		logger.Error(err, "output moderation failed")
		return p.fail(req.Tool, &Error{Kind: KindModerationService, Err: err})
	}
	if verdict.Flagged {
		logger.V(3).Info("output flagged", "reason", verdict.Reason)
		return p.fail(req.Tool, &Error{Kind: KindFlagged, Err: fmt.Errorf("output: %s", verdict.Reason)})
	}

	// Shaping
	if tool.OutputKey == "" {
		// Unreachable after registry construction; kept as a consistency check.
		return p.fail(req.Tool, &Error{Kind: KindInternal, Err: fmt.Errorf("tool %q has no output key", req.Tool)})
	}

	recordRun(req.Tool, "success")
	logger.V(4).Info("pipeline run succeeded")
	return Result{OutputKey: tool.OutputKey, Text: text, Model: prov.Name()}, nil
}

func (p *Pipeline) fail(tool string, perr *Error) (Result, error) {
	recordRun(tool, string(perr.Kind))
	return Result{}, perr
}
