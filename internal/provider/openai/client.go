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

// Package openai implements the chat-completion text provider.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/saze-ai/toolgate/internal/provider"
	"github.com/saze-ai/toolgate/internal/tools"
	"k8s.io/klog/v2"
)

const (
	// ProviderName is the identifier requests use to select this provider.
	ProviderName = "openai"

	chatCompletionsEndpoint = "/v1/chat/completions"
)

// Config holds configuration for the chat-completion client.
type Config struct {
	BaseURL   string        // Base URL of the API (e.g., "https://api.openai.com")
	APIKey    string        // API key, sent as a bearer token
	Model     string        // Model name (default: "gpt-4o-mini")
	MaxTokens int           // Completion token budget (default: 1024)
	Timeout   time.Duration // Request timeout (default: 2 minutes)
}

// Client is the chat-completion provider implementation.
type Client struct {
	client    *resty.Client
	model     string
	maxTokens int
}

// NewClient creates a chat-completion provider.
func NewClient(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 2 * time.Minute
	}
	if config.Model == "" {
		config.Model = "gpt-4o-mini"
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 1024
	}

	client := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetHeader("Content-Type", "application/json")
	if config.APIKey != "" {
		client.SetAuthToken(config.APIKey)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = 30 * time.Second
	client.SetTransport(transport)

	return &Client{
		client:    client,
		model:     config.Model,
		maxTokens: config.MaxTokens,
	}
}

func (c *Client) Name() string {
	return ProviderName
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends the system/user pair to the chat completions endpoint and
// returns the first completion's text, trimmed.
func (c *Client) Generate(ctx context.Context, prompt tools.Prompt) (string, error) {
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		MaxTokens: c.maxTokens,
	}

	klog.V(4).Infof("Sending chat completion request, model=%s", c.model)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(chatCompletionsEndpoint)
	if err != nil {
		return "", c.handleRequestError(ctx, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", c.handleErrorResponse(resp.StatusCode(), resp.Body())
	}

	var parsed chatResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", &provider.Error{
			Category: provider.ErrCategoryServer,
			Message:  fmt.Sprintf("failed to parse completion response: %v", err),
			RawError: err,
		}
	}
	if len(parsed.Choices) == 0 {
		return "", &provider.Error{
			Category: provider.ErrCategoryServer,
			Message:  "completion response contains no choices",
		}
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func (c *Client) handleRequestError(ctx context.Context, err error) *provider.Error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return &provider.Error{
			Category: provider.ErrCategoryUnknown,
			Message:  "request cancelled",
			RawError: err,
		}
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &provider.Error{
			Category: provider.ErrCategoryServer,
			Message:  "request timeout",
			RawError: err,
		}
	}
	return &provider.Error{
		Category: provider.ErrCategoryServer,
		Message:  fmt.Sprintf("failed to execute request: %v", err),
		RawError: err,
	}
}

func (c *Client) handleErrorResponse(statusCode int, body []byte) *provider.Error {
	var errorResp struct {
		Error struct {
			Code    string `json:"code"`
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}

	message := string(body)
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
		message = errorResp.Error.Message
	}

	category := provider.MapStatusCodeToCategory(statusCode)
	// A policy rejection is a distinct condition the caller presents to the
	// user, not an upstream failure.
	if errorResp.Error.Code == "content_policy_violation" || errorResp.Error.Type == "content_policy_violation" {
		category = provider.ErrCategoryBlocked
	}

	klog.V(3).Infof("Chat completion request failed with status=%d, category=%s, message=%s", statusCode, category, message)

	return &provider.Error{
		Category: category,
		Message:  fmt.Sprintf("HTTP %d: %s", statusCode, message),
		RawError: fmt.Errorf("status code: %d, body: %s", statusCode, string(body)),
	}
}
