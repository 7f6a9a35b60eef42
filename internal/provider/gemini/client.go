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

// Package gemini implements the single-prompt generative text provider.
// Only the user-message content is sent; safety thresholds are configured
// per request and provider-side blocks are surfaced as a distinct condition.
package gemini

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
	ProviderName = "gemini"

	finishReasonSafety = "SAFETY"
)

var safetyCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

// Config holds configuration for the generative-text client.
type Config struct {
	BaseURL         string        // Base URL of the API (e.g., "https://generativelanguage.googleapis.com")
	APIKey          string        // API key, passed as a query parameter
	Model           string        // Model name (default: "gemini-1.5-flash")
	MaxOutputTokens int           // Output token budget (default: 1024)
	SafetyThreshold string        // Block threshold for all harm categories (default: "BLOCK_MEDIUM_AND_ABOVE")
	Timeout         time.Duration // Request timeout (default: 2 minutes)
}

// Client is the generative-text provider implementation.
type Client struct {
	client          *resty.Client
	apiKey          string
	model           string
	maxOutputTokens int
	safetyThreshold string
}

// NewClient creates a generative-text provider.
func NewClient(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 2 * time.Minute
	}
	if config.Model == "" {
		config.Model = "gemini-1.5-flash"
	}
	if config.MaxOutputTokens == 0 {
		config.MaxOutputTokens = 1024
	}
	if config.SafetyThreshold == "" {
		config.SafetyThreshold = "BLOCK_MEDIUM_AND_ABOVE"
	}

	client := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetHeader("Content-Type", "application/json")

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = 30 * time.Second
	client.SetTransport(transport)

	return &Client{
		client:          client,
		apiKey:          config.APIKey,
		model:           config.Model,
		maxOutputTokens: config.MaxOutputTokens,
		safetyThreshold: config.SafetyThreshold,
	}
}

func (c *Client) Name() string {
	return ProviderName
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	SafetySettings   []safetySetting   `json:"safetySettings"`
	GenerationConfig generationConfig  `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      generateContent `json:"content"`
		FinishReason string          `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Generate sends the user-message content to the generateContent endpoint
// and returns the first candidate's text, trimmed.
func (c *Client) Generate(ctx context.Context, prompt tools.Prompt) (string, error) {
	settings := make([]safetySetting, 0, len(safetyCategories))
	for _, category := range safetyCategories {
		settings = append(settings, safetySetting{Category: category, Threshold: c.safetyThreshold})
	}
	body := generateRequest{
		Contents: []generateContent{
			{Role: "user", Parts: []generatePart{{Text: prompt.User}}},
		},
		SafetySettings:   settings,
		GenerationConfig: generationConfig{MaxOutputTokens: c.maxOutputTokens},
	}

	klog.V(4).Infof("Sending generateContent request, model=%s", c.model)

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		return "", c.handleRequestError(ctx, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", c.handleErrorResponse(resp.StatusCode(), resp.Body())
	}

	var parsed generateResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", &provider.Error{
			Category: provider.ErrCategoryServer,
			Message:  fmt.Sprintf("failed to parse generateContent response: %v", err),
			RawError: err,
		}
	}

	if parsed.PromptFeedback.BlockReason != "" {
		return "", &provider.Error{
			Category: provider.ErrCategoryBlocked,
			Message:  fmt.Sprintf("prompt blocked: %s", parsed.PromptFeedback.BlockReason),
		}
	}
	if len(parsed.Candidates) == 0 {
		return "", &provider.Error{
			Category: provider.ErrCategoryServer,
			Message:  "generateContent response contains no candidates",
		}
	}
	candidate := parsed.Candidates[0]
	if candidate.FinishReason == finishReasonSafety {
		return "", &provider.Error{
			Category: provider.ErrCategoryBlocked,
			Message:  "candidate blocked by safety settings",
		}
	}
	if len(candidate.Content.Parts) == 0 {
		return "", &provider.Error{
			Category: provider.ErrCategoryServer,
			Message:  "generateContent candidate contains no parts",
		}
	}
	return strings.TrimSpace(candidate.Content.Parts[0].Text), nil
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
			Code    int    `json:"code"`
			Status  string `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
	}

	message := string(body)
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
		message = errorResp.Error.Message
	}

	category := provider.MapStatusCodeToCategory(statusCode)

	klog.V(3).Infof("generateContent request failed with status=%d, category=%s, message=%s", statusCode, category, message)

	return &provider.Error{
		Category: category,
		Message:  fmt.Sprintf("HTTP %d: %s", statusCode, message),
		RawError: fmt.Errorf("status code: %d, body: %s", statusCode, string(body)),
	}
}
