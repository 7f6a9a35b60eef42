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

// The file implements the remote moderation classifier client.
package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"k8s.io/klog/v2"
)

const moderationsEndpoint = "/v1/moderations"

// ClassifierConfig holds configuration for the remote classifier client.
type ClassifierConfig struct {
	BaseURL string        // Base URL of the moderation API
	APIKey  string        // API key, sent as a bearer token
	Timeout time.Duration // Request timeout (default: 30 seconds)
}

// Classifier calls an external moderation endpoint and maps its result to a
// Verdict.
type Classifier struct {
	client *resty.Client
}

// NewClassifier creates a remote classifier client.
func NewClassifier(config ClassifierConfig) *Classifier {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	client := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetHeader("Content-Type", "application/json")
	if config.APIKey != "" {
		client.SetAuthToken(config.APIKey)
	}
	return &Classifier{client: client}
}

type moderationRequest struct {
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []struct {
		Flagged    bool            `json:"flagged"`
		Categories map[string]bool `json:"categories"`
	} `json:"results"`
}

// Moderate implements Moderator against the remote endpoint. Any transport
// or protocol failure is returned as an error.
func (c *Classifier) Moderate(ctx context.Context, text string) (Verdict, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(moderationRequest{Input: text}).
		Post(moderationsEndpoint)
	if err != nil {
		return Verdict{}, fmt.Errorf("failed to execute moderation request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return Verdict{}, fmt.Errorf("moderation endpoint returned HTTP %d: %s", resp.StatusCode(), resp.Body())
	}

	var parsed moderationResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return Verdict{}, fmt.Errorf("failed to parse moderation response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return Verdict{}, fmt.Errorf("moderation response contains no results")
	}

	result := parsed.Results[0]
	if !result.Flagged {
		return Verdict{}, nil
	}

	// Pick the first flagged category, in stable order, as the reason.
	categories := make([]string, 0, len(result.Categories))
	for category, hit := range result.Categories {
		if hit {
			categories = append(categories, category)
		}
	}
	sort.Strings(categories)
	reason := "classifier flagged content"
	if len(categories) > 0 {
		reason = fmt.Sprintf("classifier category %q", categories[0])
	}
	klog.V(3).Infof("Moderation classifier flagged content, reason=%s", reason)
	return Verdict{Flagged: true, Reason: reason}, nil
}

// DefaultDenylist is the built-in profanity denylist. Deployments extend it
// through configuration.
func DefaultDenylist() []string {
	return []string{
		"fuck", "shit", "bitch", "asshole", "bastard", "cunt", "dick", "whore", "slut",
	}
}

// DefaultSensitiveTerms is the curated substring scan list for topics the
// service refuses regardless of classifier output.
func DefaultSensitiveTerms() []string {
	return []string{
		"child porn", "make a bomb", "build a bomb", "school shooting", "kill myself", "how to suicide",
	}
}
