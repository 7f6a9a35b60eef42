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

// Package prediction implements the client for the asynchronous image
// prediction service. Predictions are jobs: creation returns immediately and
// the result is fetched by polling until the job reaches a terminal status.
package prediction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"k8s.io/klog/v2"
)

// Status is the lifecycle state of a prediction job.
type Status string

const (
	StatusStarting   Status = "starting"
	StatusProcessing Status = "processing"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
	StatusCanceled   Status = "canceled"
)

// Terminal reports whether the status is final.
func (s Status) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCanceled:
		return true
	}
	return false
}

const predictionsEndpoint = "/v1/predictions"

// Prediction is the service's view of one job.
type Prediction struct {
	ID     string   `json:"id"`
	Status Status   `json:"status"`
	Output []string `json:"output,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// CreateRequest describes a new prediction job.
type CreateRequest struct {
	Version string         `json:"version,omitempty"`
	Input   map[string]any `json:"input"`
}

// Config holds configuration for the prediction client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration // per-request timeout (default: 30 seconds)

	// Polling configuration for Wait.
	PollInterval    time.Duration // initial poll interval (default: 1 second)
	MaxPollInterval time.Duration // backoff cap (default: 10 seconds)
	MaxPolls        int           // poll attempts before Wait gives up (default: 120)

	// Retry configuration, using resty's built-in exponential backoff.
	MaxRetries int
}

// Client talks to the prediction service.
type Client struct {
	client          *resty.Client
	pollInterval    time.Duration
	maxPollInterval time.Duration
	maxPolls        int
}

// NewClient creates a prediction client.
func NewClient(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.PollInterval == 0 {
		config.PollInterval = time.Second
	}
	if config.MaxPollInterval == 0 {
		config.MaxPollInterval = 10 * time.Second
	}
	if config.MaxPolls == 0 {
		config.MaxPolls = 120
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

	if config.MaxRetries > 0 {
		client.SetRetryCount(config.MaxRetries)
		client.AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
		})
	}

	return &Client{
		client:          client,
		pollInterval:    config.PollInterval,
		maxPollInterval: config.MaxPollInterval,
		maxPolls:        config.MaxPolls,
	}
}

// Create submits a new prediction job. The returned prediction is usually
// still in a non-terminal status.
func (c *Client) Create(ctx context.Context, req CreateRequest) (Prediction, error) {
	if len(req.Input) == 0 {
		return Prediction{}, fmt.Errorf("prediction input cannot be empty")
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(predictionsEndpoint)
	if err != nil {
		return Prediction{}, c.requestError(ctx, err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return Prediction{}, c.responseError(resp.StatusCode(), resp.Body())
	}

	return c.parsePrediction(resp.Body())
}

// Get fetches the current state of a prediction job.
func (c *Client) Get(ctx context.Context, id string) (Prediction, error) {
	if id == "" {
		return Prediction{}, fmt.Errorf("prediction id cannot be empty")
	}

	resp, err := c.client.R().
		SetContext(ctx).
		Get(predictionsEndpoint + "/" + id)
	if err != nil {
		return Prediction{}, c.requestError(ctx, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return Prediction{}, c.responseError(resp.StatusCode(), resp.Body())
	}

	return c.parsePrediction(resp.Body())
}

// Wait polls the job until it reaches a terminal status, the poll budget is
// spent, or the context ends. The poll interval doubles up to the configured
// cap. A failed or canceled job is not an error; callers inspect the returned
// status.
func (c *Client) Wait(ctx context.Context, id string) (Prediction, error) {
	logger := klog.FromContext(ctx).WithValues("predictionID", id)
	interval := c.pollInterval

	for poll := 1; ; poll++ {
		prediction, err := c.Get(ctx, id)
		if err != nil {
			return Prediction{}, err
		}
		if prediction.Status.Terminal() {
			logger.V(4).Info("prediction reached terminal status", "status", prediction.Status)
			return prediction, nil
		}
		if poll >= c.maxPolls {
			return Prediction{}, fmt.Errorf("prediction %s not terminal after %d polls, last status %q", id, poll, prediction.Status)
		}

		logger.V(4).Info("prediction still running", "status", prediction.Status, "nextPoll", interval)
		select {
		case <-ctx.Done():
			return Prediction{}, ctx.Err()
		case <-time.After(interval):
		}
		if interval *= 2; interval > c.maxPollInterval {
			interval = c.maxPollInterval
		}
	}
}

func (c *Client) parsePrediction(body []byte) (Prediction, error) {
	var prediction Prediction
	if err := json.Unmarshal(body, &prediction); err != nil {
		return Prediction{}, fmt.Errorf("failed to parse prediction response: %w", err)
	}
	if prediction.ID == "" {
		return Prediction{}, fmt.Errorf("prediction response carries no id")
	}
	return prediction, nil
}

func (c *Client) requestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("prediction request cancelled: %w", err)
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("prediction request timed out: %w", err)
	}
	return fmt.Errorf("failed to execute prediction request: %w", err)
}

func (c *Client) responseError(statusCode int, body []byte) error {
	var errorResp struct {
		Error string `json:"error"`
	}
	message := string(body)
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error != "" {
		message = errorResp.Error
	}
	return &StatusError{StatusCode: statusCode, Message: message}
}

// StatusError is returned when the prediction service answers with a non-2xx
// status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("prediction service returned HTTP %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether the error is a 404 from the prediction service.
func IsNotFound(err error) bool {
	var serr *StatusError
	return errors.As(err, &serr) && serr.StatusCode == http.StatusNotFound
}
