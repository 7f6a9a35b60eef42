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

// The file contains unit tests for the prediction service client.
package prediction

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:         baseURL,
		APIKey:          "token-test",
		PollInterval:    time.Millisecond,
		MaxPollInterval: 2 * time.Millisecond,
	})
}

func TestCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != predictionsEndpoint {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-test" {
			t.Errorf("Authorization header = %q", got)
		}

		var req CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Input["prompt"] != "a watercolor fox" {
			t.Errorf("input = %v", req.Input)
		}

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"pred-1","status":"starting"}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	prediction, err := c.Create(context.Background(), CreateRequest{
		Input: map[string]any{"prompt": "a watercolor fox"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if prediction.ID != "pred-1" || prediction.Status != StatusStarting {
		t.Errorf("prediction = %+v", prediction)
	}
}

func TestCreateRejectsEmptyInput(t *testing.T) {
	c := newTestClient("http://localhost:0")
	if _, err := c.Create(context.Background(), CreateRequest{}); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    Prediction
		wantErr bool
	}{
		{
			name:   "succeeded with output",
			status: http.StatusOK,
			body:   `{"id":"pred-2","status":"succeeded","output":["https://img/1.png"]}`,
			want:   Prediction{ID: "pred-2", Status: StatusSucceeded, Output: []string{"https://img/1.png"}},
		},
		{
			name:   "failed with error message",
			status: http.StatusOK,
			body:   `{"id":"pred-3","status":"failed","error":"NSFW content detected"}`,
			want:   Prediction{ID: "pred-3", Status: StatusFailed, Error: "NSFW content detected"},
		},
		{
			name:    "not found",
			status:  http.StatusNotFound,
			body:    `{"error":"no such prediction"}`,
			wantErr: true,
		},
		{
			name:    "missing id fails",
			status:  http.StatusOK,
			body:    `{"status":"starting"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !strings.HasPrefix(r.URL.Path, predictionsEndpoint+"/") {
					t.Errorf("unexpected path %q", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			c := newTestClient(srv.URL)
			prediction, err := c.Get(context.Background(), "pred-x")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if prediction.ID != tt.want.ID || prediction.Status != tt.want.Status || prediction.Error != tt.want.Error {
				t.Errorf("prediction = %+v, want %+v", prediction, tt.want)
			}
		})
	}
}

func TestWaitPollsUntilTerminal(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := polls.Add(1)
		switch {
		case n == 1:
			fmt.Fprint(w, `{"id":"pred-4","status":"starting"}`)
		case n < 4:
			fmt.Fprint(w, `{"id":"pred-4","status":"processing"}`)
		default:
			fmt.Fprint(w, `{"id":"pred-4","status":"succeeded","output":["https://img/2.png"]}`)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	prediction, err := c.Wait(context.Background(), "pred-4")
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if prediction.Status != StatusSucceeded {
		t.Errorf("status = %q, want succeeded", prediction.Status)
	}
	if got := polls.Load(); got < 4 {
		t.Errorf("polls = %d, want at least 4", got)
	}
}

func TestWaitReturnsFailedJobWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"pred-5","status":"failed","error":"boom"}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	prediction, err := c.Wait(context.Background(), "pred-5")
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if prediction.Status != StatusFailed || prediction.Error != "boom" {
		t.Errorf("prediction = %+v", prediction)
	}
}

func TestWaitGivesUpAfterMaxPolls(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		fmt.Fprint(w, `{"id":"pred-7","status":"processing"}`)
	}))
	defer srv.Close()

	c := NewClient(Config{
		BaseURL:         srv.URL,
		PollInterval:    time.Millisecond,
		MaxPollInterval: 2 * time.Millisecond,
		MaxPolls:        3,
	})
	_, err := c.Wait(context.Background(), "pred-7")
	if err == nil {
		t.Fatal("expected error once the poll budget is spent, got nil")
	}
	if got := polls.Load(); got != 3 {
		t.Errorf("polls = %d, want exactly 3", got)
	}
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"pred-6","status":"processing"}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := newTestClient(srv.URL)
	if _, err := c.Wait(ctx, "pred-6"); err == nil {
		t.Fatal("expected context error, got nil")
	}
}
