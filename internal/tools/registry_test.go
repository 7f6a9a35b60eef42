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

// The file contains unit tests for the tool registry and its validation.
package tools

import (
	"strings"
	"testing"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(DefaultCatalog())
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	return r
}

func TestNewRegistryRejectsBadRecords(t *testing.T) {
	prompt := func(map[string]any) Prompt { return Prompt{} }

	tests := []struct {
		name  string
		tools []*Tool
	}{
		{
			name:  "empty name",
			tools: []*Tool{{Name: "", OutputKey: "x", Prompt: prompt}},
		},
		{
			name:  "missing output key",
			tools: []*Tool{{Name: "a", Prompt: prompt}},
		},
		{
			name:  "missing prompt builder",
			tools: []*Tool{{Name: "a", OutputKey: "x"}},
		},
		{
			name: "duplicate name",
			tools: []*Tool{
				{Name: "a", OutputKey: "x", Prompt: prompt},
				{Name: "a", OutputKey: "y", Prompt: prompt},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.tools); err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		name    string
		tool    string
		data    map[string]any
		wantErr string
	}{
		{
			name: "valid minimal request",
			tool: "aiHaikuGenerator",
			data: map[string]any{"theme": "autumn"},
		},
		{
			name: "valid request with optional fields",
			tool: "aiEssay",
			data: map[string]any{"topic": "the sea", "tone": "formal", "paragraphs": float64(3)},
		},
		{
			name:    "unknown tool",
			tool:    "aiNoSuchTool",
			data:    map[string]any{},
			wantErr: "unknown tool",
		},
		{
			name:    "missing required field",
			tool:    "aiHaikuGenerator",
			data:    map[string]any{},
			wantErr: `field "theme" is required`,
		},
		{
			name:    "blank required field",
			tool:    "aiHaikuGenerator",
			data:    map[string]any{"theme": "   "},
			wantErr: `field "theme" is required`,
		},
		{
			name:    "wrong type for string field",
			tool:    "aiHaikuGenerator",
			data:    map[string]any{"theme": float64(7)},
			wantErr: "must be a string",
		},
		{
			name:    "wrong type for number field",
			tool:    "aiEssay",
			data:    map[string]any{"topic": "the sea", "paragraphs": "three"},
			wantErr: "must be a number",
		},
		{
			name:    "enum violation",
			tool:    "aiEssay",
			data:    map[string]any{"topic": "the sea", "tone": "sarcastic"},
			wantErr: "must be one of",
		},
		{
			name:    "list with non-string element",
			tool:    "aiRecipeGenerator",
			data:    map[string]any{"dish": "soup", "ingredients": []any{"salt", float64(1)}},
			wantErr: "only strings",
		},
		{
			name: "exact length boundary accepted",
			tool: "aiHaikuGenerator",
			data: map[string]any{"theme": strings.Repeat("a", 200)},
		},
		{
			name:    "length boundary exceeded by one",
			tool:    "aiHaikuGenerator",
			data:    map[string]any{"theme": strings.Repeat("a", 201)},
			wantErr: "exceeds 200 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool, err := r.Validate(tt.tool, tt.data)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if tool == nil {
					t.Fatalf("expected tool record, got nil")
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateAggregatesProblems(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Validate("aiEssay", map[string]any{"tone": "sarcastic", "paragraphs": "three"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Problems) != 3 {
		t.Errorf("expected 3 aggregated problems, got %d: %v", len(verr.Problems), verr.Problems)
	}
}

func TestUserText(t *testing.T) {
	got := UserText(map[string]any{
		"topic":    "whales",
		"keywords": []any{"ocean", "blue"},
		"count":    float64(3),
		"empty":    "",
	})
	for _, want := range []string{"whales", "ocean", "blue"} {
		if !strings.Contains(got, want) {
			t.Errorf("UserText output %q missing %q", got, want)
		}
	}
	if strings.Contains(got, "3") {
		t.Errorf("UserText should skip non-string values, got %q", got)
	}
}
