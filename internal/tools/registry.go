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

// The file implements the tool registry. Each tool carries its field schema,
// its prompt builder and its response output key in a single record, so
// validation, prompt construction and response shaping are driven from one
// table built at startup.
package tools

import (
	"fmt"
	"sort"
	"strings"
)

// FieldKind is the structural type of a tool input field.
type FieldKind string

const (
	FieldString     FieldKind = "string"
	FieldNumber     FieldKind = "number"
	FieldStringList FieldKind = "string_list"
)

// Field describes one input field of a tool schema.
type Field struct {
	Name     string    `json:"name"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
	Enum     []string  `json:"enum,omitempty"`     // allowed values, string fields only
	MaxLen   int       `json:"max_len,omitempty"`  // maximum rune count, string fields only
}

// Prompt is the ordered system/user message pair a tool produces.
type Prompt struct {
	System string
	User   string
}

// PromptFunc builds a prompt from validated input data.
type PromptFunc func(data map[string]any) Prompt

// Tool binds a tool identifier to its schema, prompt builder and output key.
type Tool struct {
	Name      string
	Fields    []Field
	OutputKey string
	Prompt    PromptFunc
}

// Registry is the startup-built lookup table of tools.
type Registry struct {
	tools map[string]*Tool
}

// NewRegistry builds a registry from the given tool records.
// Incomplete or duplicate records are rejected.
func NewRegistry(tools []*Tool) (*Registry, error) {
	r := &Registry{tools: make(map[string]*Tool, len(tools))}
	for _, t := range tools {
		if t == nil || t.Name == "" {
			return nil, fmt.Errorf("tool record has empty name")
		}
		if t.OutputKey == "" {
			return nil, fmt.Errorf("tool %q has empty output key", t.Name)
		}
		if t.Prompt == nil {
			return nil, fmt.Errorf("tool %q has no prompt builder", t.Name)
		}
		if _, dup := r.tools[t.Name]; dup {
			return nil, fmt.Errorf("tool %q is registered twice", t.Name)
		}
		r.tools[t.Name] = t
	}
	return r, nil
}

// Get returns the tool record for a tool identifier.
func (r *Registry) Get(name string) (*Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List returns all tool records sorted by name.
func (r *Registry) List() []*Tool {
	out := make([]*Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ValidationError aggregates all structural problems found in a request's
// data for a single tool.
type ValidationError struct {
	Tool     string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request for tool %q: %s", e.Tool, strings.Join(e.Problems, "; "))
}

// Validate checks data against the schema registered for the tool name.
// Checks are structural only: presence, type, enum membership and length.
// Either the tool record is returned, or a single aggregated error.
func (r *Registry) Validate(name string, data map[string]any) (*Tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, &ValidationError{Tool: name, Problems: []string{"unknown tool"}}
	}
	var problems []string
	for _, f := range t.Fields {
		raw, present := data[f.Name]
		if !present || raw == nil {
			if f.Required {
				problems = append(problems, fmt.Sprintf("field %q is required", f.Name))
			}
			continue
		}
		switch f.Kind {
		case FieldString:
			s, ok := raw.(string)
			if !ok {
				problems = append(problems, fmt.Sprintf("field %q must be a string", f.Name))
				continue
			}
			if f.Required && strings.TrimSpace(s) == "" {
				problems = append(problems, fmt.Sprintf("field %q is required", f.Name))
				continue
			}
			if f.MaxLen > 0 && len([]rune(s)) > f.MaxLen {
				problems = append(problems, fmt.Sprintf("field %q exceeds %d characters", f.Name, f.MaxLen))
				continue
			}
			if len(f.Enum) > 0 && !containsString(f.Enum, s) {
				problems = append(problems, fmt.Sprintf("field %q must be one of %s", f.Name, strings.Join(f.Enum, ", ")))
			}
		case FieldNumber:
			// JSON numbers decode as float64.
			if _, ok := raw.(float64); !ok {
				problems = append(problems, fmt.Sprintf("field %q must be a number", f.Name))
			}
		case FieldStringList:
			items, ok := raw.([]any)
			if !ok {
				problems = append(problems, fmt.Sprintf("field %q must be a list of strings", f.Name))
				continue
			}
			for _, item := range items {
				if _, ok := item.(string); !ok {
					problems = append(problems, fmt.Sprintf("field %q must contain only strings", f.Name))
					break
				}
			}
		default:
			problems = append(problems, fmt.Sprintf("field %q has unsupported kind %q", f.Name, f.Kind))
		}
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Tool: name, Problems: problems}
	}
	return t, nil
}

// UserText concatenates all user-supplied field values of a request,
// for the pre-generation moderation gate.
func UserText(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var parts []string
	for _, k := range keys {
		switch v := data[k].(type) {
		case string:
			if v != "" {
				parts = append(parts, v)
			}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					parts = append(parts, s)
				}
			}
		}
	}
	return strings.Join(parts, "\n")
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
