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

// Package provider defines the text-generation provider abstraction and the
// name-based provider registry. Adding a provider means registering another
// implementation; the dispatch call site stays untouched.
package provider

import (
	"context"
	"fmt"
	"sort"

	"github.com/saze-ai/toolgate/internal/tools"
)

// Provider generates text for a system/user prompt pair and normalizes the
// result to a single trimmed string.
type Provider interface {
	// Name returns the identifier requests use to select this provider.
	Name() string

	// Generate produces text for the prompt. Failures are returned as
	// *provider.Error with the category set.
	Generate(ctx context.Context, prompt tools.Prompt) (string, error)
}

// Registry maps provider names to implementations.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds a registry from the given providers.
// Duplicate names are rejected.
func NewRegistry(providers ...Provider) (*Registry, error) {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if p == nil || p.Name() == "" {
			return nil, fmt.Errorf("provider with empty name")
		}
		if _, dup := r.providers[p.Name()]; dup {
			return nil, fmt.Errorf("provider %q is registered twice", p.Name())
		}
		r.providers[p.Name()] = p
	}
	return r, nil
}

// Get returns the provider registered under the given name.
func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
