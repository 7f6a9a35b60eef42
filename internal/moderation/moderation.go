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

// Package moderation classifies text for policy-violating content. The
// composite moderator combines a local denylist, a curated sensitive-term
// scan and a remote classifier; a failure of the remote classifier is an
// error, never a silent pass.
package moderation

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// Verdict is the outcome of one moderation call. It is ephemeral and never
// persisted.
type Verdict struct {
	Flagged bool
	Reason  string // first triggering signal, empty when not flagged
}

// Moderator classifies a piece of text.
type Moderator interface {
	Moderate(ctx context.Context, text string) (Verdict, error)
}

// Composite runs the local signals first and the remote classifier last.
// The first signal that fires decides the verdict's reason.
type Composite struct {
	denylist       map[string]struct{}
	sensitiveTerms []string
	classifier     Moderator // optional remote classifier
}

// NewComposite builds a composite moderator. Both word lists may be empty;
// classifier may be nil to run with local signals only.
func NewComposite(denylist, sensitiveTerms []string, classifier Moderator) *Composite {
	set := make(map[string]struct{}, len(denylist))
	for _, w := range denylist {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	terms := make([]string, 0, len(sensitiveTerms))
	for _, term := range sensitiveTerms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			terms = append(terms, term)
		}
	}
	return &Composite{
		denylist:       set,
		sensitiveTerms: terms,
		classifier:     classifier,
	}
}

// Moderate implements Moderator. A classifier failure is returned as an
// error so the caller fails the request closed.
func (m *Composite) Moderate(ctx context.Context, text string) (Verdict, error) {
	lower := strings.ToLower(text)

	for _, word := range splitWords(lower) {
		if _, hit := m.denylist[word]; hit {
			return Verdict{Flagged: true, Reason: fmt.Sprintf("denylist term %q", word)}, nil
		}
	}

	for _, term := range m.sensitiveTerms {
		if strings.Contains(lower, term) {
			return Verdict{Flagged: true, Reason: fmt.Sprintf("sensitive term %q", term)}, nil
		}
	}

	if m.classifier != nil {
		verdict, err := m.classifier.Moderate(ctx, text)
		if err != nil {
			return Verdict{}, fmt.Errorf("moderation classifier failed: %w", err)
		}
		if verdict.Flagged {
			if verdict.Reason == "" {
				verdict.Reason = "classifier flagged content"
			}
			return verdict, nil
		}
	}

	return Verdict{}, nil
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
}
