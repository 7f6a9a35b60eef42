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

// The file defines the built-in tool catalog: one record per tool with its
// input schema, prompt templates and response output key.
package tools

import (
	"fmt"
	"strings"
)

var toneValues = []string{"formal", "casual", "professional", "friendly", "humorous"}

const (
	topicMaxLen = 200
	textMaxLen  = 3000
)

// DefaultCatalog returns the built-in tool records.
func DefaultCatalog() []*Tool {
	return []*Tool{
		{
			Name:      "aiEssay",
			OutputKey: "essay",
			Fields: []Field{
				{Name: "topic", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
				{Name: "tone", Kind: FieldString, Enum: toneValues},
				{Name: "paragraphs", Kind: FieldNumber},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are an experienced essay writer. Write well-structured essays with a clear introduction, body and conclusion."}
				p.User = fmt.Sprintf("Write an essay about %q.", str(data, "topic"))
				if tone := str(data, "tone"); tone != "" {
					p.User += fmt.Sprintf(" Use a %s tone.", tone)
				}
				if n := num(data, "paragraphs"); n > 0 {
					p.User += fmt.Sprintf(" The essay should have %d paragraphs.", n)
				}
				return p
			},
		},
		{
			Name:      "aiHaikuGenerator",
			OutputKey: "haiku",
			Fields: []Field{
				{Name: "theme", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
			},
			Prompt: func(data map[string]any) Prompt {
				return Prompt{
					System: "You are a haiku poet. Respond with a single haiku in the traditional 5-7-5 syllable structure and nothing else.",
					User:   fmt.Sprintf("Write a haiku about %s.", str(data, "theme")),
				}
			},
		},
		{
			Name:      "aiPoemGenerator",
			OutputKey: "poem",
			Fields: []Field{
				{Name: "theme", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
				{Name: "style", Kind: FieldString, Enum: []string{"free verse", "sonnet", "limerick", "rhyming"}},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are a poet. Write evocative, original poetry."}
				p.User = fmt.Sprintf("Write a poem about %s.", str(data, "theme"))
				if style := str(data, "style"); style != "" {
					p.User += fmt.Sprintf(" Use the %s style.", style)
				}
				return p
			},
		},
		{
			Name:      "aiStoryGenerator",
			OutputKey: "story",
			Fields: []Field{
				{Name: "premise", Kind: FieldString, Required: true, MaxLen: textMaxLen},
				{Name: "genre", Kind: FieldString, Enum: []string{"fantasy", "sci-fi", "mystery", "romance", "horror", "comedy"}},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are a creative fiction writer. Write engaging short stories with a beginning, middle and end."}
				p.User = fmt.Sprintf("Write a short story based on this premise: %s", str(data, "premise"))
				if genre := str(data, "genre"); genre != "" {
					p.User += fmt.Sprintf(" The genre is %s.", genre)
				}
				return p
			},
		},
		{
			Name:      "aiParagraphGenerator",
			OutputKey: "paragraph",
			Fields: []Field{
				{Name: "topic", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
				{Name: "tone", Kind: FieldString, Enum: toneValues},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are a professional writer. Write a single clear, coherent paragraph."}
				p.User = fmt.Sprintf("Write a paragraph about %s.", str(data, "topic"))
				if tone := str(data, "tone"); tone != "" {
					p.User += fmt.Sprintf(" Use a %s tone.", tone)
				}
				return p
			},
		},
		{
			Name:      "aiBusinessNameGenerator",
			OutputKey: "names",
			Fields: []Field{
				{Name: "description", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
				{Name: "keywords", Kind: FieldStringList},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are a branding expert. Suggest ten short, memorable business names as a numbered list."}
				p.User = fmt.Sprintf("Suggest business names for: %s.", str(data, "description"))
				if kw := list(data, "keywords"); kw != "" {
					p.User += fmt.Sprintf(" Try to incorporate these keywords: %s.", kw)
				}
				return p
			},
		},
		{
			Name:      "aiSloganGenerator",
			OutputKey: "slogan",
			Fields: []Field{
				{Name: "brand", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
				{Name: "audience", Kind: FieldString, MaxLen: topicMaxLen},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are an advertising copywriter. Write five catchy slogans as a numbered list."}
				p.User = fmt.Sprintf("Write slogans for %s.", str(data, "brand"))
				if aud := str(data, "audience"); aud != "" {
					p.User += fmt.Sprintf(" The target audience is %s.", aud)
				}
				return p
			},
		},
		{
			Name:      "aiEmailWriter",
			OutputKey: "email",
			Fields: []Field{
				{Name: "purpose", Kind: FieldString, Required: true, MaxLen: textMaxLen},
				{Name: "recipient", Kind: FieldString, MaxLen: topicMaxLen},
				{Name: "tone", Kind: FieldString, Enum: toneValues},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are a professional email writer. Write a complete email including a subject line."}
				p.User = fmt.Sprintf("Write an email. Purpose: %s.", str(data, "purpose"))
				if rec := str(data, "recipient"); rec != "" {
					p.User += fmt.Sprintf(" The recipient is %s.", rec)
				}
				if tone := str(data, "tone"); tone != "" {
					p.User += fmt.Sprintf(" Use a %s tone.", tone)
				}
				return p
			},
		},
		{
			Name:      "aiCoverLetterWriter",
			OutputKey: "coverLetter",
			Fields: []Field{
				{Name: "jobTitle", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
				{Name: "company", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
				{Name: "experience", Kind: FieldString, MaxLen: textMaxLen},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are a career coach. Write persuasive, tailored cover letters."}
				p.User = fmt.Sprintf("Write a cover letter for the position of %s at %s.", str(data, "jobTitle"), str(data, "company"))
				if exp := str(data, "experience"); exp != "" {
					p.User += fmt.Sprintf(" Relevant experience: %s.", exp)
				}
				return p
			},
		},
		{
			Name:      "aiProductDescription",
			OutputKey: "description",
			Fields: []Field{
				{Name: "product", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
				{Name: "features", Kind: FieldStringList},
				{Name: "tone", Kind: FieldString, Enum: toneValues},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are an e-commerce copywriter. Write compelling product descriptions that highlight benefits."}
				p.User = fmt.Sprintf("Write a product description for %s.", str(data, "product"))
				if feats := list(data, "features"); feats != "" {
					p.User += fmt.Sprintf(" Key features: %s.", feats)
				}
				if tone := str(data, "tone"); tone != "" {
					p.User += fmt.Sprintf(" Use a %s tone.", tone)
				}
				return p
			},
		},
		{
			Name:      "aiBlogTitleGenerator",
			OutputKey: "titles",
			Fields: []Field{
				{Name: "topic", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
			},
			Prompt: func(data map[string]any) Prompt {
				return Prompt{
					System: "You are a content strategist. Suggest ten click-worthy but accurate blog post titles as a numbered list.",
					User:   fmt.Sprintf("Suggest blog post titles about %s.", str(data, "topic")),
				}
			},
		},
		{
			Name:      "aiInstagramCaption",
			OutputKey: "caption",
			Fields: []Field{
				{Name: "photo", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
				{Name: "hashtags", Kind: FieldNumber},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are a social media manager. Write short, engaging Instagram captions."}
				p.User = fmt.Sprintf("Write an Instagram caption for a photo of %s.", str(data, "photo"))
				if n := num(data, "hashtags"); n > 0 {
					p.User += fmt.Sprintf(" Include %d relevant hashtags.", n)
				}
				return p
			},
		},
		{
			Name:      "aiTweetGenerator",
			OutputKey: "tweet",
			Fields: []Field{
				{Name: "topic", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
				{Name: "tone", Kind: FieldString, Enum: toneValues},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are a social media writer. Write a single tweet under 280 characters, no quotes around it."}
				p.User = fmt.Sprintf("Write a tweet about %s.", str(data, "topic"))
				if tone := str(data, "tone"); tone != "" {
					p.User += fmt.Sprintf(" Use a %s tone.", tone)
				}
				return p
			},
		},
		{
			Name:      "aiYoutubeDescription",
			OutputKey: "description",
			Fields: []Field{
				{Name: "title", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
				{Name: "summary", Kind: FieldString, MaxLen: textMaxLen},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are a YouTube content writer. Write keyword-rich video descriptions with a short hook first."}
				p.User = fmt.Sprintf("Write a YouTube description for a video titled %q.", str(data, "title"))
				if sum := str(data, "summary"); sum != "" {
					p.User += fmt.Sprintf(" The video covers: %s.", sum)
				}
				return p
			},
		},
		{
			Name:      "aiRecipeGenerator",
			OutputKey: "recipe",
			Fields: []Field{
				{Name: "dish", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
				{Name: "ingredients", Kind: FieldStringList},
				{Name: "servings", Kind: FieldNumber},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are a chef. Write complete recipes with an ingredient list and numbered steps."}
				p.User = fmt.Sprintf("Write a recipe for %s.", str(data, "dish"))
				if ing := list(data, "ingredients"); ing != "" {
					p.User += fmt.Sprintf(" Use these ingredients: %s.", ing)
				}
				if n := num(data, "servings"); n > 0 {
					p.User += fmt.Sprintf(" The recipe should serve %d.", n)
				}
				return p
			},
		},
		{
			Name:      "aiLyricsGenerator",
			OutputKey: "lyrics",
			Fields: []Field{
				{Name: "theme", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
				{Name: "genre", Kind: FieldString, Enum: []string{"pop", "rock", "country", "folk", "r&b"}},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are a songwriter. Write original song lyrics with verses and a chorus."}
				p.User = fmt.Sprintf("Write song lyrics about %s.", str(data, "theme"))
				if genre := str(data, "genre"); genre != "" {
					p.User += fmt.Sprintf(" The genre is %s.", genre)
				}
				return p
			},
		},
		{
			Name:      "aiRapGenerator",
			OutputKey: "rap",
			Fields: []Field{
				{Name: "theme", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
			},
			Prompt: func(data map[string]any) Prompt {
				return Prompt{
					System: "You are a rap lyricist. Write original rap verses with strong rhythm and internal rhyme. Keep the language clean.",
					User:   fmt.Sprintf("Write a rap verse about %s.", str(data, "theme")),
				}
			},
		},
		{
			Name:      "aiJokeGenerator",
			OutputKey: "joke",
			Fields: []Field{
				{Name: "topic", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
			},
			Prompt: func(data map[string]any) Prompt {
				return Prompt{
					System: "You are a comedy writer. Write one short, family-friendly joke and nothing else.",
					User:   fmt.Sprintf("Write a joke about %s.", str(data, "topic")),
				}
			},
		},
		{
			Name:      "aiSpeechWriter",
			OutputKey: "speech",
			Fields: []Field{
				{Name: "occasion", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
				{Name: "audience", Kind: FieldString, MaxLen: topicMaxLen},
				{Name: "minutes", Kind: FieldNumber},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are a speechwriter. Write memorable speeches with a strong opening and closing."}
				p.User = fmt.Sprintf("Write a speech for %s.", str(data, "occasion"))
				if aud := str(data, "audience"); aud != "" {
					p.User += fmt.Sprintf(" The audience is %s.", aud)
				}
				if n := num(data, "minutes"); n > 0 {
					p.User += fmt.Sprintf(" It should take about %d minutes to deliver.", n)
				}
				return p
			},
		},
		{
			Name:      "aiPickupLineGenerator",
			OutputKey: "pickupLine",
			Fields: []Field{
				{Name: "context", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
			},
			Prompt: func(data map[string]any) Prompt {
				return Prompt{
					System: "You are a witty writer. Write one charming, respectful pickup line and nothing else.",
					User:   fmt.Sprintf("Write a pickup line themed around %s.", str(data, "context")),
				}
			},
		},
		{
			Name:      "aiWeddingVows",
			OutputKey: "vows",
			Fields: []Field{
				{Name: "partnerName", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
				{Name: "memories", Kind: FieldString, MaxLen: textMaxLen},
				{Name: "tone", Kind: FieldString, Enum: toneValues},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are a wedding writer. Write heartfelt, personal wedding vows."}
				p.User = fmt.Sprintf("Write wedding vows for my partner %s.", str(data, "partnerName"))
				if mem := str(data, "memories"); mem != "" {
					p.User += fmt.Sprintf(" Include these shared memories: %s.", mem)
				}
				if tone := str(data, "tone"); tone != "" {
					p.User += fmt.Sprintf(" Use a %s tone.", tone)
				}
				return p
			},
		},
		{
			Name:      "aiThankYouNote",
			OutputKey: "note",
			Fields: []Field{
				{Name: "reason", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
				{Name: "recipient", Kind: FieldString, MaxLen: topicMaxLen},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are a considerate writer. Write short, sincere thank-you notes."}
				p.User = fmt.Sprintf("Write a thank-you note for %s.", str(data, "reason"))
				if rec := str(data, "recipient"); rec != "" {
					p.User += fmt.Sprintf(" It is addressed to %s.", rec)
				}
				return p
			},
		},
		{
			Name:      "aiAcronymGenerator",
			OutputKey: "acronyms",
			Fields: []Field{
				{Name: "phrase", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
			},
			Prompt: func(data map[string]any) Prompt {
				return Prompt{
					System: "You are a naming expert. Suggest five creative acronyms with their expansions as a numbered list.",
					User:   fmt.Sprintf("Suggest acronyms for: %s.", str(data, "phrase")),
				}
			},
		},
		{
			Name:      "aiMetaphorGenerator",
			OutputKey: "metaphors",
			Fields: []Field{
				{Name: "concept", Kind: FieldString, Required: true, MaxLen: topicMaxLen},
			},
			Prompt: func(data map[string]any) Prompt {
				return Prompt{
					System: "You are a literary writer. Suggest five original metaphors as a numbered list.",
					User:   fmt.Sprintf("Suggest metaphors for %s.", str(data, "concept")),
				}
			},
		},
		{
			Name:      "aiSummarizer",
			OutputKey: "summary",
			Fields: []Field{
				{Name: "text", Kind: FieldString, Required: true, MaxLen: textMaxLen},
				{Name: "sentences", Kind: FieldNumber},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are a precise summarizer. Preserve the key facts and drop filler."}
				p.User = fmt.Sprintf("Summarize the following text:\n\n%s", str(data, "text"))
				if n := num(data, "sentences"); n > 0 {
					p.User += fmt.Sprintf("\n\nThe summary should be at most %d sentences.", n)
				}
				return p
			},
		},
		{
			Name:      "aiGrammarFixer",
			OutputKey: "corrected",
			Fields: []Field{
				{Name: "text", Kind: FieldString, Required: true, MaxLen: textMaxLen},
			},
			Prompt: func(data map[string]any) Prompt {
				return Prompt{
					System: "You are a copy editor. Fix grammar, spelling and punctuation without changing the meaning. Respond with the corrected text only.",
					User:   str(data, "text"),
				}
			},
		},
		{
			Name:      "aiParaphraser",
			OutputKey: "paraphrased",
			Fields: []Field{
				{Name: "text", Kind: FieldString, Required: true, MaxLen: textMaxLen},
				{Name: "tone", Kind: FieldString, Enum: toneValues},
			},
			Prompt: func(data map[string]any) Prompt {
				p := Prompt{System: "You are a rewriting assistant. Paraphrase text while keeping its meaning. Respond with the paraphrased text only."}
				p.User = fmt.Sprintf("Paraphrase the following text:\n\n%s", str(data, "text"))
				if tone := str(data, "tone"); tone != "" {
					p.User += fmt.Sprintf("\n\nUse a %s tone.", tone)
				}
				return p
			},
		},
	}
}

func str(data map[string]any, name string) string {
	if s, ok := data[name].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func num(data map[string]any, name string) int {
	if f, ok := data[name].(float64); ok {
		return int(f)
	}
	return 0
}

func list(data map[string]any, name string) string {
	items, ok := data[name].([]any)
	if !ok {
		return ""
	}
	var parts []string
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	return strings.Join(parts, ", ")
}
