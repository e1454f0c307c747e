// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package topics extracts categorized topics from free-form draft text via
// an injected AI backend, with schema validation and bounded retry.
package topics

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/pdiddy/paper-advisor/internal/ai"
	"github.com/pdiddy/paper-advisor/pkg/types"
)

const defaultMaxRetries = 3

// backoffBase controls the base duration for exponential backoff between
// attempts. Tests override this to avoid real sleeps.
var backoffBase = time.Second

// Extract asks the AI backend for up to three topics in the draft text,
// each tagged with categories from allowedCategories. Invalid responses
// and backend failures (including per-attempt timeouts) are retried up to
// cfg.MaxRetries attempts total. When every attempt fails the result
// degrades to a single empty placeholder topic so downstream stages always
// have an element to iterate; failure is never propagated.
//
// The only returned error is a cancelled or expired parent context, which
// abandons the retry loop between attempts.
func Extract(ctx context.Context, backend ai.Backend, text string, allowedCategories []string, cfg types.AIConfig) ([]types.Topic, error) {
	prompt, err := renderPrompt(text, allowedCategories)
	if err != nil {
		return placeholder(), nil
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		result, ok := attemptOnce(ctx, backend, prompt, cfg.Timeout)
		if ok {
			return result, nil
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return placeholder(), nil
}

// attemptOnce performs one backend invocation, parse, and validation.
func attemptOnce(ctx context.Context, backend ai.Backend, prompt string, timeout time.Duration) ([]types.Topic, bool) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	raw, err := backend.Complete(ctx, prompt)
	if err != nil {
		return nil, false
	}

	data, err := decodeResponse(raw)
	if err != nil {
		return nil, false
	}

	if !ValidateShape(data) {
		return nil, false
	}

	return toTopics(data), true
}

// decodeResponse strips code fences and parses the response as JSON. When
// the model wraps the array in prose, the outermost bracketed slice is
// tried as a fallback.
func decodeResponse(raw string) (any, error) {
	cleaned := ai.StripCodeFences(raw)

	var data any
	err := json.Unmarshal([]byte(cleaned), &data)
	if err == nil {
		return data, nil
	}

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start >= 0 && end > start {
		var inner any
		if innerErr := json.Unmarshal([]byte(cleaned[start:end+1]), &inner); innerErr == nil {
			return inner, nil
		}
	}

	return nil, err
}

// toTopics converts a validated response structure into Topic records.
func toTopics(data any) []types.Topic {
	list := data.([]any)
	topics := make([]types.Topic, 0, len(list))

	for _, elem := range list {
		item := elem.(map[string]any)
		rawCats := item["related_categories"].([]any)

		cats := make([]string, 0, len(rawCats))
		for _, c := range rawCats {
			cats = append(cats, c.(string))
		}

		topics = append(topics, types.Topic{
			Topic:             item["topic"].(string),
			Explanation:       item["explanation"].(string),
			RelatedCategories: cats,
		})
	}

	return topics
}

// placeholder is the degrade-to-empty result after exhausted retries.
func placeholder() []types.Topic {
	return []types.Topic{{RelatedCategories: []string{}}}
}
