// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ai abstracts the external text-generation capability behind a
// single-method interface so tests can supply canned responses.
package ai

import (
	"context"
	"regexp"
	"strings"
)

// Backend produces a completion for a single prompt. Implementations make
// no guarantee about the shape of the returned text; callers re-validate.
// The pipeline and the documentation utility share one backend and tests
// inject mocks.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// fenceLine matches a Markdown code-fence line at the start or end of a
// line, with or without a language tag.
var fenceLine = regexp.MustCompile("(?m)^```.*$")

// StripCodeFences removes Markdown code fences a model may wrap its output
// in despite instructions, and trims surrounding whitespace.
func StripCodeFences(s string) string {
	return strings.TrimSpace(fenceLine.ReplaceAllString(s, ""))
}
