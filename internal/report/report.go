// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders the final recommendation report and the
// step-by-step chain-of-thought narrative.
package report

import (
	"fmt"
	"strings"

	"github.com/pdiddy/paper-advisor/pkg/types"
)

// FormatReport renders one lettered section per topic, in input order,
// with the topic text, explanation, comma-joined categories, and a
// numbered sub-list of recommended references. Placeholder topics render
// with empty fields rather than being omitted.
func FormatReport(topics []types.Topic) string {
	var b strings.Builder

	for i, t := range topics {
		letter := rune('A' + i)
		fmt.Fprintf(&b, "\n(%c) Topic: %s\n", letter, t.Topic)
		fmt.Fprintf(&b, "    Explanation: %s\n", t.Explanation)
		fmt.Fprintf(&b, "    Related Categories: %s\n", strings.Join(t.RelatedCategories, ", "))
		fmt.Fprintf(&b, "    Recommended References:\n%s\n", formatReferences(t.RecommendedReferences))
	}

	return b.String()
}

// formatReferences renders the numbered reference sub-list for one topic.
func formatReferences(refs []types.ReferenceRecord) string {
	var b strings.Builder
	for i, ref := range refs {
		fmt.Fprintf(&b, "\n%d. Title: %s\n", i+1, ref.Title)
		fmt.Fprintf(&b, "   Authors: %s\n", strings.Join(ref.Authors, ", "))
		fmt.Fprintf(&b, "   Source: %s\n", ref.Source)
		fmt.Fprintf(&b, "   Date: %s\n", ref.Date)
		fmt.Fprintf(&b, "   Summary: %s\n", ref.Summary)
	}
	return b.String()
}
