// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"strings"
	"testing"

	"github.com/pdiddy/paper-advisor/pkg/types"
)

func sampleTopics() []types.Topic {
	return []types.Topic{
		{
			Topic:             "Media Literacy",
			Explanation:       "Critical engagement with media.",
			RelatedCategories: []string{"Media Literacy", "Media Pedagogy"},
			RecommendedReferences: []types.ReferenceRecord{
				{Title: "Book One", Authors: []string{"A. Author", "B. Writer"}, Source: "Press", Date: "2020", Summary: "First summary.", Score: 2},
				{Title: "Book Two", Authors: []string{"C. Scholar"}, Source: "Journal", Date: "2021", Summary: "Second summary.", Score: 1},
			},
		},
		{
			Topic:             "Digital Divide",
			Explanation:       "Unequal access to technology.",
			RelatedCategories: []string{"Digital Divide"},
		},
	}
}

func TestFormatReportLetteredSections(t *testing.T) {
	out := FormatReport(sampleTopics())

	if !strings.Contains(out, "(A) Topic: Media Literacy") {
		t.Error("missing section (A)")
	}
	if !strings.Contains(out, "(B) Topic: Digital Divide") {
		t.Error("missing section (B)")
	}
	if strings.Index(out, "(A)") > strings.Index(out, "(B)") {
		t.Error("sections out of input order")
	}
}

func TestFormatReportSectionFields(t *testing.T) {
	out := FormatReport(sampleTopics())

	for _, want := range []string{
		"Explanation: Critical engagement with media.",
		"Related Categories: Media Literacy, Media Pedagogy",
		"Recommended References:",
		"1. Title: Book One",
		"   Authors: A. Author, B. Writer",
		"   Source: Press",
		"   Date: 2020",
		"   Summary: First summary.",
		"2. Title: Book Two",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestFormatReportPlaceholderTopic(t *testing.T) {
	out := FormatReport([]types.Topic{{RelatedCategories: []string{}}})

	// The placeholder renders with empty fields rather than being omitted.
	if !strings.Contains(out, "(A) Topic: \n") {
		t.Error("placeholder section missing or malformed")
	}
	if !strings.Contains(out, "Related Categories: \n") {
		t.Error("placeholder categories line missing")
	}
}

func TestNarrativeSteps(t *testing.T) {
	n := NewNarrative("my draft text", "test-model")
	n.AddTopics(sampleTopics())
	n.AddReferences(sampleTopics())
	out := n.String()

	for _, want := range []string{
		"Step 1: Understanding the input",
		"my draft text",
		"Recommendation Engine selected: Knowledge Based",
		"Large Language Model selected: test-model",
		"Step 2: Relevant Topics:",
		"- Media Literacy [Media Literacy, Media Pedagogy]",
		"Step 3: Relevant References:",
		"- Book One (overlap 2)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("narrative missing %q", want)
		}
	}

	// Fixed step order.
	if strings.Index(out, "Step 2") > strings.Index(out, "Step 3") {
		t.Error("narrative steps out of order")
	}
}

func TestNarrativeNoTopicsFallback(t *testing.T) {
	n := NewNarrative("draft", "m")
	n.AddTopics([]types.Topic{{RelatedCategories: []string{}}})
	n.AddReferences(nil)
	out := n.String()

	if !strings.Contains(out, "No relevant topics found.") {
		t.Error("missing topics fallback sentence")
	}
	if !strings.Contains(out, "No relevant references found.") {
		t.Error("missing references fallback sentence")
	}
}
