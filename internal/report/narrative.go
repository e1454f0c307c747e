// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"strings"

	"github.com/pdiddy/paper-advisor/pkg/types"
)

// Fallback sentences recorded when a stage produced no usable result.
const (
	noTopicsFound     = "No relevant topics found."
	noReferencesFound = "No relevant references found."
)

// Narrative accumulates the chain-of-thought description of a pipeline
// run. Steps are appended in fixed order: input understanding, topic
// extraction, reference assembly.
type Narrative struct {
	b strings.Builder
}

// NewNarrative starts a narrative with the input-understanding step.
func NewNarrative(draft, model string) *Narrative {
	n := &Narrative{}
	n.b.WriteString("Chain-of-Thought:\n\n")
	n.b.WriteString("Step 1: Understanding the input from the student, which includes the term paper, research topic and research questions:\n")
	n.b.WriteString(draft)
	n.b.WriteString("\nRecommendation Engine selected: Knowledge Based\n")
	fmt.Fprintf(&n.b, "Large Language Model selected: %s\n", model)
	return n
}

// AddTopics appends the topic-extraction step. A nil list or one holding
// only the empty placeholder records the fixed not-found sentence.
func (n *Narrative) AddTopics(topics []types.Topic) {
	n.b.WriteString("\nStep 2: Relevant Topics:\n")

	if !hasUsableTopics(topics) {
		n.b.WriteString(noTopicsFound + "\n")
		return
	}

	for _, t := range topics {
		fmt.Fprintf(&n.b, "- %s [%s]\n", t.Topic, strings.Join(t.RelatedCategories, ", "))
	}
}

// AddReferences appends the reference-assembly step. When no topic carries
// a recommendation the fixed not-found sentence is recorded.
func (n *Narrative) AddReferences(topics []types.Topic) {
	n.b.WriteString("\nStep 3: Relevant References:\n")

	any := false
	for _, t := range topics {
		for _, ref := range t.RecommendedReferences {
			fmt.Fprintf(&n.b, "- %s (overlap %d)\n", ref.Title, ref.Score)
			any = true
		}
	}

	if !any {
		n.b.WriteString(noReferencesFound + "\n")
	}
}

// String returns the narrative accumulated so far.
func (n *Narrative) String() string {
	return n.b.String()
}

// hasUsableTopics reports whether the extraction stage produced anything
// beyond the degrade-to-empty placeholder.
func hasUsableTopics(topics []types.Topic) bool {
	for _, t := range topics {
		if !t.IsEmpty() {
			return true
		}
	}
	return false
}
