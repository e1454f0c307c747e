// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data model shared across pipeline stages.
package types

import "time"

// Topic is one subject extracted from a term-paper draft, tagged with
// categories from the controlled vocabulary. A Topic is immutable once
// validated; recommendation enrichment produces a copy via WithReferences.
type Topic struct {
	// Topic is the extracted subject text.
	Topic string `json:"topic" yaml:"topic"`

	// Explanation is a short text about the subject.
	Explanation string `json:"explanation" yaml:"explanation"`

	// RelatedCategories lists vocabulary categories associated with the
	// topic, in the order the extractor produced them.
	RelatedCategories []string `json:"related_categories" yaml:"related_categories"`

	// RecommendedReferences holds the top-ranked references attached by
	// the recommendation stage. Nil until enrichment.
	RecommendedReferences []ReferenceRecord `json:"recommended_references,omitempty" yaml:"recommended_references,omitempty"`
}

// IsEmpty reports whether the topic is the degrade-to-empty placeholder
// produced when extraction exhausts its retries.
func (t Topic) IsEmpty() bool {
	return t.Topic == "" && t.Explanation == "" && len(t.RelatedCategories) == 0
}

// WithReferences returns a copy of the topic with the given references
// attached. The receiver is not modified.
func (t Topic) WithReferences(refs []ReferenceRecord) Topic {
	t.RecommendedReferences = refs
	return t
}

// ReferenceRecord is one reading recommendation candidate. The JSON field
// names follow the concept-reference corpus format. Score is run-scoped:
// it is set by the scorer for one ranked result set and is never stored
// in the corpus itself.
type ReferenceRecord struct {
	Title   string   `json:"Title" yaml:"title"`
	Authors []string `json:"Authors" yaml:"authors"`
	Source  string   `json:"Source" yaml:"source"`
	Date    string   `json:"Date" yaml:"date"`
	Summary string   `json:"Summary" yaml:"summary"`

	// Score is the concept-overlap count assigned during scoring.
	Score int `json:"score,omitempty" yaml:"score,omitempty"`
}

// ConceptReferenceEntry is a corpus record mapping a set of concepts to
// candidate references. Read-only after load.
type ConceptReferenceEntry struct {
	Concepts   []string          `json:"concepts" yaml:"concepts"`
	References []ReferenceRecord `json:"references" yaml:"references"`
}

// PipelineRun is the transient aggregate produced by one advisor run:
// the extracted (and enriched) topics plus the rendered report and
// chain-of-thought narrative.
type PipelineRun struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Draft is the term-paper text the run was invoked with.
	Draft string `json:"draft" yaml:"draft"`

	Topics    []Topic `json:"topics" yaml:"topics"`
	Report    string  `json:"report" yaml:"report"`
	Narrative string  `json:"narrative" yaml:"narrative"`
}
