// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recommend scores and ranks reference candidates by concept
// overlap with a topic's categories, and attaches the top results to each
// topic. Scoring is deterministic; ties preserve corpus order.
package recommend

import (
	"sort"

	"github.com/pdiddy/paper-advisor/pkg/types"
)

// DefaultTopN is the number of references recommended per topic.
const DefaultTopN = 2

// ScoreReferences ranks every reference whose concept entry overlaps the
// given categories. The overlap count is set-based: duplicate categories in
// the input do not inflate a score. Records sharing a title are kept once,
// with the score from their first encounter. The result is stable-sorted by
// score descending and returned with its length.
func ScoreReferences(relatedCategories []string, entries []types.ConceptReferenceEntry) ([]types.ReferenceRecord, int) {
	want := make(map[string]bool, len(relatedCategories))
	for _, c := range relatedCategories {
		want[c] = true
	}

	var ranked []types.ReferenceRecord
	seenTitles := make(map[string]bool)

	for _, entry := range entries {
		overlap := overlapCount(want, entry.Concepts)
		if overlap == 0 {
			continue
		}

		for _, ref := range entry.References {
			if seenTitles[ref.Title] {
				continue
			}
			seenTitles[ref.Title] = true
			ref.Score = overlap
			ranked = append(ranked, ref)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked, len(ranked)
}

// overlapCount counts distinct entry concepts present in the wanted set.
func overlapCount(want map[string]bool, concepts []string) int {
	count := 0
	counted := make(map[string]bool, len(concepts))
	for _, c := range concepts {
		if want[c] && !counted[c] {
			counted[c] = true
			count++
		}
	}
	return count
}

// Assemble enriches each topic with its top-N scored references. Topics
// are returned as enriched copies; the input slice is not modified. A
// topic that matches nothing gets an empty reference list, so the batch
// never aborts on a single topic.
func Assemble(topics []types.Topic, entries []types.ConceptReferenceEntry, topN int) []types.Topic {
	if topN <= 0 {
		topN = DefaultTopN
	}

	enriched := make([]types.Topic, 0, len(topics))
	for _, t := range topics {
		ranked, _ := ScoreReferences(t.RelatedCategories, entries)
		if len(ranked) > topN {
			ranked = ranked[:topN]
		}
		enriched = append(enriched, t.WithReferences(ranked))
	}

	return enriched
}
