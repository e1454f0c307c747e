// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus loads the two static datasets the recommendation engine
// runs against: the category corpus (the controlled vocabulary) and the
// concept-reference map. Both are read-only after load; repeated loads are
// idempotent and side-effect-free.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/paper-advisor/pkg/types"
)

// ErrCorpusUnavailable indicates a missing or malformed backing dataset.
// Callers degrade to an empty corpus rather than aborting the pipeline.
var ErrCorpusUnavailable = errors.New("corpus unavailable")

// Store reads the corpus datasets from explicitly configured paths.
type Store struct {
	cfg types.CorpusConfig
}

// NewStore returns a Store backed by the datasets named in cfg.
func NewStore(cfg types.CorpusConfig) *Store {
	return &Store{cfg: cfg}
}

// categoryRecord is one raw record of the category corpus file. Each
// record carries a list of category strings under "category".
type categoryRecord struct {
	Category []string `json:"category"`
}

// conceptRecord is one raw record of the concept-reference map file. The
// concepts are a comma-separated string on the wire.
type conceptRecord struct {
	Concepts   string                  `json:"concepts"`
	References []types.ReferenceRecord `json:"references"`
}

// LoadCategories reads the category corpus and returns the flattened
// vocabulary in file order. Returns ErrCorpusUnavailable when the file is
// missing or malformed.
func (s *Store) LoadCategories() ([]string, error) {
	data, err := os.ReadFile(s.cfg.CategoriesPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading category corpus %s: %v", ErrCorpusUnavailable, s.cfg.CategoriesPath, err)
	}

	var records []categoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parsing category corpus %s: %v", ErrCorpusUnavailable, s.cfg.CategoriesPath, err)
	}

	var categories []string
	for _, r := range records {
		categories = append(categories, r.Category...)
	}
	return categories, nil
}

// LoadConceptRefs reads the concept-reference map and returns its entries
// in file order, with each entry's comma-separated concepts split into a
// trimmed list. Returns ErrCorpusUnavailable when the file is missing or
// malformed.
func (s *Store) LoadConceptRefs() ([]types.ConceptReferenceEntry, error) {
	data, err := os.ReadFile(s.cfg.ConceptRefsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading concept-reference map %s: %v", ErrCorpusUnavailable, s.cfg.ConceptRefsPath, err)
	}

	var records []conceptRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parsing concept-reference map %s: %v", ErrCorpusUnavailable, s.cfg.ConceptRefsPath, err)
	}

	entries := make([]types.ConceptReferenceEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, types.ConceptReferenceEntry{
			Concepts:   splitConcepts(r.Concepts),
			References: r.References,
		})
	}
	return entries, nil
}

// splitConcepts splits a comma-separated concept string into trimmed,
// non-empty tokens.
func splitConcepts(s string) []string {
	var concepts []string
	for _, part := range strings.Split(s, ",") {
		if c := strings.TrimSpace(part); c != "" {
			concepts = append(concepts, c)
		}
	}
	return concepts
}
