// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences topic extraction, reference assembly, and
// report formatting into one advisor run. Failures at each stage degrade
// rather than abort: a missing corpus scores zero, exhausted extraction
// yields a placeholder topic, and a cancelled run falls back to a fixed
// message plus the narrative accumulated so far.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/paper-advisor/internal/ai"
	"github.com/pdiddy/paper-advisor/internal/corpus"
	"github.com/pdiddy/paper-advisor/internal/recommend"
	"github.com/pdiddy/paper-advisor/internal/report"
	"github.com/pdiddy/paper-advisor/internal/topics"
	"github.com/pdiddy/paper-advisor/pkg/types"
)

// fallbackReport is returned when the run fails before a report can be
// rendered.
const fallbackReport = "No references found"

// Advisor is the caller-facing entry point of the recommendation engine.
// Each Run is independent; Advisors may be shared across goroutines since
// the corpus is reloaded per run and all run state is created fresh.
type Advisor struct {
	backend ai.Backend
	store   *corpus.Store
	cfg     types.AdvisorConfig
}

// New returns an Advisor using the given backend and corpus store.
func New(backend ai.Backend, store *corpus.Store, cfg types.AdvisorConfig) *Advisor {
	return &Advisor{backend: backend, store: store, cfg: cfg}
}

// Run processes a term-paper draft and returns the formatted
// recommendation report and the chain-of-thought narrative.
func (a *Advisor) Run(ctx context.Context, text string) (string, string) {
	run := a.Execute(ctx, text)
	return run.Report, run.Narrative
}

// Execute is Run with the full pipeline aggregate exposed, for callers
// that persist run history.
func (a *Advisor) Execute(ctx context.Context, text string) *types.PipelineRun {
	run := &types.PipelineRun{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Draft:     text,
	}

	n := report.NewNarrative(text, a.cfg.Model)

	// A missing or malformed corpus degrades to an empty vocabulary; the
	// extractor still runs and the prompt simply carries no categories.
	categories, err := a.store.LoadCategories()
	if err != nil {
		categories = nil
	}

	extracted, err := topics.Extract(ctx, a.backend, text, categories, a.cfg.AIConfig)
	if err != nil {
		// Cancelled mid-extraction: fixed fallback plus narrative so far.
		n.AddTopics(nil)
		run.Report = fallbackReport
		run.Narrative = n.String()
		return run
	}
	n.AddTopics(extracted)

	entries, err := a.store.LoadConceptRefs()
	if err != nil {
		entries = nil
	}

	enriched := recommend.Assemble(extracted, entries, a.cfg.TopN)
	n.AddReferences(enriched)

	run.Topics = enriched
	run.Report = report.FormatReport(enriched)
	run.Narrative = n.String()
	return run
}
