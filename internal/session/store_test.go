// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-advisor/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.SessionConfig{SessionsDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun() *types.PipelineRun {
	return &types.PipelineRun{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Draft:     "A draft about media literacy.",
		Topics: []types.Topic{
			{
				Topic:             "Media Literacy",
				Explanation:       "Critical engagement with media.",
				RelatedCategories: []string{"Media Literacy"},
				RecommendedReferences: []types.ReferenceRecord{
					{Title: "Book One", Authors: []string{"A. Author"}, Source: "Press", Date: "2020", Summary: "One.", Score: 1},
				},
			},
		},
		Report:    "(A) Topic: Media Literacy\n",
		Narrative: "Chain-of-Thought:\n",
	}
}

func TestSaveAndGet(t *testing.T) {
	store := testStore(t)
	run := sampleRun()

	require.NoError(t, store.Save(context.Background(), run))

	got, err := store.Get(context.Background(), run.ID)
	require.NoError(t, err)

	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.Draft, got.Draft)
	assert.Equal(t, run.Report, got.Report)
	assert.Equal(t, run.Narrative, got.Narrative)
	require.Len(t, got.Topics, 1)
	assert.Equal(t, run.Topics[0].Topic, got.Topics[0].Topic)
	assert.Equal(t, run.Topics[0].RelatedCategories, got.Topics[0].RelatedCategories)
	require.Len(t, got.Topics[0].RecommendedReferences, 1)
	assert.Equal(t, "Book One", got.Topics[0].RecommendedReferences[0].Title)
	assert.Equal(t, 1, got.Topics[0].RecommendedReferences[0].Score)
}

func TestGetUnknownRun(t *testing.T) {
	store := testStore(t)

	_, err := store.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListNewestFirst(t *testing.T) {
	store := testStore(t)

	older := sampleRun()
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := sampleRun()

	require.NoError(t, store.Save(context.Background(), older))
	require.NoError(t, store.Save(context.Background(), newer))

	summaries, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, newer.ID, summaries[0].ID)
	assert.Equal(t, older.ID, summaries[1].ID)
	assert.Equal(t, 1, summaries[0].TopicCount)
}

func TestListExcerptTruncation(t *testing.T) {
	store := testStore(t)

	run := sampleRun()
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'x'
	}
	run.Draft = string(long)

	require.NoError(t, store.Save(context.Background(), run))

	summaries, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Len(t, summaries[0].DraftExcerpt, excerptLen)
	assert.True(t, len(summaries[0].DraftExcerpt) < len(run.Draft))
}

func TestExportYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(types.SessionConfig{SessionsDir: dir})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(context.Background(), sampleRun()))

	require.NoError(t, store.ExportYAML(context.Background()))
	yamlData, err := os.ReadFile(filepath.Join(dir, exportYAMLFile))
	require.NoError(t, err)
	assert.Contains(t, string(yamlData), "Media Literacy")

	require.NoError(t, store.ExportJSON(context.Background()))
	jsonData, err := os.ReadFile(filepath.Join(dir, exportJSONFile))
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), "Media Literacy")
}
