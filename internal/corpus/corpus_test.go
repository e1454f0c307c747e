// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-advisor/pkg/types"
)

const categoriesJSON = `[
	{"category": ["Media Literacy", "Media Pedagogy"]},
	{"category": ["Digital Divide"]}
]`

const conceptRefsJSON = `[
	{
		"concepts": "Media Literacy, Media Pedagogy",
		"references": [
			{"Title": "Book One", "Authors": ["A. Author"], "Source": "Press", "Date": "2020", "Summary": "First."}
		]
	},
	{
		"concepts": "Digital Divide",
		"references": [
			{"Title": "Book Two", "Authors": ["B. Writer", "C. Scholar"], "Source": "Journal", "Date": "2021", "Summary": "Second."}
		]
	}
]`

func writeCorpus(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCategories(t *testing.T) {
	store := NewStore(types.CorpusConfig{
		CategoriesPath: writeCorpus(t, "itemCorpus.json", categoriesJSON),
	})

	got, err := store.LoadCategories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Media Literacy", "Media Pedagogy", "Digital Divide"}, got)
}

func TestLoadCategoriesMissingFile(t *testing.T) {
	store := NewStore(types.CorpusConfig{
		CategoriesPath: filepath.Join(t.TempDir(), "missing.json"),
	})

	_, err := store.LoadCategories()
	assert.ErrorIs(t, err, ErrCorpusUnavailable)
}

func TestLoadCategoriesMalformed(t *testing.T) {
	store := NewStore(types.CorpusConfig{
		CategoriesPath: writeCorpus(t, "bad.json", "{not json"),
	})

	_, err := store.LoadCategories()
	assert.ErrorIs(t, err, ErrCorpusUnavailable)
}

func TestLoadConceptRefs(t *testing.T) {
	store := NewStore(types.CorpusConfig{
		ConceptRefsPath: writeCorpus(t, "conceptRefs.json", conceptRefsJSON),
	})

	entries, err := store.LoadConceptRefs()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Comma-separated concepts are split and trimmed.
	assert.Equal(t, []string{"Media Literacy", "Media Pedagogy"}, entries[0].Concepts)
	require.Len(t, entries[0].References, 1)
	assert.Equal(t, "Book One", entries[0].References[0].Title)
	assert.Zero(t, entries[0].References[0].Score, "corpus records carry no score")

	assert.Equal(t, []string{"Digital Divide"}, entries[1].Concepts)
	assert.Equal(t, []string{"B. Writer", "C. Scholar"}, entries[1].References[0].Authors)
}

func TestLoadConceptRefsMissingFile(t *testing.T) {
	store := NewStore(types.CorpusConfig{
		ConceptRefsPath: filepath.Join(t.TempDir(), "missing.json"),
	})

	_, err := store.LoadConceptRefs()
	assert.ErrorIs(t, err, ErrCorpusUnavailable)
}

func TestLoadIsIdempotent(t *testing.T) {
	store := NewStore(types.CorpusConfig{
		CategoriesPath: writeCorpus(t, "itemCorpus.json", categoriesJSON),
	})

	first, err := store.LoadCategories()
	require.NoError(t, err)
	second, err := store.LoadCategories()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSplitConcepts(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"A,B", []string{"A", "B"}},
		{"A, B , C", []string{"A", "B", "C"}},
		{"", nil},
		{" , ,", nil},
		{"Single", []string{"Single"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitConcepts(tt.in), "splitConcepts(%q)", tt.in)
	}
}
