package types

import "time"

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of extraction attempts before degrading to
	// the empty placeholder (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Timeout bounds a single AI invocation. Zero means no per-attempt
	// timeout. Expiry counts as a failed attempt within MaxRetries.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// CorpusConfig holds the backing dataset locations for the corpus store.
// Paths are explicit configuration; there is no process-wide default.
type CorpusConfig struct {
	// CategoriesPath is the category corpus JSON file (records with a
	// "category" list field).
	CategoriesPath string `json:"categories_path" yaml:"categories_path"`

	// ConceptRefsPath is the concept-reference map JSON file.
	ConceptRefsPath string `json:"concept_refs_path" yaml:"concept_refs_path"`
}

// AdvisorConfig groups the settings for one advisor pipeline.
type AdvisorConfig struct {
	AIConfig `yaml:",inline"`

	// Corpus locates the category and concept-reference datasets.
	Corpus CorpusConfig `json:"corpus" yaml:"corpus"`

	// TopN is the number of references recommended per topic (default 2).
	TopN int `json:"top_n" yaml:"top_n"`
}

// SessionConfig holds settings for the run-history store.
type SessionConfig struct {
	// SessionsDir is the directory holding the history database and exports.
	SessionsDir string `json:"sessions_dir" yaml:"sessions_dir"`

	// MaxResults is the default maximum number of listed runs (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// DocumentConfig holds settings for the file-documentation utility.
type DocumentConfig struct {
	AIConfig `yaml:",inline"`

	// Extension selects which source files a directory walk documents
	// (default ".py").
	Extension string `json:"extension" yaml:"extension"`
}
