// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-advisor/internal/ai"
	"github.com/pdiddy/paper-advisor/internal/corpus"
	"github.com/pdiddy/paper-advisor/internal/pipeline"
	"github.com/pdiddy/paper-advisor/internal/session"
	"github.com/pdiddy/paper-advisor/pkg/types"
)

// defaultModel is used when neither flag nor config names a model.
const defaultModel = "claude-sonnet-4-5-20250929"

var adviseCmd = &cobra.Command{
	Use:   "advise [draft-file]",
	Short: "Extract topics from a draft and recommend references",
	Long: `Advise reads a term-paper draft from a file (or stdin when no file is
given), extracts up to three topics with categories from the controlled
vocabulary, ranks reference candidates by concept overlap, and prints a
recommendation report. Use --narrative to also print the chain-of-thought
trace, and --save to persist the run in the session history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdvise,
}

func runAdvise(cmd *cobra.Command, args []string) error {
	text, err := readDraft(args)
	if err != nil {
		return err
	}

	cfg := adviseConfig(cmd)

	backend := &ai.ClaudeBackend{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
	}
	store := corpus.NewStore(cfg.Corpus)
	advisor := pipeline.New(backend, store, cfg)

	run := advisor.Execute(context.Background(), text)

	fmt.Fprintln(os.Stdout, run.Report)

	if narrative, _ := cmd.Flags().GetBool("narrative"); narrative {
		fmt.Fprintln(os.Stdout, run.Narrative)
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := saveRun(run); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved run %s\n", run.ID)
	}

	return nil
}

// readDraft reads the draft text from the named file, or from stdin when
// no argument is given.
func readDraft(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading draft from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading draft %s: %w", args[0], err)
	}
	return string(data), nil
}

// adviseConfig resolves the advisor configuration from flags, the config
// file, and loaded secrets, in that order.
func adviseConfig(cmd *cobra.Command) types.AdvisorConfig {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("ai.model")
	}
	if model == "" {
		model = defaultModel
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	apiKey = secretDefault("anthropic-api-key", apiKey)

	categoriesPath, _ := cmd.Flags().GetString("categories")
	if !cmd.Flags().Changed("categories") && viper.IsSet("corpus.categories_path") {
		categoriesPath = viper.GetString("corpus.categories_path")
	}
	conceptRefsPath, _ := cmd.Flags().GetString("concept-refs")
	if !cmd.Flags().Changed("concept-refs") && viper.IsSet("corpus.concept_refs_path") {
		conceptRefsPath = viper.GetString("corpus.concept_refs_path")
	}

	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	topN, _ := cmd.Flags().GetInt("top-n")

	return types.AdvisorConfig{
		AIConfig: types.AIConfig{
			Model:      model,
			APIKey:     apiKey,
			MaxRetries: maxRetries,
			Timeout:    timeout,
		},
		Corpus: types.CorpusConfig{
			CategoriesPath:  categoriesPath,
			ConceptRefsPath: conceptRefsPath,
		},
		TopN: topN,
	}
}

// saveRun persists one run in the session history store.
func saveRun(run *types.PipelineRun) error {
	store, err := session.NewStore(sessionConfigFromViper())
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Save(context.Background(), run)
}

func init() {
	adviseCmd.Flags().String("model", "", "AI model identifier")
	adviseCmd.Flags().String("api-key", "", "Anthropic API key (default: .secrets/anthropic-api-key)")
	adviseCmd.Flags().String("categories", "corpus/itemCorpus.json", "category corpus JSON file")
	adviseCmd.Flags().String("concept-refs", "corpus/conceptRefs.json", "concept-reference map JSON file")
	adviseCmd.Flags().Int("max-retries", 3, "extraction attempts before degrading to an empty result")
	adviseCmd.Flags().Duration("timeout", 60*time.Second, "per-attempt AI invocation timeout (0 = none)")
	adviseCmd.Flags().Int("top-n", 2, "references recommended per topic")
	adviseCmd.Flags().Bool("narrative", false, "also print the chain-of-thought narrative")
	adviseCmd.Flags().Bool("save", false, "persist the run in the session history")

	rootCmd.AddCommand(adviseCmd)
}
