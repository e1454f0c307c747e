// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-advisor/internal/ai"
	"github.com/pdiddy/paper-advisor/internal/docify"
	"github.com/pdiddy/paper-advisor/pkg/types"
)

var documentCmd = &cobra.Command{
	Use:   "document <file-or-dir>",
	Short: "Rewrite source files with AI-generated documentation comments",
	Long: `Document sends a source file to the AI backend and rewrites it with
documentation comments. The original is archived next to the result as
<name>_doc_archive<ext>. With --dir the target is walked and every file
with the configured extension is documented; --delete-archives removes
archives instead of documenting.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocument,
}

func runDocument(cmd *cobra.Command, args []string) error {
	target := args[0]

	if deleteArchives, _ := cmd.Flags().GetBool("delete-archives"); deleteArchives {
		deleted, err := docify.DeleteArchives(target, os.Stdout)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d archive file(s)\n", deleted)
		return nil
	}

	cfg := documentConfig(cmd)

	backend := &ai.ClaudeBackend{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
	}

	if isDir, _ := cmd.Flags().GetBool("dir"); isDir {
		summary, err := docify.DocumentDir(context.Background(), backend, target, cfg.Extension, os.Stdout)
		if err != nil {
			return err
		}
		fmt.Printf("Documented %d of %d file(s)\n", summary.Documented, summary.Total())
		if summary.Failed > 0 {
			return fmt.Errorf("%d file(s) failed", summary.Failed)
		}
		return nil
	}

	return docify.DocumentFile(context.Background(), backend, target, os.Stdout)
}

// documentConfig resolves the documentation settings from flags and loaded
// secrets.
func documentConfig(cmd *cobra.Command) types.DocumentConfig {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = defaultModel
	}
	apiKey, _ := cmd.Flags().GetString("api-key")
	ext, _ := cmd.Flags().GetString("ext")

	return types.DocumentConfig{
		AIConfig: types.AIConfig{
			Model:  model,
			APIKey: secretDefault("anthropic-api-key", apiKey),
		},
		Extension: ext,
	}
}

func init() {
	documentCmd.Flags().String("model", "", "AI model identifier")
	documentCmd.Flags().String("api-key", "", "Anthropic API key (default: .secrets/anthropic-api-key)")
	documentCmd.Flags().Bool("dir", false, "treat the target as a directory and document every matching file")
	documentCmd.Flags().String("ext", ".py", "source file extension for directory walks")
	documentCmd.Flags().Bool("delete-archives", false, "delete archive files under the target directory")

	rootCmd.AddCommand(documentCmd)
}
