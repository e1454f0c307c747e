// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-advisor/internal/session"
	"github.com/pdiddy/paper-advisor/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved advisor runs (list, show, export)",
	Long: `History manages the local SQLite store of saved advisor runs. Use
subcommands to list recent runs, show a run's report and narrative, or
export the full history.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent saved runs",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := session.NewStore(sessionConfigFromViper())
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.List(context.Background())
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Println("No saved runs.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-6s  %s\n", "ID", "Created", "Topics", "Draft")
	for _, s := range summaries {
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-6d  %s\n",
			s.ID, s.CreatedAt.Format(time.RFC3339), s.TopicCount, s.DraftExcerpt)
	}
	return nil
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a saved run's report and narrative",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := session.NewStore(sessionConfigFromViper())
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, run.Report)

	if narrative, _ := cmd.Flags().GetBool("narrative"); narrative {
		fmt.Fprintln(os.Stdout, run.Narrative)
	}
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the run history to YAML or JSON",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := session.NewStore(sessionConfigFromViper())
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background()); err != nil {
			return err
		}
		fmt.Println("Exported to sessions/export.yaml")
	case "json":
		if err := store.ExportJSON(context.Background()); err != nil {
			return err
		}
		fmt.Println("Exported to sessions/export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// sessionConfigFromViper resolves the session store settings.
func sessionConfigFromViper() types.SessionConfig {
	dir := viper.GetString("sessions.dir")
	if dir == "" {
		dir = "sessions"
	}
	return types.SessionConfig{
		SessionsDir: dir,
		MaxResults:  viper.GetInt("sessions.max_results"),
	}
}

func init() {
	historyShowCmd.Flags().Bool("narrative", false, "also print the chain-of-thought narrative")
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
