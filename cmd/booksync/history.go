// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/booksync/internal/booksync"
	"github.com/pdiddy/booksync/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show runs recorded in the journal",
	Long: `History lists sync runs recorded with sync --journal, most recent first.
Use --run with a run id to list that run's per-entry outcomes.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("journal", journal.DefaultPath, "SQLite journal to read")
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show (0 = all)")
	historyCmd.Flags().String("run", "", "show the outcomes of one run")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("journal")
	if !cmd.Flags().Changed("journal") && viper.GetString("journal") != "" {
		path = viper.GetString("journal")
	}

	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	w := cmd.OutOrStdout()

	if runID, _ := cmd.Flags().GetString("run"); runID != "" {
		outcomes, err := j.Outcomes(context.Background(), runID)
		if err != nil {
			return err
		}
		return formatOutcomes(w, outcomes, jsonOutput)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := j.Runs(context.Background(), limit)
	if err != nil {
		return err
	}
	return formatRuns(w, runs, jsonOutput)
}

func formatRuns(w io.Writer, runs []journal.Run, jsonOutput bool) error {
	if jsonOutput {
		return encodeJSON(w, runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-19s  %-8s  %8s  %7s  %8s  %6s  %7s\n",
		"Run", "Started", "Duration", "Selected", "Updated", "No match", "Failed", "Skipped")
	fmt.Fprintln(w, strings.Repeat("-", 115))
	for _, r := range runs {
		id := r.ID
		if r.DryRun {
			id = truncate(id, 30) + " (dry)"
		}
		fmt.Fprintf(w, "%-36s  %-19s  %-8s  %8d  %7d  %8d  %6d  %7d\n",
			id,
			r.StartedAt.Local().Format(time.DateTime),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Second),
			r.Selected, r.Updated, r.NoMatch, r.Failed, r.Skipped)
		if r.SelectionError != "" {
			fmt.Fprintf(w, "    selection failed: %s\n", r.SelectionError)
		}
	}
	return nil
}

func formatOutcomes(w io.Writer, outcomes []booksync.Outcome, jsonOutput bool) error {
	if jsonOutput {
		return encodeJSON(w, outcomes)
	}
	if len(outcomes) == 0 {
		fmt.Fprintln(w, "No outcomes recorded for this run.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-13s  %-40s  %s\n", "Entry ID", "Status", "Title", "Detail")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, o := range outcomes {
		detail := o.Detail
		if detail == "" && o.MatchedTitle != "" {
			detail = "matched " + o.MatchedTitle
		}
		fmt.Fprintf(w, "%-36s  %-13s  %-40s  %s\n", o.EntryID, o.Status, truncate(o.Title, 40), detail)
	}
	return nil
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
