// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/booksync/internal/booksync"
	"github.com/pdiddy/booksync/internal/notion"
	"github.com/pdiddy/booksync/pkg/types"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List the entries the next sync would process",
	Long: `Pending runs the same query sync starts with and lists the entries whose
author is empty, without searching or updating anything.`,
	Args: cobra.NoArgs,
	RunE: runPending,
}

func init() {
	pendingCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(pendingCmd)
}

func runPending(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if err := cfg.ValidateNotion(); err != nil {
		return fmt.Errorf("configuration incomplete: %w", err)
	}

	sel := &booksync.Selector{Store: notion.New(cfg, httpClient(cfg)), Log: logger}
	entries, err := sel.FetchIncomplete(context.Background())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatPending(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatPending(w io.Writer, entries []types.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []types.Entry{}
		}
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries are missing metadata.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-36s  %s\n", "#", "Entry ID", "Title")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for i, e := range entries {
		title := e.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(w, "%-4d  %-36s  %s\n", i+1, e.ID, truncate(title, 46))
	}
	fmt.Fprintf(w, "\n%d entries\n", len(entries))
	return nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
