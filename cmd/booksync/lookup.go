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
	"github.com/pdiddy/booksync/internal/naver"
	"github.com/pdiddy/booksync/pkg/types"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <title>",
	Short: "Search the book API for one title and show the match",
	Long: `Lookup performs the same search sync uses for a single title and prints the
first result with the values sync would write. Nothing is updated.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().Bool("json", false, "output the result as JSON")

	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if err := cfg.ValidateNaver(); err != nil {
		return fmt.Errorf("configuration incomplete: %w", err)
	}

	title := strings.Join(args, " ")
	result, err := naver.New(cfg, httpClient(cfg)).SearchByTitle(context.Background(), title)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatLookup(cmd.OutOrStdout(), title, result, jsonOutput)
}

func formatLookup(w io.Writer, title string, r *types.SearchResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	if r == nil {
		fmt.Fprintf(w, "No match found for %q.\n", title)
		return nil
	}

	rows := [][2]string{
		{"Title", r.Title},
		{"Author", r.Author},
		{"Publisher", r.Publisher},
		{"List price", fmt.Sprintf("%d", booksync.ParseCount(r.Price))},
		{"Pages", fmt.Sprintf("%d", booksync.ParseCount(r.PageCount))},
		{"Cover", r.ImageURL},
		{"ISBN", r.ISBN},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%-10s  %s\n", row[0], row[1])
	}
	return nil
}
