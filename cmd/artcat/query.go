// Copyright Whalen Digital Projects, 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwhalen/artcat/internal/index"
)

var queryCmd = &cobra.Command{
	Use:   "query [search terms]",
	Short: "Search previously added catalog entries",
	Long: `Query runs a full-text search over the catalog index built by add and
spreadsheet: titles, creators, and object types. Use --creator and --type
for substring filters instead of (or alongside) free text.`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("creator", "", "filter by creator name substring")
	queryCmd.Flags().String("type", "", "filter by object type substring")
	queryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	queryCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	creator, _ := cmd.Flags().GetString("creator")
	objectType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")
	queryText := strings.Join(args, " ")

	if queryText == "" && creator == "" && objectType == "" {
		return fmt.Errorf("query or filter required: provide search terms, --creator, or --type")
	}

	cfg := pipelineConfig(cmd)
	idx, err := index.Open(cfg.Index)
	if err != nil {
		return err
	}
	defer idx.Close()

	ctx := context.Background()

	var results []index.Result
	if queryText != "" {
		results, err = idx.Query(ctx, queryText, limit)
		if err != nil {
			return err
		}
		results = filterResults(results, creator, objectType)
	} else {
		var creators, objectTypes []string
		if creator != "" {
			creators = []string{creator}
		}
		if objectType != "" {
			objectTypes = []string{objectType}
		}
		results, err = idx.Select(ctx, creators, objectTypes)
		if err != nil {
			return err
		}
		if limit > 0 && len(results) > limit {
			results = results[:limit]
		}
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(results, jsonOutput)
}

func filterResults(results []index.Result, creator, objectType string) []index.Result {
	if creator == "" && objectType == "" {
		return results
	}
	var out []index.Result
	for _, r := range results {
		if creator != "" && !strings.Contains(strings.ToLower(r.Creator), strings.ToLower(creator)) {
			continue
		}
		if objectType != "" && !strings.Contains(strings.ToLower(r.ObjectType), strings.ToLower(objectType)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func formatQueryOutput(results []index.Result, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-6s  %-40s  %-25s  %-15s  %s\n",
		"ID", "Title", "Creator", "Type", "URI")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, r := range results {
		fmt.Fprintf(os.Stdout, "%-6s  %-40s  %-25s  %-15s  %s\n",
			r.ObjectID, truncate(r.Title, 40), truncate(r.Creator, 25), truncate(r.ObjectType, 15), r.URI)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}
