// ABOUTME: CLI command that ranks stored snippets against free text.
// ABOUTME: Prints the top results with their ids, locations, and scores.
package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/2389-research/snipsearch/internal/snippets"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Search the store",
	Long:  "Embed the query text and print the most similar stored snippets.",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

var queryLimit int

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "k", 0, "Maximum number of results (default from config, 5)")
}

func runQuery(cmd *cobra.Command, args []string) error {
	k := queryLimit
	if k <= 0 {
		k = globalConfig.Search.TopK
	}

	results, err := globalService.Query(args[0], k)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No documents found.")
		return nil
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Top %d for %q", len(results), args[0])))
	for i, r := range results {
		fmt.Fprintln(out, snippets.FormatResult(i+1, r))
	}
	return nil
}
