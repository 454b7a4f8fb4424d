// ABOUTME: CLI command that lists stored snippets.
// ABOUTME: Prints id and location for each document in collection order.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/snipsearch/internal/snippets"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snippets",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	docs, err := globalService.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(docs) == 0 {
		fmt.Fprintln(out, "No documents found.")
		return nil
	}
	for _, d := range docs {
		fmt.Fprintln(out, snippets.FormatDocument(d))
	}
	return nil
}
