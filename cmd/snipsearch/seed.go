// ABOUTME: CLI command that populates the store with the demonstration snippets.
// ABOUTME: Overwrites any existing collection.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the store with the demo snippets",
	Long:  "Embed the built-in demonstration snippets and overwrite the store with them.",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	n, err := globalService.Seed()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d documents into %s\n", n, globalService.Store().Path())
	return nil
}
