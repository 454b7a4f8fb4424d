// ABOUTME: Entry point for the snipsearch binary.
// ABOUTME: Executes the root Cobra command and reports failures on one line.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/2389-research/snipsearch/internal/storage"
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}

// execute runs the root command and closes the store whether or not it failed.
func execute() error {
	defer closeStore()
	return rootCmd.Execute()
}

// errorLine renders err for stderr, with a hint when the store needs seeding.
func errorLine(err error) string {
	msg := "Error: " + err.Error()
	if errors.Is(err, storage.ErrStoreUnavailable) {
		msg += " (run `snipsearch seed` first)"
	}
	return msg
}
