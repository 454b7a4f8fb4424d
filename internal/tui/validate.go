// ABOUTME: Store location validation for the setup wizard.
// ABOUTME: Checks that the store's directory exists or can be created and is writable.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/2389-research/snipsearch/internal/config"
)

// ValidateStorePath checks that a store file can be written at storePath.
// The context allows cancellation when the user quits during validation.
func ValidateStorePath(ctx context.Context, storePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if storePath == "" {
		return fmt.Errorf("store path is empty")
	}

	path, err := config.ExpandPath(storePath)
	if err != nil {
		return err
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	probe, err := os.CreateTemp(dir, ".snipsearch-probe-*")
	if err != nil {
		return fmt.Errorf("%s is not writable: %w", dir, err)
	}
	name := probe.Name()
	_ = probe.Close()
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("failed to clean up probe file: %w", err)
	}
	return nil
}
