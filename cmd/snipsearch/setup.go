// ABOUTME: Cobra command for interactive store configuration.
// ABOUTME: Launches a bubbletea TUI wizard and saves the result to the config file.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/snipsearch/internal/config"
	"github.com/2389-research/snipsearch/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure the snippet store",
	Long:  "Interactive wizard to choose the store location, backend, and result count.",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	defaultPath, err := cfg.GetStorePath()
	if err != nil {
		return fmt.Errorf("failed to resolve store path: %w", err)
	}

	model := tui.NewSetupModel(defaultPath, cfg.Store.Path, cfg.Store.Backend, cfg.Search.TopK)

	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		fmt.Fprintln(cmd.OutOrStdout(), "Setup cancelled.")
		return nil
	}

	storePath, backend, topK := final.Result()
	cfg.Store.Path = storePath
	cfg.Store.Backend = backend
	cfg.Search.TopK = topK

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Config saved successfully.")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configPath)
	}
	return nil
}
