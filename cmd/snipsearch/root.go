// ABOUTME: Root Cobra command and global flags for the snipsearch CLI.
// ABOUTME: Sets up lifecycle hooks for config loading, logging, and store initialization.
package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/2389-research/snipsearch/internal/config"
	"github.com/2389-research/snipsearch/internal/embeddings"
	"github.com/2389-research/snipsearch/internal/logging"
	"github.com/2389-research/snipsearch/internal/snippets"
	"github.com/2389-research/snipsearch/internal/storage"
)

var globalConfig *config.Config
var globalLogger *logrus.Logger
var globalService *snippets.Service

// Global flags
var (
	flagStore    string
	flagBackend  string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "snipsearch",
	Short: "Semantic search over code snippets",
	Long: `
   SNIPSEARCH

Seed a small collection of code snippets, then rank them against
free-text queries using deterministic hashed embeddings.

  snipsearch seed
  snipsearch query "binary search implementation"`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Unknown command %q.\n\n", args[0])
		}
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == cmd.Root() || cmd.Name() == "help" || cmd.Name() == "setup" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if flagStore != "" {
			cfg.Store.Path = flagStore
		}
		if flagBackend != "" {
			cfg.Store.Backend = flagBackend
		}
		if flagLogLevel != "" {
			cfg.Log.Level = flagLogLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		globalConfig = cfg

		logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		globalLogger = logger

		storePath, err := cfg.GetStorePath()
		if err != nil {
			return fmt.Errorf("failed to resolve store path: %w", err)
		}
		store, err := storage.Open(cfg.Store.Backend, storePath)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		logger.WithFields(logrus.Fields{
			"store":   storePath,
			"backend": cfg.Store.Backend,
		}).Debug("opened store")

		service, err := snippets.NewService(store, embeddings.NewHashEmbedder(), snippets.WithLogger(logger))
		if err != nil {
			_ = store.Close()
			return err
		}
		globalService = service
		return nil
	},
}

// closeStore releases the store opened by PersistentPreRunE. Cobra skips
// post-run hooks when a command fails, so this runs after Execute instead.
func closeStore() {
	if globalService != nil {
		_ = globalService.Store().Close()
		globalService = nil
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "Path of the document store (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Store backend: json or sqlite (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, or error")
}
