/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/larderdb/larder/pkg/codec"
	"github.com/larderdb/larder/pkg/config"
	"github.com/larderdb/larder/pkg/di"
	"github.com/larderdb/larder/pkg/inventory"
)

var (
	cfgFile    string
	dataDir    string
	logLevel   string
	outputJSON bool

	cfg    *config.Config
	logger *logrus.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "larder",
	Short: "Larder - Durable bakery inventory store",
	Long: `Larder is a durable inventory record store for bakery products,
persisting across restarts with pluggable storage backends.

Examples:
  larder add "Sourdough Bread" 10 --category=Bakery
  larder stock 1
  larder serve --port=8080`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(path) {
			loaded, err := config.LoadConfig(path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = loaded
		} else {
			cfg = config.DefaultConfig()
		}

		if err := cfg.ApplyEnv(); err != nil {
			return fmt.Errorf("failed to apply environment config: %w", err)
		}

		// Flags take precedence over file and environment
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}

		level, err := logrus.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
		}
		logger = logrus.New()
		logger.SetLevel(level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default: OS-specific location)")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "Data directory for the store")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Print results as JSON")
}

// openService opens the configured storage backend and builds an inventory
// service on it for commands that operate on the store directly.
func openService() (*inventory.Service, func() error, error) {
	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	backend, err := di.OpenBackend(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	repo := inventory.NewRepository(backend, codec.NewProductCodec())
	service := inventory.NewService(repo, inventory.NewAllocator(backend), nil, nil)
	return service, backend.Close, nil
}
