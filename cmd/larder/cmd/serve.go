/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/larderdb/larder/pkg/di"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the Larder REST API server.

Requests under /api/v1 are authenticated with the X-API-Key header. When
no API key is configured, one is generated and logged at startup.

Examples:
  larder serve
  larder serve --port=9000 --bind=0.0.0.0
  larder serve --data-dir=./mydata --log-json`,
	Run: func(cmd *cobra.Command, args []string) {
		// Override config with command line flags if provided
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if logJSON, _ := cmd.Flags().GetBool("log-json"); logJSON {
			logger.SetFormatter(&logrus.JSONFormatter{})
		}

		if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
			cmd.Printf("Error creating data directory: %v\n", err)
			os.Exit(1)
		}

		container, err := di.NewContainer(cfg, logger)
		if err != nil {
			cmd.Printf("Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer container.Close()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		go func() {
			select {
			case sig := <-sigChan:
				logger.WithField("signal", sig.String()).Info("received signal, shutting down")
				cancel()
			case <-ctx.Done():
			}
		}()

		cmd.Printf("🚀 Starting Larder server on %s:%d\n", cfg.Bind, cfg.Port)
		cmd.Printf("📁 Data directory: %s (%s)\n", cfg.DataDir, cfg.Storage.Driver)

		if err := container.GetServer().Start(ctx); err != nil {
			cmd.Printf("Error running server: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
	serveCmd.Flags().Bool("log-json", false, "Log in JSON format")
}
