/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/larderdb/larder/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with a generated API key",
	Long: `Create a Larder configuration file for local development.

This command will:
- Create the data directory
- Generate a secure API key
- Write the configuration file

Examples:
  larder init
  larder init --config ./larder.yaml --data-dir ./data`,
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")

		path := cfgFile
		if path == "" {
			path = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(path) && !force {
			cmd.Printf("Config already exists at %s. Use --force to overwrite.\n", path)
			return
		}

		if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
			cmd.Printf("Error creating data directory: %v\n", err)
			os.Exit(1)
		}

		bootstrapped, err := config.BootstrapConfig(path, cfg.DataDir)
		if err != nil {
			cmd.Printf("Error bootstrapping config: %v\n", err)
			os.Exit(1)
		}

		cmd.Printf("✅ Larder initialized successfully!\n")
		cmd.Printf("Config file: %s\n", path)
		cmd.Printf("Data directory: %s\n", bootstrapped.DataDir)
		cmd.Printf("API key: %s\n", bootstrapped.Security.APIKey)
		cmd.Printf("\n⚠️  Store this key securely! It is also saved in %s\n", path)
		cmd.Printf("\nYou can now start the server with:\n")
		cmd.Printf("  larder serve\n")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}
