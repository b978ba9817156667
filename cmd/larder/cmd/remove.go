package cmd

import (
	"github.com/spf13/cobra"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a product from the inventory",
	Long: `Remove a product from the Larder inventory. The removed product is
printed; its id is never reused.

Example:
  larder remove 1`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		service, closeStore, err := openService()
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}
		defer closeStore()

		product, err := service.RemoveProduct(id)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		printProduct(cmd, product)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
