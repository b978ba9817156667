package cmd

import (
	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a product by id",
	Long: `Get a product from the Larder inventory.

Example:
  larder get 1`,
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

		product, err := service.GetProduct(id)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		printProduct(cmd, product)
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
