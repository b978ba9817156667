package cmd

import (
	"github.com/spf13/cobra"
)

// stockCmd represents the stock command
var stockCmd = &cobra.Command{
	Use:   "stock <id>",
	Short: "Show the on-hand quantity for a product",
	Long: `Show the on-hand quantity for a product in the Larder inventory.

Example:
  larder stock 1`,
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

		quantity, err := service.GetStock(id)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		cmd.Printf("%d\n", quantity)
	},
}

func init() {
	rootCmd.AddCommand(stockCmd)
}
