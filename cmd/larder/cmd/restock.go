package cmd

import (
	"github.com/spf13/cobra"

	"github.com/larderdb/larder/pkg/inventory"
)

// restockCmd represents the restock command
var restockCmd = &cobra.Command{
	Use:   "restock <id> <amount>",
	Short: "Add quantity to a product",
	Long: `Add quantity to a product in the Larder inventory.

Example:
  larder restock 1 5`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		amount, err := parseAmount(args[1])
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

		product, err := service.AddQuantity(id, inventory.StockPayload{Amount: amount})
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		printProduct(cmd, product)
	},
}

func init() {
	rootCmd.AddCommand(restockCmd)
}
