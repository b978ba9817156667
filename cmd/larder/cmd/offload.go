package cmd

import (
	"github.com/spf13/cobra"

	"github.com/larderdb/larder/pkg/inventory"
)

// offloadCmd represents the offload command
var offloadCmd = &cobra.Command{
	Use:   "offload <id> <amount>",
	Short: "Remove quantity from a product",
	Long: `Remove quantity from a product in the Larder inventory. Offloading
more than the available quantity is rejected.

Example:
  larder offload 1 3`,
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

		product, err := service.OffloadQuantity(id, inventory.StockPayload{Amount: amount})
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		printProduct(cmd, product)
	},
}

func init() {
	rootCmd.AddCommand(offloadCmd)
}
