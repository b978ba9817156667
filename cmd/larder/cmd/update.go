package cmd

import (
	"github.com/spf13/cobra"

	"github.com/larderdb/larder/pkg/inventory"
)

var updateCategory string

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update <id> <name> <quantity>",
	Short: "Replace a product's name, category and quantity",
	Long: `Replace a product's name, category and quantity in the Larder inventory.

Example:
  larder update 1 "Rye Bread" 5 --category=Bakery`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		quantity, err := parseAmount(args[2])
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		category, err := inventory.ParseCategory(updateCategory)
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

		product, err := service.UpdateProduct(id, inventory.ProductPayload{
			Name:     args[1],
			Category: category,
			Quantity: quantity,
		})
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		printProduct(cmd, product)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateCategory, "category", "", "Product category (Bakery, Cake, Cookies)")
}
