package cmd

import (
	"github.com/spf13/cobra"

	"github.com/larderdb/larder/pkg/inventory"
)

var addCategory string

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <name> <quantity>",
	Short: "Add a product to the inventory",
	Long: `Add a product to the Larder inventory.

Example:
  larder add "Sourdough Bread" 10 --category=Bakery`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		quantity, err := parseAmount(args[1])
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}

		category, err := inventory.ParseCategory(addCategory)
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

		product, err := service.AddProduct(inventory.ProductPayload{
			Name:     args[0],
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
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addCategory, "category", "", "Product category (Bakery, Cake, Cookies)")
}
