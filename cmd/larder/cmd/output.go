package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/larderdb/larder/pkg/inventory"
)

// printProduct displays a product in table or JSON format
func printProduct(cmd *cobra.Command, product inventory.Product) {
	if outputJSON {
		data, err := json.MarshalIndent(product, "", "  ")
		if err != nil {
			cmd.Printf("Error encoding product: %v\n", err)
			return
		}
		cmd.Println(string(data))
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID:\t%d\n", product.ID)
	fmt.Fprintf(w, "Name:\t%s\n", product.Name)
	fmt.Fprintf(w, "Category:\t%s\n", product.Category)
	fmt.Fprintf(w, "Quantity:\t%d\n", product.Quantity)
	fmt.Fprintf(w, "Created:\t%s\n", formatTimestamp(product.CreatedAt))

	if product.UpdatedAt != nil {
		fmt.Fprintf(w, "Updated:\t%s\n", formatTimestamp(*product.UpdatedAt))
	}
}

// formatTimestamp renders a unix-nanosecond timestamp as RFC3339
func formatTimestamp(ns uint64) string {
	return time.Unix(0, int64(ns)).Format(time.RFC3339)
}

// parseID parses a product id argument
func parseID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", arg)
	}
	return id, nil
}

// parseAmount parses a quantity or stock amount argument
func parseAmount(arg string) (uint32, error) {
	amount, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", arg)
	}
	return uint32(amount), nil
}
