package inventory

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Category
		wantErr bool
	}{
		{"bakery", "Bakery", CategoryBakery, false},
		{"cake", "Cake", CategoryCake, false},
		{"cookies", "Cookies", CategoryCookies, false},
		{"empty defaults to bakery", "", CategoryBakery, false},
		{"unknown name", "Pastry", 0, true},
		{"wrong case", "bakery", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Failed to parse %q: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range []Category{CategoryBakery, CategoryCake, CategoryCookies} {
		if !c.Valid() {
			t.Errorf("Category %d should be valid", c)
		}
	}
	if Category(3).Valid() {
		t.Error("Category(3) should not be valid")
	}
}

func TestCategory_JSON(t *testing.T) {
	data, err := json.Marshal(CategoryCookies)
	if err != nil {
		t.Fatalf("Failed to marshal category: %v", err)
	}
	if string(data) != `"Cookies"` {
		t.Errorf("Marshaled category = %s, want %q", data, "Cookies")
	}

	var c Category
	if err := json.Unmarshal([]byte(`"Cake"`), &c); err != nil {
		t.Fatalf("Failed to unmarshal category: %v", err)
	}
	if c != CategoryCake {
		t.Errorf("Unmarshaled category = %v, want %v", c, CategoryCake)
	}

	if err := json.Unmarshal([]byte(`""`), &c); err != nil {
		t.Fatalf("Failed to unmarshal empty category: %v", err)
	}
	if c != CategoryBakery {
		t.Errorf("Empty category = %v, want default %v", c, CategoryBakery)
	}

	if err := json.Unmarshal([]byte(`"Brioche"`), &c); err == nil {
		t.Error("Expected error for unknown category name")
	}
	if err := json.Unmarshal([]byte(`2`), &c); err == nil {
		t.Error("Expected error for numeric category")
	}
}

func TestProduct_JSON(t *testing.T) {
	product := Product{
		ID:        7,
		Name:      "Rye Loaf",
		Category:  CategoryBakery,
		Quantity:  3,
		CreatedAt: 1719043200000000000,
	}

	data, err := json.Marshal(product)
	if err != nil {
		t.Fatalf("Failed to marshal product: %v", err)
	}
	if strings.Contains(string(data), "updated_at") {
		t.Errorf("Fresh product should omit updated_at, got %s", data)
	}

	updated := uint64(1719043260000000000)
	product.UpdatedAt = &updated
	data, err = json.Marshal(product)
	if err != nil {
		t.Fatalf("Failed to marshal updated product: %v", err)
	}

	var decoded Product
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal product: %v", err)
	}
	if decoded.UpdatedAt == nil || *decoded.UpdatedAt != updated {
		t.Errorf("Unmarshaled UpdatedAt = %v, want %d", decoded.UpdatedAt, updated)
	}
	if decoded.Name != product.Name || decoded.Quantity != product.Quantity {
		t.Errorf("Round trip mismatch: got %+v, want %+v", decoded, product)
	}
}

func TestProductPayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payload ProductPayload
		wantMsg string
	}{
		{
			name:    "valid",
			payload: ProductPayload{Name: "Baguette", Quantity: 4, Category: CategoryBakery},
		},
		{
			name:    "empty name",
			payload: ProductPayload{Name: "", Quantity: 4},
			wantMsg: "Product name cannot be empty.",
		},
		{
			name:    "whitespace name",
			payload: ProductPayload{Name: "   ", Quantity: 4},
			wantMsg: "Product name cannot be empty.",
		},
		{
			name:    "zero quantity",
			payload: ProductPayload{Name: "Baguette", Quantity: 0},
			wantMsg: "Product quantity must be greater than zero.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("Expected valid payload, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Validation message = %q, want %q", err.Error(), tt.wantMsg)
			}
			if !IsInvalidOperation(err) {
				t.Error("Validation error should be an invalid operation")
			}
		})
	}
}

func TestStockPayload_Validate(t *testing.T) {
	if err := (StockPayload{Amount: 1}).Validate(); err != nil {
		t.Fatalf("Expected valid payload, got %v", err)
	}
	err := (StockPayload{}).Validate()
	if err == nil {
		t.Fatal("Expected validation error for zero amount")
	}
	if err.Error() != "Stock amount must be greater than zero." {
		t.Errorf("Validation message = %q", err.Error())
	}
}
