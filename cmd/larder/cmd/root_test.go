package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larderdb/larder/pkg/config"
	"github.com/larderdb/larder/pkg/inventory"
)

func TestOpenService(t *testing.T) {
	cfg = config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	service, closeStore, err := openService()
	require.NoError(t, err)

	product, err := service.AddProduct(inventory.ProductPayload{Name: "Bread", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), product.ID)

	require.NoError(t, closeStore())

	t.Run("Reopen sees persisted product", func(t *testing.T) {
		service, closeStore, err := openService()
		require.NoError(t, err)
		defer closeStore()

		got, err := service.GetProduct(1)
		require.NoError(t, err)
		assert.Equal(t, "Bread", got.Name)
		assert.Equal(t, uint32(10), got.Quantity)
	})
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	_, err = parseID("abc")
	assert.Error(t, err)

	_, err = parseID("-1")
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	amount, err := parseAmount("10")
	require.NoError(t, err)
	assert.Equal(t, uint32(10), amount)

	_, err = parseAmount("-3")
	assert.Error(t, err)

	// Beyond uint32 range
	_, err = parseAmount("5000000000")
	assert.Error(t, err)
}

func TestFormatTimestamp(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	formatted := formatTimestamp(uint64(at.UnixNano()))

	parsed, err := time.Parse(time.RFC3339, formatted)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(at))
}
