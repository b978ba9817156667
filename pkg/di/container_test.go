package di

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larderdb/larder/pkg/config"
	"github.com/larderdb/larder/pkg/inventory"
	"github.com/larderdb/larder/pkg/storage"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestOpenBackend_Drivers(t *testing.T) {
	drivers := []string{storage.DriverLogfile, storage.DriverPebble, storage.DriverSQLite}

	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.DataDir = t.TempDir()
			cfg.Storage.Driver = driver

			backend, err := OpenBackend(cfg)
			require.NoError(t, err)
			defer backend.Close()

			counter, err := backend.Counter()
			require.NoError(t, err)
			assert.Equal(t, uint64(0), counter)
		})
	}
}

func TestOpenBackend_UnknownDriver(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Storage.Driver = "bolt"

	_, err := OpenBackend(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage driver")
}

func TestNewContainer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Security.APIKey = "test-key"

	container, err := NewContainer(cfg, testLogger())
	require.NoError(t, err)
	defer container.Close()

	assert.Same(t, cfg, container.GetConfig())
	require.NotNil(t, container.GetServer())
	require.NotNil(t, container.GetBackend())

	product, err := container.GetService().AddProduct(inventory.ProductPayload{Name: "Bread", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), product.ID)
}

func TestNewContainer_GeneratesAPIKey(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	require.Equal(t, "auto", cfg.Security.APIKey)

	container, err := NewContainer(cfg, testLogger())
	require.NoError(t, err)
	defer container.Close()

	// The generated key is unknown to the client, so requests without one
	// must be rejected.
	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	container.GetServer().Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
