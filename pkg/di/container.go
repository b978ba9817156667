// Package di provides dependency injection container
package di

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/larderdb/larder/pkg/api"
	"github.com/larderdb/larder/pkg/codec"
	"github.com/larderdb/larder/pkg/config"
	"github.com/larderdb/larder/pkg/inventory"
	"github.com/larderdb/larder/pkg/storage"
	"github.com/larderdb/larder/pkg/storage/logfile"
	"github.com/larderdb/larder/pkg/storage/pebbledb"
	"github.com/larderdb/larder/pkg/storage/sqlite"
)

// Container holds all the dependencies for the application
type Container struct {
	cfg     *config.Config
	logger  *logrus.Logger
	backend storage.Backend
	service *inventory.Service
	server  *api.Server
}

// NewContainer opens the configured storage backend and wires the inventory
// service and REST server on top of it.
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	backend, err := OpenBackend(cfg)
	if err != nil {
		return nil, err
	}

	repo := inventory.NewRepository(backend, codec.NewProductCodec())
	service := inventory.NewService(
		repo,
		inventory.NewAllocator(backend),
		inventory.NewLogDispatcher(logger),
		nil,
	)

	apiKey := cfg.Security.APIKey
	if apiKey == "auto" {
		apiKey, err = config.GenerateSecureKey(32)
		if err != nil {
			backend.Close() //nolint:errcheck // already failing
			return nil, errors.Wrap(err, "failed to generate API key")
		}
		logger.WithField("api_key", apiKey).Warn("Generated ephemeral API key; set security.api_key to keep a stable one")
	}

	server := api.NewServer(service, api.ServerConfig{
		Bind:   cfg.Bind,
		Port:   cfg.Port,
		APIKey: apiKey,
	}, api.NewMetrics(), logger)

	return &Container{
		cfg:     cfg,
		logger:  logger,
		backend: backend,
		service: service,
		server:  server,
	}, nil
}

// OpenBackend opens the storage backend named by the configuration.
func OpenBackend(cfg *config.Config) (storage.Backend, error) {
	switch cfg.Storage.Driver {
	case storage.DriverLogfile, "":
		return logfile.Open(logfile.Options{
			Dir:           cfg.DataDir,
			FsyncInterval: time.Duration(cfg.Storage.FsyncIntervalMs) * time.Millisecond,
		})
	case storage.DriverPebble:
		return pebbledb.Open(pebbledb.Options{
			Path:       filepath.Join(cfg.DataDir, "pebble"),
			SyncWrites: true,
		})
	case storage.DriverSQLite:
		return sqlite.Open(filepath.Join(cfg.DataDir, "larder.db"))
	default:
		return nil, errors.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// GetConfig returns the configuration the container was built from
func (c *Container) GetConfig() *config.Config {
	return c.cfg
}

// GetService returns the inventory service
func (c *Container) GetService() *inventory.Service {
	return c.service
}

// GetServer returns the REST server
func (c *Container) GetServer() *api.Server {
	return c.server
}

// GetBackend returns the storage backend
func (c *Container) GetBackend() storage.Backend {
	return c.backend
}

// Close releases the storage backend
func (c *Container) Close() error {
	return c.backend.Close()
}
