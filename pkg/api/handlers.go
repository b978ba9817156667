package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/larderdb/larder/pkg/inventory"
)

// Server holds the API server state
type Server struct {
	service IInventoryService
	config  ServerConfig
	metrics *Metrics
	logger  logrus.FieldLogger

	httpServer *http.Server
}

// NewServer creates a new API server
func NewServer(service IInventoryService, config ServerConfig, metrics *Metrics, logger logrus.FieldLogger) *Server {
	if metrics == nil {
		metrics = NewMetrics()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{
		service: service,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// productID parses the {id} route parameter.
func productID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
}

// sendOperationError maps a service error onto an HTTP status. Domain
// messages travel to the caller verbatim; anything else is reported as an
// internal failure under the given prefix.
func sendOperationError(w http.ResponseWriter, prefix string, err error) {
	switch {
	case inventory.IsNotFound(err):
		sendError(w, err.Error(), http.StatusNotFound)
	case inventory.IsInvalidOperation(err):
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		sendError(w, fmt.Sprintf("%s: %v", prefix, err), http.StatusInternalServerError)
	}
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
//	@Security		ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleCreateProduct godoc
//
//	@Summary		Create a product
//	@Description	Add a new product to the catalog
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		inventory.ProductPayload	true	"Product fields"
//	@Success		200		{object}	inventory.Product
//	@Failure		400		{object}	map[string]string
//	@Failure		422		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/products [post]
//	@Security		ApiKeyAuth
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var payload inventory.ProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.metrics.RecordDBOperation("add", false, time.Since(start))
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	product, err := s.service.AddProduct(payload)
	if err != nil {
		s.metrics.RecordDBOperation("add", false, time.Since(start))
		sendOperationError(w, "Failed to add product", err)
		return
	}

	s.metrics.RecordDBOperation("add", true, time.Since(start))
	sendSuccess(w, product)
}

// handleGetProduct godoc
//
//	@Summary		Get a product
//	@Description	Retrieve a product by its id
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int	true	"Product id"
//	@Success		200	{object}	inventory.Product
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/products/{id} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := productID(r)
	if err != nil {
		s.metrics.RecordDBOperation("get", false, time.Since(start))
		sendError(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	product, err := s.service.GetProduct(id)
	if err != nil {
		s.metrics.RecordDBOperation("get", false, time.Since(start))
		sendOperationError(w, "Failed to get product", err)
		return
	}

	s.metrics.RecordDBOperation("get", true, time.Since(start))
	sendSuccess(w, product)
}

// handleUpdateProduct godoc
//
//	@Summary		Update a product
//	@Description	Replace the name, category, and quantity of a product
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Product id"
//	@Param			payload	body		inventory.ProductPayload	true	"Replacement fields"
//	@Success		200		{object}	inventory.Product
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		422		{object}	map[string]string
//	@Router			/products/{id} [put]
//	@Security		ApiKeyAuth
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := productID(r)
	if err != nil {
		s.metrics.RecordDBOperation("update", false, time.Since(start))
		sendError(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	var payload inventory.ProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.metrics.RecordDBOperation("update", false, time.Since(start))
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	product, err := s.service.UpdateProduct(id, payload)
	if err != nil {
		s.metrics.RecordDBOperation("update", false, time.Since(start))
		sendOperationError(w, "Failed to update product", err)
		return
	}

	s.metrics.RecordDBOperation("update", true, time.Since(start))
	sendSuccess(w, product)
}

// handleDeleteProduct godoc
//
//	@Summary		Delete a product
//	@Description	Remove a product and return its last state
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int	true	"Product id"
//	@Success		200	{object}	inventory.Product
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/products/{id} [delete]
//	@Security		ApiKeyAuth
func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := productID(r)
	if err != nil {
		s.metrics.RecordDBOperation("remove", false, time.Since(start))
		sendError(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	product, err := s.service.RemoveProduct(id)
	if err != nil {
		s.metrics.RecordDBOperation("remove", false, time.Since(start))
		sendOperationError(w, "Failed to delete product", err)
		return
	}

	s.metrics.RecordDBOperation("remove", true, time.Since(start))
	sendSuccess(w, product)
}

// handleGetStock godoc
//
//	@Summary		Get product stock
//	@Description	Retrieve the quantity on hand for a product
//	@Tags			stock
//	@Produce		json
//	@Param			id	path		int	true	"Product id"
//	@Success		200	{object}	StockResponse
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/products/{id}/stock [get]
//	@Security		ApiKeyAuth
func (s *Server) handleGetStock(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := productID(r)
	if err != nil {
		s.metrics.RecordDBOperation("stock", false, time.Since(start))
		sendError(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	quantity, err := s.service.GetStock(id)
	if err != nil {
		s.metrics.RecordDBOperation("stock", false, time.Since(start))
		sendOperationError(w, "Failed to get stock", err)
		return
	}

	s.metrics.RecordDBOperation("stock", true, time.Since(start))
	sendSuccess(w, StockResponse{ProductID: id, Quantity: quantity})
}

// handleRestock godoc
//
//	@Summary		Restock a product
//	@Description	Add quantity to a product's stock
//	@Tags			stock
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Product id"
//	@Param			payload	body		inventory.StockPayload	true	"Amount to add"
//	@Success		200		{object}	inventory.Product
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		422		{object}	map[string]string
//	@Router			/products/{id}/restock [post]
//	@Security		ApiKeyAuth
func (s *Server) handleRestock(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := productID(r)
	if err != nil {
		s.metrics.RecordDBOperation("restock", false, time.Since(start))
		sendError(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	var payload inventory.StockPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.metrics.RecordDBOperation("restock", false, time.Since(start))
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	product, err := s.service.AddQuantity(id, payload)
	if err != nil {
		s.metrics.RecordDBOperation("restock", false, time.Since(start))
		sendOperationError(w, "Failed to restock product", err)
		return
	}

	s.metrics.RecordDBOperation("restock", true, time.Since(start))
	sendSuccess(w, product)
}

// handleOffload godoc
//
//	@Summary		Offload a product
//	@Description	Remove quantity from a product's stock
//	@Tags			stock
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Product id"
//	@Param			payload	body		inventory.StockPayload	true	"Amount to remove"
//	@Success		200		{object}	inventory.Product
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		422		{object}	map[string]string
//	@Router			/products/{id}/offload [post]
//	@Security		ApiKeyAuth
func (s *Server) handleOffload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := productID(r)
	if err != nil {
		s.metrics.RecordDBOperation("offload", false, time.Since(start))
		sendError(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	var payload inventory.StockPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.metrics.RecordDBOperation("offload", false, time.Since(start))
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	product, err := s.service.OffloadQuantity(id, payload)
	if err != nil {
		s.metrics.RecordDBOperation("offload", false, time.Since(start))
		sendOperationError(w, "Failed to offload product", err)
		return
	}

	s.metrics.RecordDBOperation("offload", true, time.Since(start))
	sendSuccess(w, product)
}

// handleStats godoc
//
//	@Summary		Get catalog statistics
//	@Description	Get the number of products in the catalog
//	@Tags			diagnostics
//	@Produce		json
//	@Success		200	{object}	StatsResponse
//	@Failure		500	{object}	map[string]string
//	@Router			/stats [get]
//	@Security		ApiKeyAuth
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	count, err := s.service.Count()
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to get stats: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.UpdateProductCount(count)
	sendSuccess(w, StatsResponse{Products: count})
}
