package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/server/middleware"
	"github.com/mamadbah2/inventory/internal/service/inventory"
)

// ProductService is the stock engine used by the HTTP layer.
type ProductService interface {
	GetByID(ctx context.Context, id, unitID string) (models.StockRecord, error)
	Search(ctx context.Context, q models.SearchQuery) ([]models.StockRecord, error)
	Insert(ctx context.Context, draft models.ProductDraft) ([]models.StockRecord, error)
	Sell(ctx context.Context, productID, unitID string, quantity int) (models.StockRecord, error)
	Buy(ctx context.Context, productID, unitID string, quantity int) (models.StockRecord, error)
}

// ProductHandler serves catalog reads and stock mutations.
type ProductHandler struct {
	svc    ProductService
	logger *zap.Logger
}

// NewProductHandler constructs the HTTP handler adapter.
func NewProductHandler(svc ProductService, logger *zap.Logger) *ProductHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductHandler{svc: svc, logger: logger}
}

// Search filters the catalog. Non-admin callers are pinned to their unit.
func (h *ProductHandler) Search(c *gin.Context) {
	q := models.SearchQuery{
		OrderField: c.Query("order_field"),
		OrderType:  c.Query("order_type"),
		Name:       c.Query("name"),
		ID:         c.Query("id"),
		UnitID:     c.Query("unit_id"),
	}

	var err error
	if q.MinQuantity, err = optionalInt(c, "min_quantity"); err != nil {
		badRequest(c, h.logger, "min_quantity", "must be an integer")
		return
	}
	if q.MaxQuantity, err = optionalInt(c, "max_quantity"); err != nil {
		badRequest(c, h.logger, "max_quantity", "must be an integer")
		return
	}

	q, err = inventory.ScopeSearch(middleware.CallerFrom(c), q)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	records, err := h.svc.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Get returns a product, optionally from a given unit.
func (h *ProductHandler) Get(c *gin.Context) {
	unitID, err := inventory.ResolveUnit(middleware.CallerFrom(c), c.Query("unit_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	record, err := h.svc.GetByID(c.Request.Context(), c.Param("productID"), unitID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Create inserts into one unit, or into every unit when unit_id is absent.
func (h *ProductHandler) Create(c *gin.Context) {
	var draft models.ProductDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.logger.Warn("invalid product payload", zap.Error(err))
		badRequest(c, h.logger, "body", "invalid JSON")
		return
	}

	draft, err := inventory.AuthorizeInsert(middleware.CallerFrom(c), draft)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	records, err := h.svc.Insert(c.Request.Context(), draft)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, records)
}

type stockChangeRequest struct {
	Quantity *int   `json:"quantity"`
	UnitID   string `json:"unit_id"`
}

// Sell removes stock and books the profit.
func (h *ProductHandler) Sell(c *gin.Context) {
	h.changeStock(c, h.svc.Sell)
}

// Buy adds stock and books the cost.
func (h *ProductHandler) Buy(c *gin.Context) {
	h.changeStock(c, h.svc.Buy)
}

func (h *ProductHandler) changeStock(c *gin.Context, apply func(ctx context.Context, productID, unitID string, quantity int) (models.StockRecord, error)) {
	var req stockChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid stock payload", zap.Error(err))
		badRequest(c, h.logger, "body", "invalid JSON")
		return
	}
	if req.Quantity == nil {
		badRequest(c, h.logger, "quantity", "is required")
		return
	}

	unitID, err := inventory.ResolveUnit(middleware.CallerFrom(c), req.UnitID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	record, err := apply(c.Request.Context(), c.Param("productID"), unitID, *req.Quantity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func optionalInt(c *gin.Context, key string) (*int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
