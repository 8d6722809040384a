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

// UnitService is the unit registry used by the HTTP layer.
type UnitService interface {
	Get(ctx context.Context, unitID string) (models.Unit, error)
	List(ctx context.Context) ([]models.Unit, error)
	Create(ctx context.Context, unit models.Unit) (models.Unit, error)
}

// UnitStock is the part of the engine that reads a single unit.
type UnitStock interface {
	ListInUnit(ctx context.Context, unitID string) ([]models.StockRecord, error)
	Usage(ctx context.Context, unitID string) (inventory.Usage, error)
	Fits(ctx context.Context, unitID string, quantity int, itemVolume float64) (bool, error)
}

// UnitHandler serves the unit registry and per-unit reads.
type UnitHandler struct {
	units  UnitService
	stock  UnitStock
	logger *zap.Logger
}

// NewUnitHandler constructs the HTTP handler adapter.
func NewUnitHandler(units UnitService, stock UnitStock, logger *zap.Logger) *UnitHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnitHandler{units: units, stock: stock, logger: logger}
}

// List returns every unit.
func (h *UnitHandler) List(c *gin.Context) {
	units, err := h.units.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, units)
}

// Get returns one unit.
func (h *UnitHandler) Get(c *gin.Context) {
	unit, err := h.units.Get(c.Request.Context(), c.Param("unitID"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

// Create provisions a unit.
func (h *UnitHandler) Create(c *gin.Context) {
	var req models.Unit
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid unit payload", zap.Error(err))
		badRequest(c, h.logger, "body", "invalid JSON")
		return
	}

	unit, err := h.units.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, unit)
}

// Products lists the stock of one unit. Non-admins only see their own unit.
func (h *UnitHandler) Products(c *gin.Context) {
	unitID, err := inventory.ResolveUnit(middleware.CallerFrom(c), c.Param("unitID"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	records, err := h.stock.ListInUnit(c.Request.Context(), unitID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

type capacityResponse struct {
	UnitID string  `json:"unit_id"`
	Volume float64 `json:"volume"`
	Used   float64 `json:"used"`
	Free   float64 `json:"free"`
	Fits   *bool   `json:"fits,omitempty"`
}

// Capacity reports occupancy and, when quantity and volume are given, whether
// that load would fit.
func (h *UnitHandler) Capacity(c *gin.Context) {
	ctx := c.Request.Context()
	unitID, err := inventory.ResolveUnit(middleware.CallerFrom(c), c.Param("unitID"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	usage, err := h.stock.Usage(ctx, unitID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := capacityResponse{UnitID: unitID, Volume: usage.Unit.Volume, Used: usage.Used, Free: usage.Free}

	rawQty, rawVol := c.Query("quantity"), c.Query("volume")
	if rawQty != "" || rawVol != "" {
		quantity, err := strconv.Atoi(rawQty)
		if err != nil {
			badRequest(c, h.logger, "quantity", "must be an integer")
			return
		}
		volume, err := strconv.ParseFloat(rawVol, 64)
		if err != nil {
			badRequest(c, h.logger, "volume", "must be a number")
			return
		}

		fits, err := h.stock.Fits(ctx, unitID, quantity, volume)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		resp.Fits = &fits
	}

	c.JSON(http.StatusOK, resp)
}
