package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/service/reporting"
)

// ReportService builds utilization reports.
type ReportService interface {
	Snapshot(ctx context.Context) (models.UtilizationReport, error)
}

// ReportHandler exposes utilization reports on demand.
type ReportHandler struct {
	svc    ReportService
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc ReportService, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// Utilization returns the current report as JSON, or as text with ?format=text.
func (h *ReportHandler) Utilization(c *gin.Context) {
	report, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if c.Query("format") == "text" {
		c.String(http.StatusOK, reporting.Format(report))
		return
	}
	c.JSON(http.StatusOK, report)
}
