package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/server/handlers"
	"github.com/mamadbah2/inventory/internal/server/middleware"
)

// Handlers groups the HTTP adapters mounted by New.
type Handlers struct {
	Units    *handlers.UnitHandler
	Products *handlers.ProductHandler
	Reports  *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares. Mutation
// routes share the per-client limiter.
func New(h Handlers, limiter *middleware.Limiter, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limited := middleware.RateLimit(limiter)
	employee := middleware.RequireRole(models.RoleEmployee)
	supervisor := middleware.RequireRole(models.RoleSupervisor)
	admin := middleware.RequireRole(models.RoleAdmin)

	api := r.Group("/api/v1", middleware.Caller())

	units := api.Group("/units")
	units.GET("", employee, h.Units.List)
	units.POST("", admin, limited, h.Units.Create)
	units.GET("/:unitID", employee, h.Units.Get)
	units.GET("/:unitID/products", employee, h.Units.Products)
	units.GET("/:unitID/capacity", employee, h.Units.Capacity)

	products := api.Group("/products")
	products.GET("/search", employee, h.Products.Search)
	products.GET("/:productID", employee, h.Products.Get)
	products.POST("", supervisor, limited, h.Products.Create)
	products.POST("/:productID/buy", supervisor, limited, h.Products.Buy)
	products.POST("/:productID/sell", employee, limited, h.Products.Sell)

	api.GET("/reports/utilization", admin, h.Reports.Utilization)

	logger.Info("router initialized")

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("role", string(middleware.CallerFrom(c).Role)))
	}
}
