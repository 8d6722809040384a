package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/domain/apperror"
)

// respondError writes {"code", "error"} with the status of the error kind.
// Unclassified errors are logged and hidden behind a generic message.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status, code := apperror.Status(err)
	message := err.Error()
	if code == apperror.CodeInternal {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		message = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"code": code, "error": message})
}

func badRequest(c *gin.Context, logger *zap.Logger, field, reason string) {
	respondError(c, logger, apperror.Invalid(field, reason))
}
