package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/inventory/internal/domain/apperror"
	"github.com/mamadbah2/inventory/internal/domain/models"
)

// Headers set by the upstream authentication layer.
const (
	HeaderRole   = "X-Role"
	HeaderUnitID = "X-Unit-ID"

	callerKey = "inventory.caller"
)

// Caller reads the caller identity from trusted headers. Requests without a
// known role are rejected with 401.
func Caller() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.ParseRole(c.GetHeader(HeaderRole))
		if !role.Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":  apperror.CodeUnauthorized,
				"error": "missing or unknown role",
			})
			return
		}

		c.Set(callerKey, models.Caller{Role: role, UnitID: c.GetHeader(HeaderUnitID)})
		c.Next()
	}
}

// RequireRole rejects callers ranked below required with 403.
func RequireRole(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !models.HasAccess(CallerFrom(c).Role, required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":  apperror.CodeForbidden,
				"error": "requires role " + string(required),
			})
			return
		}
		c.Next()
	}
}

// CallerFrom returns the caller stored by Caller, or the zero Caller.
func CallerFrom(c *gin.Context) models.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(models.Caller); ok {
			return caller
		}
	}
	return models.Caller{}
}
