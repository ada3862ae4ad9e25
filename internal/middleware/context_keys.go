package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/openlandreg/land_registry_app/internal/core/domain"
)

// callerKey is the key used to store the authenticated caller's identity
// triple in the request context.
const callerKey = contextKey("caller")

// GetCallerFromContext retrieves the authenticated caller (id, role, district)
// from the Gin context. It returns the caller and a boolean indicating if it
// was found.
func GetCallerFromContext(c *gin.Context) (domain.Caller, bool) {
	val := c.Request.Context().Value(callerKey)
	if val == nil {
		return domain.Caller{}, false
	}
	caller, ok := val.(domain.Caller)
	return caller, ok
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context. Convenience accessor over GetCallerFromContext.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	caller, ok := GetCallerFromContext(c)
	if !ok {
		return "", false
	}
	return caller.ID, true
}
