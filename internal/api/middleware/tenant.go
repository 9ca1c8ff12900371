// internal/api/middleware/tenant.go
package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// TenantHeader carries the tenant identifier; authentication itself is
// handled upstream.
const TenantHeader = "X-Tenant-ID"

const tenantContextKey = "tenant_id"

// Tenant extracts the tenant id from the request header and aborts with a
// 400 when it is missing or malformed.
func Tenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(TenantHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + TenantHeader + " header"})
			return
		}

		tenantID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || tenantID <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + TenantHeader + " header"})
			return
		}

		c.Set(tenantContextKey, tenantID)
		c.Next()
	}
}

// TenantID reads the tenant id set by the Tenant middleware.
func TenantID(c *gin.Context) int64 {
	return c.GetInt64(tenantContextKey)
}
