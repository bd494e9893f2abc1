package middleware

import (
	"net/http"
	"strings"

	"github.com/garagehub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

const (
	// TenantDomainKey is the context key for the resolved tenant domain
	TenantDomainKey = "tenant_domain"
	// TenantHeader carries the tenant domain on API requests
	TenantHeader = "X-Tenant-Domain"
	// TenantQueryParam is the fallback query parameter
	TenantQueryParam = "tenantDomain"
)

// TenantResolver extracts the tenant domain from the request: the
// X-Tenant-Domain header first, then the tenantDomain query parameter.
// Requests without a tenant are rejected before any handler runs.
func TenantResolver() gin.HandlerFunc {
	return func(c *gin.Context) {
		domain := strings.TrimSpace(c.GetHeader(TenantHeader))
		if domain == "" {
			domain = strings.TrimSpace(c.Query(TenantQueryParam))
		}
		if domain == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse("TENANT_REQUIRED", "Tenant domain is required"))
			return
		}

		c.Set(TenantDomainKey, strings.ToLower(domain))
		c.Next()
	}
}

// GetTenantDomain returns the tenant domain resolved for the request
func GetTenantDomain(c *gin.Context) string {
	if v, ok := c.Get(TenantDomainKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
