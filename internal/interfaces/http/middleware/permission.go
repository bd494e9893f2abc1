package middleware

import (
	"net/http"

	appidentity "github.com/garagehub/backend/internal/application/identity"
	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// actionForMethod maps HTTP methods to permission actions
func actionForMethod(method string) (identity.Action, bool) {
	switch method {
	case http.MethodPost:
		return identity.ActionCreate, true
	case http.MethodPut, http.MethodPatch:
		return identity.ActionEdit, true
	case http.MethodGet, http.MethodHead:
		return identity.ActionView, true
	case http.MethodDelete:
		return identity.ActionDelete, true
	}
	return "", false
}

// RequirePermission checks the authenticated user's permission for the given
// page path, deriving the action from the HTTP method. Superadmins pass
// unconditionally; everyone else needs a matching stored grant.
func RequirePermission(permissions *appidentity.PermissionService, pagePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("UNAUTHORIZED", "Authentication required"))
			return
		}

		action, ok := actionForMethod(c.Request.Method)
		if !ok {
			c.AbortWithStatusJSON(http.StatusMethodNotAllowed,
				dto.NewErrorResponse("INVALID_INPUT", "Unsupported method"))
			return
		}

		allowed, err := permissions.Check(c.Request.Context(), GetTenantDomain(c), appidentity.CheckInput{
			UserID:   userID,
			PagePath: pagePath,
			Action:   action,
		})
		if err != nil {
			status, resp := dto.ErrorResponseFromError(err)
			c.AbortWithStatusJSON(status, resp)
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("FORBIDDEN", "You do not have permission to perform this action"))
			return
		}

		c.Next()
	}
}
