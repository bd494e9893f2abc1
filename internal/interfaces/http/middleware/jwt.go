package middleware

import (
	"net/http"
	"strings"

	appidentity "github.com/garagehub/backend/internal/application/identity"
	"github.com/garagehub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTUserKey    = "jwt_user"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTAuth validates the bearer token via the auth service: signature,
// revocation, user existence and password-change staleness. The token's
// tenant must match the tenant resolved for the request.
func JWTAuth(authService *appidentity.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("UNAUTHORIZED", "Missing authorization header"))
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("UNAUTHORIZED", "Invalid authorization header format"))
			return
		}
		token := strings.TrimPrefix(header, BearerPrefix)

		claims, user, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			status, resp := dto.ErrorResponseFromError(err)
			c.AbortWithStatusJSON(status, resp)
			return
		}

		if tenant := GetTenantDomain(c); tenant != "" && tenant != claims.TenantDomain {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("FORBIDDEN", "Token does not belong to this tenant"))
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, user.ID)
		c.Set(JWTUserKey, user)
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID, if any
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	if v, ok := c.Get(JWTUserIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id, true
		}
	}
	return uuid.Nil, false
}
