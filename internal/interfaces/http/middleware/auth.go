package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"habitat/internal/infrastructure/auth"
	"habitat/internal/shared/logger"
	"habitat/internal/shared/tenant"
	"habitat/internal/shared/utils"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"

	RoleManager  = "manager"
	RoleResident = "resident"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth verifies the bearer token, stores the caller's identity on the
// gin context, and installs the tenant scope on the request context so it
// flows into repositories and the dispatcher.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyRole, claims.Role)
		c.Request = c.Request.WithContext(tenant.WithTenant(c.Request.Context(), claims.TenantID))

		c.Next()
	}
}

// RequireManager gates management endpoints: sending notifications and
// editing templates.
func (m *AuthMiddleware) RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextKeyRole)
		if role != RoleManager {
			utils.ErrorResponse(c, http.StatusForbidden, "manager role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerID returns the authenticated user ID from the gin context.
func CallerID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
