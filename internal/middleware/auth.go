// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gramseva/resicert-backend/internal/i18n"
	"github.com/gramseva/resicert-backend/internal/services"
	"github.com/gramseva/resicert-backend/internal/utils"
)

// AuthRequired resolves the caller's identity from the bearer token. It only
// establishes who is calling; what the caller may do is decided per request
// from the role store, never from token claims.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			c.Abort()
			return
		}

		principal, err := utils.ValidateJWT(parts[1])
		if err != nil {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			c.Abort()
			return
		}

		c.Set("principal", principal)
		c.Next()
	}
}

// AdminRequired gates admin routes on the role in effect at the moment of the
// call. The service layer re-checks, so a route misconfiguration cannot widen
// access.
func AdminRequired(roleService *services.RoleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		principal, exists := utils.GetPrincipalFromContext(c)
		if !exists {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
			c.Abort()
			return
		}

		isAdmin, err := roleService.IsAdmin(principal)
		if err != nil {
			utils.InternalErrorResponse(c, "")
			c.Abort()
			return
		}
		if !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"error": i18n.T(lang, i18n.KeyAccessDenied),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
