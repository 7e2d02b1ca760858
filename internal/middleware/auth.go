package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/coad-fablab/printlab-api/internal/models"
	"github.com/coad-fablab/printlab-api/internal/service"
	appErrors "github.com/coad-fablab/printlab-api/pkg/errors"
	"github.com/coad-fablab/printlab-api/pkg/response"
)

// ContextWorkstationKey is the gin context key storing workstation claims.
const ContextWorkstationKey = "currentWorkstation"

// Auth protects routes by requiring a valid workstation token.
func Auth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextWorkstationKey, claims)
		c.Next()
	}
}

// WorkstationID returns the authenticated workstation's ID, empty when
// the route is unauthenticated.
func WorkstationID(c *gin.Context) string {
	raw, ok := c.Get(ContextWorkstationKey)
	if !ok {
		return ""
	}
	claims, ok := raw.(*models.WorkstationClaims)
	if !ok {
		return ""
	}
	return claims.WorkstationID
}
