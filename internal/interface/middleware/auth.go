package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/invenlab/inventory-api/pkg/helpers"
	"github.com/invenlab/inventory-api/pkg/response"
)

// Context keys set by Auth.
const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	CtxUserNameKey  = "userName"
	CtxRolesKey     = "userRoles"
)

// Auth validates the Bearer token and injects the caller's identity
// into the Gin context. Expired tokens get a distinct message so the
// client knows to re-authenticate rather than retry.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			msg := "invalid access token"
			if errors.Is(err, helpers.ErrTokenExpired) {
				msg = "access token expired"
			}
			response.AbortError(c, http.StatusUnauthorized, msg, nil)
			return
		}
		c.Set(CtxUserIDKey, claims.Subject)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Set(CtxUserNameKey, claims.Name)
		c.Set(CtxRolesKey, claims.Roles)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RolesFromCtx returns the roles Auth stored for the current request.
func RolesFromCtx(c *gin.Context) []string {
	v, ok := c.Get(CtxRolesKey)
	if !ok {
		return nil
	}
	roles, _ := v.([]string)
	return roles
}

// RequireRole rejects requests whose token does not carry the role.
// It must run after Auth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, r := range RolesFromCtx(c) {
			if r == role {
				c.Next()
				return
			}
		}
		response.AbortError(c, http.StatusForbidden, "insufficient permissions", nil)
	}
}
