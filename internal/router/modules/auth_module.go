package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/invenlab/inventory-api/internal/container"
	handlers "github.com/invenlab/inventory-api/internal/interface/http"
	"github.com/invenlab/inventory-api/internal/interface/middleware"
	"github.com/invenlab/inventory-api/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetInitLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetConfirmLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	// Reset endpoints live under /profile for the web client but need no
	// session: the caller has lost their password.
	rg.POST("/profile/reset-password-request", resetInitLimiter, m.Handler.RequestPasswordReset)
	rg.POST("/profile/reset-password", resetConfirmLimiter, m.Handler.ResetPassword)
}
