package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/invenlab/inventory-api/internal/container"
	handlers "github.com/invenlab/inventory-api/internal/interface/http"
	"github.com/invenlab/inventory-api/internal/interface/middleware"
	"github.com/invenlab/inventory-api/pkg/helpers"
)

type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/profile")
	grp.Use(middleware.Auth(m.JWT))
	{
		grp.GET("", m.Handler.Get)
		grp.PUT("", m.Handler.UpdateBasicInfo)

		grp.PUT("/appearance", m.Handler.UpdateAppearance)
		grp.PUT("/language", m.Handler.UpdateLocale)
		grp.PUT("/notifications", m.Handler.UpdateNotifications)
		grp.PUT("/privacy", m.Handler.UpdatePrivacy)
		grp.PUT("/accessibility", m.Handler.UpdateAccessibility)
		grp.PUT("/security", m.Handler.UpdateSecurity)

		changePwdLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByUserID(), nil)
		grp.POST("/change-password", changePwdLimiter, m.Handler.ChangePassword)

		grp.POST("/photo", m.Handler.UploadPhoto)
		grp.DELETE("/photo", m.Handler.RemovePhoto)
	}
}
