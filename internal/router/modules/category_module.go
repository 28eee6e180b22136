package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/invenlab/inventory-api/internal/domain/entity"
	handlers "github.com/invenlab/inventory-api/internal/interface/http"
	"github.com/invenlab/inventory-api/internal/interface/middleware"
	"github.com/invenlab/inventory-api/pkg/helpers"
)

type CategoryModule struct {
	Handler *handlers.CategoryHandler
	JWT     *helpers.JWTManager
}

func NewCategoryModule(h *handlers.CategoryHandler, jwt *helpers.JWTManager) *CategoryModule {
	return &CategoryModule{Handler: h, JWT: jwt}
}

func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/categories")
	grp.Use(middleware.Auth(m.JWT))
	{
		grp.GET("", m.Handler.List)
		grp.GET("/:id", m.Handler.Get)

		admin := grp.Group("")
		admin.Use(middleware.RequireRole(entity.RoleAdmin))
		{
			admin.POST("", m.Handler.Create)
			admin.PUT("/:id", m.Handler.Update)
			admin.DELETE("/:id", m.Handler.Delete)
		}
	}
}
