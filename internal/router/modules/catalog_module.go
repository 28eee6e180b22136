package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/invenlab/inventory-api/internal/domain/entity"
	handlers "github.com/invenlab/inventory-api/internal/interface/http"
	"github.com/invenlab/inventory-api/internal/interface/middleware"
	"github.com/invenlab/inventory-api/pkg/helpers"
)

type CatalogModule struct {
	Handler *handlers.ProductHandler
	JWT     *helpers.JWTManager
}

func NewCatalogModule(h *handlers.ProductHandler, jwt *helpers.JWTManager) *CatalogModule {
	return &CatalogModule{Handler: h, JWT: jwt}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/products")
	grp.Use(middleware.Auth(m.JWT))
	{
		grp.GET("", m.Handler.List)
		grp.GET("/:id", m.Handler.Get)
		grp.GET("/category/:id", m.Handler.ListByCategory)

		admin := grp.Group("")
		admin.Use(middleware.RequireRole(entity.RoleAdmin))
		{
			admin.GET("/low-stock", m.Handler.ListLowStock)
			admin.GET("/search", m.Handler.Search)

			admin.POST("", m.Handler.Create)
			admin.PUT("/:id", m.Handler.Update)
			admin.PATCH("/:id/stock", m.Handler.UpdateStock)
			admin.DELETE("/:id", m.Handler.Delete)

			admin.POST("/:id/image", m.Handler.UploadImage)
			admin.DELETE("/:id/image", m.Handler.RemoveImage)
		}
	}
}
