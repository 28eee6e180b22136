package router

import (
	"github.com/invenlab/inventory-api/internal/application"
	"github.com/invenlab/inventory-api/internal/container"
	pginfra "github.com/invenlab/inventory-api/internal/infrastructure/postgres"
	handlers "github.com/invenlab/inventory-api/internal/interface/http"
	"github.com/invenlab/inventory-api/internal/router/modules"
)

// InitModules wires repositories, services and handlers from the
// container singletons and registers every feature module. Called once
// during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	uploader := container.GetUploader()

	userRepo := pginfra.NewUserRepository(pool)
	categoryRepo := pginfra.NewCategoryRepository(pool)
	productRepo := pginfra.NewProductRepository(pool)

	// Keep the interface nil when the broker is down so queueing
	// degrades to a no-op instead of calling through a nil pointer.
	var emailPub application.EmailPublisher
	if p := container.GetRabbitPub(); p != nil {
		emailPub = p
	}

	authService := application.NewAuthService(
		userRepo,
		container.GetJWT(),
		container.GetRedis(),
		emailPub,
		logger,
		cfg.AppName,
		cfg.FrontendURL,
		cfg.ResetTokenTTL,
	)
	profileService := application.NewProfileService(userRepo, uploader, logger)
	categoryService := application.NewCategoryService(categoryRepo, logger)
	catalogService := application.NewCatalogService(
		productRepo,
		categoryRepo,
		uploader,
		logger,
		container.GetES(),
		cfg.ESProductsIndex,
	)

	authHandler := handlers.NewAuthHandler(authService, logger)
	profileHandler := handlers.NewProfileHandler(profileService, logger)
	categoryHandler := handlers.NewCategoryHandler(categoryService, logger)
	productHandler := handlers.NewProductHandler(catalogService, logger)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewProfileModule(profileHandler, container.GetJWT()))
	r.Add(modules.NewCategoryModule(categoryHandler, container.GetJWT()))
	r.Add(modules.NewCatalogModule(productHandler, container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
