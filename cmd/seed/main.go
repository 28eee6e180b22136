package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/invenlab/inventory-api/config"
	"github.com/invenlab/inventory-api/internal/domain/entity"
	repo "github.com/invenlab/inventory-api/internal/domain/repository"
	pginfra "github.com/invenlab/inventory-api/internal/infrastructure/postgres"
	"github.com/invenlab/inventory-api/pkg/helpers"
)

// Seeds an admin account plus a demo catalog. Safe to run repeatedly:
// existing rows are left alone.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	categories := pginfra.NewCategoryRepository(pool)
	products := pginfra.NewProductRepository(pool)

	adminEmail := getenv("SEED_ADMIN_EMAIL", "admin@invenlab.dev")
	adminPassword := getenv("SEED_ADMIN_PASSWORD", "admin123")

	hash, err := helpers.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	admin := &entity.User{
		Email:    adminEmail,
		Password: hash,
		FullName: "Administrator",
		Config:   entity.DefaultConfiguration(),
	}
	err = users.Create(ctx, admin)
	switch {
	case err == nil:
		log.Printf("admin user created: %s", adminEmail)
	case errors.Is(err, repo.ErrDuplicateEmail):
		existing, gerr := users.GetByEmail(ctx, adminEmail)
		if gerr != nil {
			log.Fatalf("load existing admin: %v", gerr)
		}
		admin = existing
		log.Printf("admin user already present: %s", adminEmail)
	default:
		log.Fatalf("create admin: %v", err)
	}
	for _, role := range []string{entity.RoleAdmin, entity.RoleUser} {
		if err := users.AssignRole(ctx, admin.ID, role); err != nil {
			log.Fatalf("assign role %s: %v", role, err)
		}
	}

	existing, err := categories.List(ctx)
	if err != nil {
		log.Fatalf("list categories: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("catalog already seeded (%d categories), done", len(existing))
		return
	}

	demo := []struct {
		category entity.Category
		products []entity.Product
	}{
		{
			category: entity.Category{Name: "Electronics", Description: "Computers, peripherals and accessories", Active: true},
			products: []entity.Product{
				{Name: "Mechanical Keyboard", Description: "87-key tenkeyless, hot-swappable switches", Price: 89.90, Stock: 25, Available: true},
				{Name: "USB-C Dock", Description: "Dual HDMI, 100W passthrough", Price: 129.00, Stock: 8, Available: true},
				{Name: "Wireless Mouse", Description: "Ergonomic, 2.4GHz + Bluetooth", Price: 34.50, Stock: 0, Available: false},
			},
		},
		{
			category: entity.Category{Name: "Office", Description: "Desks, chairs and supplies", Active: true},
			products: []entity.Product{
				{Name: "Standing Desk", Description: "Electric height adjustment, 120x60cm", Price: 349.00, Stock: 4, Available: true},
				{Name: "Notebook A5", Description: "Dotted, 180 pages", Price: 6.90, Stock: 140, Available: true},
			},
		},
	}

	for _, d := range demo {
		cat := d.category
		if err := categories.Create(ctx, &cat); err != nil {
			log.Fatalf("create category %s: %v", cat.Name, err)
		}
		for _, p := range d.products {
			p.CategoryID = cat.ID
			if err := products.Create(ctx, &p); err != nil {
				log.Fatalf("create product %s: %v", p.Name, err)
			}
		}
		log.Printf("seeded category %s with %d products", cat.Name, len(d.products))
	}
	log.Println("seed complete")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
