package http

import (
	"time"

	"github.com/invenlab/inventory-api/internal/domain/catalog"
	"github.com/invenlab/inventory-api/internal/domain/entity"
)

// Response DTOs use camelCase keys, matching the web client.

type CategoryDTO struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	ProductCount int       `json:"productCount"`
}

func toCategoryDTO(c *entity.Category) CategoryDTO {
	return CategoryDTO{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		ProductCount: c.ProductCount,
	}
}

func toCategoryDTOs(cs []*entity.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCategoryDTO(c))
	}
	return out
}

type ProductDTO struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Stock        int       `json:"stock"`
	ImageURL     string    `json:"imageUrl"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	CategoryID   int64     `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	LowStock     bool      `json:"lowStock"`
	OutOfStock   bool      `json:"outOfStock"`
}

func toProductDTO(p *entity.Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		ImageURL:     p.ImageURL,
		Available:    p.Available,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		LowStock:     p.LowStock(),
		OutOfStock:   p.OutOfStock(),
	}
}

func toProductDTOs(ps []*entity.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductDTO(p))
	}
	return out
}

type MetadataDTO struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	PageSize    int  `json:"pageSize"`
	TotalCount  int  `json:"totalCount"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

func toMetadataDTO(m catalog.Metadata) MetadataDTO {
	return MetadataDTO{
		CurrentPage: m.CurrentPage,
		TotalPages:  m.TotalPages,
		PageSize:    m.PageSize,
		TotalCount:  m.TotalCount,
		HasPrevious: m.HasPrevious,
		HasNext:     m.HasNext,
	}
}

type UserDTO struct {
	ID           string           `json:"id"`
	Email        string           `json:"email"`
	FullName     string           `json:"fullName"`
	Bio          string           `json:"bio,omitempty"`
	BirthDate    *time.Time       `json:"birthDate,omitempty"`
	PhotoURL     string           `json:"photoUrl,omitempty"`
	AvatarURL    string           `json:"avatarUrl,omitempty"`
	RegisteredAt time.Time        `json:"registeredAt"`
	Roles        []string         `json:"roles"`
	Config       ConfigurationDTO `json:"config"`
}

type ConfigurationDTO struct {
	Appearance    entity.Appearance    `json:"appearance"`
	Locale        entity.Locale        `json:"locale"`
	Notifications entity.Notifications `json:"notifications"`
	Privacy       entity.Privacy       `json:"privacy"`
	Accessibility entity.Accessibility `json:"accessibility"`
	Security      entity.Security      `json:"security"`
}

func toUserDTO(u *entity.User) UserDTO {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		Bio:          u.Bio,
		BirthDate:    u.BirthDate,
		PhotoURL:     u.PhotoURL,
		AvatarURL:    u.AvatarURL,
		RegisteredAt: u.RegisteredAt,
		Roles:        roles,
		Config: ConfigurationDTO{
			Appearance:    u.Config.Appearance,
			Locale:        u.Config.Locale,
			Notifications: u.Config.Notifications,
			Privacy:       u.Config.Privacy,
			Accessibility: u.Config.Accessibility,
			Security:      u.Config.Security,
		},
	}
}
