package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/invenlab/inventory-api/internal/application"
	"github.com/invenlab/inventory-api/internal/domain/catalog"
	"github.com/invenlab/inventory-api/pkg/response"
	"github.com/invenlab/inventory-api/pkg/storage"
	"github.com/invenlab/inventory-api/pkg/validation"
)

type ProductHandler struct {
	Catalog *application.CatalogService
	Logger  *logrus.Logger
}

func NewProductHandler(cat *application.CatalogService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Catalog: cat, Logger: logger}
}

type listQuery struct {
	SearchTerm string   `form:"searchTerm"`
	CategoryID *int64   `form:"categoryId"`
	PriceMin   *float64 `form:"priceMin"`
	PriceMax   *float64 `form:"priceMax"`
	Available  *bool    `form:"available"`
	OrderBy    string   `form:"orderBy"`
	Descending bool     `form:"descending"`
	PageNumber int      `form:"pageNumber"`
	PageSize   int      `form:"pageSize"`
}

// List is the catalog query endpoint: conjunctive filters, allowlisted
// sorting and stable pagination, all in one pass.
func (h *ProductHandler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	f := &catalog.Filter{
		SearchTerm: q.SearchTerm,
		CategoryID: q.CategoryID,
		PriceMin:   q.PriceMin,
		PriceMax:   q.PriceMax,
		Available:  q.Available,
		OrderBy:    q.OrderBy,
		Descending: q.Descending,
		PageNumber: q.PageNumber,
		PageSize:   q.PageSize,
	}
	items, meta, err := h.Catalog.List(c.Request.Context(), f)
	if err != nil {
		h.Logger.WithError(err).Error("list products failed")
		response.Error(c, http.StatusInternalServerError, "list products failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toProductDTOs(items), "", toMetadataDTO(meta))
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, err := h.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		if err == application.ErrProductNotFound {
			response.Error(c, http.StatusNotFound, "product not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get product failed")
		response.Error(c, http.StatusInternalServerError, "get product failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toProductDTO(p), "", nil)
}

func (h *ProductHandler) ListByCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	items, err := h.Catalog.ListByCategory(c.Request.Context(), id)
	if err != nil {
		if err == application.ErrCategoryNotFound {
			response.Error(c, http.StatusNotFound, "category not found", nil)
			return
		}
		h.Logger.WithError(err).Error("list products by category failed")
		response.Error(c, http.StatusInternalServerError, "list products failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toProductDTOs(items), "", nil)
}

func (h *ProductHandler) ListLowStock(c *gin.Context) {
	items, err := h.Catalog.ListLowStock(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list low stock failed")
		response.Error(c, http.StatusInternalServerError, "list low stock failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toProductDTOs(items), "", nil)
}

type searchQuery struct {
	Q    string `form:"q" binding:"required"`
	Size int    `form:"size"`
}

func (h *ProductHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	hits, err := h.Catalog.Search(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		h.Logger.WithError(err).Error("product search failed")
		response.Error(c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "", nil)
}

type productRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=120"`
	Description string  `json:"description" binding:"max=1000"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Stock       *int    `json:"stock" binding:"required,gte=0"`
	Available   *bool   `json:"available"`
	CategoryID  int64   `json:"categoryId" binding:"required,gt=0"`
}

func (r *productRequest) input() application.ProductInput {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return application.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       *r.Stock,
		Available:   available,
		CategoryID:  r.CategoryID,
	}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Catalog.Create(c.Request.Context(), req.input())
	if err != nil {
		if err == application.ErrCategoryNotFound {
			response.Error(c, http.StatusBadRequest, "category does not exist", nil)
			return
		}
		h.Logger.WithError(err).Error("create product failed")
		response.Error(c, http.StatusInternalServerError, "create product failed", nil)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/products/%d", p.ID))
	response.Success(c, http.StatusCreated, toProductDTO(p), "product created", nil)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Catalog.Update(c.Request.Context(), id, req.input())
	if err != nil {
		switch err {
		case application.ErrProductNotFound:
			response.Error(c, http.StatusNotFound, "product not found", nil)
		case application.ErrCategoryNotFound:
			response.Error(c, http.StatusBadRequest, "category does not exist", nil)
		default:
			h.Logger.WithError(err).Error("update product failed")
			response.Error(c, http.StatusInternalServerError, "update product failed", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, toProductDTO(p), "product updated", nil)
}

type stockRequest struct {
	Stock *int `json:"stock" binding:"required,gte=0"`
}

func (h *ProductHandler) UpdateStock(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Catalog.UpdateStock(c.Request.Context(), id, *req.Stock)
	if err != nil {
		if err == application.ErrProductNotFound {
			response.Error(c, http.StatusNotFound, "product not found", nil)
			return
		}
		h.Logger.WithError(err).Error("update stock failed")
		response.Error(c, http.StatusInternalServerError, "update stock failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toProductDTO(p), "stock updated", nil)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	err := h.Catalog.Delete(c.Request.Context(), id)
	switch err {
	case nil:
		c.Status(http.StatusNoContent)
	case application.ErrProductNotFound:
		response.Error(c, http.StatusNotFound, "product not found", nil)
	default:
		h.Logger.WithError(err).Error("delete product failed")
		response.Error(c, http.StatusInternalServerError, "delete product failed", nil)
	}
}

// UploadImage accepts a multipart "file" part and swaps it in as the
// product image. The old object is retired only after the new upload
// succeeds.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "missing file", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "unreadable file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	p, err := h.Catalog.UploadImage(c.Request.Context(), id, f, fh.Filename, fh.Header.Get("Content-Type"), fh.Size)
	if err != nil {
		switch {
		case err == application.ErrProductNotFound:
			response.Error(c, http.StatusNotFound, "product not found", nil)
		case errors.Is(err, storage.ErrInvalidExtension):
			response.Error(c, http.StatusBadRequest, "file extension not allowed", nil)
		case errors.Is(err, storage.ErrFileTooLarge):
			response.Error(c, http.StatusBadRequest, "file exceeds 5 MiB", nil)
		default:
			h.Logger.WithError(err).Error("upload product image failed")
			response.Error(c, http.StatusInternalServerError, "upload failed", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, toProductDTO(p), "image uploaded", nil)
}

func (h *ProductHandler) RemoveImage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, err := h.Catalog.RemoveImage(c.Request.Context(), id)
	if err != nil {
		if err == application.ErrProductNotFound {
			response.Error(c, http.StatusNotFound, "product not found", nil)
			return
		}
		h.Logger.WithError(err).Error("remove product image failed")
		response.Error(c, http.StatusInternalServerError, "remove image failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toProductDTO(p), "image removed", nil)
}
