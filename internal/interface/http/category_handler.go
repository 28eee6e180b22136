package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/invenlab/inventory-api/internal/application"
	"github.com/invenlab/inventory-api/pkg/response"
	"github.com/invenlab/inventory-api/pkg/validation"
)

type CategoryHandler struct {
	Categories *application.CategoryService
	Logger     *logrus.Logger
}

func NewCategoryHandler(categories *application.CategoryService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Categories: categories, Logger: logger}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid id", nil)
		return 0, false
	}
	return id, true
}

func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.Categories.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list categories failed")
		response.Error(c, http.StatusInternalServerError, "list categories failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toCategoryDTOs(cats), "", nil)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	cat, err := h.Categories.Get(c.Request.Context(), id)
	if err != nil {
		if err == application.ErrCategoryNotFound {
			response.Error(c, http.StatusNotFound, "category not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get category failed")
		response.Error(c, http.StatusInternalServerError, "get category failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toCategoryDTO(cat), "", nil)
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=120"`
	Description string `json:"description" binding:"max=500"`
	Active      *bool  `json:"active"`
}

func (r *categoryRequest) active() bool {
	if r.Active == nil {
		return true
	}
	return *r.Active
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Categories.Create(c.Request.Context(), req.Name, req.Description, req.active())
	if err != nil {
		h.Logger.WithError(err).Error("create category failed")
		response.Error(c, http.StatusInternalServerError, "create category failed", nil)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/categories/%d", cat.ID))
	response.Success(c, http.StatusCreated, toCategoryDTO(cat), "category created", nil)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Categories.Update(c.Request.Context(), id, req.Name, req.Description, req.active())
	if err != nil {
		if err == application.ErrCategoryNotFound {
			response.Error(c, http.StatusNotFound, "category not found", nil)
			return
		}
		h.Logger.WithError(err).Error("update category failed")
		response.Error(c, http.StatusInternalServerError, "update category failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toCategoryDTO(cat), "category updated", nil)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	err := h.Categories.Delete(c.Request.Context(), id)
	switch err {
	case nil:
		c.Status(http.StatusNoContent)
	case application.ErrCategoryNotFound:
		response.Error(c, http.StatusNotFound, "category not found", nil)
	case application.ErrCategoryHasProducts:
		response.Error(c, http.StatusBadRequest, "category still has products", nil)
	default:
		h.Logger.WithError(err).Error("delete category failed")
		response.Error(c, http.StatusInternalServerError, "delete category failed", nil)
	}
}
