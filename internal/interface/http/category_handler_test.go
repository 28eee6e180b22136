package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invenlab/inventory-api/internal/application"
	"github.com/invenlab/inventory-api/internal/infrastructure/memory"
)

// Deleting a category that still owns products is a business-rule
// failure and must answer 400, not a conflict status.
func TestDeleteCategoryWithProductsIsBadRequest(t *testing.T) {
	db := memory.NewDB()
	logger := discardLogger()
	categories := application.NewCategoryService(db.Categories(), logger)
	catalogSvc := application.NewCatalogService(db.Products(), db.Categories(), nil, logger, nil, "")
	h := NewCategoryHandler(categories, logger)

	r := gin.New()
	r.DELETE("/categories/:id", h.Delete)

	ctx := context.Background()
	cat, err := categories.Create(ctx, "Tools", "", true)
	require.NoError(t, err)
	_, err = catalogSvc.Create(ctx, application.ProductInput{Name: "Hammer", Price: 10, Stock: 1, Available: true, CategoryID: cat.ID})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/categories/%d", cat.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// once emptied, the delete goes through
	items, err := catalogSvc.ListByCategory(ctx, cat.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NoError(t, catalogSvc.Delete(ctx, items[0].ID))

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/categories/%d", cat.ID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
