package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invenlab/inventory-api/internal/application"
	"github.com/invenlab/inventory-api/internal/domain/entity"
	"github.com/invenlab/inventory-api/internal/infrastructure/memory"
	"github.com/invenlab/inventory-api/internal/interface/middleware"
)

func newProfileRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db := memory.NewDB()
	logger := discardLogger()
	svc := application.NewProfileService(db.Users(), nil, logger)
	h := NewProfileHandler(svc, logger)

	u := &entity.User{
		Email:    "ana@example.com",
		Password: "irrelevant",
		FullName: "Ana",
		Config:   entity.DefaultConfiguration(),
	}
	require.NoError(t, db.Users().Create(context.Background(), u))

	r := gin.New()
	r.PUT("/profile/appearance", func(c *gin.Context) {
		c.Set(middleware.CtxUserIDKey, u.ID)
	}, h.UpdateAppearance)
	return r
}

func TestUpdateAppearanceValidation(t *testing.T) {
	cases := []struct {
		name     string
		theme    string
		fontSize int
		want     int
	}{
		{"light theme", "light", 16, http.StatusOK},
		{"dark theme", "dark", 16, http.StatusOK},
		{"auto theme", "auto", 16, http.StatusOK},
		{"unknown theme", "solarized", 16, http.StatusBadRequest},
		{"font size below range", "light", 11, http.StatusBadRequest},
		{"font size lower bound", "light", 12, http.StatusOK},
		{"font size upper bound", "light", 24, http.StatusOK},
		{"font size above range", "light", 25, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newProfileRouter(t)
			w := doJSON(t, r, http.MethodPut, "/profile/appearance", gin.H{
				"theme":          tc.theme,
				"primaryColor":   "#112233",
				"secondaryColor": "#445566",
				"fontFamily":     "system",
				"fontSize":       tc.fontSize,
				"contrastMode":   "normal",
			})
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
